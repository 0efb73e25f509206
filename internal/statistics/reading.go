package statistics

import (
	"github.com/fansync/fansync/internal/store"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemReading = "reading"

type ReadingCollector struct {
	readings *store.ReadingStore
	value    *prometheus.Desc
	avg      *prometheus.Desc
}

func NewReadingCollector(readings *store.ReadingStore) *ReadingCollector {
	return &ReadingCollector{
		readings: readings,
		value: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemReading, "value"),
			"Current value of the sensor reading",
			[]string{"id", "type"}, nil,
		),
		avg: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemReading, "moving_avg"),
			"Smoothed value of the sensor reading",
			[]string{"id", "type"}, nil,
		),
	}
}

func (collector *ReadingCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.value
	ch <- collector.avg
}

// Collect implements required collect function for all prometheus collectors
func (collector *ReadingCollector) Collect(ch chan<- prometheus.Metric) {
	for _, reading := range collector.readings.All() {
		ch <- prometheus.MustNewConstMetric(collector.value, prometheus.GaugeValue,
			reading.Value, reading.Identifier, reading.Type)
		if avg, exists := collector.readings.MovingAvg(reading.Identifier); exists {
			ch <- prometheus.MustNewConstMetric(collector.avg, prometheus.GaugeValue,
				avg, reading.Identifier, reading.Type)
		}
	}
}
