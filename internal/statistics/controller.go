package statistics

import (
	"github.com/fansync/fansync/internal/controller"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemController = "controller"

type ControllerCollector struct {
	controller controller.SyncController

	polls       *prometheus.Desc
	pollErrors  *prometheus.Desc
	writeErrors *prometheus.Desc
}

func NewControllerCollector(syncController controller.SyncController) *ControllerCollector {
	return &ControllerCollector{
		controller: syncController,
		polls: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemController, "polls_total"),
			"Total number of poll cycles issued against the backend",
			nil, nil,
		),
		pollErrors: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemController, "poll_errors_total"),
			"Total number of failed fetches",
			nil, nil,
		),
		writeErrors: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemController, "write_errors_total"),
			"Total number of failed writes",
			nil, nil,
		),
	}
}

func (collector *ControllerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.polls
	ch <- collector.pollErrors
	ch <- collector.writeErrors
}

// Collect implements required collect function for all prometheus collectors
func (collector *ControllerCollector) Collect(ch chan<- prometheus.Metric) {
	polls, pollErrors, writeErrors := collector.controller.Stats()
	ch <- prometheus.MustNewConstMetric(collector.polls, prometheus.CounterValue, float64(polls))
	ch <- prometheus.MustNewConstMetric(collector.pollErrors, prometheus.CounterValue, float64(pollErrors))
	ch <- prometheus.MustNewConstMetric(collector.writeErrors, prometheus.CounterValue, float64(writeErrors))
}
