package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fansync/fansync/internal/api"
	"github.com/fansync/fansync/internal/configuration"
	"github.com/fansync/fansync/internal/controller"
	"github.com/fansync/fansync/internal/curve"
	"github.com/fansync/fansync/internal/hwio"
	"github.com/fansync/fansync/internal/persistence"
	"github.com/fansync/fansync/internal/statistics"
	"github.com/fansync/fansync/internal/store"
	"github.com/fansync/fansync/internal/ui"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RunDaemon() {
	pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
	if err := pers.Init(); err != nil {
		ui.Fatal("Unable to open state database at %s: %v", configuration.CurrentConfig.DbPath, err)
	}

	adapter := createAdapter()
	policies := store.NewPolicyStore()
	curves := store.NewCurveStore()
	readings := store.NewReadingStore(configuration.CurrentConfig.ReadingsWindowSize)

	restoreSnapshot(pers, policies, curves)

	domain := curve.Domain{
		TempMin: configuration.CurrentConfig.CurveTempMin,
		TempMax: configuration.CurrentConfig.CurveTempMax,
	}
	syncController := controller.NewSyncController(
		adapter,
		policies,
		curves,
		readings,
		domain,
		configuration.CurrentConfig.PollingRate,
	)

	statistics.Register(statistics.NewReadingCollector(readings))
	statistics.Register(statistics.NewControllerCollector(syncController))

	ctx, cancel := context.WithCancel(context.Background())

	var g run.Group
	{
		enabled := configuration.CurrentConfig.Statistics.Enabled
		if enabled {
			// === Prometheus Exporter
			g.Add(func() error {
				port := configuration.CurrentConfig.Statistics.Port
				if port <= 0 || port >= 65535 {
					port = 9000
				}
				endpoint := "/metrics"
				addr := fmt.Sprintf(":%d", port)
				handler := promhttp.Handler()
				http.Handle(endpoint, handler)
				server := &http.Server{Addr: addr, Handler: handler}
				if err := server.ListenAndServe(); err != nil {
					ui.Error("Cannot start prometheus metrics endpoint (%s)", err.Error())
				}

				select {
				case <-ctx.Done():
					ui.Info("Stopping statistics server...")
					timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer timeoutCancel()
					return server.Shutdown(timeoutCtx)
				}
			}, func(err error) {
				if err != nil {
					ui.Warning("Error stopping statistics server: " + err.Error())
				} else {
					ui.Info("Statistics server stopped.")
				}
			})
		}
	}
	{
		enabled := configuration.CurrentConfig.Api.Enabled
		if enabled {
			// === REST Api
			restServer := api.CreateRestService(syncController, policies, curves, readings)

			g.Add(func() error {
				host := configuration.CurrentConfig.Api.Host
				port := configuration.CurrentConfig.Api.Port
				addr := fmt.Sprintf("%s:%d", host, port)
				if err := restServer.Start(addr); err != nil && err != http.ErrServerClosed {
					ui.Error("Cannot start REST api endpoint (%s)", err.Error())
					return err
				}
				return nil
			}, func(err error) {
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				if err := restServer.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping REST api: %v", err)
				} else {
					ui.Info("REST api stopped.")
				}
			})
		}
	}
	{
		// === state synchronization
		g.Add(func() error {
			err := syncController.Run(ctx)
			ui.Info("Sync controller stopped.")
			return err
		}, func(err error) {
			if err != nil {
				ui.Warning("Error synchronizing state: %v", err)
			}
		})
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM, os.Kill)

		g.Add(func() error {
			<-sig
			ui.Info("Received SIGTERM signal, exiting...")
			return nil
		}, func(err error) {
			defer close(sig)
			cancel()
		})
	}

	runErr := g.Run()
	saveSnapshot(pers, policies, curves)
	if runErr != nil {
		_, _ = fmt.Fprintln(os.Stderr, runErr)
		os.Exit(1)
	} else {
		ui.Info("Done.")
		os.Exit(0)
	}
}

func createAdapter() hwio.Adapter {
	config := configuration.CurrentConfig.Backend
	switch config.Adapter {
	case configuration.BackendAdapterSimulated:
		return hwio.NewSimulatedAdapter(config.Headers)
	default:
		ui.Fatal("Unknown backend adapter: %s", config.Adapter)
		return nil
	}
}

// restoreSnapshot seeds the stores with the last persisted state so
// the panel shows familiar values before the first poll completes.
// the first refresh replaces the policy set wholesale anyway.
func restoreSnapshot(pers persistence.Persistence, policies *store.PolicyStore, curves *store.CurveStore) {
	persistedPolicies, err := pers.LoadPolicies()
	if err != nil {
		ui.Warning("Unable to load persisted policies: %v", err)
	} else {
		policies.ReplaceAll(persistedPolicies)
	}

	persistedCurves, err := pers.LoadCurves()
	if err != nil {
		ui.Warning("Unable to load persisted curves: %v", err)
		return
	}
	for _, c := range persistedCurves {
		curves.Put(c)
	}
}

func saveSnapshot(pers persistence.Persistence, policies *store.PolicyStore, curves *store.CurveStore) {
	if err := pers.SavePolicies(policies.All()); err != nil {
		ui.Warning("Unable to persist policies: %v", err)
	}
	for _, c := range curves.Curves() {
		if err := pers.SaveCurve(c); err != nil {
			ui.Warning("Unable to persist curve %s: %v", hwio.CurveKey(c.HeaderID, c.Mode), err)
		}
	}
}
