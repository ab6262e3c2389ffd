package main

import (
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vango-dev/ripple/pkg/devtools"
	"github.com/vango-dev/ripple/pkg/instrument"
	"github.com/vango-dev/ripple/pkg/ripple"
)

func demoCmd() *cobra.Command {
	var (
		addr     string
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a live reactive pipeline with inspector and metrics",
		Long: `Run a demo pipeline: a mutable source set of ints, a derived set
maintained incrementally as the flattened union of n -> {n, n+1}, and a
two-way bound pair of values mirroring the derived cardinality.

The inspector streams change records at ws://<addr>/debug/live, serves
current state at /debug/snapshot, and Prometheus metrics at /metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ripple.SetHooks(instrument.Metrics())

			source := ripple.NewMutableSet(1, 2, 3)
			derived := ripple.FlatMap(source, func(n int) []int {
				return []int{n, n + 1}
			})
			defer derived.Close()

			size := ripple.NewValue(derived.Len())
			mirror := ripple.NewValue(0)
			bond := ripple.Bind[int](size, mirror)
			defer bond.Close()

			track := derived.OnChange(func(ripple.Delta[int]) {
				size.Set(derived.Len())
			})
			defer track.Close()

			dev := devtools.NewServer()
			devtools.WatchSet(dev, "source", source)
			devtools.WatchSet(dev, "derived", derived)
			devtools.Watch(dev, "derived_size", size)
			devtools.Watch(dev, "mirror", mirror)

			r := chi.NewRouter()
			r.Mount("/debug", dev.Handler())
			r.Handle("/metrics", promhttp.Handler())

			srv := &http.Server{Addr: addr, Handler: r}
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					info("server stopped: %v", err)
				}
			}()
			success("inspector listening on http://%s/debug/snapshot", addr)
			info("streaming change records at ws://%s/debug/live", addr)
			info("prometheus metrics at http://%s/metrics", addr)

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

			rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			for {
				select {
				case <-ticker.C:
					source.WithTransaction(func() {
						source.Remove(rnd.Intn(10))
						source.Insert(rnd.Intn(10))
					})
				case <-stop:
					info("shutting down")
					return srv.Close()
				}
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:6470", "Listen address for inspector and metrics")
	cmd.Flags().DurationVar(&interval, "interval", 500*time.Millisecond, "Mutation interval")

	return cmd
}
