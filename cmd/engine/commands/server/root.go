package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	backend     = "inmem"
	backendArgs = ""
	promEnable  = true
	promListen  = ":9000"
)

// RootCmd serves a session over http.
var RootCmd = &cobra.Command{
	Use:    "serve",
	Short:  "serve a snakefield session over http and websockets",
	PreRun: func(c *cobra.Command, args []string) { prometheus() },
	Run: func(c *cobra.Command, args []string) {
		store, err := OpenStore(backend, backendArgs)
		if err != nil {
			log.WithError(err).Fatal("unable to start up backend store")
		}
		defer CloseStore(store)

		if err := serve(store); err != nil && err != http.ErrServerClosed {
			log.WithError(err).
				WithField("listen", apiListen).
				Error("api server failed")
		}
	},
}

func init() {
	RootCmd.Flags().BoolVar(&promEnable, "prometheus", promEnable, "enable prometheus metrics")
	RootCmd.Flags().StringVar(&promListen, "prometheus-listen", promListen, "prometheus http endpoint")
	RootCmd.Flags().StringVarP(&backend, "backend", "b", backend, "score backend, as one of: [inmem, file, redis, sql]")
	RootCmd.Flags().StringVarP(&backendArgs, "backend-args", "a", backendArgs, "options to pass to the backend being used")
}

func prometheus() {
	if !promEnable {
		log.Info("prometheus exporter not enabled")
		return
	}

	log.WithField("addr", promListen).Info("starting prometheus exporter")
	go func() {
		r := http.NewServeMux()
		r.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(promListen, r); err != nil {
			log.WithError(err).Warn("prometheus failed to listen")
		}
	}()
}
