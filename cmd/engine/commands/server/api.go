package server

import (
	"context"

	"github.com/snakefield/engine/api"
	"github.com/snakefield/engine/config"
	"github.com/snakefield/engine/controller"
	"github.com/snakefield/engine/controller/pb"
	"github.com/snakefield/engine/session"
	log "github.com/sirupsen/logrus"
)

var (
	apiListen = ":3005"
	seed      int64
	phone     bool
)

func init() {
	RootCmd.Flags().StringVarP(&apiListen, "listen", "l", apiListen, "api address to listen on")
	RootCmd.Flags().Int64Var(&seed, "seed", seed, "placement seed, zero picks one")
	RootCmd.Flags().BoolVar(&phone, "phone", phone, "start in phone control mode")
	RootCmd.Flags().IntVar(&config.BoardWidth, "width", config.BoardWidth, "board width")
	RootCmd.Flags().IntVar(&config.BoardHeight, "height", config.BoardHeight, "board height")
	RootCmd.Flags().IntVar(&config.CellSize, "cell-size", config.CellSize, "size of one grid cell")
	RootCmd.Flags().DurationVar(&config.TickStart, "tick-start", config.TickStart, "starting tick interval")
	RootCmd.Flags().DurationVar(&config.TickStep, "tick-step", config.TickStep, "tick interval decrease per food")
	RootCmd.Flags().DurationVar(&config.TickFloor, "tick-floor", config.TickFloor, "shortest tick interval")
	RootCmd.Flags().DurationVar(&config.PauseCooldown, "pause-cooldown", config.PauseCooldown, "minimum gap between pause toggles")
}

// serve runs one session behind the api until the api stops.
func serve(store controller.Store) error {
	mode := pb.ControlPC
	if phone {
		mode = pb.ControlPhone
	}
	ctrl, err := session.NewController(session.Options{
		Board:    config.Board(),
		Mode:     mode,
		Tuning:   config.Tuning(),
		Seed:     seed,
		Cooldown: config.PauseCooldown,
	})
	if err != nil {
		return err
	}

	runner := session.NewRunner(ctrl, store, config.IntentBuffer)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := api.New(apiListen, runner, store)
	go func() {
		if err := runner.Run(ctx); err != nil && err != context.Canceled {
			log.WithError(err).Error("session stopped")
			s.Shutdown(context.Background())
		}
	}()

	log.WithFields(log.Fields{
		"listen":    apiListen,
		"SessionID": ctrl.Session().ID,
	}).Info("snakefield api serving")
	return s.WaitForExit()
}
