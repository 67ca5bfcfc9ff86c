package commands

import (
	"context"
	"sync"
	"time"

	"github.com/snakefield/engine/cmd/engine/commands/server"
	"github.com/snakefield/engine/config"
	"github.com/snakefield/engine/controller"
	"github.com/snakefield/engine/controller/pb"
	"github.com/snakefield/engine/worker"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "plays headless random games as fast as possible and stores their scores",
	Run: func(c *cobra.Command, args []string) {
		store, err := server.OpenStore(simBackend, simBackendArgs)
		if err != nil {
			log.WithError(err).Fatal("unable to start up backend store")
		}
		defer server.CloseStore(store)

		start := time.Now()
		list := runSimulation(context.Background(), store, simGames, simWorkers, simSeed)
		fields := log.Fields{
			"Games":   len(list),
			"Elapsed": time.Since(start),
		}
		if best := controller.Top(list, 1); len(best) == 1 {
			fields["Best"] = best[0].Score
			fields["SessionID"] = best[0].ID
		}
		log.WithFields(fields).Info("simulations complete")
	},
}

var (
	simGames             = 10
	simWorkers           = 4
	simMaxTurns    int64 = 10000
	simSeed        int64 = 1
	simBackend           = "inmem"
	simBackendArgs       = ""
)

func init() {
	simulateCmd.Flags().IntVarP(&simGames, "games", "g", simGames, "number of games to play")
	simulateCmd.Flags().IntVarP(&simWorkers, "workers", "w", simWorkers, "number of games played at once")
	simulateCmd.Flags().Int64Var(&simMaxTurns, "max-turns", simMaxTurns, "turn at which a game is abandoned")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", simSeed, "seed of the first game")
	simulateCmd.Flags().StringVarP(&simBackend, "backend", "b", simBackend, "score backend, as one of: [inmem, file, redis, sql]")
	simulateCmd.Flags().StringVarP(&simBackendArgs, "backend-args", "a", simBackendArgs, "options to pass to the backend being used")
}

// runSimulation plays games with consecutive seeds from seed on a pool of
// workers and returns their summaries.
func runSimulation(ctx context.Context, store controller.Store, games, workers int, seed int64) []*pb.Summary {
	if workers <= 0 {
		workers = 1
	}
	seeds := make(chan int64)
	results := make(chan *pb.Summary, games)

	w := &worker.Worker{
		Store:    store,
		Board:    config.Board(),
		Tuning:   config.Tuning(),
		MaxTurns: simMaxTurns,
	}
	wg := sync.WaitGroup{}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			w.Run(ctx, id, seeds, results)
		}(i)
	}

	for i := 0; i < games; i++ {
		select {
		case seeds <- seed + int64(i):
		case <-ctx.Done():
		}
	}
	close(seeds)
	wg.Wait()
	close(results)

	list := []*pb.Summary{}
	for sum := range results {
		list = append(list, sum)
	}
	return list
}
