package commands

import (
	"context"
	"io/ioutil"
	"os"

	termbox "github.com/nsf/termbox-go"
	"github.com/snakefield/engine/cmd/engine/commands/server"
	"github.com/snakefield/engine/config"
	"github.com/snakefield/engine/controller/pb"
	"github.com/snakefield/engine/session"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "plays a game in the terminal",
	Run: func(c *cobra.Command, args []string) {
		if err := redirectLogs(playLogFile); err != nil {
			log.WithError(err).Fatal("unable to open log file")
		}

		store, err := server.OpenStore(playBackend, playBackendArgs)
		if err != nil {
			log.WithError(err).Fatal("unable to start up backend store")
		}
		defer server.CloseStore(store)

		if err := termbox.Init(); err != nil {
			log.WithError(err).Fatal("unable to initialise terminal")
		}
		defer termbox.Close()

		board := config.Board()
		if playFit {
			board = boardFor(termbox.Size())
		}
		ctrl, err := session.NewController(session.Options{
			Board:    board,
			Mode:     pb.ControlPC,
			Tuning:   config.Tuning(),
			Seed:     playSeed,
			Cooldown: config.PauseCooldown,
		})
		if err != nil {
			termbox.Close()
			log.WithError(err).Fatal("unable to create session")
		}

		runner := session.NewRunner(ctrl, store, config.IntentBuffer)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			if err := runner.Run(ctx); err != nil && err != context.Canceled {
				log.WithError(err).Error("session stopped")
				cancel()
			}
		}()

		frames, unsubscribe := runner.Subscribe()
		defer unsubscribe()
		eventQueue := setupEventQueue()
		for {
			select {
			case ev := <-eventQueue:
				if quit(ev) {
					return
				}
				if ev.Type == termbox.EventResize && playFit {
					b := boardFor(ev.Width, ev.Height)
					in := session.Intent{Type: session.IntentResize, Width: b.Width, Height: b.Height}
					if err := runner.Send(ctx, in); err != nil {
						log.WithError(err).Warn("unable to resize")
					}
					continue
				}
				if in, ok := keyIntent(ev); ok {
					if err := runner.Send(ctx, in); err != nil {
						log.WithError(err).WithField("Intent", in.Type).Warn("unable to send intent")
					}
				}
			case f, ok := <-frames:
				if !ok {
					return
				}
				if err := render(f); err != nil {
					log.WithError(err).Error("unable to render frame")
				}
			case <-ctx.Done():
				return
			}
		}
	},
}

var (
	playBackend     = "file"
	playBackendArgs = ""
	playSeed        int64
	playFit         = true
	playLogFile     = ""
)

func init() {
	playCmd.Flags().StringVarP(&playBackend, "backend", "b", playBackend, "score backend, as one of: [inmem, file, redis, sql]")
	playCmd.Flags().StringVarP(&playBackendArgs, "backend-args", "a", playBackendArgs, "options to pass to the backend being used")
	playCmd.Flags().Int64Var(&playSeed, "seed", playSeed, "placement seed, zero picks one")
	playCmd.Flags().BoolVar(&playFit, "fit", playFit, "size the board to the terminal")
	playCmd.Flags().StringVar(&playLogFile, "log-file", playLogFile, "file to write logs to while playing, logs are discarded when empty")
}

// boardFor is the largest board that fits a terminal of cols by rows.
func boardFor(cols, rows int) pb.Board {
	cell := int32(config.CellSize)
	w := cols - 2*left
	h := rows - top - 4
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return pb.Board{Width: int32(w) * cell, Height: int32(h) * cell, CellSize: cell}
}

func quit(ev termbox.Event) bool {
	if ev.Type == termbox.EventInterrupt || ev.Type == termbox.EventError {
		return true
	}
	return ev.Type == termbox.EventKey && (ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC || ev.Ch == 'q')
}

func redirectLogs(file string) error {
	if file == "" {
		log.SetOutput(ioutil.Discard)
		return nil
	}
	f, err := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	log.SetOutput(f)
	return nil
}
