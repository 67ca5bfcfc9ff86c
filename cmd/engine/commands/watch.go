package commands

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	termbox "github.com/nsf/termbox-go"
	"github.com/snakefield/engine/api"
	"github.com/snakefield/engine/controller/pb"
	"github.com/snakefield/engine/session"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "watches and steers a served session in the terminal",
	Run: func(c *cobra.Command, args []string) {
		if err := redirectLogs(watchLogFile); err != nil {
			log.WithError(err).Fatal("unable to open log file")
		}

		ws, err := api.NewClient(apiAddr).Socket()
		if err != nil {
			log.WithError(err).WithField("addr", apiAddr).Fatal("unable to connect")
		}
		defer ws.Close()

		fh := &frameHolder{}
		closed := make(chan struct{})
		go func() {
			defer close(closed)
			readFrames(ws, fh)
		}()

		select {
		case <-fh.initialFrame():
		case <-closed:
			log.Error("session closed before the first frame")
			return
		case <-time.After(5 * time.Second):
			log.Error("timed out waiting for the first frame")
			return
		}

		if err := termbox.Init(); err != nil {
			log.WithError(err).Fatal("unable to initialise terminal")
		}
		defer termbox.Close()

		eventQueue := setupEventQueue()
		ticker := time.NewTicker(watchRefresh)
		defer ticker.Stop()
		var shown *pb.Frame
		for {
			select {
			case ev := <-eventQueue:
				if quit(ev) {
					return
				}
				if in, ok := keyIntent(ev); ok {
					if err := sendIntent(ws, in); err != nil {
						log.WithError(err).Warn("unable to send intent")
						return
					}
				}
			case <-ticker.C:
				if f := fh.latest(); f != shown {
					shown = f
					if err := render(f); err != nil {
						log.WithError(err).Error("unable to render frame")
					}
				}
			case <-closed:
				return
			}
		}
	},
}

var (
	watchRefresh = 25 * time.Millisecond
	watchLogFile = ""
)

func init() {
	watchCmd.Flags().DurationVar(&watchRefresh, "refresh", watchRefresh, "screen refresh interval")
	watchCmd.Flags().StringVar(&watchLogFile, "log-file", watchLogFile, "file to write logs to while watching, logs are discarded when empty")
}

func readFrames(ws *websocket.Conn, fh *frameHolder) {
	for {
		f := &pb.Frame{}
		if err := ws.ReadJSON(f); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				log.WithError(err).Warn("socket read failed")
			}
			return
		}
		fh.set(f)
	}
}

func sendIntent(ws *websocket.Conn, in session.Intent) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return ws.WriteMessage(websocket.TextMessage, data)
}
