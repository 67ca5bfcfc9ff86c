package commands

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/snakefield/engine/api"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "dumps the current frame of a served session",
	Run: func(*cobra.Command, []string) {
		frame, err := api.NewClient(apiAddr).Frame()
		if err != nil {
			log.WithError(err).WithField("addr", apiAddr).Error("unable to get session")
			return
		}
		fmt.Println(statusLine(frame))
		spew.Dump(frame)
	},
}
