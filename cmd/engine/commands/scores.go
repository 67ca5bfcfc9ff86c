package commands

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/snakefield/engine/api"
	"github.com/snakefield/engine/controller/pb"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [id]",
	Short: "lists the best finished sessions, or shows one",
	Args:  cobra.MaximumNArgs(1),
	Run: func(c *cobra.Command, args []string) {
		client := api.NewClient(apiAddr)
		var (
			list []*pb.Summary
			err  error
		)
		if len(args) == 1 {
			var sum *pb.Summary
			sum, err = client.Score(args[0])
			list = []*pb.Summary{sum}
		} else {
			list, err = client.Scores(scoresLimit)
		}
		if err != nil {
			log.WithError(err).WithField("addr", apiAddr).Error("unable to get scores")
			return
		}
		printScores(os.Stdout, list)
	},
}

var scoresLimit = 10

func init() {
	scoresCmd.Flags().IntVarP(&scoresLimit, "limit", "n", scoresLimit, "number of scores to list")
}

func printScores(out io.Writer, list []*pb.Summary) {
	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tSCORE\tLENGTH\tTURNS\tCAUSE\tMODE\tENDED\tID")
	for i, s := range list {
		ended := time.Unix(0, s.EndedAt).UTC().Format(time.RFC3339)
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%s\t%s\t%s\t%s\n",
			i+1, s.Score, s.Length, s.Turns, s.Cause, s.ControlMode, ended, s.ID)
	}
	w.Flush()
}
