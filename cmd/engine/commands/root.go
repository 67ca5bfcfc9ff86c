package commands

import (
	"fmt"
	"os"

	"github.com/snakefield/engine/cmd/engine/commands/server"
	"github.com/snakefield/engine/config"
	"github.com/snakefield/engine/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:     "engine",
	Short:   "engine runs and serves games of snakefield",
	Version: version.Version,
	PersistentPreRun: func(c *cobra.Command, args []string) {
		config.SetLogLevel(logLevel)
	},
	Run: func(c *cobra.Command, args []string) {
		playCmd.Run(c, args)
	},
}

var (
	apiAddr  = "http://localhost:3005"
	logLevel = config.LogLevel
)

// Execute runs the root command
func Execute() {
	rootCmd.PersistentFlags().StringVar(&apiAddr, "api-addr", apiAddr, "address of the api server")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logLevel, "log level, as one of: [debug, info, warn, error]")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(server.RootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
