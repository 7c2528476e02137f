package agent

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/fleetsync/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "fleetsyncd",
	Short: "Offline-first sync agent for fleet earnings and expenses",
	Long: `fleetsyncd keeps a local SQLite cache of earnings entries, expenses,
drivers and vehicles in step with the remote document store. Writes always
land locally first; a scheduler pushes pending records and pulls remote
changes whenever the network allows.`,
	// the config layer parses its own flags (-c, -d, -m, -i, -t)
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	RunE:               runAgent,
}

var syncCmd = &cobra.Command{
	Use:                "sync",
	Short:              "Run a single sync pass and exit",
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := NewApp(cmd.Context(), config.LoadConfig())
		if err != nil {
			return err
		}
		defer app.Close()

		pushed, err := app.SyncOnce(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "pushed %d record(s)\n", pushed)
		return nil
	},
}

var wipeCmd = &cobra.Command{
	Use:                "wipe",
	Short:              "Clear the local cache (drops pending unsynced records too)",
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := NewApp(cmd.Context(), config.LoadConfig())
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.WipeCache(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "cache wiped")
		return nil
	},
}

func runAgent(cmd *cobra.Command, _ []string) error {
	app, err := NewApp(cmd.Context(), config.LoadConfig())
	if err != nil {
		return err
	}
	app.Run(cmd.Context())
	return nil
}

func init() {
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(wipeCmd)
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
