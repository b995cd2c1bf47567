package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/inferlab/inferlab/internal/logging"
	"github.com/inferlab/inferlab/internal/web"
	"github.com/inferlab/inferlab/pkg/inferlab"
	"github.com/inferlab/inferlab/pkg/inferlab/sampledata"
	"github.com/inferlab/inferlab/pkg/inferlab/store/sqlite"
)

var (
	flagAddr   string
	flagDBPath string
)

// ServeCmd starts the JSON API server.
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the rule engine over a JSON HTTP API",
	Long: `Start the HTTP server. The API manages rules and facts, runs both
engines, ranks diagnoses, and lists run history. Run history lives in
SQLite; with no --db path it stays in memory for the process lifetime.

Loads --rulebase when given, otherwise starts with the bundled triangle
demo rulebase.`,
	RunE: runServe,
}

func init() {
	addKBFlags(ServeCmd)
	ServeCmd.Flags().StringVar(&flagAddr, "addr", ":8080", "Listen address")
	ServeCmd.Flags().StringVar(&flagDBPath, "db", "", "SQLite file for run history (empty for in-memory)")
	ServeCmd.Flags().BoolVar(&flagGraphs, "graphs", false, "Render graphs after each run")
	ServeCmd.Flags().StringVar(&flagOut, "out", "inference_outputs", "Directory for graph artifacts")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	base, _, err := loadKB()
	if err != nil {
		// No rulebase given: serve the demo so the API is usable out
		// of the box.
		if flagRulebase != "" || flagRules != "" {
			return err
		}
		base, err = sampledata.Triangle().Build()
		if err != nil {
			return err
		}
	}

	runStore, err := sqlite.Open(ctx, flagDBPath)
	if err != nil {
		return err
	}

	lab := inferlab.New(inferlab.Options{
		KB:         base,
		Store:      runStore,
		GraphDir:   flagOut,
		MakeGraphs: flagGraphs,
	})
	defer lab.Close()

	pterm.Info.Printf("Serving %s on %s\n", base.Summary(), flagAddr)

	srv := web.New(lab, logging.Logger)
	if err := srv.ListenAndServe(ctx, flagAddr); err != nil {
		return err
	}
	pterm.Success.Println("Server stopped cleanly")
	return nil
}
