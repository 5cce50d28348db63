package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/abelbrown/topicradar/internal/app"
	"github.com/abelbrown/topicradar/internal/ui"
)

var (
	runRegions string
	runJSON    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one research pass and print the ranked topics",
	Long: `Run one research pass and print the ranked topics.

Output is styled when stdout is a terminal and JSON otherwise; --json
forces JSON.`,
	Args: cobra.NoArgs,
	RunE: runResearch,
}

func init() {
	runCmd.Flags().StringVarP(&runRegions, "regions", "r", "", "comma-separated region codes (default from config)")
	runCmd.Flags().BoolVar(&runJSON, "json", false, "output the response as JSON")
	rootCmd.AddCommand(runCmd)
}

func runResearch(cmd *cobra.Command, _ []string) error {
	regions, err := parseRegionsFlag(runRegions)
	if err != nil {
		return err
	}
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return err
	}
	events, err := openEvents(cfg)
	if err != nil {
		return err
	}
	defer events.Close()

	a, err := app.New(cfg, logger, events)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	resp, err := a.Run(ctx, regions)
	if err != nil {
		return fmt.Errorf("research failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if runJSON || !isTerminal(out) {
		return outputJSON(out, resp)
	}
	fmt.Fprint(out, ui.RenderTopics(resp, terminalWidth(out)))
	return nil
}

func outputJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
