package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/abelbrown/topicradar/internal/app"
	"github.com/abelbrown/topicradar/internal/logging"
	"github.com/abelbrown/topicradar/internal/model"
	"github.com/abelbrown/topicradar/internal/ui"
)

var tuiRegions string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse ranked topics in the terminal",
	Long: `Launch the interactive topic browser.

Controls:
  ↑/k, ↓/j - Navigate topics
  Enter    - Toggle detail
  Esc      - Close detail
  r        - Run research again
  q        - Quit

Log output is suppressed while the UI owns the terminal; configure
eventLog.path to keep a record of the run.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVarP(&tuiRegions, "regions", "r", "", "comma-separated region codes (default from config)")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	regions, err := parseRegionsFlag(tuiRegions)
	if err != nil {
		return err
	}
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	events, err := openEvents(cfg)
	if err != nil {
		return err
	}
	defer events.Close()

	a, err := app.New(cfg, logging.Discard(), events)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	load := ui.Loader(ctx, func(ctx context.Context) (*model.ResearchResponse, error) {
		return a.Run(ctx, regions)
	})

	p := tea.NewProgram(ui.NewApp(load), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
