package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abelbrown/topicradar/internal/app"
	"github.com/abelbrown/topicradar/internal/feeds"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List enabled sources and the endpoints they query",
	Args:  cobra.NoArgs,
	RunE:  runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	regions, err := cfg.DefaultRegions()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	opts := feeds.Options{Regions: regions}
	for _, s := range app.BuildSources(cfg) {
		fmt.Fprintf(out, "%s (%s)\n", s.Name(), s.Type())
		d, ok := s.(feeds.Describer)
		if !ok {
			continue
		}
		for _, endpoint := range d.Endpoints(opts) {
			fmt.Fprintf(out, "  %s\n", endpoint)
		}
	}
	return nil
}
