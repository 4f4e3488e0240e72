package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hrithikpandeyhp/cortex/internal/config"
	"github.com/hrithikpandeyhp/cortex/internal/curriculum"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the curriculum topics",
	RunE: func(cmd *cobra.Command, args []string) error {
		var graph *curriculum.Graph
		var err error

		if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
			graph, err = curriculum.LoadDir(dir)
		} else {
			cfgPath, _ := cmd.Flags().GetString("config")
			var cfg *config.Config
			cfg, err = config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			graph, err = loadGraph(cfg)
		}
		if err != nil {
			return err
		}

		fmt.Printf("%-20s  %-28s  %6s  %s\n", "ID", "Label", "Levels", "Prerequisites")
		fmt.Println(rule(84))
		for _, t := range graph.TopologicalOrder() {
			prereqs := "-"
			if len(t.Prerequisites) > 0 {
				prereqs = strings.Join(t.Prerequisites, ", ")
			}
			fmt.Printf("%-20s  %-28s  %6d  %s\n",
				t.ID, truncate(t.Label, 28), t.MaxDifficulty, prereqs)
		}
		fmt.Printf("\n%d topics.\n", graph.Len())
		return nil
	},
}

func init() {
	topicsCmd.Flags().String("dir", "", "Load topics from a directory of YAML files instead of the configured curriculum")
}
