package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hrithikpandeyhp/cortex/internal/config"
	"github.com/hrithikpandeyhp/cortex/internal/progress"
)

var rootCmd = &cobra.Command{
	Use:   "cortex",
	Short: "AI tutor that adapts to what you have mastered",
	Long: "Cortex is a terminal tutor. It teaches one small concept at a time,\n" +
		"grades your answers with an LLM, and walks a prerequisite graph at\n" +
		"the pace your scores justify.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLearn(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CORTEX_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: $XDG_CONFIG_HOME/cortex/config.yaml)")
	rootCmd.PersistentFlags().String("learner", "", "Learner name (defaults to CORTEX_LEARNER, then \"default\")")

	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using the --db flag (highest
// priority), then the config file, then the default XDG path. The config
// value already reflects CORTEX_DB.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, progress.EnsureDir(p)
	}
	if cfg != nil && cfg.Storage.DBPath != "" {
		return cfg.Storage.DBPath, progress.EnsureDir(cfg.Storage.DBPath)
	}
	return progress.DefaultDBPath()
}

// resolveLearnerName returns the learner to operate on: --learner flag,
// then CORTEX_LEARNER, then "default".
func resolveLearnerName(cmd *cobra.Command) string {
	if n, _ := cmd.Flags().GetString("learner"); n != "" {
		return n
	}
	if n := os.Getenv("CORTEX_LEARNER"); n != "" {
		return n
	}
	return "default"
}
