package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hrithikpandeyhp/cortex/internal/progress"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show mastery and attempt statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		name := resolveLearnerName(cmd)
		learner, err := learnerByName(ctx, e.store, name)
		if err != nil {
			return err
		}
		if learner == nil {
			fmt.Printf("No progress recorded for %q yet. Run \"cortex learn\" to get started.\n", name)
			return nil
		}

		profile, err := e.profileFor(ctx, learner.ID)
		if err != nil {
			return err
		}
		stats, err := e.store.StatsByTopic(ctx, learner.ID)
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}
		if len(stats) == 0 {
			fmt.Printf("No attempts recorded for %q yet. Run \"cortex learn\" to get started.\n", name)
			return nil
		}

		byTopic := make(map[string]progress.TopicStats, len(stats))
		for _, st := range stats {
			byTopic[st.TopicID] = st
		}

		fmt.Printf("Learner: %s\n\n", learner.Name)
		fmt.Printf("%-20s  %-26s  %8s  %6s  %6s  %6s  %s\n",
			"Topic", "Label", "Attempts", "Mean", "Recent", "Level", "Mastered")
		fmt.Println(rule(92))

		var attempted, mastered, totalAttempts int
		for _, topic := range e.graph.TopologicalOrder() {
			st, ok := byTopic[topic.ID]
			if !ok {
				continue
			}
			attempted++
			totalAttempts += st.Attempts

			state := profile.States[topic.ID]
			mark := ""
			if e.model.IsMastered(state) {
				mark = "✓"
				mastered++
			}
			fmt.Printf("%-20s  %-26s  %8d  %6.2f  %6.2f  %6d  %s\n",
				topic.ID, truncate(topic.Label, 26),
				st.Attempts, st.MeanScore, state.Recent, state.Difficulty, mark)
		}

		fmt.Println(rule(92))
		fmt.Printf("Mastered %d of %d topics, %d attempts total.\n",
			mastered, e.graph.Len(), totalAttempts)
		if untouched := e.graph.Len() - attempted; untouched > 0 {
			fmt.Printf("%d topics not started yet.\n", untouched)
		}
		if profile.ActiveTopic != "" {
			fmt.Printf("Position: %s at level %d.\n", profile.ActiveTopic, profile.ActiveDifficulty)
		}
		return nil
	},
}
