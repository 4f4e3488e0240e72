package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hrithikpandeyhp/cortex/internal/mastery"
	"github.com/hrithikpandeyhp/cortex/internal/planner"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show what the tutor would teach next",
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

		// A brand-new learner plans against an empty profile.
		profile := mastery.NewProfile(name)
		if learner != nil {
			profile, err = e.profileFor(ctx, learner.ID)
			if err != nil {
				return err
			}
		}

		decision, err := e.planner.Decide(profile)
		if err != nil {
			return fmt.Errorf("plan next step: %w", err)
		}

		if decision.Action == planner.Complete {
			fmt.Println("Curriculum complete. Nothing left to teach.")
			return nil
		}

		topic, err := e.graph.Topic(decision.TopicID)
		if err != nil {
			return err
		}

		fmt.Printf("Next:   %s (%s)\n", topic.Label, topic.ID)
		fmt.Printf("Level:  %d of %d\n", decision.Difficulty, topic.MaxDifficulty)
		fmt.Printf("Action: %s\n", decision.Action)
		fmt.Printf("Why:    %s\n", decision.Reason)
		return nil
	},
}
