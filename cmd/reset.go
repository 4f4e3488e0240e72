package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase a learner's attempt history and snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		name := resolveLearnerName(cmd)

		if confirm, _ := cmd.Flags().GetBool("confirm"); !confirm {
			fmt.Printf("This permanently erases all progress for learner %q.\n", name)
			fmt.Println("Re-run with --confirm to proceed.")
			return nil
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		learner, err := learnerByName(ctx, st, name)
		if err != nil {
			return err
		}
		if learner == nil {
			fmt.Printf("No learner named %q.\n", name)
			return nil
		}

		if err := st.Reset(ctx, learner.ID); err != nil {
			return fmt.Errorf("reset learner: %w", err)
		}
		fmt.Printf("Progress for %q erased.\n", name)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("confirm", false, "Actually perform the reset")
}
