package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hrithikpandeyhp/cortex/internal/planner"
	"github.com/hrithikpandeyhp/cortex/internal/progress"
	"github.com/hrithikpandeyhp/cortex/internal/session"
	"github.com/hrithikpandeyhp/cortex/internal/tutor"
)

var learnCmd = &cobra.Command{
	Use:   "learn",
	Short: "Start an interactive tutoring session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLearn(cmd)
	},
}

func init() {
	learnCmd.Flags().Bool("voice", false, "Record answers as voice responses (input is the transcribed text)")
}

func runLearn(cmd *cobra.Command) error {
	ctx := cmd.Context()

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	coord, err := e.coordinator(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Set an API key (e.g. GEMINI_API_KEY or CORTEX_ANTHROPIC_API_KEY) to start learning.")
		return err
	}

	learner, err := e.store.GetOrCreateLearner(ctx, resolveLearnerName(cmd))
	if err != nil {
		return fmt.Errorf("resolve learner: %w", err)
	}

	modality := progress.ModalityText
	if voice, _ := cmd.Flags().GetBool("voice"); voice {
		modality = progress.ModalityVoice
	}

	fmt.Printf("Tutoring %s. Type \"quit\" to stop.\n\n", learner.Name)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		open, err := coord.RunTurn(ctx, session.TurnRequest{LearnerID: learner.ID})
		if err != nil {
			return describeAIError(err)
		}
		if open.Completed() {
			fmt.Println("Curriculum complete. Every topic is mastered, well done!")
			return nil
		}

		topic, err := e.graph.Topic(open.Turn.TopicID)
		if err != nil {
			return err
		}
		fmt.Printf("[%s, level %d of %d]\n", topic.Label, open.Turn.Difficulty, topic.MaxDifficulty)
		fmt.Println(open.Lesson.Explanation)
		fmt.Println()
		fmt.Println(open.Lesson.Question)

		var answer string
		for answer == "" {
			fmt.Print("> ")
			if !scanner.Scan() {
				fmt.Println()
				return scanner.Err()
			}
			answer = strings.TrimSpace(scanner.Text())
		}
		if answer == "quit" || answer == "exit" {
			fmt.Println("Progress saved. See you next time.")
			return nil
		}

		closed, err := coord.RunTurn(ctx, session.TurnRequest{
			LearnerID: learner.ID,
			Response: &session.Response{
				Turn:     *open.Turn,
				Answer:   answer,
				Modality: modality,
			},
		})
		if err != nil {
			return describeAIError(err)
		}

		fmt.Printf("\nScore: %d/100. %s\n", closed.Grade.RawScore, closed.Grade.Feedback)
		if line := e.transition(closed.Decision); line != "" {
			fmt.Println(line)
		}
		fmt.Println()
	}
}

// transition renders a one-line explanation of where the tutor goes next.
func (e *env) transition(d planner.Decision) string {
	switch d.Action {
	case planner.Remediate:
		return fmt.Sprintf("Let's ease back to level %d and rebuild from there.", d.Difficulty)
	case planner.Hold:
		return "We'll stay here for more practice."
	case planner.Reinforce:
		return fmt.Sprintf("Nice work, stepping up to level %d.", d.Difficulty)
	case planner.Advance:
		if topic, err := e.graph.Topic(d.TopicID); err == nil {
			return fmt.Sprintf("Moving on to %s.", topic.Label)
		}
		return "Moving on to the next topic."
	case planner.Complete:
		return "That was the last one. Curriculum complete!"
	default:
		return ""
	}
}

// describeAIError prints a recovery hint for AI outages before returning
// the error. Nothing was recorded, so rerunning resumes the same turn.
func describeAIError(err error) error {
	var aiErr *tutor.AIServiceError
	if errors.As(err, &aiErr) {
		fmt.Fprintln(os.Stderr, "\nThe AI tutor is unavailable right now. Nothing was recorded;")
		fmt.Fprintln(os.Stderr, "rerun \"cortex learn\" to pick up exactly where you left off.")
	}
	return err
}
