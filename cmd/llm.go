package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hrithikpandeyhp/cortex/internal/llm"
	"github.com/hrithikpandeyhp/cortex/internal/progress"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect logged LLM requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		requests, err := st.Requests().QueryLLMRequests(cmd.Context(), progress.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query requests: %w", err)
		}
		if purpose != "" {
			requests = filterByPurpose(requests, purpose)
		}
		if len(requests) == 0 {
			fmt.Println("No LLM requests logged.")
			return nil
		}

		printRequestTable(requests)
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View the full request/response for one LLM call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		r, err := st.Requests().GetLLMRequest(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get request: %w", err)
		}
		if r == nil {
			return fmt.Errorf("request %d not found", id)
		}

		printRequestDetail(r)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		byPurpose, err := st.Requests().UsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(byPurpose) == 0 {
			fmt.Println("No LLM usage recorded yet.")
			return nil
		}
		printUsageTable(byPurpose)

		byModel, err := st.Requests().UsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		if len(byModel) > 0 {
			fmt.Println()
			printCostTable(byModel)
		}
		return nil
	},
}

func filterByPurpose(requests []progress.LLMRequest, purpose string) []progress.LLMRequest {
	kept := requests[:0]
	for _, r := range requests {
		if r.Purpose == purpose {
			kept = append(kept, r)
		}
	}
	return kept
}

func printRequestTable(requests []progress.LLMRequest) {
	const layout = "%-5v  %-19s  %-10s  %-28s  %6v  %6v  %7v  %s\n"
	fmt.Printf(layout, "ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
	fmt.Println(rule(96))

	for _, r := range requests {
		status := "✓"
		if !r.Success {
			status = "✗"
		}
		fmt.Printf(layout,
			r.ID,
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			r.Purpose,
			truncate(r.Model, 28),
			r.InputTokens,
			r.OutputTokens,
			r.LatencyMs,
			status,
		)
	}
}

func printRequestDetail(r *progress.LLMRequest) {
	fmt.Printf("ID:        %d\n", r.ID)
	fmt.Printf("Time:      %s\n", r.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("Provider:  %s\n", r.Provider)
	fmt.Printf("Model:     %s\n", r.Model)
	fmt.Printf("Purpose:   %s\n", r.Purpose)
	fmt.Printf("Tokens:    %d in / %d out\n", r.InputTokens, r.OutputTokens)
	fmt.Printf("Latency:   %dms\n", r.LatencyMs)
	fmt.Printf("Success:   %v\n", r.Success)
	if r.ErrorMessage != "" {
		fmt.Printf("Error:     %s\n", r.ErrorMessage)
	}

	printBody("REQUEST", r.RequestBody)
	printBody("RESPONSE", r.ResponseBody)
}

func printBody(title, body string) {
	fmt.Println()
	fmt.Println(rule(60))
	fmt.Println(title)
	fmt.Println(rule(60))
	if body == "" {
		fmt.Println("(not captured)")
		return
	}
	fmt.Println(body)
}

func printUsageTable(stats []progress.PurposeUsage) {
	const layout = "%-16s  %6v  %10v  %10v  %10v  %8v\n"
	fmt.Println("Usage by Purpose")
	fmt.Println(rule(72))
	fmt.Printf(layout, "Purpose", "Calls", "Input", "Output", "Total", "Avg Ms")
	fmt.Println(rule(72))

	var calls, in, out int
	for _, u := range stats {
		fmt.Printf(layout,
			u.Purpose, u.Calls, u.InputTokens, u.OutputTokens,
			u.InputTokens+u.OutputTokens, u.AvgLatencyMs)
		calls += u.Calls
		in += u.InputTokens
		out += u.OutputTokens
	}

	fmt.Println(rule(72))
	fmt.Printf("%-16s  %6d  %10d  %10d  %10d\n", "TOTAL", calls, in, out, in+out)
}

func printCostTable(usage []progress.ModelUsage) {
	const layout = "%-32s  %6v  %10v  %10v  %10v\n"
	fmt.Println("Estimated Cost (USD)")
	fmt.Println(rule(72))
	fmt.Printf(layout, "Model", "Calls", "Input", "Output", "Cost")
	fmt.Println(rule(72))

	var total float64
	var unknown []string
	for _, mu := range usage {
		price := llm.LookupCost(mu.Model)
		if price == nil {
			unknown = append(unknown, mu.Model)
			fmt.Printf(layout, truncate(mu.Model, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, "?")
			continue
		}
		cost := price.Cost(mu.InputTokens, mu.OutputTokens)
		total += cost
		fmt.Printf(layout, truncate(mu.Model, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, dollars(cost))
	}

	fmt.Println(rule(72))
	label := "TOTAL"
	if len(unknown) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Printf("%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", dollars(total))

	if len(unknown) > 0 {
		fmt.Printf("\nPricing unavailable for: %s\n", strings.Join(unknown, ", "))
	}
}

func rule(n int) string {
	return strings.Repeat("─", n)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func dollars(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (lesson or grading)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
