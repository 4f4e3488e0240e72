package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hrithikpandeyhp/cortex/internal/selfupdate"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update cortex to the latest version",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		checker := selfupdate.NewChecker(selfupdate.WithTimeout(2 * time.Minute))

		if checkOnly, _ := cmd.Flags().GetBool("check"); checkOnly {
			return runCheck(ctx, checker)
		}
		tag, _ := cmd.Flags().GetString("tag")
		return runUpdate(ctx, checker, tag)
	},
}

func runUpdate(ctx context.Context, checker *selfupdate.Checker, tag string) error {
	input := &selfupdate.UpdateInput{CurrentVersion: version, TargetVersion: tag}
	err := checker.Update(ctx, input, func(p selfupdate.UpdateProgress) {
		fmt.Println(p.Message)
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, selfupdate.ErrDevBuild):
		fmt.Println("Cannot update a development build. Install a release build first.")
		return nil
	case errors.Is(err, selfupdate.ErrAlreadyLatest):
		fmt.Println("Already running the latest version.")
		return nil
	case os.IsPermission(err):
		return fmt.Errorf("%w\n\nTry running: sudo cortex update", err)
	}
	return err
}

func runCheck(ctx context.Context, checker *selfupdate.Checker) error {
	result, err := checker.Check(ctx, &selfupdate.CheckInput{Version: version})
	if errors.Is(err, selfupdate.ErrDevBuild) {
		fmt.Println("Development build; version checks are disabled.")
		return nil
	}
	if err != nil {
		return err
	}

	if !result.UpdateAvailable {
		fmt.Println("Already running the latest version.")
		return nil
	}

	fmt.Printf("Update available: %s -> %s\n", result.CurrentVersion, result.LatestVersion)
	fmt.Printf("Release notes: %s\n", result.ReleaseURL)
	fmt.Println("Run \"cortex update\" to install it.")
	return nil
}

func init() {
	updateCmd.Flags().Bool("check", false, "Only check whether an update is available")
	updateCmd.Flags().String("tag", "", "Install a specific release tag (e.g. v1.2.0) instead of the latest")
}
