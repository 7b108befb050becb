package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fitplan/fitplan/internal/planner"
)

func newPlanCmd() *cobra.Command {
	var (
		path string
		at   string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the full plan for a profile as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := readProfile(cmd, path)
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			if at != "" {
				if now, err = time.Parse(time.RFC3339, at); err != nil {
					return fmt.Errorf("parsing --at: %w", err)
				}
			}

			return writeJSON(cmd.OutOrStdout(), planner.GeneratePlanAt(raw, now))
		},
	}
	addProfileFlag(cmd, &path)
	cmd.Flags().StringVar(&at, "at", "", "RFC 3339 creation time to stamp on the plan (default now)")
	return cmd
}
