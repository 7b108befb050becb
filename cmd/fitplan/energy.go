package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fitplan/fitplan/internal/api/models"
	"github.com/fitplan/fitplan/internal/planner"
)

func newEnergyCmd() *cobra.Command {
	var (
		path   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "energy",
		Short: "Print BMR, TDEE and macro targets for a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := readProfile(cmd, path)
			if err != nil {
				return err
			}

			p := planner.Normalize(raw)
			energy := planner.EstimateEnergy(p)
			macros := planner.AllocateMacros(p)
			out := cmd.OutOrStdout()

			if asJSON {
				return writeJSON(out, models.EnergyResponse{Profile: p, Energy: energy, Macros: macros})
			}
			if energy == nil {
				_, err := fmt.Fprintln(out, "Energy unavailable: add age, height and weight.")
				return err
			}

			fmt.Fprintf(out, "BMR:      %d kcal/day\n", energy.BMR)
			fmt.Fprintf(out, "TDEE:     %d kcal/day\n", energy.TDEE)
			if macros != nil {
				fmt.Fprintf(out, "Calories: %d kcal/day\n", macros.Calories)
				fmt.Fprintf(out, "Protein:  %d g\n", macros.ProteinG)
				fmt.Fprintf(out, "Carbs:    %d g\n", macros.CarbsG)
				fmt.Fprintf(out, "Fat:      %d g\n", macros.FatG)
			}
			return nil
		},
	}
	addProfileFlag(cmd, &path)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of text")
	return cmd
}
