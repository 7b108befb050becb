package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fitplan/fitplan/internal/api/models"
	"github.com/fitplan/fitplan/internal/planner"
)

func newCatalogCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:       "catalog <equipment>",
		Short:     "Print the exercise pools for an equipment tier",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(planner.EquipmentNone), string(planner.EquipmentDumbbells), string(planner.EquipmentFullGym)},
		RunE: func(cmd *cobra.Command, args []string) error {
			equipment := planner.Equipment(args[0])
			if !equipment.Valid() {
				return fmt.Errorf("unknown equipment tier %q (want none, dumbbells or full_gym)", args[0])
			}
			catalog := planner.CatalogFor(equipment)

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), models.CatalogResponse{Equipment: equipment, Patterns: catalog})
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PATTERN\tEXERCISES")
			for _, pattern := range planner.Patterns {
				fmt.Fprintf(tw, "%s\t%s\n", pattern, strings.Join(catalog[pattern], ", "))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}
