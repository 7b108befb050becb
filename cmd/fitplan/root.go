package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fitplan/fitplan/internal/planner"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "fitplan",
		Short:        "Generate rule-based training and nutrition plans",
		Version:      Version,
		SilenceUsage: true,
	}
	root.AddCommand(newPlanCmd(), newEnergyCmd(), newCatalogCmd())
	return root
}

// addProfileFlag registers -f/--file on cmd and binds it to path.
func addProfileFlag(cmd *cobra.Command, path *string) {
	cmd.Flags().StringVarP(path, "file", "f", "", `profile file in YAML or JSON ("-" reads stdin)`)
	_ = cmd.MarkFlagRequired("file")
}

// readProfile decodes a raw profile. YAML is a superset of JSON, so one
// decoder serves both formats.
func readProfile(cmd *cobra.Command, path string) (planner.RawProfile, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return planner.RawProfile{}, fmt.Errorf("reading profile: %w", err)
	}

	var raw planner.RawProfile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return planner.RawProfile{}, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	return raw, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
