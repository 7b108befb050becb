package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlProfile = `
name: Sam
age: "25"
heightCm: 180
weightKg: 80
daysPerWeek: 3
goal: general
experience: beginner
equipment: none
activityLevel: light
`

func writeProfile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.Execute()
	return out.String(), err
}

func TestPlanCommand(t *testing.T) {
	path := writeProfile(t, "profile.yaml", yamlProfile)

	out, err := run(t, "", "plan", "-f", path, "--at", "2026-10-14T10:00:00Z")
	require.NoError(t, err)

	var plan map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Equal(t, "2026-10-14T10:00:00Z", plan["createdAt"])

	training := plan["training"].(map[string]any)
	assert.Equal(t, "full_body", training["split"])
	assert.Len(t, training["days"], 7)

	nutrition := plan["nutrition"].(map[string]any)
	assert.Equal(t, float64(2482), nutrition["calories"])
}

func TestPlanCommand_JSONFromStdin(t *testing.T) {
	out, err := run(t, `{"age": 25, "heightCm": 180, "weightKg": 80, "daysPerWeek": 4}`, "plan", "-f", "-")
	require.NoError(t, err)

	var plan map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Equal(t, "upper_lower", plan["training"].(map[string]any)["split"])
}

func TestPlanCommand_Errors(t *testing.T) {
	_, err := run(t, "", "plan")
	assert.ErrorContains(t, err, `required flag(s) "file" not set`)

	_, err = run(t, "", "plan", "-f", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "reading profile")

	path := writeProfile(t, "bad.yaml", "age: [1, 2\n")
	_, err = run(t, "", "plan", "-f", path)
	assert.ErrorContains(t, err, "parsing profile")

	path = writeProfile(t, "profile.yaml", yamlProfile)
	_, err = run(t, "", "plan", "-f", path, "--at", "yesterday")
	assert.ErrorContains(t, err, "parsing --at")
}

func TestEnergyCommand(t *testing.T) {
	path := writeProfile(t, "profile.yaml", yamlProfile)

	out, err := run(t, "", "energy", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "BMR:      1805 kcal/day")
	assert.Contains(t, out, "TDEE:     2482 kcal/day")
	assert.Contains(t, out, "Calories: 2482 kcal/day")
}

func TestEnergyCommand_MissingMetrics(t *testing.T) {
	path := writeProfile(t, "profile.yaml", "age: 30\n")

	out, err := run(t, "", "energy", "-f", path)
	require.NoError(t, err)
	assert.Equal(t, "Energy unavailable: add age, height and weight.\n", out)

	out, err = run(t, "", "energy", "-f", path, "--json")
	require.NoError(t, err)
	var resp map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Nil(t, resp["energy"])
	assert.Nil(t, resp["macros"])
}

func TestCatalogCommand(t *testing.T) {
	out, err := run(t, "", "catalog", "dumbbells")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 8)
	assert.True(t, strings.HasPrefix(lines[0], "PATTERN"))
	assert.True(t, strings.HasPrefix(lines[1], "squat"))
	assert.Contains(t, lines[1], "Goblet Squat, Split Squat, DB Front Squat")

	out, err = run(t, "", "catalog", "full_gym", "--json")
	require.NoError(t, err)
	var resp struct {
		Equipment string              `json:"equipment"`
		Patterns  map[string][]string `json:"patterns"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "full_gym", resp.Equipment)
	assert.Equal(t, []string{"Back Squat", "Leg Press", "Goblet Squat"}, resp.Patterns["squat"])
}

func TestCatalogCommand_UnknownTier(t *testing.T) {
	_, err := run(t, "", "catalog", "kettlebells")
	assert.ErrorContains(t, err, `unknown equipment tier "kettlebells"`)

	_, err = run(t, "", "catalog")
	assert.Error(t, err)
}
