package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestTestdataScenarios discovers every *.yaml fixture under testdata/,
// loads it, runs it to quiescence, and asserts the resulting report
// matches its declared expectations.
func TestTestdataScenarios(t *testing.T) {
	entries, err := os.ReadDir("testdata")
	require.NoError(t, err)
	require.NotEmpty(t, entries, "no scenario fixtures found")

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join("testdata", entry.Name())

		t.Run(entry.Name(), func(t *testing.T) {
			t.Parallel()

			s, err := Load(path)
			require.NoError(t, err)

			report, err := Run(s)
			require.NoError(t, err)

			if !report.Passed {
				t.Errorf("scenario %q failed:\n%v", report.Name, report.Details)
			}
		})
	}
}

func TestRunAll_ConcurrentScenarios(t *testing.T) {
	entries, err := os.ReadDir("testdata")
	require.NoError(t, err)

	var scenarios []*Scenario
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		s, err := Load(filepath.Join("testdata", entry.Name()))
		require.NoError(t, err)
		scenarios = append(scenarios, s)
	}
	require.NotEmpty(t, scenarios)

	reports, err := RunAll(scenarios)
	require.NoError(t, err)
	require.Len(t, reports, len(scenarios))
	for i, report := range reports {
		require.True(t, report.Passed, "scenario %q: %v", scenarios[i].Name, report.Details)
	}
}

func TestLoad_RejectsDuplicateNodeID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: duplicate ids
nodes:
  - id: a
  - id: a
`), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_RejectsDanglingConnection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: dangling connection
nodes:
  - id: a
connections:
  - from: a
    to: ghost
`), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestRun_MismatchIsReportedNotErrored(t *testing.T) {
	s := &Scenario{
		Name:  "deliberate mismatch",
		Nodes: []NodeDecl{{ID: "sink"}},
		Seeds: []SeedDecl{{Node: "sink", Types: []string{"Dog"}}},
		Expect: []ExpectDecl{
			{Node: "sink", Types: []string{"Cat"}},
		},
	}

	report, err := Run(s)
	require.NoError(t, err)
	require.False(t, report.Passed)
	require.NotEmpty(t, report.Details)
}

func TestRun_RejectsArrayEdgeFilter(t *testing.T) {
	s := &Scenario{
		Name:  "invalid edge filter",
		Nodes: []NodeDecl{{ID: "a"}, {ID: "b"}},
		Connections: []ConnectionDecl{
			{From: "a", To: "b", EdgeFilter: &BoundDecl{Kind: "array"}},
		},
	}

	_, err := Run(s)
	require.Error(t, err)
}
