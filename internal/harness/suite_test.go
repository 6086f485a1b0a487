package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindScenarios(t *testing.T) {
	paths, err := FindScenarios("testdata/scenarios")
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join("testdata", "scenarios", "contiguous_only.yaml"),
		filepath.Join("testdata", "scenarios", "full_confidence.yaml"),
		filepath.Join("testdata", "scenarios", "trace_file.yaml"),
		filepath.Join("testdata", "scenarios", "windowed_trace.yaml"),
		filepath.Join("testdata", "scenarios", "worked_example.yaml"),
	}, paths)
}

func TestFindScenarios_SingleFile(t *testing.T) {
	path := filepath.Join("testdata", "scenarios", "worked_example.yaml")

	paths, err := FindScenarios(path)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, paths)
}

func TestFindScenarios_Missing(t *testing.T) {
	_, err := FindScenarios(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestRunSuite(t *testing.T) {
	dir := t.TempDir()

	passing := "name: passing\ndescription: d\nsegments: [AB, AXB]\nassertions: [{type: rule_count, count: 1}]\n"
	failing := "name: failing\ndescription: d\nsegments: [AB, AXB]\nassertions: [{type: rule_count, count: 5}]\n"
	broken := "name: broken\n"

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_pass.yaml"), []byte(passing), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_fail.yaml"), []byte(failing), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c_broken.yml"), []byte(broken), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	paths, err := FindScenarios(dir)
	require.NoError(t, err)
	require.Len(t, paths, 3)

	result := RunSuite(paths)
	assert.Equal(t, 3, result.TotalScenarios)
	assert.Equal(t, 1, result.Passed)
	assert.Equal(t, 2, result.Failed)
	require.Len(t, result.Failures, 2)
	assert.Contains(t, result.Failures[0].Error, "scenario assertions failed")
	assert.Contains(t, result.Failures[1].Error, "failed to load scenario")
}
