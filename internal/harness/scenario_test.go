package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario_Valid(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/worked_example.yaml")
	require.NoError(t, err)

	assert.Equal(t, "worked_example", s.Name)
	assert.Equal(t, []string{"ABAC", "ABC", "BAC"}, s.Segments)
	require.NotNil(t, s.Config.MaxGap)
	assert.Equal(t, 1, *s.Config.MaxGap)
	assert.Len(t, s.Assertions, 9)
}

func TestLoadScenario_ResolvesTraceFile(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/trace_file.yaml")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("testdata", "traces", "session.txt"), s.TraceFile)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("testdata/scenarios/does_not_exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_MissingTraceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: missing_trace
description: trace file does not exist
trace_file: nope.txt
assertions:
  - type: rule_count
    count: 0
`), 0o644))

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trace file not found")
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "unknown field",
			yaml:    "name: x\ndescription: d\nsegments: [AB]\nassertion: []\n",
			wantErr: "failed to parse YAML",
		},
		{
			name:    "missing name",
			yaml:    "description: d\nsegments: [AB]\nassertions: [{type: rule_count, count: 0}]\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			yaml:    "name: x\nsegments: [AB]\nassertions: [{type: rule_count, count: 0}]\n",
			wantErr: "description is required",
		},
		{
			name:    "no input",
			yaml:    "name: x\ndescription: d\nassertions: [{type: rule_count, count: 0}]\n",
			wantErr: "exactly one of trace, trace_file or segments",
		},
		{
			name:    "two inputs",
			yaml:    "name: x\ndescription: d\ntrace: AB\nsegments: [AB]\nassertions: [{type: rule_count, count: 0}]\n",
			wantErr: "exactly one of trace, trace_file or segments",
		},
		{
			name:    "no assertions",
			yaml:    "name: x\ndescription: d\nsegments: [AB]\n",
			wantErr: "assertions list is required",
		},
		{
			name:    "unknown assertion type",
			yaml:    "name: x\ndescription: d\nsegments: [AB]\nassertions: [{type: trace_order}]\n",
			wantErr: `unknown assertion type "trace_order"`,
		},
		{
			name:    "frequent_contains without subsequence",
			yaml:    "name: x\ndescription: d\nsegments: [AB]\nassertions: [{type: frequent_contains}]\n",
			wantErr: "subsequence is required",
		},
		{
			name:    "rule_contains without prediction",
			yaml:    "name: x\ndescription: d\nsegments: [AB]\nassertions: [{type: rule_contains, history: A}]\n",
			wantErr: "history and prediction are required",
		},
		{
			name:    "rule_count without count",
			yaml:    "name: x\ndescription: d\nsegments: [AB]\nassertions: [{type: rule_count}]\n",
			wantErr: "non-negative count is required",
		},
		{
			name:    "negative max_length",
			yaml:    "name: x\ndescription: d\nsegments: [AB]\nassertions: [{type: max_length, length: -1}]\n",
			wantErr: "non-negative length is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseScenario_EmptySegmentsIsAnInput(t *testing.T) {
	s, err := ParseScenario([]byte("name: x\ndescription: d\nsegments: []\nassertions: [{type: rule_count, count: 0}]\n"))
	require.NoError(t, err)
	assert.NotNil(t, s.Segments)
	assert.Empty(t, s.Segments)
}
