package cli

import (
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cminer/internal/store"
)

// seedDatabase mines sampleTrace into a fresh database under runID.
func seedDatabase(t *testing.T, runID string) string {
	t.Helper()
	trace := writeFile(t, "trace.txt", sampleTrace)
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	_, err := executeMineWithRunID(t, runID, trace, "--window", "4", "--db", dbPath)
	require.NoError(t, err)
	return dbPath
}

func TestHistory_Text(t *testing.T) {
	dbPath := seedDatabase(t, "run-1")

	stdout, _, err := executeCommand(t, "history", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "SEQ")
	assert.Contains(t, stdout, "run-1")
	assert.Contains(t, stdout, "trace.txt")
}

func TestHistory_JSON(t *testing.T) {
	dbPath := seedDatabase(t, "run-1")

	stdout, _, err := executeCommand(t, "history", "--db", dbPath, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string             `json:"status"`
		Data   []store.RunSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "run-1", resp.Data[0].ID)
	assert.Equal(t, int64(1), resp.Data[0].Seq)
	assert.Equal(t, 8, resp.Data[0].Rules)
	assert.Equal(t, 6, resp.Data[0].Closed)
}

func TestHistory_MissingDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nope.db")

	_, _, err := executeCommand(t, "history", "--db", dbPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.NoFileExists(t, dbPath, "history must not create a database")
}

func TestHistory_RequiresDBFlag(t *testing.T) {
	_, _, err := executeCommand(t, "history")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "db" not set`)
}

func TestShow_Text(t *testing.T) {
	dbPath := seedDatabase(t, "run-1")

	stdout, _, err := executeCommand(t, "show", "--db", dbPath, "--top", "2", "--verify", "run-1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Run run-1 (seq 1)")
	assert.Contains(t, stdout, "window 4, max gap 2, min support 2, min confidence 0.500000")
	assert.Contains(t, stdout, "verified")
	assert.Contains(t, stdout, "Rules (2 of 8):")
	assert.Contains(t, stdout, "A->C")
	assert.NotContains(t, stdout, "AB->C")
}

func TestShow_JSON(t *testing.T) {
	dbPath := seedDatabase(t, "run-1")

	stdout, _, err := executeCommand(t, "show", "--db", dbPath, "--format", "json", "run-1")
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   ShowResult `json:"data"`
		RunID  string     `json:"run_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "run-1", resp.RunID)
	assert.Nil(t, resp.Data.Verified)
	assert.Equal(t, 8, resp.Data.TotalRules)
	require.Len(t, resp.Data.Rules, 8)
	assert.Equal(t, "A->C", resp.Data.Rules[0].Rule)
	assert.Equal(t, "B->C", resp.Data.Rules[1].Rule)
}

func TestShow_RunNotFound(t *testing.T) {
	dbPath := seedDatabase(t, "run-1")

	stdout, _, err := executeCommand(t, "show", "--db", dbPath, "--format", "json", "run-2")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, ErrCodeRunNotFound)
}

func TestShow_VerifyDetectsTampering(t *testing.T) {
	dbPath := seedDatabase(t, "run-1")

	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	_, err = db.Exec("UPDATE rules SET support = 99 WHERE run_id = 'run-1' AND rule_key = 'A->C'")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	stdout, _, err := executeCommand(t, "show", "--db", dbPath, "--verify", "run-1")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "result hash mismatch")
}
