package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tradecycle/clearing"
	"github.com/katalvlaran/tradecycle/cycle"
	"github.com/katalvlaran/tradecycle/internal/config"
	"github.com/katalvlaran/tradecycle/internal/ledger"
	"github.com/katalvlaran/tradecycle/prefio"
)

// execute runs the full command tree with a clean environment.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	for _, k := range []string{config.EnvConfig, config.EnvStrategy, config.EnvLedger, config.EnvFormat} {
		t.Setenv(k, "")
	}

	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return out.String(), errOut.String(), err
}

func golden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestClear_TextGolden(t *testing.T) {
	for _, strategy := range []string{"bounded", "colored"} {
		out, _, err := execute(t, "clear", "--strategy", strategy, "testdata/six.yaml")
		require.NoError(t, err)
		golden(t).Assert(t, "clear_six", []byte(out))
	}

	out, _, err := execute(t, "clear", "testdata/named.json5")
	require.NoError(t, err)
	golden(t).Assert(t, "clear_named", []byte(out))
}

func TestClear_JSON(t *testing.T) {
	out, _, err := execute(t, "clear", "--format", "json", "--batch", "testdata/six.yaml")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   ClearResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "bounded", resp.Data.Strategy)
	assert.True(t, resp.Data.Batch)
	assert.Equal(t, 6, resp.Data.Agents)
	assert.Empty(t, resp.Data.RunID)
	assert.Equal(t, []int{1, 4, 5, 3, 0, 2}, clearing.Allocation(resp.Data.Trades, 6))
}

func TestClear_Verbose(t *testing.T) {
	_, stderr, err := execute(t, "clear", "--verbose", "testdata/six.yaml")
	require.NoError(t, err)
	assert.Contains(t, stderr, "walk step")
	assert.Contains(t, stderr, "walk abandoned")
	assert.Contains(t, stderr, "cycle committed")
}

func TestClear_MalformedInput(t *testing.T) {
	_, _, err := execute(t, "clear", "testdata/tie.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "duplicate item")

	_, _, err = execute(t, "clear", "testdata/missing.yaml")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestClear_BadFlags(t *testing.T) {
	_, _, err := execute(t, "clear", "--strategy", "floyd", "testdata/six.yaml")
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, _, err = execute(t, "--format", "xml", "clear", "testdata/six.yaml")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCycle_Golden(t *testing.T) {
	out, _, err := execute(t, "cycle", "testdata/six.yaml")
	require.NoError(t, err)
	golden(t).Assert(t, "cycle_six", []byte(out))

	out, _, err = execute(t, "cycle", "--all", "--strategy", "colored", "testdata/named.json5")
	require.NoError(t, err)
	golden(t).Assert(t, "cycle_named_all", []byte(out))
}

func TestValidate(t *testing.T) {
	out, _, err := execute(t, "validate", "testdata/named.json5")
	require.NoError(t, err)
	assert.Equal(t, "testdata/named.json5: ok, 3 agents\n", out)

	_, _, err = execute(t, "validate", "testdata/tie.yaml")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestLedgerFlow(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")

	_, stderr, err := execute(t, "clear", "--ledger", db, "testdata/six.yaml")
	require.NoError(t, err)
	assert.Contains(t, stderr, "run recorded")

	out, _, err := execute(t, "history", "--ledger", db, "--format", "json")
	require.NoError(t, err)
	var resp struct {
		Data []ledger.RunSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, 6, resp.Data[0].TradeCount)
	assert.Equal(t, ledger.StatusCleared, resp.Data[0].Status)

	out, _, err = execute(t, "show", "--ledger", db, resp.Data[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, "status:   cleared")
	assert.Contains(t, out, "  4 gets 0\n")

	out, _, err = execute(t, "history", "--ledger", db)
	require.NoError(t, err)
	assert.Contains(t, out, resp.Data[0].ID)
	assert.Contains(t, out, "testdata/six.yaml")

	_, _, err = execute(t, "show", "--ledger", db, "missing")
	assert.ErrorIs(t, err, ledger.ErrRunNotFound)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestClearMarket_FailedRunKeepsCommittedTrades(t *testing.T) {
	// agent 1 trades with itself, then agent 2 points past the end of the market
	m := &prefio.Market{Preferences: [][]int{{1}, {1}, {5}}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	for _, st := range []cycle.Strategy{cycle.BoundedWalk, cycle.Colored} {
		run, err := clearMarket(m, st, false, logger, true)
		require.ErrorIs(t, err, cycle.ErrCycleNotFound, st.String())
		assert.Equal(t, ledger.StatusFailed, run.Status)
		assert.Equal(t, err.Error(), run.Error)
		assert.Equal(t, []clearing.Trade{{Giver: 1, Receives: 1}}, run.Trades, st.String())
	}

	db := filepath.Join(t.TempDir(), "runs.db")
	run, _ := clearMarket(m, cycle.BoundedWalk, false, logger, false)
	run.Source = "dangling"
	require.NoError(t, record(NewRootCommand(), db, run))

	out, _, err := execute(t, "show", "--ledger", db, run.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "status:   failed")
	assert.Contains(t, out, "  1 gets 1\n")
}

func TestHistory_RequiresLedger(t *testing.T) {
	_, _, err := execute(t, "history")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "runs.db")
	cfgPath := filepath.Join(dir, "ttc.json5")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{strategy: "colored", format: "json", ledger: "`+filepath.ToSlash(db)+`"}`), 0o644))

	out, _, err := execute(t, "--config", cfgPath, "clear", "testdata/six.yaml")
	require.NoError(t, err)
	var resp struct {
		Data ClearResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "colored", resp.Data.Strategy)
	assert.NotEmpty(t, resp.Data.RunID)

	// an explicit flag beats the config file
	out, _, err = execute(t, "--config", cfgPath, "--format", "text", "clear", "--strategy", "bounded", "testdata/six.yaml")
	require.NoError(t, err)
	golden(t).Assert(t, "clear_six", []byte(out))
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(assert.AnError))
	err := WrapExitError(ExitCommandError, "boom", assert.AnError)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, "boom: "+assert.AnError.Error(), err.Error())
	assert.Equal(t, "boom", WrapExitError(ExitFailure, "boom", nil).Error())
}
