package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ethanolivertroy/crosswalk/internal/config"
	"github.com/ethanolivertroy/crosswalk/internal/model"
	"github.com/ethanolivertroy/crosswalk/internal/report"
	"github.com/ethanolivertroy/crosswalk/internal/store"
)

// run executes the CLI in an empty working directory so no config file
// is picked up
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "crosswalk v"+version+"\n", out)
}

func TestCorrelateJSON(t *testing.T) {
	out, err := run(t, "correlate", "-o", "json")
	require.NoError(t, err)

	var rows []report.Row
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.NotEmpty(t, rows)
	for _, r := range rows {
		assert.True(t, strings.HasPrefix(r.MasterID, "ML-"), r.MasterID)
		assert.NotEqual(t, model.FrameworkMasterList, r.TargetFramework)
		assert.GreaterOrEqual(t, r.Confidence, 0)
		assert.LessOrEqual(t, r.Confidence, 100)
	}
}

func TestCorrelateTable(t *testing.T) {
	out, err := run(t, "correlate")
	require.NoError(t, err)
	assert.Contains(t, out, "MASTER")
	assert.Contains(t, out, "CONFIDENCE")
	assert.Contains(t, out, "ML-001")
}

func TestCorrelateMaster(t *testing.T) {
	out, err := run(t, "correlate", "--master", "ml-001", "-o", "json")
	require.NoError(t, err)

	var mr masterReport
	require.NoError(t, json.Unmarshal([]byte(out), &mr))
	assert.Equal(t, "ML-001", mr.Master.ID)
	require.NotNil(t, mr.Best)
	require.NotEmpty(t, mr.Correlations)
	assert.Equal(t, mr.Best.TargetID, mr.Correlations[0].TargetID)

	text, err := run(t, "correlate", "--master", "ML-001")
	require.NoError(t, err)
	assert.Contains(t, text, "Classification:")
	assert.Contains(t, text, "Best match:")

	_, err = run(t, "correlate", "--master", "ML-999")
	assert.ErrorContains(t, err, "ML-999")
}

func TestCoverage(t *testing.T) {
	out, err := run(t, "coverage", "-o", "json")
	require.NoError(t, err)

	var m report.Matrix
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	assert.Len(t, m.Frameworks, len(model.CanonicalFrameworks))
	require.NotEmpty(t, m.Domains)
	require.Len(t, m.Cells, len(m.Domains))
	for _, row := range m.Cells {
		assert.Len(t, row, len(m.Frameworks))
	}

	table, err := run(t, "coverage")
	require.NoError(t, err)
	assert.Contains(t, table, "Overall")
	assert.Contains(t, table, "masters:")
}

func TestGaps(t *testing.T) {
	out, err := run(t, "gaps", "--min-severity", "high", "-o", "json")
	require.NoError(t, err)

	var rows []gapRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	for _, r := range rows {
		assert.Contains(t, []string{"High", "Critical"}, r.Severity, r.ID)
	}

	_, err = run(t, "gaps", "--min-severity", "severe")
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	out, err := run(t, "export", "--format", "csv", "--out", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported Correlations")

	files, err := filepath.Glob(filepath.Join(dir, "crosswalk_correlations_*.csv"))
	require.NoError(t, err)
	assert.Len(t, files, 1)

	out, err = run(t, "export", "--format", "md", "--kind", "matrix", "--out", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "domains")

	_, err = run(t, "export", "--format", "pdf", "--out", dir)
	assert.ErrorIs(t, err, report.ErrUnknownFormat)
}

func TestInitThenCorrelateFromDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "records")

	out, err := run(t, "init", "--data-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "master-list.yaml")

	_, err = run(t, "init", "--data-dir", dir)
	assert.ErrorContains(t, err, "--force")

	_, err = run(t, "init", "--data-dir", dir, "--format", "json", "--force")
	require.NoError(t, err)

	builtin, err := run(t, "correlate", "-o", "json")
	require.NoError(t, err)
	fromDir, err := run(t, "correlate", "--data-dir", dir, "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, builtin, fromDir)
}

func TestInitRequiresDir(t *testing.T) {
	t.Setenv("CROSSWALK_DATA_DIR", "")
	_, err := run(t, "init")
	assert.ErrorContains(t, err, "--data-dir")
}

func TestUnsupportedOutput(t *testing.T) {
	_, err := run(t, "correlate", "-o", "xml")
	assert.ErrorContains(t, err, "unsupported output format")
}

func TestAskRequiresProvider(t *testing.T) {
	t.Setenv("CROSSWALK_LLM_PROVIDER", "gemini")
	t.Setenv("CROSSWALK_LLM_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	_, err := run(t, "ask", "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestRules(t *testing.T) {
	table, err := run(t, "rules")
	require.NoError(t, err)
	assert.Contains(t, table, "Cross-reference: 95")
	assert.Contains(t, table, string(model.FrameworkNIST))

	out, err := run(t, "rules", "-o", "json")
	require.NoError(t, err)

	var rr rulesReport
	require.NoError(t, json.Unmarshal([]byte(out), &rr))
	assert.Equal(t, 95, rr.Weights.CrossReference)
	require.Len(t, rr.Profiles, len(model.CanonicalFrameworks))
	for _, p := range rr.Profiles {
		assert.Positive(t, p.Partial, p.Framework)
	}
}

func TestReloadRefetchesRemoteBundle(t *testing.T) {
	var hits int32
	bundle := store.Bundle{Frameworks: map[string][]model.ControlRecord{
		"Master List": {{ID: "ML-001", Domain: "Access - AD", Title: "Review AD accounts"}},
		"NIST":        {{ID: "AC-2", Domain: "Access Control", Title: "Account Management"}},
	}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(bundle)
	}))
	t.Cleanup(srv.Close)

	t.Chdir(t.TempDir())
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Data.URL = srv.URL
	c := &cli{cfg: cfg, logger: zap.NewNop()}
	ctx := context.Background()

	first, err := c.correlate(ctx)
	require.NoError(t, err)
	require.Len(t, first.Masters, 1)

	// the store is kept between runs and serves its cached bundle
	_, err = c.correlate(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))

	_, err = c.reload(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"a longer sentence", 10, "a longe..."},
		{"abcdef", 2, "ab"},
		{"déjà vu encore", 7, "déjà..."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, truncate(tt.in, tt.n), tt.in)
	}
}
