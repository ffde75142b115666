package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/sonarlens/pkg/cli"
	"github.com/secmon-lab/sonarlens/pkg/domain/model"
	"github.com/secmon-lab/sonarlens/pkg/service/llm"
)

const sampleIssues = `{"issues":[{"type":"BUG","severity":"MAJOR","component":"a.py","message":"null deref"},{"type":"BUG","severity":"MINOR","component":"b.py","message":"unused var"}]}`

func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv(cli.EnvFileVar, filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("ANTHROPIC_API_KEY", "")
}

func writeAnalysis(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		gt.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644)).Required()
	}
	return dir
}

func TestReportCommand(t *testing.T) {
	t.Run("missing credential prints fixed message and writes nothing", func(t *testing.T) {
		isolateEnv(t)
		analysisDir := writeAnalysis(t, map[string]string{model.IssuesFileName: sampleIssues})
		outputDir := filepath.Join(t.TempDir(), "reports")

		var stdout bytes.Buffer
		err := cli.RunWithWriters(context.Background(), []string{
			"sonarlens", "report",
			"--analysis-dir", analysisDir,
			"--output-dir", outputDir,
		}, &stdout, io.Discard)
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagMissingCredential))
		gt.True(t, strings.Contains(stdout.String(), "ANTHROPIC_API_KEY not found"))

		_, statErr := os.Stat(outputDir)
		gt.True(t, os.IsNotExist(statErr))
	})

	t.Run("API error prints response and writes nothing", func(t *testing.T) {
		isolateEnv(t)
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
		}))
		defer srv.Close()
		t.Setenv("ANTHROPIC_API_KEY", "sk-invalid")
		t.Setenv("ANTHROPIC_BASE_URL", srv.URL)

		analysisDir := writeAnalysis(t, map[string]string{model.IssuesFileName: sampleIssues})
		outputDir := filepath.Join(t.TempDir(), "reports")

		var stdout bytes.Buffer
		err := cli.RunWithWriters(context.Background(), []string{
			"sonarlens", "report",
			"--analysis-dir", analysisDir,
			"--output-dir", outputDir,
		}, &stdout, io.Discard)
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, llm.ErrTagLLMRequest))

		out := stdout.String()
		gt.True(t, strings.Contains(out, "Error generating report:"))
		gt.True(t, strings.Contains(out, "401"))
		gt.True(t, strings.Contains(out, "API Response: HTTP/1.1 401 Unauthorized"))
		gt.False(t, strings.Contains(out, "Analysis complete!"))
		gt.Equal(t, hits.Load(), int32(1))

		_, statErr := os.Stat(outputDir)
		gt.True(t, os.IsNotExist(statErr))
	})

	t.Run("half-configured slack is rejected", func(t *testing.T) {
		isolateEnv(t)

		var stdout bytes.Buffer
		err := cli.RunWithWriters(context.Background(), []string{
			"sonarlens", "report",
			"--analysis-dir", t.TempDir(),
			"--slack-channel", "C123",
		}, &stdout, io.Discard)
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagInvalidConfig))
	})

	t.Run("missing report config file is rejected", func(t *testing.T) {
		isolateEnv(t)

		var stdout bytes.Buffer
		err := cli.RunWithWriters(context.Background(), []string{
			"sonarlens", "report",
			"--report-config", filepath.Join(t.TempDir(), "nope.yaml"),
		}, &stdout, io.Discard)
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagInvalidConfig))
	})
}

func TestAggregateCommand(t *testing.T) {
	t.Run("prints aggregation JSON", func(t *testing.T) {
		isolateEnv(t)
		analysisDir := writeAnalysis(t, map[string]string{model.IssuesFileName: sampleIssues})

		var stdout bytes.Buffer
		err := cli.RunWithWriters(context.Background(), []string{
			"sonarlens", "aggregate", "--analysis-dir", analysisDir,
		}, &stdout, io.Discard)
		gt.NoError(t, err).Required()

		var out struct {
			ByType     map[string]int                 `json:"by_type"`
			BySeverity map[string]int                 `json:"by_severity"`
			ByFile     map[string][]map[string]string `json:"by_file"`
		}
		gt.NoError(t, json.Unmarshal(stdout.Bytes(), &out)).Required()
		gt.Equal(t, out.ByType, map[string]int{"BUG": 2})
		gt.Equal(t, out.BySeverity, map[string]int{"MAJOR": 1, "MINOR": 1})
		gt.Equal(t, out.ByFile["a.py"], []map[string]string{
			{"type": "BUG", "severity": "MAJOR", "message": "null deref"},
		})
	})

	t.Run("metrics only prints empty mappings", func(t *testing.T) {
		isolateEnv(t)
		analysisDir := writeAnalysis(t, map[string]string{model.MetricsFileName: `{"ncloc":10}`})

		var stdout bytes.Buffer
		err := cli.RunWithWriters(context.Background(), []string{
			"sonarlens", "aggregate", "--analysis-dir", analysisDir,
		}, &stdout, io.Discard)
		gt.NoError(t, err).Required()
		gt.True(t, strings.Contains(stdout.String(), `"by_type": {}`))
		gt.True(t, strings.Contains(stdout.String(), `"by_file": {}`))
	})

	t.Run("empty directory reports missing data", func(t *testing.T) {
		isolateEnv(t)

		var stdout bytes.Buffer
		err := cli.RunWithWriters(context.Background(), []string{
			"sonarlens", "aggregate", "--analysis-dir", t.TempDir(),
		}, &stdout, io.Discard)
		gt.Error(t, err)
		gt.True(t, strings.Contains(stdout.String(), "Error: No analysis data found"))
	})

	t.Run("analysis directory from env file", func(t *testing.T) {
		analysisDir := writeAnalysis(t, map[string]string{model.IssuesFileName: sampleIssues})
		envFile := filepath.Join(t.TempDir(), "test.env")
		gt.NoError(t, os.WriteFile(envFile, []byte("SONARLENS_ANALYSIS_DIR="+analysisDir+"\n"), 0o644)).Required()
		t.Setenv(cli.EnvFileVar, envFile)
		t.Cleanup(func() { _ = os.Unsetenv("SONARLENS_ANALYSIS_DIR") })

		var stdout bytes.Buffer
		err := cli.RunWithWriters(context.Background(), []string{"sonarlens", "aggregate"}, &stdout, io.Discard)
		gt.NoError(t, err).Required()
		gt.True(t, strings.Contains(stdout.String(), `"BUG": 2`))
	})
}

func TestInvalidLogLevel(t *testing.T) {
	isolateEnv(t)

	err := cli.RunWithWriters(context.Background(), []string{
		"sonarlens", "--log-level", "loud", "aggregate",
	}, io.Discard, io.Discard)
	gt.Error(t, err)
}
