package repository

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sonarlens/pkg/domain/interfaces"
	"github.com/secmon-lab/sonarlens/pkg/domain/model"
)

// FileSystem implements Repository on top of a local analysis directory and report directory
type FileSystem struct {
	analysisDir string
	outputDir   string
}

var _ interfaces.Repository = (*FileSystem)(nil)

// NewFileSystem creates a repository reading scanner output from analysisDir
// and writing reports into outputDir
func NewFileSystem(analysisDir, outputDir string) *FileSystem {
	return &FileSystem{
		analysisDir: analysisDir,
		outputDir:   outputDir,
	}
}

// LoadAnalysis reads issues.json, metrics.json and hotspots.json. Missing files are skipped.
func (f *FileSystem) LoadAnalysis(ctx context.Context) (*model.AnalysisData, error) {
	logger := ctxlog.From(ctx)
	data := &model.AnalysisData{}

	raw, err := f.readOptional(model.IssuesFileName)
	if err != nil {
		return nil, err
	}
	if raw != nil {
		issues, err := model.ParseIssueReport(raw)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid issues file",
				goerr.V("path", f.path(model.IssuesFileName)))
		}
		data.Issues = issues
		logger.Debug("Loaded issues", "path", f.path(model.IssuesFileName), "count", len(issues.Issues))
	}

	if data.Metrics, err = f.readPassThrough(model.MetricsFileName); err != nil {
		return nil, err
	}
	if data.Hotspots, err = f.readPassThrough(model.HotspotsFileName); err != nil {
		return nil, err
	}

	return data, nil
}

// SaveReport writes the report content verbatim to <outputDir>/<report.FileName()>,
// creating the output directory if needed
func (f *FileSystem) SaveReport(ctx context.Context, report *model.Report) (string, error) {
	if report == nil {
		return "", goerr.New("report is nil", goerr.T(model.ErrTagWriteReport))
	}

	if err := os.MkdirAll(f.outputDir, 0o755); err != nil {
		return "", goerr.Wrap(err, "failed to create output directory",
			goerr.T(model.ErrTagWriteReport),
			goerr.V("dir", f.outputDir))
	}

	path := filepath.Join(f.outputDir, report.FileName())
	if err := os.WriteFile(path, []byte(report.Content), 0o644); err != nil {
		return "", goerr.Wrap(err, "failed to write report",
			goerr.T(model.ErrTagWriteReport),
			goerr.V("path", path))
	}

	ctxlog.From(ctx).Debug("Report written", "path", path, "reportID", report.ID)
	return path, nil
}

func (f *FileSystem) path(name string) string {
	return filepath.Join(f.analysisDir, name)
}

// readOptional returns nil without error when the file does not exist
func (f *FileSystem) readOptional(name string) ([]byte, error) {
	path := f.path(name)
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to read analysis file",
			goerr.V("path", path))
	}
	return raw, nil
}

func (f *FileSystem) readPassThrough(name string) (json.RawMessage, error) {
	raw, err := f.readOptional(name)
	if err != nil || raw == nil {
		return nil, err
	}
	if !json.Valid(raw) {
		return nil, goerr.New("analysis file is not valid JSON",
			goerr.T(model.ErrTagInvalidAnalysis),
			goerr.V("path", f.path(name)))
	}
	return json.RawMessage(raw), nil
}
