package config

import (
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sonarlens/pkg/domain/model"
	"github.com/secmon-lab/sonarlens/pkg/repository"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Analysis holds input and output locations
type Analysis struct {
	Dir          string
	OutputDir    string
	ReportConfig string
}

// Flags returns CLI flags for Analysis configuration
func (a *Analysis) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "analysis-dir",
			Aliases:     []string{"i"},
			Usage:       "Directory containing issues.json, metrics.json and hotspots.json",
			Category:    "Analysis",
			Value:       ".sonar-analysis",
			Sources:     cli.EnvVars("SONARLENS_ANALYSIS_DIR"),
			Destination: &a.Dir,
		},
		&cli.StringFlag{
			Name:        "output-dir",
			Aliases:     []string{"o"},
			Usage:       "Directory where refactoring reports are written",
			Category:    "Analysis",
			Value:       "refactoring-reports",
			Sources:     cli.EnvVars("SONARLENS_OUTPUT_DIR"),
			Destination: &a.OutputDir,
		},
		&cli.StringFlag{
			Name:        "report-config",
			Usage:       "YAML file overriding the requested report sections",
			Category:    "Analysis",
			Sources:     cli.EnvVars("SONARLENS_REPORT_CONFIG"),
			Destination: &a.ReportConfig,
		},
	}
}

// Configure creates the filesystem repository
func (a *Analysis) Configure() *repository.FileSystem {
	return repository.NewFileSystem(a.Dir, a.OutputDir)
}

// ReportSpec returns the report spec from --report-config, or the default one
func (a *Analysis) ReportSpec() (*model.ReportSpec, error) {
	if a.ReportConfig == "" {
		return model.DefaultReportSpec(), nil
	}
	return LoadReportSpecFromFile(a.ReportConfig)
}

// LogValue returns structured log value
func (a Analysis) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("dir", a.Dir),
		slog.String("output_dir", a.OutputDir),
		slog.String("report_config", a.ReportConfig),
	)
}

// LoadReportSpecFromFile loads report sections from a YAML file.
// An omitted format falls back to the default formatting instruction.
func LoadReportSpecFromFile(path string) (*model.ReportSpec, error) {
	if path == "" {
		return nil, goerr.New("report configuration file path is required",
			goerr.T(model.ErrTagInvalidConfig))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(err, "report configuration file not found",
				goerr.T(model.ErrTagInvalidConfig),
				goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to read report configuration file",
			goerr.V("path", path))
	}

	var spec model.ReportSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, goerr.Wrap(err, "failed to parse YAML report configuration",
			goerr.T(model.ErrTagInvalidConfig),
			goerr.V("path", path))
	}
	if spec.Format == "" {
		spec.Format = model.DefaultReportSpec().Format
	}

	if err := spec.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid report configuration",
			goerr.V("path", path))
	}

	return &spec, nil
}
