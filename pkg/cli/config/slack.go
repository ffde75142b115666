package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sonarlens/pkg/domain/interfaces"
	"github.com/secmon-lab/sonarlens/pkg/domain/model"
	slackSvc "github.com/secmon-lab/sonarlens/pkg/service/slack"
	"github.com/urfave/cli/v3"
)

// Slack holds Slack notification configuration
type Slack struct {
	OAuthToken string
	ChannelID  string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-oauth-token",
			Usage:       "Slack OAuth token used to post report notifications",
			Category:    "Slack",
			Sources:     cli.EnvVars("SONARLENS_SLACK_OAUTH_TOKEN"),
			Destination: &s.OAuthToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel ID to notify when a report is written",
			Category:    "Slack",
			Sources:     cli.EnvVars("SONARLENS_SLACK_CHANNEL"),
			Destination: &s.ChannelID,
		},
	}
}

// ConfigureOptional creates a notifier if Slack is configured, returns nil if not
func (s *Slack) ConfigureOptional(logger *slog.Logger) interfaces.Notifier {
	if !s.IsConfigured() {
		logger.Debug("Slack not configured, report notification disabled")
		return nil
	}

	logger.Info("Configuring Slack notification", slog.String("channel", s.ChannelID))
	return slackSvc.New(s.OAuthToken, s.ChannelID)
}

// IsConfigured checks if both token and channel are set
func (s *Slack) IsConfigured() bool {
	return s.OAuthToken != "" && s.ChannelID != ""
}

// Validate rejects a half-configured Slack setup
func (s *Slack) Validate() error {
	if (s.OAuthToken == "") != (s.ChannelID == "") {
		return goerr.New("both slack-oauth-token and slack-channel are required for notification",
			goerr.T(model.ErrTagInvalidConfig))
	}
	return nil
}

// LogValue returns structured log value
func (s Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_oauth_token", s.OAuthToken != ""),
		slog.String("channel", s.ChannelID),
	)
}
