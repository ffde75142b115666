package slack

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sonarlens/pkg/domain/interfaces"
	"github.com/secmon-lab/sonarlens/pkg/domain/model"
	"github.com/slack-go/slack"
)

// Poster is the subset of the Slack API used for notifications
type Poster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// Notifier posts a short summary of each generated report to a Slack channel
type Notifier struct {
	client    Poster
	channelID string
}

var _ interfaces.Notifier = (*Notifier)(nil)

// New creates a Notifier using a Slack OAuth token
func New(token, channelID string) *Notifier {
	return NewWithClient(slack.New(token), channelID)
}

// NewWithClient creates a Notifier with an existing Slack client
func NewWithClient(client Poster, channelID string) *Notifier {
	return &Notifier{
		client:    client,
		channelID: channelID,
	}
}

// NotifyReport posts the report location and issue counts
func (n *Notifier) NotifyReport(ctx context.Context, report *model.Report, location string, agg *model.Aggregation) error {
	if report == nil {
		return goerr.New("report is nil")
	}

	text := BuildReportMessage(report, location, agg)
	channel, timestamp, err := n.client.PostMessageContext(ctx, n.channelID,
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post message to Slack",
			goerr.V("channel", n.channelID),
			goerr.V("reportID", report.ID))
	}

	ctxlog.From(ctx).Info("Report notification posted",
		"channel", channel,
		"timestamp", timestamp,
		"reportID", report.ID,
	)
	return nil
}

// BuildReportMessage renders the notification text. Counts are listed in first-occurrence order.
func BuildReportMessage(report *model.Report, location string, agg *model.Aggregation) string {
	var b strings.Builder
	fmt.Fprintf(&b, ":memo: Refactoring report generated: `%s`\n", location)
	if report.Model != "" {
		fmt.Fprintf(&b, "Model: %s\n", report.Model)
	}
	if agg == nil {
		return b.String()
	}

	fmt.Fprintf(&b, "Issues: %d across %d files\n", agg.Total(), len(agg.ByFile))
	if len(agg.SeverityOrder) > 0 {
		b.WriteString("By severity: " + formatCounts(agg.SeverityOrder, agg.BySeverity) + "\n")
	}
	if len(agg.TypeOrder) > 0 {
		b.WriteString("By type: " + formatCounts(agg.TypeOrder, agg.ByType) + "\n")
	}
	if len(agg.FileOrder) > 0 {
		b.WriteString("Files: " + formatFiles(agg.FileOrder, agg.ByFile) + "\n")
	}
	return b.String()
}

// maxListedFiles caps the file list in a notification
const maxListedFiles = 5

func formatFiles(order []string, byFile map[string][]model.FileIssue) string {
	parts := make([]string, 0, maxListedFiles+1)
	for i, file := range order {
		if i == maxListedFiles {
			parts = append(parts, fmt.Sprintf("and %d more", len(order)-maxListedFiles))
			break
		}
		parts = append(parts, fmt.Sprintf("%s (%d)", file, len(byFile[file])))
	}
	return strings.Join(parts, ", ")
}

func formatCounts(order []string, counts map[string]int) string {
	parts := make([]string, 0, len(order))
	for _, key := range order {
		parts = append(parts, fmt.Sprintf("%s=%d", key, counts[key]))
	}
	return strings.Join(parts, ", ")
}
