package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/slack-go/slack"
)

// Attachment colors for the admin channel.
const (
	colorInfo  = "good"
	colorWarn  = "warning"
	colorError = "danger"
)

// messagePoster is the slice of the Slack client the notifier needs.
type messagePoster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// Notifier posts run notices to a configured Slack admin channel.
// When no channel is configured it falls back to the standard logger.
type Notifier struct {
	client    messagePoster
	channelID string
}

// NewNotifier creates a notifier posting to channelID. An empty
// channelID disables channel posting.
func NewNotifier(client messagePoster, channelID string) *Notifier {
	if channelID == "" {
		log.Println("Warning: bot.adminChannelId is not set. Run notices will only go to the log.")
	}
	return &Notifier{client: client, channelID: channelID}
}

// Notify sends a leveled notice to the admin channel.
func (n *Notifier) Notify(ctx context.Context, level, module, operation, details string) {
	if n == nil || n.client == nil || n.channelID == "" {
		log.Printf("[%s] Module: %s, Operation: %s, Details: %s", level, module, operation, details)
		return
	}

	var color string
	switch level {
	case "INFO":
		color = colorInfo
	case "WARN":
		color = colorWarn
	case "ERROR":
		color = colorError
	default:
		color = colorInfo
	}

	attachment := slack.Attachment{
		Title: fmt.Sprintf("Log Level: %s", level),
		Color: color,
		Fields: []slack.AttachmentField{
			{Title: "Module", Value: module, Short: true},
			{Title: "Operation", Value: operation, Short: true},
			{Title: "Details", Value: details},
		},
		Footer: time.Now().Format(time.RFC3339),
	}

	_, _, err := n.client.PostMessageContext(ctx, n.channelID, slack.MsgOptionAttachments(attachment))
	if err != nil {
		log.Printf("Error sending notice to admin channel: %v", err)
	}
}

// Info sends an informational notice.
func (n *Notifier) Info(ctx context.Context, module, operation, details string) {
	n.Notify(ctx, "INFO", module, operation, details)
}

// Warn sends a warning notice.
func (n *Notifier) Warn(ctx context.Context, module, operation, details string) {
	n.Notify(ctx, "WARN", module, operation, details)
}

// Error sends an error notice.
func (n *Notifier) Error(ctx context.Context, module, operation, details string) {
	n.Notify(ctx, "ERROR", module, operation, details)
}
