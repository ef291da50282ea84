package notify

import (
	"context"
	"fmt"

	slackapi "github.com/slack-go/slack"
)

// slackClient abstracts the Slack API methods we use, enabling test mocks.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

// SlackNotifier posts submission notices to a Slack channel.
type SlackNotifier struct {
	client  slackClient
	channel string
}

// SlackOpts holds parameters for creating a SlackNotifier.
type SlackOpts struct {
	BotToken string // xoxb-... Slack bot token
	Channel  string // channel ID to post to
	// For testing: inject a mock client instead of the real Slack API.
	Client slackClient
}

// NewSlack creates a SlackNotifier.
func NewSlack(opts SlackOpts) (*SlackNotifier, error) {
	if opts.Client == nil && opts.BotToken == "" {
		return nil, fmt.Errorf("notify: slack bot token is required")
	}
	if opts.Channel == "" {
		return nil, fmt.Errorf("notify: slack channel is required")
	}
	client := opts.Client
	if client == nil {
		client = slackapi.New(opts.BotToken)
	}
	return &SlackNotifier{client: client, channel: opts.Channel}, nil
}

// Send posts the notice as an attachment-styled message.
func (s *SlackNotifier) Send(ctx context.Context, n Notice) error {
	attachment := slackapi.Attachment{
		Color: "#36a64f",
		Title: headline(n),
		Text:  detail(n),
	}
	_, _, err := s.client.PostMessageContext(ctx, s.channel,
		slackapi.MsgOptionText(headline(n), false),
		slackapi.MsgOptionAttachments(attachment),
	)
	if err != nil {
		return fmt.Errorf("notify: slack post to %s: %w", s.channel, err)
	}
	return nil
}
