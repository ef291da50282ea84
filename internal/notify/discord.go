package notify

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// discordSession abstracts the discordgo methods we use, enabling test mocks.
type discordSession interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordNotifier posts submission notices to a Discord channel. Messages
// go over the REST API; no gateway connection is opened.
type DiscordNotifier struct {
	sess    discordSession
	channel string
}

// DiscordOpts holds parameters for creating a DiscordNotifier.
type DiscordOpts struct {
	BotToken string
	Channel  string // channel ID to post to
	// For testing: inject a mock session instead of the real Discord API.
	Session discordSession
}

// NewDiscord creates a DiscordNotifier.
func NewDiscord(opts DiscordOpts) (*DiscordNotifier, error) {
	if opts.Session == nil && opts.BotToken == "" {
		return nil, fmt.Errorf("notify: discord bot token is required")
	}
	if opts.Channel == "" {
		return nil, fmt.Errorf("notify: discord channel is required")
	}
	sess := opts.Session
	if sess == nil {
		s, err := discordgo.New("Bot " + opts.BotToken)
		if err != nil {
			return nil, fmt.Errorf("notify: create discord session: %w", err)
		}
		sess = s
	}
	return &DiscordNotifier{sess: sess, channel: opts.Channel}, nil
}

// Send posts the notice as an embed.
func (d *DiscordNotifier) Send(ctx context.Context, n Notice) error {
	embed := &discordgo.MessageEmbed{
		Title:       headline(n),
		Description: detail(n),
		Color:       0x36a64f,
	}
	if _, err := d.sess.ChannelMessageSendEmbed(d.channel, embed, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("notify: discord post to %s: %w", d.channel, err)
	}
	return nil
}
