package discord

import (
	"fmt"
	"log/slog"
	"strings"

	"guildwatch/internal/adapters/metrics"
	"guildwatch/internal/config"
	"guildwatch/internal/core/domain"

	"github.com/bwmarrin/discordgo"
)

const timeFormat = "02.01.2006 15:04:05"

type Session interface {
	GuildChannels(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error)
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Notifier posts enemy death alerts and sync reports to the configured
// Discord server.
type Notifier struct {
	session Session
	config  *config.Config
	cache   *channelCache
}

func NewNotifier(session Session, cfg *config.Config) *Notifier {
	return &Notifier{
		session: session,
		config:  cfg,
		cache:   newChannelCache(),
	}
}

// NewSession opens a bot session with the intents the notifier needs.
func NewSession(cfg *config.Config) (*discordgo.Session, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		slog.Error("Failed to create discord session", "error", err)
		return nil, err
	}

	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	return session, nil
}

func (n *Notifier) SendDeathAlert(playerName, world string, death domain.Death, tier string) error {
	timeStr := death.OccurredAt.UTC().Format(timeFormat)

	var b strings.Builder
	if tier == "HIGH" {
		b.WriteString("@here ")
	}
	fmt.Fprintf(&b, "**%s** (%s) died at level %d - %s", playerName, world, death.Level, timeStr)
	if death.Description != "" {
		fmt.Fprintf(&b, "\n%s", death.Description)
	}
	if len(death.Killers) > 0 {
		fmt.Fprintf(&b, "\nKillers: %s", strings.Join(death.Killers, ", "))
	}

	return n.send(n.config.DiscordChannel, b.String())
}

func (n *Notifier) SendSyncReport(world, guildName string, created, updated int) error {
	content := fmt.Sprintf("Roster sync for **%s** (%s): %d new, %d updated", guildName, world, created, updated)
	return n.send(n.config.DiscordChannel, content)
}

func (n *Notifier) send(channelName, message string) error {
	channelID, err := n.resolveChannelID(channelName)
	if err != nil {
		slog.Error("Failed to get channel ID", "channel_name", channelName, "error", err)
		return err
	}

	if _, err := n.session.ChannelMessageSend(channelID, message); err != nil {
		slog.Error("Failed to send message", "channel_id", channelID, "error", err)
		n.cache.Invalidate(channelName)
		metrics.DiscordMessagesSent.WithLabelValues(channelType(channelName), "failure").Inc()
		return err
	}

	metrics.DiscordMessagesSent.WithLabelValues(channelType(channelName), "success").Inc()
	return nil
}

func (n *Notifier) resolveChannelID(channelName string) (string, error) {
	if id, ok := n.cache.Get(channelName); ok {
		return id, nil
	}

	channels, err := n.session.GuildChannels(n.config.DiscordGuildID)
	if err != nil {
		slog.Error("Failed to fetch guild channels", "guild_id", n.config.DiscordGuildID, "error", err)
		return "", err
	}

	for _, ch := range channels {
		if ch.Name == channelName && ch.Type == discordgo.ChannelTypeGuildText {
			n.cache.Set(channelName, ch.ID)
			return ch.ID, nil
		}
	}

	return "", fmt.Errorf("channel %s not found", channelName)
}

func channelType(name string) string {
	switch {
	case strings.Contains(name, "death"):
		return "death"
	case strings.Contains(name, "sync"):
		return "sync"
	default:
		return "other"
	}
}
