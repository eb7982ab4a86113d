package discord

import (
	"errors"
	"strings"
	"testing"
	"time"

	"guildwatch/internal/config"
	"guildwatch/internal/core/domain"

	"github.com/bwmarrin/discordgo"
)

type mockSession struct {
	guildChannelsFunc      func(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error)
	channelMessageSendFunc func(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

func (m *mockSession) GuildChannels(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error) {
	if m.guildChannelsFunc != nil {
		return m.guildChannelsFunc(guildID, options...)
	}
	return nil, nil
}

func (m *mockSession) ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if m.channelMessageSendFunc != nil {
		return m.channelMessageSendFunc(channelID, content, options...)
	}
	return &discordgo.Message{}, nil
}

var testConfig = &config.Config{
	DiscordGuildID: "guild-1",
	DiscordChannel: "enemy-deaths",
}

func textChannels() []*discordgo.Channel {
	return []*discordgo.Channel{
		{ID: "chan-1", Name: "enemy-deaths", Type: discordgo.ChannelTypeGuildText},
		{ID: "chan-2", Name: "general", Type: discordgo.ChannelTypeGuildText},
	}
}

func testDeath() domain.Death {
	return domain.Death{
		OccurredAt:  time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC),
		Level:       312,
		Killers:     []string{"Alice", "Bob"},
		Description: "Slain by Alice and Bob",
		Type:        domain.DeathTypePVP,
	}
}

func TestSendDeathAlert(t *testing.T) {
	t.Run("Formats and sends to the death channel", func(t *testing.T) {
		var sentChannelID, sentContent string
		session := &mockSession{
			guildChannelsFunc: func(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error) {
				if guildID != "guild-1" {
					t.Errorf("Expected guild-1, got %s", guildID)
				}
				return textChannels(), nil
			},
			channelMessageSendFunc: func(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
				sentChannelID = channelID
				sentContent = content
				return &discordgo.Message{}, nil
			},
		}
		notifier := NewNotifier(session, testConfig)

		if err := notifier.SendDeathAlert("Evil Knight", "Antica", testDeath(), "MEDIUM"); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if sentChannelID != "chan-1" {
			t.Errorf("Expected chan-1, got %s", sentChannelID)
		}
		if !strings.Contains(sentContent, "Evil Knight") || !strings.Contains(sentContent, "level 312") {
			t.Errorf("Unexpected content: %s", sentContent)
		}
		if !strings.Contains(sentContent, "Alice, Bob") {
			t.Errorf("Expected killer list, got: %s", sentContent)
		}
		if strings.Contains(sentContent, "@here") {
			t.Errorf("Expected no mention below HIGH tier, got: %s", sentContent)
		}
	})

	t.Run("High tier mentions the channel", func(t *testing.T) {
		var sentContent string
		session := &mockSession{
			guildChannelsFunc: func(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error) {
				return textChannels(), nil
			},
			channelMessageSendFunc: func(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
				sentContent = content
				return &discordgo.Message{}, nil
			},
		}
		notifier := NewNotifier(session, testConfig)

		if err := notifier.SendDeathAlert("Evil Knight", "Antica", testDeath(), "HIGH"); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !strings.HasPrefix(sentContent, "@here ") {
			t.Errorf("Expected @here prefix, got: %s", sentContent)
		}
	})

	t.Run("Caches the channel lookup", func(t *testing.T) {
		lookups := 0
		session := &mockSession{
			guildChannelsFunc: func(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error) {
				lookups++
				return textChannels(), nil
			},
		}
		notifier := NewNotifier(session, testConfig)

		for i := 0; i < 3; i++ {
			if err := notifier.SendDeathAlert("Evil Knight", "Antica", testDeath(), "LOW"); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
		}
		if lookups != 1 {
			t.Errorf("Expected 1 channel lookup, got %d", lookups)
		}
	})

	t.Run("Send failure invalidates the cache", func(t *testing.T) {
		lookups := 0
		failNext := true
		session := &mockSession{
			guildChannelsFunc: func(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error) {
				lookups++
				return textChannels(), nil
			},
			channelMessageSendFunc: func(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
				if failNext {
					failNext = false
					return nil, errors.New("unknown channel")
				}
				return &discordgo.Message{}, nil
			},
		}
		notifier := NewNotifier(session, testConfig)

		if err := notifier.SendDeathAlert("Evil Knight", "Antica", testDeath(), "LOW"); err == nil {
			t.Fatal("Expected send error")
		}
		if err := notifier.SendDeathAlert("Evil Knight", "Antica", testDeath(), "LOW"); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if lookups != 2 {
			t.Errorf("Expected cache invalidation to force a second lookup, got %d", lookups)
		}
	})

	t.Run("Channel missing", func(t *testing.T) {
		session := &mockSession{
			guildChannelsFunc: func(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error) {
				return nil, nil
			},
		}
		notifier := NewNotifier(session, testConfig)

		if err := notifier.SendDeathAlert("Evil Knight", "Antica", testDeath(), "LOW"); err == nil {
			t.Fatal("Expected error for missing channel")
		}
	})
}

func TestSendSyncReport(t *testing.T) {
	var sentContent string
	session := &mockSession{
		guildChannelsFunc: func(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error) {
			return textChannels(), nil
		},
		channelMessageSendFunc: func(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
			sentContent = content
			return &discordgo.Message{}, nil
		},
	}
	notifier := NewNotifier(session, testConfig)

	if err := notifier.SendSyncReport("Antica", "Red Rose", 2, 40); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(sentContent, "Red Rose") || !strings.Contains(sentContent, "2 new") {
		t.Errorf("Unexpected content: %s", sentContent)
	}
}
