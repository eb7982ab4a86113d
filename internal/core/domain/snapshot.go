package domain

import "time"

// RosterSnapshot is a point-in-time view of a guild's members as reported by
// the external game-data source. Never persisted directly.
type RosterSnapshot struct {
	GuildName    string
	World        string
	Members      []RosterMember
	OnlineCount  int
	OfflineCount int
}

type RosterMember struct {
	Name     string
	Level    int
	Vocation string
	Rank     string
	Online   bool
	Deaths   []MemberDeath
}

// MemberDeath is a death as reported by the game-data source, before it is
// recorded as a Death row.
type MemberDeath struct {
	Time    time.Time
	Level   int
	Reason  string
	Killers []string
	PVP     bool
}

// GuildSummary is a search result from the external guild directory.
type GuildSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"`
}
