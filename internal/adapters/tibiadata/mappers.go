package tibiadata

import (
	"strings"

	"guildwatch/internal/adapters/tibiadata/api"
	"guildwatch/internal/core/domain"
)

// vocationBases maps promoted vocation names to their base class. Unmapped
// names pass through unchanged.
var vocationBases = map[string]string{
	"Elite Knight":    "Knight",
	"Royal Paladin":   "Paladin",
	"Elder Druid":     "Druid",
	"Master Sorcerer": "Sorcerer",
	"Exalted Monk":    "Monk",
}

func NormalizeVocation(vocation string) string {
	if base, ok := vocationBases[vocation]; ok {
		return base
	}
	return vocation
}

func (a *Adapter) mapRoster(guild *api.GuildInfo) *domain.RosterSnapshot {
	snapshot := &domain.RosterSnapshot{
		GuildName:    guild.Name,
		World:        guild.World,
		Members:      make([]domain.RosterMember, 0, len(guild.Members)),
		OnlineCount:  guild.PlayersOnline,
		OfflineCount: guild.PlayersOffline,
	}

	for _, m := range guild.Members {
		snapshot.Members = append(snapshot.Members, domain.RosterMember{
			Name:     m.Name,
			Level:    m.Level,
			Vocation: NormalizeVocation(m.Vocation),
			Rank:     m.Rank,
			Online:   strings.EqualFold(m.Status, "online"),
		})
	}

	return snapshot
}

func mapDeaths(deaths []api.Death) []domain.MemberDeath {
	var out []domain.MemberDeath
	for _, d := range deaths {
		out = append(out, domain.MemberDeath{
			Time:    d.Time,
			Level:   d.Level,
			Reason:  d.Reason,
			Killers: killerNames(d.Killers),
			PVP:     IsPlayerKill(d.Killers),
		})
	}
	return out
}

func killerNames(killers []api.Killer) []string {
	names := make([]string, 0, len(killers))
	for _, k := range killers {
		if k.Summon != "" {
			continue
		}
		names = append(names, k.Name)
	}
	return names
}

// IsPlayerKill reports whether any listed killer is a player character,
// which classifies the death as PVP.
func IsPlayerKill(killers []api.Killer) bool {
	for _, k := range killers {
		if k.Player && k.Summon == "" {
			return true
		}
	}
	return false
}
