package api

import "time"

type GuildResponse struct {
	Guild GuildInfo `json:"guild"`
}

type GuildInfo struct {
	Name           string        `json:"name"`
	World          string        `json:"world"`
	Description    string        `json:"description"`
	LogoURL        string        `json:"logo_url"`
	Members        []GuildMember `json:"members"`
	PlayersOnline  int           `json:"players_online"`
	PlayersOffline int           `json:"players_offline"`
}

type GuildMember struct {
	Name     string `json:"name"`
	Level    int    `json:"level"`
	Vocation string `json:"vocation"`
	Rank     string `json:"rank"`
	Status   string `json:"status"`
}

type WorldsResponse struct {
	Worlds WorldsInfo `json:"worlds"`
}

type WorldsInfo struct {
	RegularWorlds []WorldEntry `json:"regular_worlds"`
}

type WorldEntry struct {
	Name          string `json:"name"`
	Status        string `json:"status"`
	PlayersOnline int    `json:"players_online"`
}

type WorldResponse struct {
	World struct {
		OnlinePlayers []OnlinePlayer `json:"online_players"`
	} `json:"world"`
}

type OnlinePlayer struct {
	Name     string `json:"name"`
	Level    int    `json:"level"`
	Vocation string `json:"vocation"`
}

type GuildListResponse struct {
	Guilds GuildListInfo `json:"guilds"`
}

type GuildListInfo struct {
	World  string           `json:"world"`
	Active []GuildListEntry `json:"active"`
}

type GuildListEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"`
}

type CharacterResponse struct {
	Character struct {
		Character CharacterInfo `json:"character"`
		Deaths    []Death       `json:"deaths"`
	} `json:"character"`
}

type CharacterInfo struct {
	Name     string `json:"name"`
	Level    int    `json:"level"`
	World    string `json:"world"`
	Vocation string `json:"vocation"`
}

type Death struct {
	Time    time.Time `json:"time"`
	Level   int       `json:"level"`
	Reason  string    `json:"reason"`
	Killers []Killer  `json:"killers"`
}

type Killer struct {
	Name   string `json:"name"`
	Player bool   `json:"player"`
	Summon string `json:"summon"`
}
