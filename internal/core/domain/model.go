package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type GuildType string

const (
	GuildTypeMain   GuildType = "MAIN"
	GuildTypeAlly   GuildType = "ALLY"
	GuildTypeEnemy  GuildType = "ENEMY"
	GuildTypeFriend GuildType = "FRIEND"
)

func (t GuildType) IsValid() bool {
	switch t {
	case GuildTypeMain, GuildTypeAlly, GuildTypeEnemy, GuildTypeFriend:
		return true
	}
	return false
}

type PlayerType string

const (
	PlayerTypeGuildMember    PlayerType = "GUILD_MEMBER"
	PlayerTypeExternalEnemy  PlayerType = "EXTERNAL_ENEMY"
	PlayerTypeExternalAlly   PlayerType = "EXTERNAL_ALLY"
	PlayerTypeExternalFriend PlayerType = "EXTERNAL_FRIEND"
)

type DeathType string

const (
	DeathTypePVP DeathType = "PVP"
	DeathTypePVE DeathType = "PVE"
)

type Role string

const (
	RoleSuperAdmin  Role = "SUPER_ADMIN"
	RoleGuildAdmin  Role = "GUILD_ADMIN"
	RoleGuildMember Role = "GUILD_MEMBER"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleGuildAdmin, RoleGuildMember:
		return true
	}
	return false
}

// Guild is a tracked Tibia guild, unique per (name, world).
type Guild struct {
	bun.BaseModel `bun:"table:guilds,alias:g"`

	ID           int64      `bun:"id,pk,autoincrement" json:"id"`
	Name         string     `bun:"name,notnull,unique:guilds_name_world_key" json:"name"`
	World        string     `bun:"world,notnull,unique:guilds_name_world_key" json:"world"`
	Type         GuildType  `bun:"type,notnull,default:'MAIN'" json:"type"`
	PasswordHash *string    `bun:"password_hash,nullzero" json:"-"`
	LastSyncAt   *time.Time `bun:"last_sync_at,nullzero" json:"last_sync_at,omitempty"`
	CreatedAt    time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time  `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// Player is a tracked character, unique per (name, world). Rows are written
// only by the reconciliation routine.
type Player struct {
	bun.BaseModel `bun:"table:players,alias:p"`

	ID         int64      `bun:"id,pk,autoincrement" json:"id"`
	Name       string     `bun:"name,notnull,unique:players_name_world_key" json:"name"`
	World      string     `bun:"world,notnull,unique:players_name_world_key" json:"world"`
	Level      int        `bun:"level,notnull,default:0" json:"level"`
	Vocation   string     `bun:"vocation,notnull,default:''" json:"vocation"`
	Online     bool       `bun:"online,notnull,default:false" json:"online"`
	LastSeenAt time.Time  `bun:"last_seen_at,notnull" json:"last_seen_at"`
	Type       PlayerType `bun:"type,notnull,default:'GUILD_MEMBER'" json:"type"`
	GuildID    *int64     `bun:"guild_id,nullzero" json:"guild_id,omitempty"`

	Guild *Guild `bun:"rel:belongs-to,join:guild_id=id" json:"-"`
}

// Death is an append-only record of a character death.
type Death struct {
	bun.BaseModel `bun:"table:deaths,alias:d"`

	ID          int64     `bun:"id,pk,autoincrement" json:"id"`
	PlayerID    int64     `bun:"player_id,notnull" json:"player_id"`
	OccurredAt  time.Time `bun:"occurred_at,notnull" json:"occurred_at"`
	Level       int       `bun:"level,notnull" json:"level"`
	Killers     []string  `bun:"killers,array" json:"killers"`
	Description string    `bun:"description,notnull,default:''" json:"description"`
	Type        DeathType `bun:"type,notnull,default:'PVE'" json:"type"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`

	Player *Player `bun:"rel:belongs-to,join:player_id=id" json:"player,omitempty"`
}

// User is an account holder, unique per (character_name, world).
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID            uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	CharacterName string    `bun:"character_name,notnull,unique:users_character_world_key" json:"character_name"`
	World         string    `bun:"world,notnull,unique:users_character_world_key" json:"world"`
	Role          Role      `bun:"role,notnull,default:'GUILD_MEMBER'" json:"role"`
	GuildID       *int64    `bun:"guild_id,nullzero" json:"guild_id,omitempty"`
	PasswordHash  string    `bun:"password_hash,notnull" json:"-"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`

	Guild *Guild `bun:"rel:belongs-to,join:guild_id=id" json:"-"`
}

// WorldSubscription is a user's monitored world. MaxGuilds bounds how many
// guild configurations may attach to it.
type WorldSubscription struct {
	bun.BaseModel `bun:"table:world_subscriptions,alias:ws"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID    uuid.UUID `bun:"user_id,notnull,type:uuid" json:"user_id"`
	World     string    `bun:"world,notnull" json:"world"`
	MaxGuilds int       `bun:"max_guilds,notnull,default:5" json:"max_guilds"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`

	Configurations []*GuildConfiguration `bun:"rel:has-many,join:id=world_subscription_id" json:"configurations,omitempty"`
}

// GuildConfiguration links a world subscription to a guild with a role tag.
type GuildConfiguration struct {
	bun.BaseModel `bun:"table:guild_configurations,alias:gc"`

	ID                  int64     `bun:"id,pk,autoincrement" json:"id"`
	WorldSubscriptionID int64     `bun:"world_subscription_id,notnull,unique:guild_configs_sub_guild_key" json:"world_subscription_id"`
	GuildID             int64     `bun:"guild_id,notnull,unique:guild_configs_sub_guild_key" json:"guild_id"`
	Role                GuildType `bun:"role,notnull" json:"role"`
	Priority            int       `bun:"priority,notnull,default:0" json:"priority"`
	CreatedAt           time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`

	Guild *Guild `bun:"rel:belongs-to,join:guild_id=id" json:"guild,omitempty"`
}
