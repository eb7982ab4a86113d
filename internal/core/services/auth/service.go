package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"guildwatch/internal/core/domain"
	"guildwatch/internal/core/ports"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	ErrInvalidWorld = errors.New("unknown game world")
	// ErrCharacterTaken is a conflict sentinel so the store gives up on the
	// registration transaction instead of retrying a duplicate.
	ErrCharacterTaken     = domain.Conflict("character already registered on this world")
	ErrInvalidCredentials = errors.New("invalid character name or password")
)

const defaultMaxGuilds = 5

// titleCaser canonicalizes names the way the game spells them.
var titleCaser = cases.Title(language.English)

// Store is the slice of the persistence surface registration needs.
type Store interface {
	GetUserByCharacter(ctx context.Context, characterName, world string) (*domain.User, error)
	RunInTx(ctx context.Context, fn func(ctx context.Context, r ports.Repository) error) error
}

// WorldValidator checks a world name against the game's world list.
type WorldValidator interface {
	ValidateWorld(ctx context.Context, world string) (bool, error)
}

// TokenIssuer signs session tokens for authenticated users.
type TokenIssuer interface {
	GenerateToken(user *domain.User) (string, error)
}

type Service struct {
	store      Store
	worlds     WorldValidator
	tokens     TokenIssuer
	bcryptCost int
}

func NewService(store Store, worlds WorldValidator, tokens TokenIssuer, bcryptCost int) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{store: store, worlds: worlds, tokens: tokens, bcryptCost: bcryptCost}
}

type Session struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Register creates an account for a character, creating its guild and a
// world subscription when absent. The first account of a new guild becomes
// its admin; later ones join as members.
func (s *Service) Register(ctx context.Context, characterName, world, guildName, password string) (*Session, error) {
	characterName = CanonicalName(characterName)
	world = CanonicalName(world)
	guildName = strings.TrimSpace(guildName)

	valid, err := s.worlds.ValidateWorld(ctx, world)
	if err != nil {
		return nil, fmt.Errorf("validate world: %w", err)
	}
	if !valid {
		return nil, fmt.Errorf("%w: %s", ErrInvalidWorld, world)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:            uuid.New(),
		CharacterName: characterName,
		World:         world,
		PasswordHash:  string(hash),
	}

	err = s.store.RunInTx(ctx, func(ctx context.Context, r ports.Repository) error {
		guild, err := r.GetGuildByNameWorld(ctx, guildName, world)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			guild = &domain.Guild{Name: guildName, World: world, Type: domain.GuildTypeMain}
			if err := r.CreateGuild(ctx, guild); err != nil {
				return fmt.Errorf("create guild: %w", err)
			}
			user.Role = domain.RoleGuildAdmin
		case err != nil:
			return fmt.Errorf("get guild: %w", err)
		default:
			user.Role = domain.RoleGuildMember
		}
		user.GuildID = &guild.ID

		if err := r.CreateUser(ctx, user); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return ErrCharacterTaken
			}
			return fmt.Errorf("create user: %w", err)
		}

		sub := &domain.WorldSubscription{
			UserID:    user.ID,
			World:     world,
			MaxGuilds: defaultMaxGuilds,
		}
		return r.CreateWorldSubscription(ctx, sub)
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	slog.Info("Account registered", "character", characterName, "world", world, "role", user.Role)
	return &Session{Token: token, User: user}, nil
}

// Login authenticates a character and returns a fresh session token.
func (s *Service) Login(ctx context.Context, characterName, world, password string) (*Session, error) {
	characterName = CanonicalName(characterName)
	world = CanonicalName(world)

	user, err := s.store.GetUserByCharacter(ctx, characterName, world)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{Token: token, User: user}, nil
}

// CanonicalName Title-cases a character, guild, or world name the way the
// game renders it, collapsing stray whitespace.
func CanonicalName(name string) string {
	return titleCaser.String(strings.Join(strings.Fields(name), " "))
}
