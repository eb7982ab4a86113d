package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"guildwatch/internal/core/domain"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

// Sentinels are aliased from the domain so services never import the
// storage adapter just to match errors.
var (
	ErrNotFound  = domain.ErrNotFound
	ErrDuplicate = domain.ErrDuplicate
)

// Store implements the persistence ports on top of bun. The zero value is not
// usable; construct with NewStore, or internally with an open transaction.
type Store struct {
	db    bun.IDB
	sqldb *sql.DB
	root  *bun.DB
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	sqldb, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := sqldb.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	db := bun.NewDB(sqldb, pgdialect.New())

	return &Store{
		db:    db,
		sqldb: sqldb,
		root:  db,
	}, nil
}

// Migrate creates missing tables in dependency order.
func (s *Store) Migrate(ctx context.Context) error {
	models := []interface{}{
		(*domain.Guild)(nil),
		(*domain.Player)(nil),
		(*domain.Death)(nil),
		(*domain.User)(nil),
		(*domain.WorldSubscription)(nil),
		(*domain.GuildConfiguration)(nil),
		(*domain.Subscription)(nil),
		(*domain.PaymentVerification)(nil),
		(*domain.Payment)(nil),
	}

	for _, model := range models {
		if _, err := s.root.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table for %T: %w", model, err)
		}
	}

	return nil
}

func (s *Store) Close() error {
	if s.sqldb == nil {
		return nil
	}
	return s.sqldb.Close()
}

// convertError maps driver errors to the store's sentinels.
func convertError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
