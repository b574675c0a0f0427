package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/nlitvinov/go-task-api/internal/models"
	"github.com/nlitvinov/go-task-api/internal/storage"
)

type UserStore struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewUserStore(logger zerolog.Logger, pgPool *pgxpool.Pool) *UserStore {
	return &UserStore{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *UserStore) CreateUser(ctx context.Context, user *models.User) error {
	const insertUserQuery = `
INSERT INTO users (id,
                   username,
                   password,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5)
`
	_, err := s.pgPool.Exec(
		ctx,
		insertUserQuery,
		user.ID,
		user.Username,
		user.Password,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return storage.ErrUsernameTaken
		}

		s.logger.Error().
			Err(err).
			Msg("failed to insert user")
		return err
	}
	s.logger.Debug().
		Str("user_id", user.ID).
		Str("username", user.Username).
		Msg("inserted user")

	return nil
}

func (s *UserStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user := &models.User{ID: id}

	const selectUserByIDQuery = `
SELECT username,
       password,
       created_at,
       updated_at
FROM users
WHERE id = $1
`
	err := s.pgPool.QueryRow(
		ctx,
		selectUserByIDQuery,
		user.ID,
	).Scan(
		&user.Username,
		&user.Password,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}

		s.logger.Error().
			Err(err).
			Str("user_id", user.ID).
			Msg("failed to select user by id")
		return nil, err
	}

	return user, nil
}

func (s *UserStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{Username: username}

	const selectUserByUsernameQuery = `
SELECT id,
       password,
       created_at,
       updated_at
FROM users
WHERE username = $1
`
	err := s.pgPool.QueryRow(
		ctx,
		selectUserByUsernameQuery,
		user.Username,
	).Scan(
		&user.ID,
		&user.Password,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}

		s.logger.Error().
			Err(err).
			Str("username", user.Username).
			Msg("failed to select user by username")
		return nil, err
	}

	return user, nil
}
