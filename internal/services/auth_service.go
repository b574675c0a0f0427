package services

import (
	"context"
	"errors"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nlitvinov/go-task-api/internal/auth"
	"github.com/nlitvinov/go-task-api/internal/models"
	"github.com/nlitvinov/go-task-api/internal/storage"
)

type authServiceImpl struct {
	logger zerolog.Logger
	users  storage.UserStore
	codec  auth.TokenCodec
}

func NewAuthService(
	logger zerolog.Logger,
	users storage.UserStore,
	codec auth.TokenCodec,
) AuthService {
	return &authServiceImpl{
		logger: logger,
		users:  users,
		codec:  codec,
	}
}

func (s *authServiceImpl) Login(ctx context.Context, params LoginParams) (*TokenPair, error) {
	user, err := s.users.GetUserByUsername(ctx, params.Username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			// Same error as a wrong password so the response does not
			// reveal which check failed.
			s.logger.Debug().
				Str("username", params.Username).
				Msg("user not found")
			return nil, ErrInvalidCredentials
		}

		s.logger.Error().
			Err(err).
			Str("username", params.Username).
			Msg("failed to select user by username")
		return nil, err
	}

	match, err := argon2id.ComparePasswordAndHash(params.Password, user.Password)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to compare password")
		return nil, err
	} else if !match {
		s.logger.Debug().
			Str("username", params.Username).
			Msg("password mismatch")
		return nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokenPair(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Msg("logged in")
	return pair, nil
}

func (s *authServiceImpl) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.codec.Verify(refreshToken, auth.KindRefresh)
	if err != nil {
		s.logger.Debug().
			Err(err).
			Msg("rejected refresh token")
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			s.logger.Debug().
				Str("user_id", claims.UserID).
				Msg("refresh token for unknown user")
			return nil, ErrInvalidToken
		}

		s.logger.Error().
			Err(err).
			Str("user_id", claims.UserID).
			Msg("failed to select user by id")
		return nil, err
	}

	pair, err := s.issueTokenPair(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Msg("refreshed tokens")
	return pair, nil
}

func (s *authServiceImpl) Register(ctx context.Context, params RegisterParams) (*models.User, error) {
	now := time.Now()
	user := models.User{
		Username:  params.Username,
		CreatedAt: now,
		UpdatedAt: now,
	}

	userUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate user uuid")
		return nil, err
	}
	user.ID = userUUID.String()

	passwordHash, err := argon2id.CreateHash(params.Password, argon2id.DefaultParams)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to hash password")
		return nil, err
	}
	user.Password = passwordHash

	err = s.users.CreateUser(ctx, &user)
	if err != nil {
		if errors.Is(err, storage.ErrUsernameTaken) {
			s.logger.Debug().
				Str("username", user.Username).
				Msg("username already taken")
			return nil, ErrUsernameTaken
		}

		s.logger.Error().
			Err(err).
			Msg("failed to insert user")
		return nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("username", user.Username).
		Msg("registered user")
	return &user, nil
}

func (s *authServiceImpl) Authenticate(ctx context.Context, accessToken string) (*models.User, error) {
	claims, err := s.codec.Verify(accessToken, auth.KindAccess)
	if err != nil {
		s.logger.Debug().
			Err(err).
			Msg("rejected access token")
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			s.logger.Debug().
				Str("user_id", claims.UserID).
				Msg("access token for unknown user")
			return nil, ErrInvalidToken
		}

		s.logger.Error().
			Err(err).
			Str("user_id", claims.UserID).
			Msg("failed to select user by id")
		return nil, err
	}

	return user, nil
}

func (s *authServiceImpl) issueTokenPair(user *models.User) (*TokenPair, error) {
	accessToken, accessExpiresAt, err := s.codec.Issue(user.ID, user.Username, auth.KindAccess)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to issue access token")
		return nil, err
	}

	refreshToken, refreshExpiresAt, err := s.codec.Issue(user.ID, user.Username, auth.KindRefresh)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to issue refresh token")
		return nil, err
	}

	return &TokenPair{
		AccessToken:           accessToken,
		AccessTokenExpiresAt:  accessExpiresAt,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: refreshExpiresAt,
	}, nil
}
