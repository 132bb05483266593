// Package tokens persists the bearer token and the serialized user record in
// local storage and decodes token payloads.
package tokens

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/posclient/internal/client/models"
	"github.com/dmitrijs2005/posclient/internal/client/repositories/storage"
	"github.com/dmitrijs2005/posclient/internal/dbx"
	"github.com/dmitrijs2005/posclient/internal/logging"
)

// Well-known storage keys.
const (
	IDTokenKey  = "id_token"
	UserDataKey = "user_data"
)

// Store is the Token Store. It is safe for concurrent use as far as the
// underlying *sql.DB is.
type Store struct {
	db     *sql.DB
	repo   storage.Repository
	logger logging.Logger
}

func NewStore(db *sql.DB, logger logging.Logger) *Store {
	return &Store{db: db, repo: storage.NewSQLiteRepository(db), logger: logger}
}

// GetToken returns the persisted token or ErrTokenNotFound.
func (s *Store) GetToken(ctx context.Context) (string, error) {
	token, ok, err := s.repo.Get(ctx, IDTokenKey)
	if err != nil {
		return "", err
	}
	if !ok || token == "" {
		return "", ErrTokenNotFound
	}
	return token, nil
}

func (s *Store) SaveToken(ctx context.Context, token string) error {
	return s.repo.Set(ctx, IDTokenKey, token)
}

func (s *Store) DestroyToken(ctx context.Context) error {
	return s.repo.Delete(ctx, IDTokenKey)
}

// ParseTokenData decodes token and returns nil instead of an error when the
// token is empty or malformed. The failure is logged.
func (s *Store) ParseTokenData(ctx context.Context, token string) *Claims {
	if token == "" {
		s.logger.Error(ctx, "invalid token format", "token", token)
		return nil
	}

	claims, err := Decode(token)
	if err != nil {
		s.logger.Error(ctx, "failed to decode token", "error", err)
		return nil
	}
	return claims
}

// SaveSession writes the token and the serialized user in one transaction.
func (s *Store) SaveSession(ctx context.Context, token string, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := storage.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, IDTokenKey, token); err != nil {
			return err
		}
		return repo.Set(ctx, UserDataKey, string(data))
	})
}

// ClearSession removes the token and the serialized user together.
func (s *Store) ClearSession(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := storage.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, IDTokenKey); err != nil {
			return err
		}
		return repo.Delete(ctx, UserDataKey)
	})
}

// LoadUser returns the persisted user record or ErrUserNotFound.
func (s *Store) LoadUser(ctx context.Context) (*models.User, error) {
	data, ok, err := s.repo.Get(ctx, UserDataKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUserNotFound
	}

	var u models.User
	if err := json.Unmarshal([]byte(data), &u); err != nil {
		return nil, fmt.Errorf("stored user is corrupted: %w", err)
	}
	return &u, nil
}
