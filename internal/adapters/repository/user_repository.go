package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/habitboard/core/internal/domain/entities"
	"github.com/habitboard/core/internal/infrastructure/storage"
	"github.com/habitboard/core/internal/ports"
)

// userRecord is the stored form of a user. The entity hides the password
// hash from JSON responses, so the stored document carries it explicitly.
type userRecord struct {
	entities.User
	PasswordHash string `json:"password_hash"`
}

// usernameIndex is the value stored under username/{username}.
type usernameIndex struct {
	UserID string `json:"user_id"`
}

// UserRepositoryImpl implements the UserRepository interface
type UserRepositoryImpl struct {
	store storage.Store
}

// NewUserRepository creates a new user repository
func NewUserRepository(store storage.Store) ports.UserRepository {
	return &UserRepositoryImpl{store: store}
}

// Create persists a new user and its username index row. Uniqueness is
// enforced by checking the index before writing; the two puts are not
// atomic as a pair (the store offers single-key atomicity only).
func (r *UserRepositoryImpl) Create(ctx context.Context, user *entities.User) error {
	_, err := r.store.Get(ctx, usernameKey(user.Username))
	if err == nil {
		return entities.ErrUsernameTaken
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("check username index: %w", err)
	}

	index, err := json.Marshal(usernameIndex{UserID: user.ID})
	if err != nil {
		return fmt.Errorf("marshal username index: %w", err)
	}
	if err := r.store.Put(ctx, usernameKey(user.Username), index); err != nil {
		return fmt.Errorf("put username index: %w", err)
	}

	payload, err := json.Marshal(userRecord{User: *user, PasswordHash: user.PasswordHash})
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	if err := r.store.Put(ctx, userKey(user.ID), payload); err != nil {
		return fmt.Errorf("put user: %w", err)
	}

	return nil
}

// GetByID fetches a user by id.
func (r *UserRepositoryImpl) GetByID(ctx context.Context, id string) (*entities.User, error) {
	payload, err := r.store.Get(ctx, userKey(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return decodeUser(payload)
}

// GetByUsername resolves the username index and fetches the user.
func (r *UserRepositoryImpl) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	payload, err := r.store.Get(ctx, usernameKey(username))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("get username index: %w", err)
	}

	var index usernameIndex
	if err := json.Unmarshal(payload, &index); err != nil {
		return nil, fmt.Errorf("unmarshal username index: %w", err)
	}

	return r.GetByID(ctx, index.UserID)
}

func decodeUser(payload []byte) (*entities.User, error) {
	var record userRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}

	user := record.User
	user.PasswordHash = record.PasswordHash
	return &user, nil
}
