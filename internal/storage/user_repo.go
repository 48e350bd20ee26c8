package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Ajaysubramanyam16/Habit-tracker/internal/engine"
)

func (r *Repo) LoadUsers(ctx context.Context) ([]engine.User, error) {
	data, err := r.store.Get(ctx, KeyUsers)
	if err != nil {
		return nil, err
	}
	users := []engine.User{}
	if len(data) == 0 {
		return users, nil
	}
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (r *Repo) SaveUsers(ctx context.Context, users []engine.User) error {
	data, err := encodeUsers(users)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, KeyUsers, data)
}

// LoadUser returns the user with id, or (nil, nil) when absent.
func (r *Repo) LoadUser(ctx context.Context, id string) (*engine.User, error) {
	users, err := r.LoadUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			u := users[i]
			return &u, nil
		}
	}
	return nil, nil
}

// FindUserByEmail matches case-insensitively; (nil, nil) when absent.
func (r *Repo) FindUserByEmail(ctx context.Context, email string) (*engine.User, error) {
	users, err := r.LoadUsers(ctx)
	if err != nil {
		return nil, err
	}
	email = strings.TrimSpace(email)
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			u := users[i]
			return &u, nil
		}
	}
	return nil, nil
}

// SaveUser loads the users collection, replaces (or appends) u by id and saves it back.
func (r *Repo) SaveUser(ctx context.Context, u *engine.User) error {
	users, err := r.LoadUsers(ctx)
	if err != nil {
		return err
	}
	return r.SaveUsers(ctx, upsertUser(users, u))
}

func upsertUser(users []engine.User, u *engine.User) []engine.User {
	if u == nil {
		return users
	}
	for i := range users {
		if users[i].ID == u.ID {
			users[i] = *u
			return users
		}
	}
	return append(users, *u)
}

func encodeUsers(users []engine.User) ([]byte, error) {
	if users == nil {
		users = []engine.User{}
	}
	data, err := json.Marshal(users)
	if err != nil {
		return nil, fmt.Errorf("encode users: %w", err)
	}
	return data, nil
}
