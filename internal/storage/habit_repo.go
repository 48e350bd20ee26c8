package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Ajaysubramanyam16/Habit-tracker/internal/engine"
)

// Repo reads and writes whole collections as JSON documents in a BlobStore.
// Every save replaces the full collection: last whole-collection write wins.
type Repo struct {
	store BlobStore
}

func NewRepo(store BlobStore) *Repo {
	return &Repo{store: store}
}

func (r *Repo) Store() BlobStore { return r.store }

// LoadHabits returns every habit of every user. A missing collection is empty.
func (r *Repo) LoadHabits(ctx context.Context) ([]engine.Habit, error) {
	data, err := r.store.Get(ctx, KeyHabits)
	if err != nil {
		return nil, err
	}
	habits := []engine.Habit{}
	if len(data) == 0 {
		return habits, nil
	}
	if err := json.Unmarshal(data, &habits); err != nil {
		return nil, fmt.Errorf("decode habits: %w", err)
	}
	return habits, nil
}

// SaveHabits replaces the whole habits collection.
func (r *Repo) SaveHabits(ctx context.Context, habits []engine.Habit) error {
	data, err := encodeHabits(habits)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, KeyHabits, data)
}

// SaveState writes the habits collection and one user record in a single PutMany.
func (r *Repo) SaveState(ctx context.Context, habits []engine.Habit, user *engine.User) error {
	habitsData, err := encodeHabits(habits)
	if err != nil {
		return err
	}
	users, err := r.LoadUsers(ctx)
	if err != nil {
		return err
	}
	usersData, err := encodeUsers(upsertUser(users, user))
	if err != nil {
		return err
	}
	return r.store.PutMany(ctx, map[string][]byte{
		KeyHabits: habitsData,
		KeyUsers:  usersData,
	})
}

func encodeHabits(habits []engine.Habit) ([]byte, error) {
	if habits == nil {
		habits = []engine.Habit{}
	}
	data, err := json.Marshal(habits)
	if err != nil {
		return nil, fmt.Errorf("encode habits: %w", err)
	}
	return data, nil
}
