package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Session records which user is signed in on this machine.
type Session struct {
	UserID     string    `json:"userId"`
	SignedInAt time.Time `json:"signedInAt"`
}

// LoadSession returns the current session, or (nil, nil) when signed out.
func (r *Repo) LoadSession(ctx context.Context) (*Session, error) {
	data, err := r.store.Get(ctx, KeySession)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if s.UserID == "" {
		return nil, nil
	}
	return &s, nil
}

func (r *Repo) SaveSession(ctx context.Context, s Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return r.store.Put(ctx, KeySession, data)
}

// ClearSession signs out. There is no delete on BlobStore, so an empty document is written.
func (r *Repo) ClearSession(ctx context.Context) error {
	return r.store.Put(ctx, KeySession, []byte("null"))
}
