package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ajaysubramanyam16/Habit-tracker/internal/storage"
)

func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	return NewProvider(storage.NewRepo(storage.NewMemoryStore()), nil)
}

func TestSignUpSignsIn(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)

	u, err := p.SignUp(ctx, "Ada Lovelace", "  Ada@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, 1, u.Level)
	assert.Contains(t, u.Avatar, "name=Ada+Lovelace")
	assert.NotEmpty(t, u.ID)

	cur, err := p.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, u.ID, cur.ID)
}

func TestSignUpRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)

	_, err := p.SignUp(ctx, "Ada", "ada@example.com")
	require.NoError(t, err)
	_, err = p.SignUp(ctx, "Other Ada", "ADA@example.com")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestLogInLogOut(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)

	_, err := p.LogIn(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	u, err := p.SignUp(ctx, "Ada", "ada@example.com")
	require.NoError(t, err)
	require.NoError(t, p.LogOut(ctx))

	_, err = p.RequireUser(ctx)
	assert.ErrorIs(t, err, ErrNotSignedIn)

	back, err := p.LogIn(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, back.ID)

	cur, err := p.RequireUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, u.ID, cur.ID)
}

func TestInvalidInput(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)

	_, err := p.SignUp(ctx, "", "ada@example.com")
	assert.Error(t, err)
	_, err = p.SignUp(ctx, "Ada", "not-an-email")
	assert.Error(t, err)
}
