package db

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-builder/internal/types"
)

func strPtr(s string) *string { return &s }

func TestMemoryStore_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	id, err := m.CreateUser(ctx, "Ada", " Ada@Example.com ", "555", "hash")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	exists, err := m.CheckEmailExists(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	u, err := m.GetUserByEmail(ctx, "ADA@EXAMPLE.COM")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, "Ada@Example.com", u.Email)
	assert.True(t, u.PasswordSet)

	_, err = m.CreateUser(ctx, "Other", "ada@example.com", "", "")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestMemoryStore_MissingUser(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	u, err := m.GetUser(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = m.UpdateProfile(ctx, uuid.New(), &types.UpdateProfileRequest{Name: strPtr("x")})
	require.NoError(t, err)
	assert.Nil(t, u)

	assert.Error(t, m.UpdatePassword(ctx, uuid.New(), "h"))
}

func TestMemoryStore_UpdateProfileIsPartial(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	id, err := m.CreateUser(ctx, "Ada", "ada@example.com", "555", "")
	require.NoError(t, err)

	u, err := m.UpdateProfile(ctx, id, &types.UpdateProfileRequest{JobTitle: strPtr("Engineer"), Bio: strPtr("")})
	require.NoError(t, err)
	require.NotNil(t, u)

	p := u.Profile()
	assert.Equal(t, "Ada", p.Name)
	assert.Equal(t, "555", p.Phone)
	assert.Equal(t, "Engineer", p.JobTitle)
	assert.Empty(t, p.Bio)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	id, err := m.CreateUser(ctx, "Ada", "ada@example.com", "", "")
	require.NoError(t, err)

	u, err := m.GetUser(ctx, id)
	require.NoError(t, err)
	u.Name = "changed"

	again, err := m.GetUser(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ada", again.Name)
	assert.False(t, again.PasswordSet)

	require.NoError(t, m.UpdatePassword(ctx, id, "hash"))
	again, err = m.GetUser(ctx, id)
	require.NoError(t, err)
	assert.True(t, again.PasswordSet)
}
