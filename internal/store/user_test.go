package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"penblog/internal/models"
)

func TestUserStore_CreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	ctx := context.Background()

	u, err := s.Create(ctx, "Ada@Example.com", "correct horse", "Ada")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.NotEqual(t, "correct horse", u.PasswordHash)

	byEmail, err := s.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, u.ID, byEmail.ID)
	assert.Equal(t, "Ada", byEmail.Name)

	byID, err := s.FindByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "Ada@Example.com", byID.Email)

	assert.True(t, s.CheckPassword(byID, "correct horse"))
	assert.False(t, s.CheckPassword(byID, "wrong"))
}

func TestUserStore_DuplicateEmail(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	ctx := context.Background()

	_, err := s.Create(ctx, "dup@example.com", "password1", "One")
	require.NoError(t, err)

	_, err = s.Create(ctx, "DUP@example.com", "password2", "Two")
	assert.True(t, errors.Is(err, models.ErrConflict), "got %v", err)
}

func TestUserStore_FindMissing(t *testing.T) {
	db := testDB(t)

	u, err := NewUserStore(db).FindByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, u)
}
