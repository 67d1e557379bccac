package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserRepository_FindByIDsSkipsDeletedUsers(t *testing.T) {
	db := setupSQLite(t)
	repo := NewUserRepository(db)

	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")
	require.NoError(t, db.Delete(bob).Error)

	users, err := repo.FindByIDs([]uint64{alice.ID, bob.ID, 999})
	require.NoError(t, err)

	require.Len(t, users, 1)
	assert.Equal(t, "alice@example.com", users[alice.ID].Email)
	assert.NotContains(t, users, bob.ID)
}

func TestUserRepository_FindByIDsEmpty(t *testing.T) {
	db := setupSQLite(t)
	repo := NewUserRepository(db)

	users, err := repo.FindByIDs(nil)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestUserRepository_FindByEmail(t *testing.T) {
	db := setupSQLite(t)
	repo := NewUserRepository(db)
	createUser(t, db, "carol@example.com")

	user, err := repo.FindByEmail("carol@example.com")
	require.NoError(t, err)
	assert.Equal(t, "carol@example.com", user.Email)

	_, err = repo.FindByEmail("nobody@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
