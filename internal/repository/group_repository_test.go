package repository

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/anonymous-thread-api/internal/models"
	"gorm.io/gorm"
)

func TestGroupRepository_CreateWithCreatorAddsMembership(t *testing.T) {
	db := setupSQLite(t)
	repo := NewGroupRepository(db)
	owner := createUser(t, db, "owner@example.com")

	group := &models.Group{Name: "Team", GroupKey: "aaaaaa-bbbbbb-cccccc", PasswordHash: "x", CreatedByID: owner.ID}
	require.NoError(t, repo.CreateWithCreator(group))
	require.NotZero(t, group.ID)

	member, err := repo.FindMember(group.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, member.UserID)

	memberships, err := repo.ListMembershipsByUserID(owner.ID)
	require.NoError(t, err)
	require.Len(t, memberships, 1)
	assert.Equal(t, "Team", memberships[0].Group.Name)

	members, err := repo.ListMembers(group.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "owner@example.com", members[0].User.Email)
}

func TestGroupRepository_GroupKeyIsUnique(t *testing.T) {
	db := setupSQLite(t)
	repo := NewGroupRepository(db)
	owner := createUser(t, db, "owner@example.com")

	first := &models.Group{Name: "One", GroupKey: "same-key", PasswordHash: "x", CreatedByID: owner.ID}
	require.NoError(t, repo.CreateWithCreator(first))

	second := &models.Group{Name: "Two", GroupKey: "same-key", PasswordHash: "x", CreatedByID: owner.ID}
	err := repo.CreateWithCreator(second)
	assert.ErrorIs(t, err, ErrCreateGroup)
}

func TestGroupRepository_UpdateGroupKey(t *testing.T) {
	db := setupSQLite(t)
	repo := NewGroupRepository(db)
	owner := createUser(t, db, "owner@example.com")

	group := &models.Group{Name: "Team", GroupKey: "old-key", PasswordHash: "x", CreatedByID: owner.ID}
	require.NoError(t, repo.CreateWithCreator(group))

	require.NoError(t, repo.UpdateGroupKey(group.ID, "new-key"))

	found, err := repo.FindByGroupKey("new-key")
	require.NoError(t, err)
	assert.Equal(t, group.ID, found.ID)

	_, err = repo.FindByGroupKey("old-key")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.ErrorIs(t, repo.UpdateGroupKey(999, "k"), gorm.ErrRecordNotFound)
}

func TestGroupRepository_CreateWithCreatorRollsBackOnMemberFailure(t *testing.T) {
	db, mock := setupSQLMock(t)
	repo := NewGroupRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `groups`").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec("INSERT INTO `group_members`").
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	err := repo.CreateWithCreator(&models.Group{Name: "Team", GroupKey: "k", PasswordHash: "x", CreatedByID: 1})

	assert.ErrorIs(t, err, ErrCreateGroupMember)
	require.NoError(t, mock.ExpectationsWereMet())
}
