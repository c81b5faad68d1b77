package repository

import (
	"testing"

	"cryptomarket/internal/domain"
	"cryptomarket/internal/validate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEnforcesUniqueEmail(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	first := domain.User{Name: "John", Email: "john@example.com", Password: "hash", Role: domain.RoleCliente}
	require.NoError(t, repo.Create(&first))

	// The schema-level unique index is what guards concurrent signups
	dup := domain.User{Name: "Impostor", Email: "john@example.com", Password: "hash", Role: domain.RoleCliente}
	assert.Error(t, repo.Create(&dup))
}

func TestFindByEmailMissingIsNotAnError(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	user, err := repo.FindByEmail("ghost@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestFindByFilterOmitsPassword(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	require.NoError(t, repo.Create(&domain.User{Name: "John", Email: "john@example.com", Password: "hash", Role: domain.RoleAdmin}))

	name := "John"
	users, err := repo.FindByFilter(validate.FilterUsersInput{Name: &name})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Empty(t, users[0].Password)
	assert.Equal(t, "john@example.com", users[0].Email)
	assert.Equal(t, domain.RoleAdmin, users[0].Role)
}

func TestFindByFilterNoMatches(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	name := "Nobody"
	users, err := repo.FindByFilter(validate.FilterUsersInput{Name: &name})
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestUpdateAppliesOnlySuppliedFields(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	user := domain.User{Name: "John", Email: "john@example.com", Password: "hash", Role: domain.RoleCliente}
	require.NoError(t, repo.Create(&user))

	newName := "Jane"
	updated, err := repo.Update(user.ID, validate.UpdateUserInput{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Jane", updated.Name)
	assert.Equal(t, "john@example.com", updated.Email)
	assert.Equal(t, domain.RoleCliente, updated.Role)
}

func TestUpdateMissingUser(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	newName := "Jane"
	_, err := repo.Update(999, validate.UpdateUserInput{Name: &newName})
	assert.Error(t, err)
}
