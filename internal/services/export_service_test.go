package services

import (
	"testing"

	"github.com/barberscore/registry/internal/models"
	"github.com/barberscore/registry/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportGroupsWorkbook(t *testing.T) {
	db := setupTestDB(t)
	personRepo := repositories.NewPersonRepository(db)
	groupRepo := repositories.NewGroupRepository(db)
	service := NewExportService(personRepo, groupRepo)

	staff := createStaffUser(t, db, "staff")
	owner := createTestUser(t, db, "owner")

	bhsID := 640552
	group := models.NewGroup("After Hours", models.KindQuartet, models.GenderMale)
	group.BHSID = &bhsID
	group.Code = "AH"
	group.OwnerIDs = []string{owner.ID}
	require.NoError(t, groupRepo.Create(group))

	f, err := service.GroupsWorkbook(staff)
	require.NoError(t, err)

	rows, err := f.GetRows("Groups")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Name", rows[0][0])
	assert.Equal(t, "After Hours", rows[1][0])
	assert.Equal(t, "Quartet", rows[1][1])
	assert.Equal(t, "640552", rows[1][4])
}

func TestExportPersonsWorkbook(t *testing.T) {
	db := setupTestDB(t)
	personRepo := repositories.NewPersonRepository(db)
	groupRepo := repositories.NewGroupRepository(db)
	service := NewExportService(personRepo, groupRepo)

	staff := createStaffUser(t, db, "staff")

	person := models.NewPerson("John", "Smith")
	person.NickName = "Bud"
	require.NoError(t, personRepo.Create(person))

	f, err := service.PersonsWorkbook(staff)
	require.NoError(t, err)

	rows, err := f.GetRows("Persons")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Bud Smith", rows[1][0])
}

func TestExportRequiresStaff(t *testing.T) {
	db := setupTestDB(t)
	service := NewExportService(repositories.NewPersonRepository(db), repositories.NewGroupRepository(db))

	plain := createTestUser(t, db, "plain")

	_, err := service.GroupsWorkbook(plain)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = service.PersonsWorkbook(nil)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
