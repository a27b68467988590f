package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput(email string) Input {
	return Input{
		FirstName: "João",
		LastName:  "Silva",
		Email:     email,
		Gender:    GenderMale,
		BirthDate: datePtr(1990, time.January, 15),
	}
}

func seededService(t *testing.T, seed ...*User) (*Service, *InMemoryRepository) {
	t.Helper()
	repo := NewInMemoryRepository(seed)
	return NewService(repo), repo
}

func mustUser(t *testing.T, id int64, email string) *User {
	t.Helper()
	u, err := New("João", "Silva", email, GenderMale, nil)
	require.NoError(t, err)
	u.ID = id
	return u
}

func TestServiceCreate_AssignsID(t *testing.T) {
	service, _ := seededService(t)

	created, err := service.Create(validInput("joao@x.com"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "joao@x.com", created.Email)
}

func TestServiceCreate_EmailTaken(t *testing.T) {
	service, repo := seededService(t, mustUser(t, 1, "a@x.com"))

	_, err := service.Create(validInput("a@x.com"))
	assert.ErrorIs(t, err, ErrEmailTaken)

	users, err := repo.List()
	require.NoError(t, err)
	assert.Len(t, users, 1, "a conflicting create must not write")
}

func TestServiceCreate_ValidationAfterConflictCheck(t *testing.T) {
	service, repo := seededService(t)

	_, err := service.Create(Input{FirstName: " ", LastName: "Silva", Email: "a@x.com", Gender: GenderMale})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	users, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestServiceGetByID(t *testing.T) {
	service, _ := seededService(t, mustUser(t, 1, "a@x.com"))

	u, err := service.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", u.Email)

	_, err = service.GetByID(99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceGetByEmail(t *testing.T) {
	service, _ := seededService(t, mustUser(t, 1, "a@x.com"))

	u, err := service.GetByEmail("a@x.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)

	_, err = service.GetByEmail("missing@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceList_EmptyStorage(t *testing.T) {
	service, _ := seededService(t)

	users, err := service.List()
	require.NoError(t, err)
	require.NotNil(t, users)
	assert.Empty(t, users)
}

func TestServiceUpdate_NotFoundBeforeValidation(t *testing.T) {
	service, _ := seededService(t, mustUser(t, 1, "taken@x.com"))

	// target id is missing, the new email is taken and the input is invalid:
	// not-found must win
	err := service.Update(99, Input{FirstName: "", LastName: "", Email: "taken@x.com", Gender: Gender(9)})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceUpdate_ConflictWithOtherOwner(t *testing.T) {
	service, _ := seededService(t, mustUser(t, 1, "a@x.com"), mustUser(t, 2, "b@x.com"))

	err := service.Update(1, validInput("b@x.com"))
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestServiceUpdate_KeepingOwnEmail(t *testing.T) {
	service, repo := seededService(t, mustUser(t, 1, "a@x.com"))

	in := validInput("a@x.com")
	in.FirstName = "Maria"
	require.NoError(t, service.Update(1, in))

	u, err := repo.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Maria", u.FirstName)
	assert.Equal(t, "a@x.com", u.Email)
}

func TestServiceUpdate_ValidationFailureDoesNotPersist(t *testing.T) {
	service, repo := seededService(t, mustUser(t, 1, "a@x.com"))

	err := service.Update(1, Input{FirstName: " ", LastName: "Silva", Email: "a@x.com", Gender: GenderMale})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	u, err := repo.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, "João", u.FirstName)
}

func TestServicePatch_EmailOnly(t *testing.T) {
	service, repo := seededService(t, mustUser(t, 1, "a@x.com"))

	require.NoError(t, service.Patch(1, Patch{Email: strPtr("new@x.com")}))

	u, err := repo.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, "new@x.com", u.Email)
	assert.Equal(t, "João", u.FirstName)
	assert.Equal(t, "Silva", u.LastName)
}

func TestServicePatch_NotFoundBeforeConflict(t *testing.T) {
	service, _ := seededService(t, mustUser(t, 1, "taken@x.com"))

	err := service.Patch(99, Patch{Email: strPtr("taken@x.com")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServicePatch_ConflictWithOtherOwner(t *testing.T) {
	service, _ := seededService(t, mustUser(t, 1, "a@x.com"), mustUser(t, 2, "b@x.com"))

	err := service.Patch(1, Patch{Email: strPtr("b@x.com")})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestServicePatch_OwnEmailNoConflict(t *testing.T) {
	service, _ := seededService(t, mustUser(t, 1, "a@x.com"))

	assert.NoError(t, service.Patch(1, Patch{Email: strPtr("a@x.com")}))
}

func TestServicePatch_NoFieldsIsNoOp(t *testing.T) {
	service, repo := seededService(t, mustUser(t, 1, "a@x.com"))

	require.NoError(t, service.Patch(1, Patch{}))

	u, err := repo.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", u.Email)
}

func TestServiceDelete(t *testing.T) {
	service, repo := seededService(t, mustUser(t, 1, "a@x.com"))

	require.NoError(t, service.Delete(1))

	users, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestServiceDelete_NotFound(t *testing.T) {
	service, repo := seededService(t, mustUser(t, 1, "a@x.com"))

	assert.ErrorIs(t, service.Delete(99), ErrNotFound)

	users, err := repo.List()
	require.NoError(t, err)
	assert.Len(t, users, 1, "storage must be unchanged")
}
