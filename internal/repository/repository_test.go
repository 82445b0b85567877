package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"todo-tracker/internal/model"
	"todo-tracker/internal/repository"
	"todo-tracker/internal/repository/repotest"
)

func seedUser(t *testing.T, users *repository.UserRepository, email string) *model.User {
	t.Helper()
	u := &model.User{Email: email, PasswordHash: "hash"}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func TestUserRepository_EmailUnique(t *testing.T) {
	db := repotest.NewDB(t)
	users := repository.NewUserRepository(db)
	ctx := context.Background()

	u := seedUser(t, users, "a@example.com")
	assert.Len(t, u.ID, 36)

	err := users.Create(ctx, &model.User{Email: "a@example.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	found, err := users.FindByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	_, err = users.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCategoryRepository_OwnershipAndNames(t *testing.T) {
	db := repotest.NewDB(t)
	users := repository.NewUserRepository(db)
	cats := repository.NewCategoryRepository(db)
	ctx := context.Background()

	alice := seedUser(t, users, "alice@example.com")
	bob := seedUser(t, users, "bob@example.com")

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	work := &model.Category{Name: "Work", UserID: alice.ID, CreatedAt: base}
	home := &model.Category{Name: "Home", UserID: alice.ID, CreatedAt: base.Add(time.Minute)}
	require.NoError(t, cats.Create(ctx, home))
	require.NoError(t, cats.Create(ctx, work))

	list, err := cats.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Work", list[0].Name)
	assert.Equal(t, "Home", list[1].Name)

	empty, err := cats.ListByUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = cats.FindOwned(ctx, bob.ID, work.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	taken, err := cats.NameTaken(ctx, alice.ID, "Work", "")
	require.NoError(t, err)
	assert.True(t, taken)
	taken, err = cats.NameTaken(ctx, alice.ID, "Work", work.ID)
	require.NoError(t, err)
	assert.False(t, taken)
	taken, err = cats.NameTaken(ctx, bob.ID, "Work", "")
	require.NoError(t, err)
	assert.False(t, taken)

	require.NoError(t, cats.Rename(ctx, work, "Office"))
	got, err := cats.GetByID(ctx, work.ID)
	require.NoError(t, err)
	assert.Equal(t, "Office", got.Name)

	removed, err := cats.Delete(ctx, bob.ID, work.ID)
	require.NoError(t, err)
	assert.False(t, removed)
	removed, err = cats.Delete(ctx, alice.ID, work.ID)
	require.NoError(t, err)
	assert.True(t, removed)
}

func TestTodoRepository_ListingAndUpdates(t *testing.T) {
	db := repotest.NewDB(t)
	users := repository.NewUserRepository(db)
	cats := repository.NewCategoryRepository(db)
	todos := repository.NewTodoRepository(db)
	ctx := context.Background()

	alice := seedUser(t, users, "alice@example.com")
	cat := &model.Category{Name: "Work", UserID: alice.ID}
	require.NoError(t, cats.Create(ctx, cat))

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	older := &model.Todo{Title: "older", Importance: model.ImportanceLow, Status: model.StatusReady,
		UserID: alice.ID, CategoryID: cat.ID, CreatedAt: base}
	newer := &model.Todo{Title: "newer", Importance: model.ImportanceHigh, Status: model.StatusDone,
		UserID: alice.ID, CategoryID: cat.ID, CreatedAt: base.Add(time.Hour)}
	require.NoError(t, todos.Create(ctx, older))
	require.NoError(t, todos.Create(ctx, newer))

	list, err := todos.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "newer", list[0].Title)
	require.NotNil(t, list[0].Category)
	assert.Equal(t, "Work", list[0].Category.Name)

	done, err := todos.ListByStatus(ctx, alice.ID, model.StatusDone)
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, newer.ID, done[0].ID)

	byCat, err := todos.ListByCategory(ctx, alice.ID, cat.ID)
	require.NoError(t, err)
	assert.Len(t, byCat, 2)

	count, err := todos.CountByCategory(ctx, cat.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	desc := "details"
	ok, err := todos.Update(ctx, alice.ID, older.ID, map[string]any{"description": &desc})
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = todos.Update(ctx, alice.ID, older.ID, map[string]any{"description": nil, "completed": true})
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := todos.FindByID(ctx, alice.ID, older.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Description)
	assert.True(t, got.Completed)
	assert.Equal(t, "older", got.Title)

	ok, err = todos.Update(ctx, "someone-else", older.ID, map[string]any{"title": "stolen"})
	require.NoError(t, err)
	assert.False(t, ok)

	removed, err := todos.Delete(ctx, alice.ID, older.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = todos.Delete(ctx, alice.ID, older.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}
