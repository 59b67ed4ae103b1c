package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/devlog-dev/devlog/internal/models"
	"github.com/devlog-dev/devlog/internal/store"
	"github.com/devlog-dev/devlog/internal/testutil"
	"github.com/devlog-dev/devlog/internal/types"
)

func newFixture(t *testing.T) (*gorm.DB, *store.ProjectStore, *models.User, *models.User) {
	t.Helper()

	database := testutil.OpenDB(t)
	users := store.NewUserStore(database)
	ctx := context.Background()

	owner, err := users.Register(ctx, "owner", "owner@example.com", "pass123")
	require.NoError(t, err)

	other, err := users.Register(ctx, "other", "other@example.com", "pass123")
	require.NoError(t, err)

	return database, store.NewProjectStore(database), owner, other
}

func strPtr(s string) *string { return &s }

func TestProjectStore_CreateAndGet(t *testing.T) {
	t.Parallel()

	_, projects, owner, _ := newFixture(t)
	ctx := context.Background()

	created, err := projects.Create(ctx, owner.ID, "Alarm Clock", strPtr("PIC18F46K22 build"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, owner.ID, created.OwnerID)
	assert.Nil(t, created.UpdatedAt)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := projects.Get(ctx, owner.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alarm Clock", got.Title)
	require.NotNil(t, got.Description)
	assert.Equal(t, "PIC18F46K22 build", *got.Description)
}

func TestProjectStore_OwnershipIsInvisible(t *testing.T) {
	t.Parallel()

	_, projects, owner, other := newFixture(t)
	ctx := context.Background()

	created, err := projects.Create(ctx, owner.ID, "Secret", nil)
	require.NoError(t, err)

	// Another user's project and a nonexistent project look identical.
	_, err = projects.Get(ctx, other.ID, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = projects.Get(ctx, other.ID, 9999)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = projects.UpdatePartial(ctx, other.ID, created.ID, store.ProjectPatch{
		Title: types.Optional[string]{Set: true, Valid: true, Value: "Hijacked"},
	})
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = projects.UpdateFull(ctx, other.ID, created.ID, "Hijacked", nil)
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = projects.Delete(ctx, other.ID, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// The owner still sees the untouched record.
	got, err := projects.Get(ctx, owner.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Secret", got.Title)
}

func TestProjectStore_UpdatePartial_LeavesAbsentFieldsAlone(t *testing.T) {
	t.Parallel()

	_, projects, owner, _ := newFixture(t)
	ctx := context.Background()

	created, err := projects.Create(ctx, owner.ID, "Alarm Clock", strPtr("PIC18F46K22 build"))
	require.NoError(t, err)

	updated, err := projects.UpdatePartial(ctx, owner.ID, created.ID, store.ProjectPatch{
		Title: types.Optional[string]{Set: true, Valid: true, Value: "Alarm Clock v2"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Alarm Clock v2", updated.Title)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "PIC18F46K22 build", *updated.Description)
	require.NotNil(t, updated.UpdatedAt)
}

func TestProjectStore_UpdatePartial_NullClearsDescription(t *testing.T) {
	t.Parallel()

	_, projects, owner, _ := newFixture(t)
	ctx := context.Background()

	created, err := projects.Create(ctx, owner.ID, "Alarm Clock", strPtr("PIC18F46K22 build"))
	require.NoError(t, err)

	updated, err := projects.UpdatePartial(ctx, owner.ID, created.ID, store.ProjectPatch{
		Description: types.Optional[string]{Set: true}, // explicit null
	})
	require.NoError(t, err)

	assert.Equal(t, "Alarm Clock", updated.Title)
	assert.Nil(t, updated.Description)
}

func TestProjectStore_UpdateFull_OverwritesEverything(t *testing.T) {
	t.Parallel()

	_, projects, owner, _ := newFixture(t)
	ctx := context.Background()

	created, err := projects.Create(ctx, owner.ID, "Alarm Clock", strPtr("PIC18F46K22 build"))
	require.NoError(t, err)

	// Omitting the description on a full update wipes it.
	updated, err := projects.UpdateFull(ctx, owner.ID, created.ID, "Alarm Clock v2", nil)
	require.NoError(t, err)

	assert.Equal(t, "Alarm Clock v2", updated.Title)
	assert.Nil(t, updated.Description)
	require.NotNil(t, updated.UpdatedAt)
}

func TestProjectStore_Delete_CascadesToLogs(t *testing.T) {
	t.Parallel()

	database, projects, owner, _ := newFixture(t)
	logs := store.NewLogStore(database)
	ctx := context.Background()

	doomed, err := projects.Create(ctx, owner.ID, "Doomed", nil)
	require.NoError(t, err)

	survivor, err := projects.Create(ctx, owner.ID, "Survivor", nil)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := logs.Create(ctx, doomed.ID, "entry")
		require.NoError(t, err)
	}
	_, err = logs.Create(ctx, survivor.ID, "keep me")
	require.NoError(t, err)

	require.NoError(t, projects.Delete(ctx, owner.ID, doomed.ID))

	_, err = projects.Get(ctx, owner.ID, doomed.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Verified with a direct query, not just via the store API.
	var orphaned int64
	require.NoError(t, database.Model(&models.Log{}).Where("project_id = ?", doomed.ID).Count(&orphaned).Error)
	assert.Zero(t, orphaned)

	var kept int64
	require.NoError(t, database.Model(&models.Log{}).Where("project_id = ?", survivor.ID).Count(&kept).Error)
	assert.EqualValues(t, 1, kept)
}

func TestProjectStore_List_Search(t *testing.T) {
	t.Parallel()

	_, projects, owner, _ := newFixture(t)
	ctx := context.Background()

	_, err := projects.Create(ctx, owner.ID, "Alarm Clock", strPtr("PIC18F46K22 build"))
	require.NoError(t, err)
	_, err = projects.Create(ctx, owner.ID, "ETL Pipeline", strPtr("Airflow + Postgres"))
	require.NoError(t, err)
	_, err = projects.Create(ctx, owner.ID, "No Description", nil)
	require.NoError(t, err)

	for _, q := range []string{"alarm", "CLOCK", "m Cl"} {
		got, err := projects.List(ctx, owner.ID, q, store.DefaultListLimit, 0)
		require.NoError(t, err)
		require.Len(t, got, 1, "query %q", q)
		assert.Equal(t, "Alarm Clock", got[0].Title)
	}

	// Matches against the description too.
	got, err := projects.List(ctx, owner.ID, "airflow", store.DefaultListLimit, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ETL Pipeline", got[0].Title)

	// A NULL description never matches.
	got, err = projects.List(ctx, owner.ID, "zzz", store.DefaultListLimit, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestProjectStore_List_ScopedAndOrdered(t *testing.T) {
	t.Parallel()

	_, projects, owner, other := newFixture(t)
	ctx := context.Background()

	first, err := projects.Create(ctx, owner.ID, "First", nil)
	require.NoError(t, err)
	second, err := projects.Create(ctx, owner.ID, "Second", nil)
	require.NoError(t, err)
	_, err = projects.Create(ctx, other.ID, "Not Yours", nil)
	require.NoError(t, err)

	got, err := projects.List(ctx, owner.ID, "", store.DefaultListLimit, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Newest first by id.
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)
}

func TestProjectStore_List_Pagination(t *testing.T) {
	t.Parallel()

	_, projects, owner, _ := newFixture(t)
	ctx := context.Background()

	older, err := projects.Create(ctx, owner.ID, "Older", nil)
	require.NoError(t, err)
	newer, err := projects.Create(ctx, owner.ID, "Newer", nil)
	require.NoError(t, err)

	pageOne, err := projects.List(ctx, owner.ID, "", 1, 0)
	require.NoError(t, err)
	pageTwo, err := projects.List(ctx, owner.ID, "", 1, 1)
	require.NoError(t, err)

	require.Len(t, pageOne, 1)
	require.Len(t, pageTwo, 1)
	assert.Equal(t, newer.ID, pageOne[0].ID)
	assert.Equal(t, older.ID, pageTwo[0].ID)

	pageThree, err := projects.List(ctx, owner.ID, "", 1, 2)
	require.NoError(t, err)
	assert.Empty(t, pageThree)
}
