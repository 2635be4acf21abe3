package data

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/medipharm/medipharm-console/internal/ports"
	"github.com/medipharm/medipharm-console/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVRepo_SetGetDelete(t *testing.T) {
	db := testutil.SetupEphemeralSchemaDB(t)
	repo := NewKVRepo(db, KVRepoOptions{TTL: time.Hour})
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "medipharm:session:s1:MedipharmLoggedUser", `{"id":"1"}`))
	require.NoError(t, repo.Set(ctx, "medipharm:session:s1:MedipharmLoggedUser", `{"id":"2"}`))

	got, err := repo.Get(ctx, "medipharm:session:s1:MedipharmLoggedUser")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"2"}`, got)

	require.NoError(t, repo.Delete(ctx, "medipharm:session:s1:MedipharmLoggedUser"))
	_, err = repo.Get(ctx, "medipharm:session:s1:MedipharmLoggedUser")
	assert.ErrorIs(t, err, ports.ErrKeyNotFound)

	// Deleting an absent key is not an error.
	assert.NoError(t, repo.Delete(ctx, "medipharm:session:s1:MedipharmLoggedUser"))
}

func TestKVRepo_ExpiryAndPurge(t *testing.T) {
	db := testutil.SetupEphemeralSchemaDB(t)
	clock := &FixedTimeProvider{At: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	repo := NewKVRepo(db, KVRepoOptions{TTL: time.Minute, TimeProvider: clock})
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "a", `"x"`))
	clock.Advance(2 * time.Minute)

	_, err := repo.Get(ctx, "a")
	assert.ErrorIs(t, err, ports.ErrKeyNotFound)

	n, err := repo.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestKVRepo_Keys(t *testing.T) {
	db := testutil.SetupEphemeralSchemaDB(t)
	repo := NewKVRepo(db, KVRepoOptions{})
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "p_1:theme", `"dark"`))
	require.NoError(t, repo.Set(ctx, "pX1:theme", `"dark"`))
	require.NoError(t, repo.Set(ctx, "p_2:theme", `"light"`))

	keys, err := repo.Keys(ctx, "p_")
	require.NoError(t, err)
	assert.Equal(t, []string{"p_1:theme", "p_2:theme"}, keys)
}

func TestWrapDBError_UndefinedTable(t *testing.T) {
	err := wrapDBError("kv get", &pgconn.PgError{Code: pgerrcode.UndefinedTable})
	assert.ErrorIs(t, err, ErrSchemaMissing)

	err = wrapDBError("kv get", errors.New("conn refused"))
	assert.NotErrorIs(t, err, ErrSchemaMissing)
	assert.Contains(t, err.Error(), "kv get")
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `a\%b\_c\\`, escapeLike(`a%b_c\`))
}
