package storage

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) (*SQLiteRepository, *sql.DB) {
	t.Helper()
	repo, db, err := OpenRepository(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repo, db
}

func TestOpen_MigratesSchema(t *testing.T) {
	_, db := setupRepo(t)

	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='kv'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "kv", name)
}

func TestOpen_IsIdempotent(t *testing.T) {
	_, db := setupRepo(t)
	require.NoError(t, RunMigrations(context.Background(), db))
}

func TestSetAndGet_InsertThenGet(t *testing.T) {
	r, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "auth_token", []byte("tok-1")))

	v, err := r.Get(ctx, "auth_token")
	require.NoError(t, err)
	require.Equal(t, []byte("tok-1"), v)
}

func TestGet_NotExists_ReturnsNilNil(t *testing.T) {
	r, _ := setupRepo(t)

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestGet_EmptyValueIsNotNil(t *testing.T) {
	r, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "empty", nil))

	v, err := r.Get(ctx, "empty")
	require.NoError(t, err)
	require.NotNil(t, v)
	require.Empty(t, v)
}

func TestSet_UpsertOverwritesValue(t *testing.T) {
	r, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", []byte("old")))
	require.NoError(t, r.Set(ctx, "k", []byte("new")))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), v)
}

func TestList_ReturnsAllPairs(t *testing.T) {
	r, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a", []byte{0xAA}))
	require.NoError(t, r.Set(ctx, "b", []byte{0xBB, 0xCC}))

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, m, 2)
	assert.Equal(t, []byte{0xAA}, m["a"])
	assert.Equal(t, []byte{0xBB, 0xCC}, m["b"])
}

func TestDelete_RemovesKey_AndIsIdempotent(t *testing.T) {
	r, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "x", []byte{0x01}))
	require.NoError(t, r.Delete(ctx, "x"))

	v, err := r.Get(ctx, "x")
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, r.Delete(ctx, "x"))
}

func TestClear_RemovesAllKeys(t *testing.T) {
	r, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a", []byte{1}))
	require.NoError(t, r.Set(ctx, "b", []byte{2}))
	require.NoError(t, r.Clear(ctx))

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestApply_WritesAndDeletesTogether(t *testing.T) {
	r, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "user_data", []byte(`{"email":"old@uni.edu.ec"}`)))

	err := r.Apply(ctx,
		Put("auth_token", []byte("tok")),
		Put("auth_user", []byte(`{"email":"new@uni.edu.ec"}`)),
		Remove("user_data"),
	)
	require.NoError(t, err)

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{
		"auth_token": []byte("tok"),
		"auth_user":  []byte(`{"email":"new@uni.edu.ec"}`),
	}, m)
}

func TestApply_NoOpsIsNoop(t *testing.T) {
	r, _ := setupRepo(t)
	require.NoError(t, r.Apply(context.Background()))
}

func TestApply_RollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	r := NewSQLiteRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO kv`)).
		WithArgs("auth_token", []byte("tok")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO kv`)).
		WithArgs("auth_user", []byte("{}")).
		WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	err = r.Apply(context.Background(), Put("auth_token", []byte("tok")), Put("auth_user", []byte("{}")))
	require.ErrorContains(t, err, "failed to set kv[auth_user]")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_DBErrorWrapped(t *testing.T) {
	r, db := setupRepo(t)
	require.NoError(t, db.Close())

	v, err := r.Get(context.Background(), "k")
	require.Error(t, err)
	require.Nil(t, v)
	require.Contains(t, err.Error(), "failed to get kv[k]")
}

func TestSet_DBErrorWrapped(t *testing.T) {
	r, db := setupRepo(t)
	require.NoError(t, db.Close())

	err := r.Set(context.Background(), "k", []byte("v"))
	require.ErrorContains(t, err, "failed to set kv[k]")
}

func TestDelete_DBErrorWrapped(t *testing.T) {
	r, db := setupRepo(t)
	require.NoError(t, db.Close())

	err := r.Delete(context.Background(), "k")
	require.ErrorContains(t, err, "failed to delete kv[k]")
}

func TestClear_DBErrorWrapped(t *testing.T) {
	r, db := setupRepo(t)
	require.NoError(t, db.Close())

	err := r.Clear(context.Background())
	require.ErrorContains(t, err, "failed to clear kv")
}

func TestList_DBErrorWrapped(t *testing.T) {
	r, db := setupRepo(t)
	require.NoError(t, db.Close())

	_, err := r.List(context.Background())
	require.ErrorContains(t, err, "failed to list kv")
}
