package localstore

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	db, err := InitDatabase(context.Background(), "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteRepository(db)
}

func TestGet_AbsentKeyReturnsNil(t *testing.T) {
	repo := setupRepo(t)

	v, err := repo.Get(context.Background(), "missing")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSetGetDelete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, KeyToken, []byte("abc")))

	v, err := repo.Get(ctx, KeyToken)
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), v)

	// overwrite
	require.NoError(t, repo.Set(ctx, KeyToken, []byte("def")))
	v, err = repo.Get(ctx, KeyToken)
	require.NoError(t, err)
	require.Equal(t, []byte("def"), v)

	require.NoError(t, repo.Delete(ctx, KeyToken))
	v, err = repo.Get(ctx, KeyToken)
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSetMany_WritesAllEntries(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, KeyResetEmail, []byte("old@example.com")))

	err := repo.SetMany(ctx, map[string][]byte{
		KeyResetEmail:    []byte("admin@example.com"),
		KeyResetUserType: []byte("masteradmin"),
	})
	require.NoError(t, err)

	v, err := repo.Get(ctx, KeyResetEmail)
	require.NoError(t, err)
	require.Equal(t, []byte("admin@example.com"), v)

	v, err = repo.Get(ctx, KeyResetUserType)
	require.NoError(t, err)
	require.Equal(t, []byte("masteradmin"), v)
}

func TestDelete_AbsentKeyIsNoError(t *testing.T) {
	repo := setupRepo(t)
	require.NoError(t, repo.Delete(context.Background(), "missing"))
}

func TestClear(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, KeyUser, []byte(`{}`)))
	require.NoError(t, repo.Set(ctx, KeyToken, []byte("abc")))
	require.NoError(t, repo.Clear(ctx))

	for _, key := range []string{KeyUser, KeyToken} {
		v, err := repo.Get(ctx, key)
		require.NoError(t, err)
		require.Nil(t, v)
	}
}

func TestInitDatabase_SchemaCreated(t *testing.T) {
	db, err := InitDatabase(context.Background(), "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='localstore'`).Scan(&name)
	require.NoError(t, err)
	require.NotEqual(t, sql.ErrNoRows, err)
	require.Equal(t, "localstore", name)
}
