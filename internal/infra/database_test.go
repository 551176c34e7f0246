package infra

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryDSN() string {
	return "file:" + uuid.NewString() + "?mode=memory&cache=shared"
}

func TestSQLiteDSNEnablesForeignKeys(t *testing.T) {
	assert.Equal(t, "catalogo.db?_foreign_keys=on", sqliteDSN("catalogo.db"))
	assert.Equal(t, "file:x?mode=memory&_foreign_keys=on", sqliteDSN("file:x?mode=memory"))
	assert.Equal(t, "x.db?_fk=1", sqliteDSN("x.db?_fk=1"))
}

func TestNewDatabaseSQLiteMigrationsIdempotent(t *testing.T) {
	db, err := NewDatabase(DriverSQLite, memoryDSN())
	require.NoError(t, err)

	require.NoError(t, RunMigrations(db, DriverSQLite))

	for _, table := range []string{"categorias", "productos"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestNewDatabaseUnknownDriver(t *testing.T) {
	_, err := NewDatabase("mysql", "")
	assert.ErrorContains(t, err, "desconocido")
}

func TestOpenStore(t *testing.T) {
	s, err := OpenStore(DriverFile, "", filepath.Join(t.TempDir(), "catalogo.json"))
	require.NoError(t, err)
	assert.NoError(t, s.Ping(context.Background()))

	s, err = OpenStore(DriverSQLite, memoryDSN(), "")
	require.NoError(t, err)
	assert.NoError(t, s.Ping(context.Background()))

	_, err = OpenStore(DriverFile, "", "")
	assert.Error(t, err)
}

func TestNewRedisOptional(t *testing.T) {
	rdb, err := NewRedis("")
	assert.NoError(t, err)
	assert.Nil(t, rdb)

	_, err = NewRedis("not a url")
	assert.Error(t, err)
}
