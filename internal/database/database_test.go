package database

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/felipefaria2026/roleta-pro-ia-v2/internal/database/migrations"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestPing(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectPing()
	mock.ExpectPing().WillReturnError(errors.New("connection reset"))

	probe := Ping(db)

	assert.NoError(t, probe(context.Background()))
	assert.Error(t, probe(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrations_Embedded(t *testing.T) {
	goose.SetBaseFS(migrations.FS)
	t.Cleanup(func() { goose.SetBaseFS(nil) })

	collected, err := goose.CollectMigrations(".", 0, goose.MaxVersion)
	require.NoError(t, err)

	var versions []int64
	for _, m := range collected {
		versions = append(versions, m.Version)
	}
	assert.Equal(t, []int64{1, 2}, versions)
}

func TestMigrations_UsersSchema(t *testing.T) {
	raw, err := fs.ReadFile(migrations.FS, "00001_create_users.sql")
	require.NoError(t, err)
	sql := string(raw)

	assert.Contains(t, sql, "-- +goose Up")
	assert.Contains(t, sql, "-- +goose Down")
	assert.Contains(t, sql, "UNIQUE (email)")
	assert.True(t, strings.Contains(sql, "password_hash VARCHAR(255) NOT NULL"))
}
