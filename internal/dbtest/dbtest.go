// Package dbtest opens a migrated in-memory store for package tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/minishop/internal/db"
)

func Open(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.Open(context.Background(), db.DriverSQLite, ":memory:")
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close(gdb)
	})
	return gdb
}
