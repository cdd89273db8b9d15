// Package dbtest opens throwaway sqlite databases for store tests.
package dbtest

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/cleitonzila/n64-checklist/db"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var seq atomic.Int64

// Open returns a private in-memory database. Every call gets its own database, so a test can
// model the catalog and ownership stores as separate connections.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, seq.Add(1))

	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return conn
}

// Stores opens and migrates the three stores.
func Stores(t testing.TB) (ps1, n64, ownership *gorm.DB) {
	t.Helper()
	ps1, n64, ownership = Open(t), Open(t), Open(t)
	require.NoError(t, db.Migrate(ps1, n64, ownership))
	return ps1, n64, ownership
}
