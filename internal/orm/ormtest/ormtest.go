// Package ormtest opens throwaway in-memory databases for tests.
package ormtest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/omega/animator/internal/orm"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

// NewStorage returns a migrated in-memory SQLite storage private to t.
func NewStorage(t testing.TB) *orm.Storage {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	storage, err := orm.New(orm.Config{
		Driver:         "sqlite",
		DSN:            fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		MaxConnections: 1,
		LogLevel:       logger.Silent,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("open test storage: %v", err)
	}
	t.Cleanup(func() { _ = storage.Close() })
	return storage
}
