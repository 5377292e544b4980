package feed_test

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Iron-Ham/lazyfeed/internal/feed"
)

func quiet() *gorm.Config {
	return &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}
}

func newMySQLMock(t *testing.T) (*feed.Store, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	})

	db, err := gorm.Open(dialector, quiet())
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	return feed.NewStore(db, feed.DriverMySQL), mock
}

func newPostgresMock(t *testing.T) (*feed.Store, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}

	dialector := postgres.New(postgres.Config{
		Conn: mockDB,
	})

	db, err := gorm.Open(dialector, quiet())
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	return feed.NewStore(db, feed.DriverPostgres), mock
}

// newSQLiteStore opens a migrated in-memory store seeded with n items.
func newSQLiteStore(t *testing.T, n int) *feed.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), quiet())
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	store := feed.NewStore(db, feed.DriverSQLite)
	t.Cleanup(func() { _ = store.Close() })

	if err := store.Migrate(t.Context()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := store.Seed(t.Context(), n); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return store
}
