package feed

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/samber/lo"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Iron-Ham/lazyfeed/internal/errors"
	"github.com/Iron-Ham/lazyfeed/internal/logging"
)

// Supported driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// seedBatchSize bounds a single INSERT when seeding.
const seedBatchSize = 100

// Item is a single feed entry.
type Item struct {
	ID        uint      `gorm:"primaryKey" yaml:"id,omitempty"`
	Title     string    `gorm:"not null" yaml:"title"`
	Body      string    `yaml:"body"`
	Author    string    `yaml:"author"`
	CreatedAt time.Time `yaml:"created_at,omitempty"`
}

// Page is one keyset page of items.
type Page struct {
	Items []Item
	// Cursor is the ID of the last item in the page, or the requested cursor
	// when the page is empty.
	Cursor  uint
	HasMore bool
}

// Store persists feed items.
type Store struct {
	db     *gorm.DB
	driver string
	logger *logging.Logger

	mu     sync.Mutex
	closed bool
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithStoreLogger sets the logger used by the store.
func WithStoreLogger(logger *logging.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Dialector returns the gorm dialector for driver.
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case DriverSQLite:
		return sqlite.Open(dsn), nil
	case DriverPostgres:
		return postgres.Open(dsn), nil
	case DriverMySQL:
		return mysql.Open(dsn), nil
	default:
		return nil, errors.NewStoreError(fmt.Sprintf("driver %q", driver), errors.ErrUnknownDriver).
			WithDriver(driver).
			WithRetryable(false)
	}
}

// Open connects to the database named by driver and dsn.
func Open(driver, dsn string, opts ...StoreOption) (*Store, error) {
	dialector, err := Dialector(driver, dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.NewStoreError("open database", err).WithDriver(driver)
	}

	if driver == DriverSQLite {
		// In-memory databases exist per connection.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, errors.NewStoreError("open database", err).WithDriver(driver)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return NewStore(db, driver, opts...), nil
}

// NewStore wraps an open gorm connection.
//
// db must be non-nil. Passing nil will panic early to surface wiring bugs.
func NewStore(db *gorm.DB, driver string, opts ...StoreOption) *Store {
	if db == nil {
		panic("feed: gorm.DB must not be nil")
	}
	s := &Store{
		db:     db,
		driver: driver,
		logger: logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent("feed")
	return s
}

// Driver returns the driver name the store was opened with.
func (s *Store) Driver() string {
	return s.driver
}

func (s *Store) conn(ctx context.Context) (*gorm.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, errors.NewStoreError("use after close", errors.ErrStoreClosed).
			WithDriver(s.driver).
			WithRetryable(false)
	}
	return s.db.WithContext(ctx), nil
}

// Migrate creates or updates the items table.
func (s *Store) Migrate(ctx context.Context) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(&Item{}); err != nil {
		return errors.NewStoreError("migrate", err).WithDriver(s.driver)
	}
	return nil
}

// Seed inserts n generated items.
func (s *Store) Seed(ctx context.Context, n int) error {
	if n <= 0 {
		return nil
	}
	now := time.Now()
	items := lo.Times(n, func(i int) Item {
		return Item{
			Title:     fmt.Sprintf("Item %d", i+1),
			Body:      fmt.Sprintf("Generated entry number %d.", i+1),
			Author:    "lazyfeed",
			CreatedAt: now.Add(time.Duration(i) * time.Second),
		}
	})
	return s.SeedItems(ctx, items)
}

// SeedItems inserts items in batches. IDs already set on items are kept.
func (s *Store) SeedItems(ctx context.Context, items []Item) error {
	if len(items) == 0 {
		return nil
	}
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	if err := db.CreateInBatches(items, seedBatchSize).Error; err != nil {
		return errors.NewStoreError("seed items", err).WithDriver(s.driver)
	}
	s.logger.Info("feed seeded", "items", len(items))
	return nil
}

// Page returns up to limit items with an ID greater than cursor.
func (s *Store) Page(ctx context.Context, cursor uint, limit int) (Page, error) {
	if limit <= 0 {
		return Page{}, errors.NewValidationError("page limit must be positive").
			WithField("limit").
			WithValue(limit)
	}
	db, err := s.conn(ctx)
	if err != nil {
		return Page{}, err
	}

	var items []Item
	err = db.Where("id > ?", cursor).
		Order("id ASC").
		Limit(limit + 1).
		Find(&items).Error
	if err != nil {
		return Page{}, errors.NewStoreError("page query", err).
			WithDriver(s.driver).
			WithCursor(cursor)
	}

	page := Page{Cursor: cursor}
	if len(items) > limit {
		page.HasMore = true
		items = items[:limit]
	}
	page.Items = items
	if len(items) > 0 {
		page.Cursor = lo.LastOrEmpty(items).ID
	}
	return page, nil
}

// Count returns the number of stored items.
func (s *Store) Count(ctx context.Context) (int64, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := db.Model(&Item{}).Count(&n).Error; err != nil {
		return 0, errors.NewStoreError("count items", err).WithDriver(s.driver)
	}
	return n, nil
}

// Close releases the underlying connection pool. It is idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.NewStoreError("close", err).WithDriver(s.driver)
	}
	return sqlDB.Close()
}
