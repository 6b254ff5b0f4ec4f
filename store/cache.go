// Package store persists a record of each compiled pattern fragment
// across process runs (SPEC_FULL.md §4.H): its hash, prefix, parse shape
// and source text. The compiled Matcher itself is not stored, so a later
// run still recompiles every fragment.
package store

import (
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Cache wraps a gorm.DB holding the cached_pattern table. The zero value
// is not usable; build one with Open.
type Cache struct {
	db *gorm.DB
}

// Open connects to dsn (a SQLite file path, or ":memory:") and migrates
// the cached_pattern table. glebarez/sqlite is a cgo-free driver, chosen
// so the CLI remains a single static binary.
func Open(dsn string, debug bool) (*Cache, error) {
	if dsn == "" {
		dsn = ":memory:"
	}

	config := &gorm.Config{}
	if debug {
		config.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("opening pattern cache %s: %w", dsn, err)
	}

	if err := db.AutoMigrate(&CachedPattern{}); err != nil {
		return nil, fmt.Errorf("migrating pattern cache: %w", err)
	}

	return &Cache{db: db}, nil
}

// Get looks up a compiled plan by its fragment hash. The second return
// value is false on a cache miss.
func (c *Cache) Get(fragmentHash string) (*CachedPattern, bool, error) {
	var row CachedPattern
	err := c.db.First(&row, "fragment_hash = ?", fragmentHash).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading pattern cache: %w", err)
	}
	return &row, true, nil
}

// Put stores (or replaces) a compiled plan under its fragment hash.
func (c *Cache) Put(row *CachedPattern) error {
	if err := c.db.Save(row).Error; err != nil {
		return fmt.Errorf("writing pattern cache: %w", err)
	}
	return nil
}

// Close releases the underlying database connection.
func (c *Cache) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
