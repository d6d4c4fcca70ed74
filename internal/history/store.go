// Package history records completed rest breaks in a local SQLite database.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultDBName = "history.db"

// Store persists rest breaks.
type Store struct {
	db *gorm.DB
}

// DefaultPath returns the database location under the user config dir.
func DefaultPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, defaultDBName), nil
}

// Open connects to the database at path and migrates the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if err := db.AutoMigrate(&RestBreak{}); err != nil {
		return nil, fmt.Errorf("migrate history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Record inserts a completed break.
func (store *Store) Record(restBreak *RestBreak) error {
	if err := store.db.Create(restBreak).Error; err != nil {
		return errors.Wrap(err, "failed to insert rest break")
	}
	return nil
}

// Since returns breaks that started at or after since, newest first.
func (store *Store) Since(since time.Time) ([]RestBreak, error) {
	var breaks []RestBreak
	result := store.db.Where("started_at >= ?", since).Order("started_at DESC").Find(&breaks)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query rest breaks")
	}
	return breaks, nil
}

// Summarize counts breaks and rest time since a given time.
func (store *Store) Summarize(since time.Time) (Summary, error) {
	var summary Summary
	result := store.db.Model(&RestBreak{}).
		Select("COUNT(*) AS breaks, COALESCE(SUM(rest_seconds), 0) AS total_seconds").
		Where("started_at >= ?", since).
		Scan(&summary)
	if result.Error != nil {
		return Summary{}, errors.Wrap(result.Error, "failed to summarize rest breaks")
	}
	return summary, nil
}

// Prune deletes breaks that started before before.
func (store *Store) Prune(before time.Time) (int64, error) {
	result := store.db.Where("started_at < ?", before).Delete(&RestBreak{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to prune rest breaks")
	}
	return result.RowsAffected, nil
}

// Close releases the database.
func (store *Store) Close() error {
	sqlDB, err := store.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}
