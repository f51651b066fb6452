package storage

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// pair is a single persisted key-value entry.
type pair struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

// SQLite is a KV store backed by a single SQLite table.
type SQLite struct {
	db *gorm.DB
}

// Connect opens the SQLite database and configures the connection pool.
func Connect(dsn string) (*SQLite, error) {
	config := &gorm.Config{
		Logger: &logger{
			Logger: log.Logger,
		},
	}

	db, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(pair{})
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// This is done to prevent SQLITE_BUSY errors.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	return &SQLite{db: db}, nil
}

// Get returns the value stored for a key.
func (s *SQLite) Get(key string) (string, bool, error) {
	var p pair

	err := s.db.First(&p, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, wrapError(err)
	}

	return p.Value, true, nil
}

// SetAll writes all pairs in one transaction.
func (s *SQLite) SetAll(pairs map[string]string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for key, value := range pairs {
			err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&pair{Key: key, Value: value}).Error
			if err != nil {
				return err
			}
		}

		return nil
	})

	return wrapError(err)
}

// Ping verifies the database connection.
func (s *SQLite) Ping() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return wrapError(err)
	}

	return wrapError(sqlDB.Ping())
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return wrapError(err)
	}

	return sqlDB.Close()
}

// wrapError replaces driver errors with ErrStorage so that internals do
// not leak to API consumers. The original error is logged.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if err.Error() == "sql: database is closed" || reflect.TypeOf(err) == reflect.TypeOf(&go_sqlite.Error{}) {
		log.Error().Msgf("%T: %v", err, err.Error())
		return ErrStorage
	}

	return err
}
