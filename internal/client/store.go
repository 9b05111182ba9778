package client

import (
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// sessionTokenKey is the single canonical key the token lives under.
const sessionTokenKey = "session_token"

type sessionEntry struct {
	Key   string `gorm:"primaryKey"`
	Value string `gorm:"not null"`
}

func (sessionEntry) TableName() string { return "session" }

// TokenStore is the durable on-device store backing the session manager,
// a small key-value table in a local sqlite file.
type TokenStore struct {
	db *gorm.DB
}

func OpenStore(path string) (*TokenStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("cannot open session store: %w", err)
	}
	if err := db.AutoMigrate(&sessionEntry{}); err != nil {
		return nil, fmt.Errorf("cannot migrate session store: %w", err)
	}
	return &TokenStore{db: db}, nil
}

func (s *TokenStore) Get(key string) (string, bool, error) {
	var entry sessionEntry
	if err := s.db.Where("key = ?", key).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return entry.Value, true, nil
}

func (s *TokenStore) Set(key, value string) error {
	entry := sessionEntry{Key: key, Value: value}
	return s.db.Save(&entry).Error
}

func (s *TokenStore) Delete(key string) error {
	return s.db.Where("key = ?", key).Delete(&sessionEntry{}).Error
}

func (s *TokenStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
