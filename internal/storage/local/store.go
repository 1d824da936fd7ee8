package local

import (
	"encoding/json"
	"sync"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"cashbox/internal"
)

// Snapshot keys, one per entity list. The whole list is serialized as a
// single JSON blob and rewritten on every mutation.
const (
	UsersKey        = "cashbox_users"
	TransactionsKey = "cashbox_txs"
)

type snapshot struct {
	Key   string `gorm:"primaryKey;column:key"`
	Value string `gorm:"column:value;not null"`
}

func (snapshot) TableName() string {
	return "snapshots"
}

// Store is the local durable backend: a sqlite file holding one row per
// snapshot key. It is process-local and not shared between instances.
type Store struct {
	db *gorm.DB
	mu sync.Mutex
}

// Open opens (or creates) the sqlite file and ensures the snapshots table
// exists.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, internal.ErrBackendUnavailable.WithCause(err)
	}
	if err := db.AutoMigrate(&snapshot{}); err != nil {
		return nil, internal.ErrBackendUnavailable.WithCause(err)
	}
	return &Store{db: db}, nil
}

// Load unmarshals the snapshot under key into dest. The second return is
// false when no snapshot exists yet.
func (s *Store) Load(key string, dest interface{}) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var row snapshot
	err := s.db.Where("key = ?", key).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	if err != nil {
		return false, internal.ErrBackendUnavailable.WithCause(err)
	}

	if err := json.Unmarshal([]byte(row.Value), dest); err != nil {
		return false, internal.ErrBackendUnavailable.WithCause(err)
	}
	return true, nil
}

// Save serializes v and overwrites the snapshot under key as a whole.
func (s *Store) Save(key string, v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(v)
	if err != nil {
		return internal.ErrBackendUnavailable.WithCause(err)
	}

	row := snapshot{Key: key, Value: string(raw)}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&row).Error
	if err != nil {
		return internal.ErrBackendUnavailable.WithCause(err)
	}
	return nil
}
