package analytics

import (
	"context"
	"errors"
	"time"

	"github.com/eleven-am/chat-analytics/internal/chat"
	"github.com/eleven-am/chat-analytics/internal/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&SessionAnalytics{})
}

// Upsert stores the latest counters for a session. Concurrent writers
// resolve as last write wins.
func (s *Store) Upsert(ctx context.Context, sessionID string, messageCount, duration int64) (*SessionAnalytics, error) {
	if messageCount < 0 || duration < 0 {
		return nil, shared.ErrInvalid
	}

	now := time.Now().UTC()
	row := &SessionAnalytics{
		ID:              shared.NewID(shared.PrefixSnapshot),
		SessionID:       sessionID,
		MessageCount:    messageCount,
		SessionDuration: duration,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&chat.Session{}).Where("session_id = ?", sessionID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}

		err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"message_count", "session_duration", "updated_at"}),
		}).Create(row).Error
		if err != nil {
			return err
		}

		var stored SessionAnalytics
		if err := tx.Where("session_id = ?", sessionID).First(&stored).Error; err != nil {
			return err
		}
		*row = stored
		return nil
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (s *Store) Get(ctx context.Context, sessionID string) (*SessionAnalytics, error) {
	var row SessionAnalytics
	err := s.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// List returns all snapshots, most recently created first.
func (s *Store) List(ctx context.Context) ([]SessionAnalytics, error) {
	var rows []SessionAnalytics
	err := s.db.WithContext(ctx).Order("created_at DESC").Order("id ASC").Find(&rows).Error
	return rows, err
}
