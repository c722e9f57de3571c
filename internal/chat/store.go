package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eleven-am/chat-analytics/internal/shared"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&Session{}, &Message{})
}

func (s *Store) CreateSession(ctx context.Context, sess *Session) error {
	if sess.SessionID == "" {
		return shared.ErrInvalid
	}
	if sess.ID == "" {
		sess.ID = shared.NewID(shared.PrefixSession)
	}
	now := time.Now().UTC()
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = now
	}
	if sess.LastMessageAt.IsZero() {
		sess.LastMessageAt = sess.CreatedAt
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Session{}).Where("session_id = ?", sess.SessionID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return shared.ErrConflict
		}
		err := tx.Create(sess).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrConflict
		}
		return err
	})
}

func (s *Store) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	var sess Session
	err := s.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&sess).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// CreateMessage appends a message and moves the owning session's
// LastMessageAt forward in the same transaction.
func (s *Store) CreateMessage(ctx context.Context, msg *Message) error {
	if !msg.Role.Valid() {
		return fmt.Errorf("%w: role %q", shared.ErrInvalid, msg.Role)
	}
	if msg.ID == "" {
		msg.ID = shared.NewID(shared.PrefixMessage)
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Session{}).Where("session_id = ?", msg.SessionID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}

		msg.Seq = 0
		if err := tx.Create(msg).Error; err != nil {
			return err
		}

		return touch(tx, msg.SessionID, msg.Timestamp)
	})
}

func touch(tx *gorm.DB, sessionID string, at time.Time) error {
	result := tx.Model(&Session{}).
		Where("session_id = ?", sessionID).
		Update("last_message_at", at.UTC())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (s *Store) ListSessionMessages(ctx context.Context, sessionID string) ([]Message, error) {
	var messages []Message
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("timestamp ASC").Order("seq ASC").
		Find(&messages).Error
	return messages, err
}

func (s *Store) ListSessions(ctx context.Context) ([]Session, error) {
	var sessions []Session
	err := s.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").Find(&sessions).Error
	return sessions, err
}

// ListMessages returns every message in insertion order.
func (s *Store) ListMessages(ctx context.Context) ([]Message, error) {
	var messages []Message
	err := s.db.WithContext(ctx).Order("seq ASC").Find(&messages).Error
	return messages, err
}

func (s *Store) Counts(ctx context.Context) (sessions, messages int64, err error) {
	if err = s.db.WithContext(ctx).Model(&Session{}).Count(&sessions).Error; err != nil {
		return 0, 0, err
	}
	if err = s.db.WithContext(ctx).Model(&Message{}).Count(&messages).Error; err != nil {
		return 0, 0, err
	}
	return sessions, messages, nil
}
