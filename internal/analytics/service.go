package analytics

import (
	"context"
	"errors"
	"log/slog"

	"github.com/eleven-am/chat-analytics/internal/chat"
)

// ConversationSource is the read side of the session and message stores.
type ConversationSource interface {
	ListSessions(ctx context.Context) ([]chat.Session, error)
	ListMessages(ctx context.Context) ([]chat.Message, error)
}

// SnapshotStore is the persistence the service needs for per-session
// counters.
type SnapshotStore interface {
	Upsert(ctx context.Context, sessionID string, messageCount, duration int64) (*SessionAnalytics, error)
	Get(ctx context.Context, sessionID string) (*SessionAnalytics, error)
	List(ctx context.Context) ([]SessionAnalytics, error)
}

type Service struct {
	conversations ConversationSource
	snapshots     SnapshotStore
	cache         *Cache
	opts          Options
	logger        *slog.Logger
}

func NewService(conversations ConversationSource, snapshots SnapshotStore, cache *Cache, opts Options, logger *slog.Logger) *Service {
	return &Service{
		conversations: conversations,
		snapshots:     snapshots,
		cache:         cache,
		opts:          opts,
		logger:        logger,
	}
}

// Summary serves the cached summary for the current generation or
// recomputes it from the stores.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	gen, genErr := s.cache.Generation(ctx)
	if genErr == nil {
		cached, err := s.cache.Get(ctx, gen)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			s.logger.Warn("summary cache read failed", "error", err)
		}
	} else if !errors.Is(genErr, ErrCacheMiss) {
		s.logger.Warn("summary cache generation read failed", "error", genErr)
	}

	in, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	summary := Aggregate(in, s.opts)

	if genErr == nil {
		if err := s.cache.Set(ctx, gen, &summary); err != nil {
			s.logger.Warn("summary cache write failed", "error", err)
		}
	}
	return &summary, nil
}

func (s *Service) snapshot(ctx context.Context) (Input, error) {
	sessions, err := s.conversations.ListSessions(ctx)
	if err != nil {
		return Input{}, err
	}
	messages, err := s.conversations.ListMessages(ctx)
	if err != nil {
		return Input{}, err
	}
	snapshots, err := s.snapshots.List(ctx)
	if err != nil {
		return Input{}, err
	}
	return Input{Sessions: sessions, Messages: messages, Snapshots: snapshots}, nil
}

func (s *Service) RecordSnapshot(ctx context.Context, sessionID string, messageCount, duration int64) (*SessionAnalytics, error) {
	row, err := s.snapshots.Upsert(ctx, sessionID, messageCount, duration)
	if err != nil {
		return nil, err
	}
	s.Invalidate(ctx)
	return row, nil
}

func (s *Service) GetSnapshot(ctx context.Context, sessionID string) (*SessionAnalytics, error) {
	return s.snapshots.Get(ctx, sessionID)
}

// Invalidate moves the cache to a new generation. Failures are logged,
// the old entry then expires on its own.
func (s *Service) Invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("summary cache invalidation failed", "error", err)
	}
}
