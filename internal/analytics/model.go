package analytics

import (
	"time"

	"github.com/eleven-am/chat-analytics/internal/chat"
)

// SessionAnalytics is the latest counter snapshot a client reported for
// one session. There is at most one row per session.
type SessionAnalytics struct {
	ID              string    `gorm:"primaryKey" json:"id"`
	SessionID       string    `gorm:"uniqueIndex;not null" json:"sessionId"`
	MessageCount    int64     `gorm:"not null;default:0" json:"messageCount"`
	SessionDuration int64     `gorm:"not null;default:0" json:"sessionDuration"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	Session *chat.Session `gorm:"foreignKey:SessionID;references:SessionID;constraint:OnDelete:CASCADE" json:"-"`
}

func (SessionAnalytics) TableName() string {
	return "chat_analytics"
}

type HourCount struct {
	Hour  int   `json:"hour" example:"14"`
	Count int64 `json:"count" example:"42"`
}

type DateCount struct {
	Date  string `json:"date" example:"2024-01-15"`
	Count int64  `json:"count" example:"12"`
}

// Summary is computed on demand and never persisted.
type Summary struct {
	TotalSessions      int64       `json:"totalSessions" example:"128"`
	TotalMessages      int64       `json:"totalMessages" example:"904"`
	AvgSessionDuration float64     `json:"avgSessionDuration" example:"183.5"`
	AvgResponseTime    float64     `json:"avgResponseTime" example:"2.75"`
	ResponseCount      int64       `json:"responseCount" example:"410"`
	MessagesByHour     []HourCount `json:"messagesByHour"`
	SessionsByDate     []DateCount `json:"sessionsByDate"`
}

// Input is a read snapshot of everything the aggregator looks at.
type Input struct {
	Sessions  []chat.Session
	Messages  []chat.Message
	Snapshots []SessionAnalytics
}
