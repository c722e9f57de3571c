package chat

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

type Session struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	SessionID     string    `gorm:"uniqueIndex;not null" json:"sessionId"`
	CreatedAt     time.Time `gorm:"not null;index" json:"createdAt"`
	LastMessageAt time.Time `gorm:"not null" json:"lastMessageAt"`

	Messages []Message `gorm:"foreignKey:SessionID;references:SessionID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Session) TableName() string {
	return "chat_sessions"
}

// Message rows are append-only. Seq records insertion order and breaks
// timestamp ties.
type Message struct {
	Seq       int64     `gorm:"primaryKey;autoIncrement" json:"-"`
	ID        string    `gorm:"uniqueIndex;not null" json:"id"`
	SessionID string    `gorm:"not null;index:idx_chat_messages_session_ts,priority:1" json:"sessionId"`
	Role      Role      `gorm:"not null" json:"role"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Timestamp time.Time `gorm:"not null;index:idx_chat_messages_session_ts,priority:2" json:"timestamp"`
}

func (Message) TableName() string {
	return "chat_messages"
}
