package dto

type CreateSessionRequest struct {
	SessionID string `json:"sessionId" example:"session_1718000000000_k3j9x2a1b"`
}

type SessionResponse struct {
	ID            string `json:"id" example:"cs_9f2c1a"`
	SessionID     string `json:"sessionId" example:"session_1718000000000_k3j9x2a1b"`
	CreatedAt     string `json:"createdAt" example:"2024-01-15T10:30:00Z"`
	LastMessageAt string `json:"lastMessageAt" example:"2024-01-15T10:42:13Z"`
}

type CreateMessageRequest struct {
	SessionID string `json:"sessionId" example:"session_1718000000000_k3j9x2a1b"`
	Role      string `json:"role" example:"user" enums:"user,assistant"`
	Content   string `json:"content" example:"What does your product cost?"`
}

type MessageResponse struct {
	ID        string `json:"id" example:"msg_41be07"`
	SessionID string `json:"sessionId" example:"session_1718000000000_k3j9x2a1b"`
	Role      string `json:"role" example:"assistant"`
	Content   string `json:"content" example:"Plans start at $29 per month."`
	Timestamp string `json:"timestamp" example:"2024-01-15T10:30:05Z"`
}
