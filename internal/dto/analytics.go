package dto

type RecordAnalyticsRequest struct {
	SessionID       string `json:"sessionId" example:"session_1718000000000_k3j9x2a1b"`
	MessageCount    *int64 `json:"messageCount,omitempty" example:"6"`
	SessionDuration *int64 `json:"sessionDuration,omitempty" example:"184"`
}

type SessionAnalyticsResponse struct {
	ID              string `json:"id" example:"ca_77d0e4"`
	SessionID       string `json:"sessionId" example:"session_1718000000000_k3j9x2a1b"`
	MessageCount    int64  `json:"messageCount" example:"6"`
	SessionDuration int64  `json:"sessionDuration" example:"184"`
	CreatedAt       string `json:"createdAt" example:"2024-01-15T10:30:00Z"`
}
