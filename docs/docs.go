// Package docs holds the swagger document served at /swagger. It mirrors
// the swag annotations on the chat and analytics handlers; regenerate with
// `swag init -g cmd/server/main.go` after changing them.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/analytics": {
            "get": {
                "description": "Computes totals, average response time, hourly message histogram and recent sessions per day",
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Aggregated chat analytics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/analytics.Summary"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/shared.APIError"}}
                }
            },
            "post": {
                "description": "Creates or replaces the analytics snapshot of a session",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Report session counters",
                "parameters": [
                    {"description": "Session counters", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RecordAnalyticsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionAnalyticsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/shared.APIError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/shared.APIError"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/shared.APIError"}}
                }
            }
        },
        "/analytics/{sessionId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Get session analytics",
                "parameters": [
                    {"type": "string", "description": "Client session identifier", "name": "sessionId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionAnalyticsResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/shared.APIError"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/shared.APIError"}}
                }
            }
        },
        "/chat/messages": {
            "post": {
                "description": "Persists a user or assistant message and bumps the session's last activity time",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Append a chat message",
                "parameters": [
                    {"description": "Message", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateMessageRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/shared.APIError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/shared.APIError"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/shared.APIError"}}
                }
            }
        },
        "/chat/sessions": {
            "post": {
                "description": "Registers a client-generated session identifier on first contact",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Create a chat session",
                "parameters": [
                    {"description": "Session identifier", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateSessionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/shared.APIError"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/shared.APIError"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/shared.APIError"}}
                }
            }
        },
        "/chat/sessions/{sessionId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Get a chat session",
                "parameters": [
                    {"type": "string", "description": "Client session identifier", "name": "sessionId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/shared.APIError"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/shared.APIError"}}
                }
            }
        },
        "/chat/sessions/{sessionId}/messages": {
            "get": {
                "description": "Returns the session's messages ordered by timestamp",
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "List session messages",
                "parameters": [
                    {"type": "string", "description": "Client session identifier", "name": "sessionId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.MessageResponse"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/shared.APIError"}}
                }
            }
        }
    },
    "definitions": {
        "analytics.DateCount": {
            "type": "object",
            "properties": {
                "count": {"type": "integer", "example": 12},
                "date": {"type": "string", "example": "2024-01-15"}
            }
        },
        "analytics.HourCount": {
            "type": "object",
            "properties": {
                "count": {"type": "integer", "example": 42},
                "hour": {"type": "integer", "example": 14}
            }
        },
        "analytics.Summary": {
            "type": "object",
            "properties": {
                "avgResponseTime": {"type": "number", "example": 2.75},
                "avgSessionDuration": {"type": "number", "example": 183.5},
                "messagesByHour": {"type": "array", "items": {"$ref": "#/definitions/analytics.HourCount"}},
                "responseCount": {"type": "integer", "example": 410},
                "sessionsByDate": {"type": "array", "items": {"$ref": "#/definitions/analytics.DateCount"}},
                "totalMessages": {"type": "integer", "example": 904},
                "totalSessions": {"type": "integer", "example": 128}
            }
        },
        "dto.CreateMessageRequest": {
            "type": "object",
            "properties": {
                "content": {"type": "string", "example": "What does your product cost?"},
                "role": {"type": "string", "enum": ["user", "assistant"], "example": "user"},
                "sessionId": {"type": "string", "example": "session_1718000000000_k3j9x2a1b"}
            }
        },
        "dto.CreateSessionRequest": {
            "type": "object",
            "properties": {
                "sessionId": {"type": "string", "example": "session_1718000000000_k3j9x2a1b"}
            }
        },
        "dto.MessageResponse": {
            "type": "object",
            "properties": {
                "content": {"type": "string", "example": "Plans start at $29 per month."},
                "id": {"type": "string", "example": "msg_41be07"},
                "role": {"type": "string", "example": "assistant"},
                "sessionId": {"type": "string", "example": "session_1718000000000_k3j9x2a1b"},
                "timestamp": {"type": "string", "example": "2024-01-15T10:30:05Z"}
            }
        },
        "dto.RecordAnalyticsRequest": {
            "type": "object",
            "properties": {
                "messageCount": {"type": "integer", "example": 6},
                "sessionDuration": {"type": "integer", "example": 184},
                "sessionId": {"type": "string", "example": "session_1718000000000_k3j9x2a1b"}
            }
        },
        "dto.SessionAnalyticsResponse": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string", "example": "2024-01-15T10:30:00Z"},
                "id": {"type": "string", "example": "ca_77d0e4"},
                "messageCount": {"type": "integer", "example": 6},
                "sessionDuration": {"type": "integer", "example": 184},
                "sessionId": {"type": "string", "example": "session_1718000000000_k3j9x2a1b"}
            }
        },
        "dto.SessionResponse": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string", "example": "2024-01-15T10:30:00Z"},
                "id": {"type": "string", "example": "cs_9f2c1a"},
                "lastMessageAt": {"type": "string", "example": "2024-01-15T10:42:13Z"},
                "sessionId": {"type": "string", "example": "session_1718000000000_k3j9x2a1b"}
            }
        },
        "shared.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "invalid_request"},
                "details": {"type": "object"},
                "message": {"type": "string", "example": "Invalid request body"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Chat Analytics API",
	Description:      "Session, message and analytics endpoints backing the marketing chat widget",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
