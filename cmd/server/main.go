package main

import (
	_ "github.com/eleven-am/chat-analytics/docs"
	"github.com/eleven-am/chat-analytics/internal/bootstrap"
)

// @title Chat Analytics API
// @version 1.0.0
// @description Session, message and analytics endpoints backing the marketing chat widget

// @BasePath /api

func main() {
	bootstrap.Run()
}
