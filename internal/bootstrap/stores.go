package bootstrap

import (
	"github.com/eleven-am/chat-analytics/internal/analytics"
	"github.com/eleven-am/chat-analytics/internal/chat"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func ProvideChatStore(db *gorm.DB) *chat.Store {
	return chat.NewStore(db)
}

func ProvideAnalyticsStore(db *gorm.DB) *analytics.Store {
	return analytics.NewStore(db)
}

// RunMigrations creates sessions before the tables that reference them.
func RunMigrations(chatStore *chat.Store, analyticsStore *analytics.Store) error {
	if err := chatStore.Migrate(); err != nil {
		return err
	}
	return analyticsStore.Migrate()
}

var StoresModule = fx.Options(
	fx.Provide(
		ProvideChatStore,
		ProvideAnalyticsStore,
	),
	fx.Invoke(RunMigrations),
)
