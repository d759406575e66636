package authz

import (
	"bizhub/internal/database"
	"bizhub/pkg/config"
	"bizhub/pkg/logger"
	"sync"
)

// 全局引擎单例
var (
	defaultEngine *Engine
	engineOnce    sync.Once
)

// GetEngine 获取全局决策引擎实例
// 首次调用时装配解析器、权限缓存和资源注册表
func GetEngine() *Engine {
	engineOnce.Do(func() {
		db := database.GetDB()
		log := logger.GetLogger()

		cache := NewPermissionCache(database.GetRedisClient(), config.GetConfig().Redis.Prefix, log)
		resolver := NewResolver(db, cache, log)

		registry := NewRegistry()
		RegisterDefaultResources(registry, db)

		defaultEngine = NewEngine(resolver, registry, cache, log)
	})
	return defaultEngine
}
