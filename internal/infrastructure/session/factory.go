package session

import (
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/aidechat/backend/internal/domain/chat"
	"github.com/aidechat/backend/internal/infrastructure/config"
	"github.com/aidechat/backend/internal/infrastructure/log"
)

// 存储驱动名
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// NewStore 按配置创建会话存储
func NewStore(cfg *config.Config) (chat.SessionStore, error) {
	logger := log.NewModuleLogger("session", "factory")

	switch strings.ToLower(cfg.Session.Driver) {
	case DriverMemory, "":
		logger.Info("Using in-memory session store")
		return NewMemoryStore(), nil

	case DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr: cfg.Session.RedisAddr,
		})
		logger.Info("Using redis session store",
			"addr", cfg.Session.RedisAddr,
		)
		return NewRedisStore(client), nil

	default:
		return nil, fmt.Errorf("unknown session store driver: %q", cfg.Session.Driver)
	}
}
