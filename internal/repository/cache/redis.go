package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/cool-spots/internal/config"
)

// Redis - подключение к Redis с общим префиксом ключей
type Redis struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

// NewRedis создаёт клиент по конфигурации. Соединение устанавливается лениво,
// доступность проверяется через Health.
func NewRedis(cfg *config.RedisConfig, prefix string, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	return NewRedisFromClient(client, prefix, logger)
}

// NewRedisFromClient оборачивает уже созданный клиент
func NewRedisFromClient(client *redis.Client, prefix string, logger *zap.Logger) *Redis {
	return &Redis{
		client: client,
		prefix: strings.TrimSuffix(prefix, ":"),
		logger: logger,
	}
}

// Key строит полное имя ключа: <prefix>:<part>:<part>
func (r *Redis) Key(parts ...string) string {
	name := strings.Join(parts, ":")
	if r.prefix == "" {
		return name
	}
	return r.prefix + ":" + name
}

// Health пингует Redis и логирует задержку
func (r *Redis) Health(ctx context.Context) error {
	start := time.Now()
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}

	r.logger.Debug("Redis ping", zap.Duration("latency", time.Since(start)))
	return nil
}

func (r *Redis) Close() error {
	r.logger.Info("Closing Redis connection")
	return r.client.Close()
}

func (r *Redis) Client() *redis.Client {
	return r.client
}
