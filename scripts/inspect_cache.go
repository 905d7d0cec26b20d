//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/cool-spots/internal/config"
	"github.com/cool-spots/internal/repository/cache"
)

// Печатает содержимое Redis-кеша спотов: количество по категориям и оставшийся TTL.
//
//	go run scripts/inspect_cache.go -host localhost -port 6379 -prefix cool-spots
func main() {
	host := flag.String("host", "localhost", "Redis host")
	port := flag.Int("port", 6379, "Redis port")
	password := flag.String("password", "", "Redis password")
	db := flag.Int("db", 0, "Redis DB")
	prefix := flag.String("prefix", "cool-spots", "cache key prefix")
	flag.Parse()

	rdb := cache.NewRedis(&config.RedisConfig{
		Host:     *host,
		Port:     *port,
		Password: *password,
		DB:       *db,
	}, *prefix, zap.NewNop())
	defer rdb.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Health(ctx); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	client := rdb.Client()
	key := rdb.Key(cache.SpotsKey)

	data, err := client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		fmt.Printf("%s: empty\n", key)
		return
	}
	if err != nil {
		log.Fatalf("Failed to read %s: %v", key, err)
	}

	var spots []struct {
		ID       string `json:"id"`
		Category string `json:"category"`
		District string `json:"district"`
	}
	if err := json.Unmarshal(data, &spots); err != nil {
		log.Fatalf("Failed to decode %s: %v", key, err)
	}

	byCategory := make(map[string]int)
	districts := make(map[string]struct{})
	for _, s := range spots {
		byCategory[s.Category]++
		if s.District != "" {
			districts[s.District] = struct{}{}
		}
	}

	ttl, _ := client.TTL(ctx, key).Result()

	fmt.Printf("%s: %d spots, %d districts, ttl %s\n", key, len(spots), len(districts), ttl)
	for category, count := range byCategory {
		fmt.Printf("  %-16s %d\n", category, count)
	}
}
