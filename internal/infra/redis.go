package infra

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	mem "hoho/pkg/memcache"
)

const flowKeyPrefix = "flow:"

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func InitRedis() *redis.Client {
	opt, err := redis.ParseURL(envOr("REDIS_URL", "redis://localhost:6379/0"))
	if err != nil {
		log.Printf("Error parsing REDIS_URL: %v", err)
		log.Fatal("Error connecting to redis")
	}

	opt.PoolSize = 10
	opt.MinIdleConns = 5
	opt.MaxRetries = 3
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Error pinging redis: %v", err)
		log.Fatal("Error connecting to redis")
	}

	return client
}

// RedisFlowStore keeps FlowState records in redis so multi-step flows
// survive process restarts and work across instances.
type RedisFlowStore struct {
	client *redis.Client
}

func NewRedisFlowStore(client *redis.Client) *RedisFlowStore {
	return &RedisFlowStore{client: client}
}

func (s *RedisFlowStore) Put(token string, state mem.FlowState, ttl time.Duration) {
	raw, err := json.Marshal(state)
	if err != nil {
		log.Printf("flow store: marshal failed: %v", err)
		return
	}
	if err := s.client.Set(context.Background(), flowKeyPrefix+token, raw, ttl).Err(); err != nil {
		log.Printf("flow store: set failed: %v", err)
	}
}

func (s *RedisFlowStore) Get(token string) (mem.FlowState, bool) {
	raw, err := s.client.Get(context.Background(), flowKeyPrefix+token).Bytes()
	if err != nil {
		return mem.FlowState{}, false
	}

	var state mem.FlowState
	if err := json.Unmarshal(raw, &state); err != nil {
		log.Printf("flow store: unmarshal failed: %v", err)
		return mem.FlowState{}, false
	}
	return state, true
}

func (s *RedisFlowStore) Clear(token string) {
	if err := s.client.Del(context.Background(), flowKeyPrefix+token).Err(); err != nil {
		log.Printf("flow store: del failed: %v", err)
	}
}
