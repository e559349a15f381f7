package memcache_fx

import (
	"os"

	"go.uber.org/fx"

	"hoho/internal/infra"
	mem "hoho/pkg/memcache"
)

var Module = fx.Provide(provideFlowStore)

// provideFlowStore picks the redis-backed store when REDIS_URL is set so
// multi-step flows survive restarts and work across instances. The
// in-process store covers single-instance and local runs.
func provideFlowStore() mem.FlowStateStore {
	if os.Getenv("REDIS_URL") != "" {
		return infra.NewRedisFlowStore(infra.InitRedis())
	}
	return mem.NewFlowStates()
}
