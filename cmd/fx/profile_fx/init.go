package profile_fx

import (
	"go.uber.org/fx"

	"hoho/internal/repositories"
	"hoho/internal/services"
	mem "hoho/pkg/memcache"
)

var Module = fx.Provide(provideProfileService)

func provideProfileService(
	userRepo repositories.UserRepository,
	notifier services.NotifierInterface,
	flows mem.FlowStateStore,
) services.ProfileServiceInterface {
	return services.NewProfileService(userRepo, notifier, flows)
}
