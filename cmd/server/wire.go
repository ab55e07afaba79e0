//go:build wireinject
// +build wireinject

package main

import (
	"user-auth-api/internal/config"
	"user-auth-api/internal/controller"
	"user-auth-api/internal/middleware"
	"user-auth-api/internal/repository"
	"user-auth-api/internal/router"
	"user-auth-api/internal/service"
	"user-auth-api/pkg/jwtauth"
	"user-auth-api/pkg/logger"
	"user-auth-api/pkg/redis"

	"github.com/google/wire"
)

var configSet = wire.NewSet(
	config.LoadConfig,
)

var loggerSet = wire.NewSet(
	logger.NewZapLogger,
	wire.Bind(new(logger.Logger), new(*logger.ZapLogger)),
)

var redisSet = wire.NewSet(
	redis.NewRedisClient,
)

var repositorySet = wire.NewSet(
	repository.NewMemoryUserRepository,
	wire.Bind(new(repository.UserRepository), new(*repository.MemoryUserRepository)),
)

var tokenSet = wire.NewSet(
	jwtauth.NewTokenService,
)

var serviceSet = wire.NewSet(
	service.NewAuthService,
	wire.Bind(new(service.AuthService), new(*service.AuthServiceImpl)),
	service.NewUserService,
	wire.Bind(new(service.UserService), new(*service.UserServiceImpl)),
)

var controllerSet = wire.NewSet(
	controller.NewAuthController,
	controller.NewUserController,
)

var middlewareSet = wire.NewSet(
	middleware.NewAuthMiddleware,
	middleware.NewRateLimiterMiddleware,
)

var routerSet = wire.NewSet(
	router.NewRouter,
)

// InitializeApp wires the whole application together.
func InitializeApp(configPath string) (*router.Router, func(), error) {
	wire.Build(
		configSet,
		loggerSet,
		redisSet,
		repositorySet,
		tokenSet,
		serviceSet,
		controllerSet,
		middlewareSet,
		routerSet,
	)
	return nil, nil, nil
}
