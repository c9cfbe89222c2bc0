// Package classification Event Manager Service.
//
// Role based event management backend with realtime task updates
//
//	Version: 0.1.0
//
//	Consumes:
//	  - application/json
//
//	Produces:
//	  - application/json
//
//	SecurityDefinitions:
//	  basicAuth:
//	    type: basic
//	  oauth2:
//	    type: oauth2
//	    tokenUrl: /tokens
//	    refreshUrl: /refresh
//	    flow: password
//
// swagger:meta
package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gatherly/event-manager/internal/handler"
	appLog "github.com/gatherly/event-manager/internal/log"
	"github.com/gatherly/event-manager/internal/middleware"
	"github.com/gatherly/event-manager/internal/server"
	"github.com/gatherly/event-manager/pkg/config"
	"github.com/gatherly/event-manager/pkg/event"
	"github.com/gatherly/event-manager/pkg/realtime"
	"github.com/gatherly/event-manager/pkg/storage"
	"github.com/gatherly/event-manager/pkg/task"
	"github.com/gatherly/event-manager/pkg/token"
	"github.com/gatherly/event-manager/pkg/user"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.New()

	logger := newLogger(cfg.Environment)
	slog.SetDefault(logger)

	if err := handler.RegisterValidation(); err != nil {
		return err
	}

	db, err := storage.NewDatabase(logger, cfg.Postgresql)
	if err != nil {
		return err
	}

	redisClient, err := storage.NewRedis(cfg.Redis.Host, cfg.Redis.Port)
	if err != nil {
		return err
	}

	privateKey, err := cfg.Authentication.Keys.GetPrivateKey()
	if err != nil {
		return err
	}

	tokenRepository := token.NewRepository(redisClient)
	tokenService := token.NewService(
		logger,
		tokenRepository,
		privateKey,
		cfg.Authentication.AccessTokenExpirationSeconds,
		cfg.Authentication.RefreshTokenSecretKey,
		cfg.Authentication.RefreshTokenExpirationSeconds,
	)

	userRepository := user.NewRepository(db)
	userService := user.NewService(userRepository)
	userHandler := user.NewHandler(cfg, userService, tokenService)

	admin := cfg.AdminUser
	if err := user.CreateAdminUser(admin.Name, admin.Email, admin.Password, userService); err != nil {
		return err
	}

	eventRepository := event.NewRepository(db)
	eventService := event.NewService(eventRepository, userService)
	eventHandler := event.NewHandler(eventService)

	broker := realtime.NewBroker()
	realtimeHandler := realtime.NewHandler(broker)

	taskRepository := task.NewRepository(db)
	taskService := task.NewService(taskRepository, userService, broker)
	taskHandler := task.NewHandler(taskService)

	authenticationMiddleware := middleware.NewAuthentication(logger, &privateKey.PublicKey, userService)
	authorizationMiddleware := middleware.NewAuthorization(logger, userService)

	r := server.GetEngine(
		logger,
		cfg.BasePath,
		authenticationMiddleware,
		authorizationMiddleware,
		userHandler,
		eventHandler,
		taskHandler,
		realtimeHandler,
	)

	logger.Info("Listening", "port", cfg.ServerPort, "basePath", cfg.BasePath)
	return http.ListenAndServe(fmt.Sprintf(":%d", cfg.ServerPort), r)
}

func newLogger(environment string) *slog.Logger {
	prettyPrint := environment == "development"
	jsonHandler := appLog.NewPrettyJSONHandler(os.Stdout, &appLog.PrettyJSONHandlerOptions{PrettyPrint: prettyPrint})
	return slog.New(appLog.New(jsonHandler))
}
