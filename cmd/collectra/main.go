package main

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/CollectraHQ/Collectra/app/repository"
	"github.com/CollectraHQ/Collectra/internal/pkg/alerting"
	"github.com/CollectraHQ/Collectra/internal/pkg/cache"
	"github.com/CollectraHQ/Collectra/internal/pkg/database"
	"github.com/CollectraHQ/Collectra/internal/pkg/env"
	"github.com/CollectraHQ/Collectra/internal/pkg/router"
	"github.com/CollectraHQ/Collectra/internal/pkg/slasweep"
)

func main() {
	app, sweeps := NewApplication()
	sweeps.Start()

	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))

	// log.Fatal skips deferred calls, so stop the sweep worker first.
	sweeps.Stop()
	log.Fatal(err)
}

func NewApplication() (*fiber.App, *slasweep.Manager) {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()
	repository.InitializeFactory(database.GetDB())

	app := fiber.New(fiber.Config{
		AppName:   "Collectra",
		BodyLimit: 1 << 20,
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// ROUTER
	router.InstallRouter(app)

	return app, newSweepManager()
}

func newSweepManager() *slasweep.Manager {
	repos := repository.GetGlobalRepositories()
	alerts := alerting.NewService(repos.Alert, cacheClient{})

	sweeper := slasweep.NewSweeper(repos.Bank, repos.Collection, repos.Account, alerts, nil)

	interval := slasweep.DefaultInterval
	if raw := env.GetEnv("SWEEP_INTERVAL_MINUTES", ""); raw != "" {
		if minutes, err := strconv.Atoi(raw); err == nil && minutes > 0 {
			interval = time.Duration(minutes) * time.Minute
		}
	}

	return slasweep.NewManager(sweeper, interval)
}

// cacheClient adapts the cache package to the alerting service.
type cacheClient struct{}

func (cacheClient) Get(key string) (string, error) {
	return cache.Get(key)
}

func (cacheClient) Set(key string, value interface{}, expiration time.Duration) error {
	return cache.Set(key, value, expiration)
}
