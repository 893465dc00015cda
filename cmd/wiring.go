package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/chrisdamba/lunchrush/internal/factories"
	"github.com/chrisdamba/lunchrush/internal/logger"
	"github.com/chrisdamba/lunchrush/internal/models"
	"github.com/chrisdamba/lunchrush/internal/repositories"
	"github.com/chrisdamba/lunchrush/internal/repositories/file"
	"github.com/chrisdamba/lunchrush/internal/repositories/postgres"
	"github.com/chrisdamba/lunchrush/internal/simulator"
)

func newLogger(cfg *models.Config) (*logger.Logger, error) {
	return logger.New(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		OutputPath: cfg.Log.OutputPath,
	})
}

// openSessionStore opens the configured session store. The caller closes it.
func openSessionStore(ctx context.Context, cfg *models.Config) (repositories.SessionRepository, error) {
	switch cfg.Storage.Driver {
	case models.StorageDriverFile:
		return file.Open(cfg.Storage.FilePath)
	case models.StorageDriverPostgres:
		return postgres.Open(ctx, cfg.Database.DSN())
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Storage.Driver)
	}
}

// newRestaurant builds the turn engine from the config. Seed 0 plays a
// different game every time.
func newRestaurant(cfg *models.Config, playerName string, log *logger.Logger) (*simulator.Restaurant, error) {
	seating, err := simulator.SeatingPolicyByName(cfg.SeatingPolicy)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return simulator.NewRestaurant(playerName,
		simulator.WithRandomSource(simulator.NewRandomSource(seed)),
		simulator.WithCustomerFactory(factories.NewCustomerFactory(seed)),
		simulator.WithSeatingPolicy(seating),
		simulator.WithLogger(log.Named("restaurant")),
	), nil
}
