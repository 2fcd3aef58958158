// Package store opens the launch store selected by configuration.
package store

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/zhouzirui/launchboard/backend/internal/config"
	"github.com/zhouzirui/launchboard/backend/internal/model/launch"
	"github.com/zhouzirui/launchboard/backend/internal/store/dynamo"
	"github.com/zhouzirui/launchboard/backend/internal/store/sqlite"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open returns the configured store and a closer for its resources.
func Open(ctx context.Context, cfg config.StoreConfig) (launch.Store, io.Closer, error) {
	switch cfg.Driver {
	case config.DriverDynamoDB:
		s, err := dynamo.NewFromConfig(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Region == "" {
			log.Printf("[store] AWS_REGION not set, relying on the default AWS config chain")
		}
		log.Printf("[store] dynamodb table=%s", cfg.Table)
		return s, nopCloser{}, nil

	case config.DriverSQLite:
		s, err := sqlite.Open(cfg.SQLitePath, cfg.Table)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("[store] sqlite path=%s table=%s", cfg.SQLitePath, cfg.Table)
		return s, s, nil

	case config.DriverMemory:
		var items []launch.Launch
		if cfg.FixturesPath != "" {
			loaded, err := launch.LoadFixtures(cfg.FixturesPath)
			if err != nil {
				return nil, nil, err
			}
			items = loaded
		}
		log.Printf("[store] memory store with %d fixture launches", len(items))
		return launch.NewMemoryStore(items), nopCloser{}, nil
	}

	return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.Driver)
}
