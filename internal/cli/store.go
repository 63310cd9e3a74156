package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/matzehuels/connline/pkg/errors"
	"github.com/matzehuels/connline/pkg/regions"
)

// Defaults for region stores when the config leaves names out.
const (
	defaultRegionsKey        = "connline:regions"
	defaultRegionsDatabase   = "connline"
	defaultRegionsCollection = "regions"
)

// openRegionStore connects to the configured region store. With no URL it
// returns a nil store and a no-op close function.
func openRegionStore(ctx context.Context, cfg RegionsConfig) (string, regions.Store, func(), error) {
	noop := func() {}
	if cfg.URL == "" {
		return "", nil, noop, nil
	}
	if err := errors.ValidateURL(cfg.URL); err != nil {
		return "", nil, noop, err
	}

	switch {
	case strings.HasPrefix(cfg.URL, "redis://"), strings.HasPrefix(cfg.URL, "rediss://"):
		key := cfg.Key
		if key == "" {
			key = defaultRegionsKey
		}
		store, client, err := regions.OpenRedisStore(cfg.URL, key)
		if err != nil {
			return "", nil, noop, fmt.Errorf("open redis region store: %w", err)
		}
		return "redis", store, func() { _ = client.Close() }, nil

	case strings.HasPrefix(cfg.URL, "mongodb://"), strings.HasPrefix(cfg.URL, "mongodb+srv://"):
		db, coll := cfg.Database, cfg.Collection
		if db == "" {
			db = defaultRegionsDatabase
		}
		if coll == "" {
			coll = defaultRegionsCollection
		}
		store, client, err := regions.OpenMongoStore(ctx, cfg.URL, db, coll)
		if err != nil {
			return "", nil, noop, fmt.Errorf("open mongodb region store: %w", err)
		}
		return "mongo", store, func() { _ = client.Disconnect(context.Background()) }, nil
	}
	return "", nil, noop, errors.New(errors.ErrCodeUnsupported, "region store URL %q: only redis and mongodb are supported", cfg.URL)
}
