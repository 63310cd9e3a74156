package cli

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/connline/pkg/errors"
	"github.com/matzehuels/connline/pkg/pipeline"
)

// Config is the CLI configuration file:
//
//	[pipeline]
//	formats = ["svg", "png"]
//	style = "dashed"
//	margin = 4
//
//	[cache]
//	redis = "redis://localhost:6379/0"
//
//	[regions]
//	url = "mongodb://localhost:27017"
//	database = "connline"
//	collection = "regions"
//
//	[server]
//	addr = ":8080"
//	timeout = "15s"
//	scene_dir = "/srv/scenes"
type Config struct {
	Pipeline pipeline.Options `toml:"pipeline"`
	Cache    CacheConfig      `toml:"cache"`
	Regions  RegionsConfig    `toml:"regions"`
	Server   ServerConfig     `toml:"server"`

	found bool
}

// CacheConfig selects the cache backend. Redis wins over Dir.
type CacheConfig struct {
	Disabled bool   `toml:"disabled"`
	Dir      string `toml:"dir"`
	Redis    string `toml:"redis"`
}

// RegionsConfig points at an out-of-process region store. The URL scheme
// picks the backend: redis:// and rediss:// read a hash named Key,
// mongodb:// and mongodb+srv:// read Database.Collection.
type RegionsConfig struct {
	URL        string `toml:"url"`
	Key        string `toml:"key"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr     string        `toml:"addr"`
	MaxBody  int64         `toml:"max_body"`
	Timeout  time.Duration `toml:"timeout"`
	SceneDir string        `toml:"scene_dir"`
}

// loadConfig reads the TOML file at path. A missing file yields an empty
// config unless it was named explicitly. Unknown keys are rejected.
func loadConfig(path string, explicit bool) (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "config file %s", path)
		}
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown key %q", path, undecoded[0].String())
	}
	if cfg.Regions.URL != "" {
		if err := errors.ValidateURL(cfg.Regions.URL); err != nil {
			return nil, err
		}
	}
	if cfg.Cache.Redis != "" {
		if err := errors.ValidateURL(cfg.Cache.Redis); err != nil {
			return nil, err
		}
	}
	cfg.found = true
	return cfg, nil
}
