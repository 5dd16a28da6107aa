package config

import (
	"fmt"
	"os"
	"path/filepath"

	env "github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// Cfg holds all runtime configuration loaded from environment variables.
type Cfg struct {
	// Storage
	DBPath          string `env:"TONECHECK_DB_PATH"`
	ArtifactBackend string `env:"TONECHECK_ARTIFACT_BACKEND,default=sqlite" validate:"oneof=sqlite file"`
	ModelDir        string `env:"TONECHECK_MODEL_DIR,default=model" validate:"required"`

	// Server
	ListenHost         string `env:"LISTEN_HOST,default=0.0.0.0"`
	Port               int    `env:"PORT,default=5000" validate:"gt=0,lte=65535"`
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS,default=*"`
	MaxTextLength      int    `env:"MAX_TEXT_LENGTH,default=10000" validate:"gte=0"`

	// Logging
	LogLevel string `env:"LOG_LEVEL,default=info"`
	LogFile  string `env:"LOG_FILE"`

	// Training
	MaxFeatures    int     `env:"MAX_FEATURES,default=5000" validate:"gte=0"`
	MinTokenLength int     `env:"MIN_TOKEN_LENGTH,default=2" validate:"gte=1"`
	Alpha          float64 `env:"SMOOTHING_ALPHA,default=1.0" validate:"gte=0"`
	TestSize       float64 `env:"TEST_SIZE,default=0.2" validate:"gte=0,lt=1"`
	SplitSeed      int     `env:"SPLIT_SEED,default=42" validate:"gte=0"`
}

// ListenAddr returns host:port for the HTTP server.
func (c *Cfg) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.ListenHost, c.Port)
}

// Load reads .env (if present) then environment variables and returns Cfg.
func Load() (*Cfg, error) {
	// Best-effort: load .env from current directory
	_ = godotenv.Load()

	var cfg Cfg
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBPath()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints. It is called again after CLI flags are
// applied on top of the environment.
func (c *Cfg) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func DefaultDBPath() string {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(".", "tonecheck.db")
	}
	return filepath.Join(cacheDir, "tonecheck", "tonecheck.db")
}
