package models

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type EnvConfig struct {
	DatabaseURL    string        `env:"FEEDBACK_DATABASE_URL,required"`
	Port           string        `env:"FEEDBACK_PORT" envDefault:"3001"`
	Debug          bool          `env:"FEEDBACK_DEBUG"`
	JWTSecret      string        `env:"FEEDBACK_JWT_SECRET,required"`
	JWTTTL         time.Duration `env:"FEEDBACK_JWT_TTL" envDefault:"24h"`
	CORSOrigin     string        `env:"FEEDBACK_CORS_ORIGIN" envDefault:"*"`
	TrustProxy     bool          `env:"FEEDBACK_TRUST_PROXY"`
	RequestTimeout time.Duration `env:"FEEDBACK_REQUEST_TIMEOUT" envDefault:"5s"`
}

// ReadEnvConfig loads the optional dotenv files and then parses the
// environment. Variables already set in the process win over the files.
func ReadEnvConfig(dotenvFiles ...string) (EnvConfig, error) {
	for _, f := range dotenvFiles {
		err := godotenv.Load(f)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return EnvConfig{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
