package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	env_utils "taskhive/internal/util/env"
	"taskhive/internal/util/logger"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

var log = logger.GetLogger()

type EnvVariables struct {
	IsTesting   bool
	DatabaseDsn string            `env:"DATABASE_DSN" required:"true"`
	EnvMode     env_utils.EnvMode `env:"ENV_MODE"     required:"true"`
	ServerPort  string            `env:"SERVER_PORT"  env-default:"4010"`
	// cache
	ValkeyHost     string `env:"VALKEY_HOST"     required:"true"`
	ValkeyPort     string `env:"VALKEY_PORT"     required:"true"`
	ValkeyUsername string `env:"VALKEY_USERNAME" required:"false"`
	ValkeyPassword string `env:"VALKEY_PASSWORD" required:"false"`
	ValkeyIsSsl    bool   `env:"VALKEY_IS_SSL"   required:"true"`
	// google oauth
	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"     required:"false"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET" required:"false"`
	GoogleRedirectURL  string `env:"GOOGLE_REDIRECT_URL"  required:"false"`
	FrontendURL        string `env:"FRONTEND_URL"         env-default:"http://localhost:3000"`
	// AI completion provider (any OpenAI-compatible endpoint)
	AIApiKey  string `env:"AI_API_KEY"  required:"false"`
	AIBaseURL string `env:"AI_BASE_URL" required:"false"`
	AIModel   string `env:"AI_MODEL"    env-default:"gpt-4o-mini"`
}

var (
	env  EnvVariables
	once sync.Once
)

func GetEnv() EnvVariables {
	once.Do(loadEnvVariables)
	return env
}

func loadEnvVariables() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Warn("could not get current working directory", "error", err)
		cwd = "."
	}

	moduleRoot := cwd
	for {
		if _, err := os.Stat(filepath.Join(moduleRoot, "go.mod")); err == nil {
			break
		}

		parent := filepath.Dir(moduleRoot)
		if parent == moduleRoot {
			break
		}

		moduleRoot = parent
	}

	envPaths := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(moduleRoot, ".env"),
	}

	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			log.Info("Loaded .env", "path", path)
			break
		}
	}

	err = cleanenv.ReadEnv(&env)
	if err != nil {
		log.Error("Configuration could not be loaded", "error", err)
		os.Exit(1)
	}

	for _, arg := range os.Args {
		if strings.Contains(arg, "test") {
			env.IsTesting = true
			break
		}
	}

	if env.DatabaseDsn == "" {
		log.Error("DATABASE_DSN is empty")
		os.Exit(1)
	}

	if env.EnvMode != env_utils.EnvModeDevelopment && env.EnvMode != env_utils.EnvModeProduction {
		log.Error("ENV_MODE is invalid", "mode", env.EnvMode)
		os.Exit(1)
	}

	if env.ValkeyHost == "" {
		log.Error("VALKEY_HOST is empty")
		os.Exit(1)
	}
	if env.ValkeyPort == "" {
		log.Error("VALKEY_PORT is empty")
		os.Exit(1)
	}

	log.Info("Environment variables loaded successfully!", "mode", env.EnvMode)
}
