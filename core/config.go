package core

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Storage backends
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

type (
	Config struct {
		Env      string
		Build    string
		AppName  string
		Debug    bool
		TestMode bool

		API       APIConfig
		Endpoints Endpoints
		Storage   StorageConfig

		RollbarToken string
		DevtoolsAddr string
	}

	APIConfig struct {
		BaseURL string        `validate:"required,url"`
		Timeout time.Duration `validate:"gt=0"`
	}

	// Endpoints are the API paths, relative to APIConfig.BaseURL.
	Endpoints struct {
		Login      string `validate:"required"`
		CheckToken string `validate:"required"`
		Class      string `validate:"required"`
		Student    string `validate:"required"`
		Quiz       string `validate:"required"`
		Discuss    string `validate:"required"`
		Assignment string `validate:"required"`
		Result     string `validate:"required"`
		Payment    string `validate:"required"`
		VidTracker string `validate:"required"`
		Notify     string // websocket URL; notifications are disabled when empty
	}

	StorageConfig struct {
		Backend   string `validate:"oneof=memory sqlite postgres redis"`
		DSN       string
		RedisAddr string
		SecretKey string // encrypts stored values when set
	}
)

func setDefaults(v *viper.Viper) {
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Masomo")
	v.SetDefault("build", "develop")

	v.SetDefault("api.baseUrl", "http://localhost:8000")
	v.SetDefault("api.timeout", 20*time.Second)

	v.SetDefault("loginUrl", "/v1/users/login")
	v.SetDefault("checkTokenUrl", "/v1/users/check-token")
	v.SetDefault("classUrl", "/v1/classes")
	v.SetDefault("studentUrl", "/v1/students")
	v.SetDefault("quizUrl", "/v1/quizzes")
	v.SetDefault("discussUrl", "/v1/discussions")
	v.SetDefault("assignmentUrl", "/v1/assignments")
	v.SetDefault("resultUrl", "/v1/results")
	v.SetDefault("paymentUrl", "/v1/payments")
	v.SetDefault("vidTrackerUrl", "/v1/vid-tracker")
	v.SetDefault("notifyUrl", "")

	v.SetDefault("storage.backend", StorageSQLite)
	v.SetDefault("storage.dsn", "file:masomo.db")
	v.SetDefault("storage.redisAddr", "localhost:6379")
	v.SetDefault("storage.secretKey", "")

	v.SetDefault("rollbarToken", "")
	v.SetDefault("devtools.addr", "localhost:9229")
}

// NewConfig loads the configuration of the current environment.
// ENV selects the environment: DEV (local; default), TEST, QA, PROD.
// Values are read from env vars prefixed with the environment name (e.g. DEV_API_BASEURL),
// after loading config/.env.<env> if it exists.
func NewConfig() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(configDir(), ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "checking %s", dotEnvPath)
	}
	v.AutomaticEnv()

	conf := &Config{
		Env:      env,
		Build:    v.GetString("build"),
		AppName:  v.GetString("appName"),
		Debug:    v.GetBool("debug"),
		TestMode: v.GetBool("testMode"),
		API: APIConfig{
			BaseURL: strings.TrimRight(v.GetString("api.baseUrl"), "/"),
			Timeout: v.GetDuration("api.timeout"),
		},
		Endpoints: Endpoints{
			Login:      v.GetString("loginUrl"),
			CheckToken: v.GetString("checkTokenUrl"),
			Class:      v.GetString("classUrl"),
			Student:    v.GetString("studentUrl"),
			Quiz:       v.GetString("quizUrl"),
			Discuss:    v.GetString("discussUrl"),
			Assignment: v.GetString("assignmentUrl"),
			Result:     v.GetString("resultUrl"),
			Payment:    v.GetString("paymentUrl"),
			VidTracker: v.GetString("vidTrackerUrl"),
			Notify:     v.GetString("notifyUrl"),
		},
		Storage: StorageConfig{
			Backend:   strings.ToLower(v.GetString("storage.backend")),
			DSN:       v.GetString("storage.dsn"),
			RedisAddr: v.GetString("storage.redisAddr"),
			SecretKey: v.GetString("storage.secretKey"),
		},
		RollbarToken: v.GetString("rollbarToken"),
		DevtoolsAddr: v.GetString("devtools.addr"),
	}
	if err := conf.Validate(validator.New()); err != nil {
		return nil, errors.Wrap(err, "validating config")
	}
	return conf, nil
}

func (c *Config) Validate(validate *validator.Validate) error {
	return validate.Struct(c)
}

// URL returns the absolute URL of an API path.
func (c *Config) URL(path string, segments ...string) string {
	u := c.API.BaseURL + "/" + strings.TrimLeft(path, "/")
	for _, s := range segments {
		u += "/" + s
	}
	return u
}

func configDir() string {
	if dir := os.Getenv("MASOMO_CONFIG_DIR"); dir != "" {
		return dir
	}
	return "config"
}
