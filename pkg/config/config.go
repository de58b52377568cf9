package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Nutrition    NutritionConfig
	Discounts    DiscountsConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FOODLER_APP_ENV" required:"true"`
	Port         string `envconfig:"FOODLER_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"FOODLER_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FOODLER_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Driver string `envconfig:"FOODLER_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"FOODLER_DB_DSN"`

	// SQLitePath is the fridge database file used when no DSN is set and the
	// driver is sqlite. The file is created on first open.
	SQLitePath string `envconfig:"FOODLER_DB_PATH" default:"fridge.db"`

	LegacyHost     string `envconfig:"FOODLER_DB_HOST"`
	LegacyPort     int    `envconfig:"FOODLER_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FOODLER_DB_USER"`
	LegacyPassword string `envconfig:"FOODLER_DB_PASSWORD"`
	LegacyName     string `envconfig:"FOODLER_DB_NAME"`
	LegacySSLMode  string `envconfig:"FOODLER_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FOODLER_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"FOODLER_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"FOODLER_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FOODLER_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DriverSQLite)
}

type NutritionConfig struct {
	// CountryCode narrows Open Food Facts results to a regional catalogue
	// before falling back to the global one.
	CountryCode string `envconfig:"FOODLER_NUTRITION_COUNTRY" default:"cz"`

	OpenFoodFactsBaseURL string `envconfig:"FOODLER_OPENFOODFACTS_BASE_URL" default:"https://world.openfoodfacts.org"`

	// USDAAPIKey is optional. When empty the USDA provider is not wired and
	// lookups rely on Open Food Facts alone.
	USDAAPIKey  string `envconfig:"FOODLER_USDA_API_KEY"`
	USDABaseURL string `envconfig:"FOODLER_USDA_BASE_URL" default:"https://api.nal.usda.gov/fdc/v1"`

	RequestTimeout time.Duration `envconfig:"FOODLER_NUTRITION_TIMEOUT" default:"10s"`
}

type DiscountsConfig struct {
	KupiBaseURL     string        `envconfig:"FOODLER_KUPI_BASE_URL" default:"https://api.kupi.cz/v1"`
	DefaultCategory string        `envconfig:"FOODLER_KUPI_DEFAULT_CATEGORY" default:"potraviny"`
	RequestTimeout  time.Duration `envconfig:"FOODLER_DISCOUNTS_TIMEOUT" default:"10s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"FOODLER_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	if db.IsSQLite() {
		db.DSN = db.SQLitePath
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
