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
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	Sheets       SheetsConfig
	Gemini       GeminiConfig
	Comparison   ComparisonConfig
	CORS         CORSConfig
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
	Env          string `envconfig:"ECOFEIRA_APP_ENV" required:"true"`
	Port         string `envconfig:"ECOFEIRA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ECOFEIRA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ECOFEIRA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ECOFEIRA_DB_DSN"`
	Driver string `envconfig:"ECOFEIRA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"ECOFEIRA_DB_HOST"`
	LegacyPort     int    `envconfig:"ECOFEIRA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ECOFEIRA_DB_USER"`
	LegacyPassword string `envconfig:"ECOFEIRA_DB_PASSWORD"`
	LegacyName     string `envconfig:"ECOFEIRA_DB_NAME"`
	LegacySSLMode  string `envconfig:"ECOFEIRA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ECOFEIRA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ECOFEIRA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ECOFEIRA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ECOFEIRA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ECOFEIRA_REDIS_URL" required:"true"`
	Password     string        `envconfig:"ECOFEIRA_REDIS_PASSWORD"`
	DB           int           `envconfig:"ECOFEIRA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ECOFEIRA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ECOFEIRA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ECOFEIRA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ECOFEIRA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ECOFEIRA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"ECOFEIRA_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"ECOFEIRA_AUTO_MIGRATE" default:"false"`
}

// SheetsConfig points the importer at the published spreadsheet tabs.
type SheetsConfig struct {
	SpreadsheetID  string        `envconfig:"ECOFEIRA_SHEETS_SPREADSHEET_ID"`
	ProductsTab    string        `envconfig:"ECOFEIRA_SHEETS_PRODUCTS_TAB" default:"Produtos"`
	StoresTab      string        `envconfig:"ECOFEIRA_SHEETS_STORES_TAB" default:"Mercados"`
	BannersTab     string        `envconfig:"ECOFEIRA_SHEETS_BANNERS_TAB" default:"Banners"`
	SuggestionsTab string        `envconfig:"ECOFEIRA_SHEETS_SUGGESTIONS_TAB" default:"Sugestoes"`
	FetchTimeout   time.Duration `envconfig:"ECOFEIRA_SHEETS_FETCH_TIMEOUT" default:"30s"`
}

type GeminiConfig struct {
	APIKey  string        `envconfig:"ECOFEIRA_GEMINI_API_KEY"`
	Model   string        `envconfig:"ECOFEIRA_GEMINI_MODEL" default:"gemini-2.0-flash"`
	Timeout time.Duration `envconfig:"ECOFEIRA_GEMINI_TIMEOUT" default:"60s"`
}

type ComparisonConfig struct {
	CacheTTL   time.Duration `envconfig:"ECOFEIRA_COMPARISON_CACHE_TTL" default:"5m"`
	MaxResults int           `envconfig:"ECOFEIRA_COMPARISON_MAX_RESULTS" default:"4"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"ECOFEIRA_CORS_ALLOWED_ORIGINS"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
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
