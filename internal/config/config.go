package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/fsdevblog/pos-ledger/internal/service"
)

const (
	defaultRunAddress    = "localhost:8080"
	defaultMigrationsDir = "internal/db/migrations"
)

type Config struct {
	RunAddress    string `env:"RUN_ADDRESS"`
	DatabaseDSN   string `env:"DATABASE_URI"`
	MigrationsDir string `env:"MIGRATIONS_DIR"`
	JWTSecret     string `env:"JWT_SECRET"`

	// KMSKeyID пустое значение включает режим открытого текста для сумм.
	KMSKeyID              string `env:"KMS_KEY_ID"`
	AWSRegion             string `env:"AWS_REGION"`
	KMSEndpoint           string `env:"KMS_ENDPOINT"`
	InsecureLocalFallback bool   `env:"INSECURE_LOCAL_FALLBACK" envDefault:"false"`

	AuthServiceAddress string `env:"AUTH_SERVICE_ADDRESS"`

	AMQPURL     string `env:"AMQP_URL"`
	AMQPQueue   string `env:"AMQP_QUEUE"   envDefault:"ledger.events"`
	AMQPWorkers int    `env:"AMQP_WORKERS" envDefault:"4"`

	// SweepInterval ноль отключает обработку повторяющихся платежей по таймеру.
	SweepInterval      time.Duration         `env:"SWEEP_INTERVAL"       envDefault:"1h"`
	ReconcileTolerance decimal.Decimal       `env:"RECONCILE_TOLERANCE"  envDefault:"1"`
	UOWTimeout         time.Duration         `env:"UOW_TIMEOUT"          envDefault:"10s"`
	PaymentCategories  service.CategoryTable `env:"PAYMENT_CATEGORY_MAP" envDefault:"ONE_TIME:SHOP_RENT,RECURRING:UTILITIES"`

	LogLevel string `env:"LOG_LEVEL"`
}

func LoadConfig() (*Config, error) {
	// .env необязателен
	if loadErr := godotenv.Load(); loadErr != nil && !errors.Is(loadErr, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", loadErr)
	}
	return load(os.Args[1:], nil)
}

func MustLoadConfig() *Config {
	config, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return config
}

// load environ nil означает окружение процесса. Переменные окружения важнее флагов.
func load(args []string, environ map[string]string) (*Config, error) {
	var flagsConfig, envConfig Config

	opts := env.Options{
		Environment: environ,
		FuncMap: map[reflect.Type]env.ParserFunc{
			reflect.TypeOf(service.CategoryTable{}): func(v string) (any, error) {
				return service.ParseCategoryTable(v)
			},
		},
	}
	if envParseErr := env.ParseWithOptions(&envConfig, opts); envParseErr != nil {
		return nil, fmt.Errorf("parse env config: %w", envParseErr)
	}

	if flagsErr := loadFlags(args, &flagsConfig); flagsErr != nil {
		return nil, flagsErr
	}

	conf := mergeConfig(&envConfig, &flagsConfig)
	if validateErr := conf.Validate(); validateErr != nil {
		return nil, validateErr
	}
	return conf, nil
}

func loadFlags(args []string, flagConfig *Config) error {
	flagSet := flag.NewFlagSet("ledger", flag.ContinueOnError)
	flagSet.StringVar(&flagConfig.RunAddress, "a", defaultRunAddress, "Run address in format host:port")
	flagSet.StringVar(&flagConfig.DatabaseDSN, "d", "", "Database DSN")
	flagSet.StringVar(&flagConfig.MigrationsDir, "m", defaultMigrationsDir, "Database migrations directory")

	if err := flagSet.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}

func mergeConfig(envConfig, flagsConfig *Config) *Config {
	conf := *envConfig
	conf.RunAddress = defaultIfBlank(envConfig.RunAddress, flagsConfig.RunAddress)
	conf.DatabaseDSN = defaultIfBlank(envConfig.DatabaseDSN, flagsConfig.DatabaseDSN)
	conf.MigrationsDir = defaultIfBlank(envConfig.MigrationsDir, flagsConfig.MigrationsDir)
	return &conf
}

func (c *Config) Validate() error {
	var errs []error
	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("database DSN is not set"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT secret is not set"))
	}
	if c.AuthServiceAddress == "" {
		errs = append(errs, errors.New("auth service address is not set"))
	}
	if c.KMSKeyID != "" && c.AWSRegion == "" {
		errs = append(errs, errors.New("AWS region is required with KMS key"))
	}
	if c.AMQPURL != "" && strings.TrimSpace(c.AMQPQueue) == "" {
		errs = append(errs, errors.New("AMQP queue is not set"))
	}
	if c.AMQPWorkers < 1 {
		errs = append(errs, errors.New("AMQP workers must be positive"))
	}
	if c.SweepInterval < 0 {
		errs = append(errs, errors.New("sweep interval must not be negative"))
	}
	if c.ReconcileTolerance.IsNegative() {
		errs = append(errs, errors.New("reconcile tolerance must not be negative"))
	}
	if c.UOWTimeout <= 0 {
		errs = append(errs, errors.New("unit of work timeout must be positive"))
	}
	if err := c.PaymentCategories.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// String скрывает секреты при логировании конфигурации.
func (c Config) String() string {
	c.JWTSecret = mask(c.JWTSecret)
	c.DatabaseDSN = mask(c.DatabaseDSN)
	c.AMQPURL = mask(c.AMQPURL)
	type plain Config
	return fmt.Sprintf("%+v", plain(c))
}

func mask(value string) string {
	if value == "" {
		return ""
	}
	return "***"
}

func defaultIfBlank(value string, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
