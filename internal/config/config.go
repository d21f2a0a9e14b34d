package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultConfigPath = "./config/local.yaml"

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"prod"`
	HTTPServer `yaml:"http_server"`
	DBUser     string `yaml:"db_user" env:"DB_USER" env-required:"true"`
	DBPassword string `yaml:"db_password" env:"DB_PASSWORD"`
	DBHost     string `yaml:"db_host" env:"DB_HOST" env-default:"localhost"`
	DBPort     int    `yaml:"db_port" env:"DB_PORT" env-default:"3306"`
	DBName     string `yaml:"db_name" env:"DB_NAME" env-required:"true"`
	ParseTime  bool   `yaml:"parse_time" env-default:"true"`

	AdminLogin string `yaml:"admin_login" env:"ADMIN_LOGIN"`
	AdminPass  string `yaml:"admin_pass" env:"ADMIN_PASS"`

	CORSOrigins []string `yaml:"cors_origins" env-default:"http://localhost:5173"`

	Estimating `yaml:"estimating"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:4001"`
	Timeout     time.Duration `yaml:"timeout"  env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout"  env-default:"60s"`
}

// Estimating holds the jurisdiction and shop defaults used by the costing engine.
type Estimating struct {
	TaxRate              float64 `yaml:"tax_rate" env:"TAX_RATE" env-default:"0.0825"`
	DefaultShopLaborRate float64 `yaml:"default_shop_labor_rate" env-default:"65"`
	GalvanizingRatePerLb float64 `yaml:"galvanizing_rate_per_lb" env-default:"0"`
	MaxUploadMB          int64   `yaml:"max_upload_mb" env-default:"10"`
}

func MustConfig() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return cfg
}

func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
