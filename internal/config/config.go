package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer `yaml:"http_server"`
	Store      Store `yaml:"store"`
	JWT        JWT   `yaml:"jwt"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:4001"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// Store selects the row-store backend. The table layout is the same for
// all three; only where the cells live differs.
type Store struct {
	Backend         string `yaml:"backend" env-default:"google"` // google | xlsx | mysql
	CredentialsFile string `yaml:"credentials_file"`
	SpreadsheetID   string `yaml:"spreadsheet_id"`
	WorkbookPath    string `yaml:"workbook_path"`
	MysqlDSN        string `yaml:"mysql_dsn"`
}

type JWT struct {
	Secret   string        `yaml:"secret" env:"JWT_SECRET"`
	Issuer   string        `yaml:"issuer" env-default:"whs-backend"`
	Audience string        `yaml:"audience" env-default:"whs-frontend"`
	TTL      time.Duration `yaml:"ttl" env-default:"1h"`
}

func MustConfig() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/local.yaml"
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	// HS256 wants a key of at least 256 bits
	if len(cfg.JWT.Secret) < 32 {
		log.Fatal("jwt secret must be at least 32 bytes")
	}

	return &cfg
}
