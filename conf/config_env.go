package conf

import (
	"github.com/caarlos0/env/v6"
)

// AppConfig presents app conf
type AppConfig struct {
	Port           string  `env:"PORT" envDefault:"8081"`
	LogFormat      string  `env:"LOG_FORMAT" envDefault:"text"`
	DefaultTaxRate float64 `env:"DEFAULT_TAX_RATE" envDefault:"6"`
	MaxFileSizeMB  int64   `env:"MAX_FILE_SIZE_MB" envDefault:"20"`
	ReportTTLMin   int     `env:"REPORT_TTL_MIN" envDefault:"60"`
	AdminIDs       []int64 `env:"ADMIN_IDS" envSeparator:","`
}

var config AppConfig

func SetEnv() {
	_ = env.Parse(&config)
}

func LoadEnv() AppConfig {
	return config
}
