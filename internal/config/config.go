package config

import (
	"os"
	"time"
)

type Config struct {
	Env          string
	DBDriver     string
	DBDSN        string
	MediaDir     string
	TickInterval time.Duration
	MetricsAddr  string
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func Load() Config {
	env := getenv("LOCALCHAT_ENV", "dev")
	driver := getenv("LOCALCHAT_DB_DRIVER", "sqlite3")
	dsn := getenv("LOCALCHAT_DB_DSN", "chat_app.db")
	mediaDir := getenv("LOCALCHAT_MEDIA_DIR", ".")
	metricsAddr := getenv("LOCALCHAT_METRICS_ADDR", "")

	interval := time.Second
	if raw := os.Getenv("LOCALCHAT_TICK_INTERVAL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			interval = d
		}
	}

	return Config{
		Env:          env,
		DBDriver:     driver,
		DBDSN:        dsn,
		MediaDir:     mediaDir,
		TickInterval: interval,
		MetricsAddr:  metricsAddr,
	}
}
