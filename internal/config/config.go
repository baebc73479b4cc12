package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dgallion1/docnav/internal/orderconfig"
)

type Config struct {
	Port string

	// Documentation roots: comma-separated "name=dir" pairs or bare dirs.
	DocsRoots string

	// Sidebar config: explicit file path; empty probes each root dir.
	SidebarFile string
	OrderPolicy string

	// Manifest output; empty disables writing.
	OutDir string

	// Auth: empty leaves the API open.
	APIKey string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Job state
	JobTTL time.Duration

	// Webhook notifications: empty URL disables delivery.
	WebhookURL     string
	WebhookTimeout time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8077"),

		DocsRoots:   envOr("DOCNAV_DOCS_ROOTS", "docs"),
		SidebarFile: os.Getenv("DOCNAV_SIDEBAR_FILE"),
		OrderPolicy: os.Getenv("DOCNAV_ORDER_POLICY"),
		OutDir:      os.Getenv("DOCNAV_OUT_DIR"),

		APIKey: os.Getenv("DOCNAV_API_KEY"),

		WorkerCount:  envInt("WORKER_COUNT", 2),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 50),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		WebhookURL:     os.Getenv("WEBHOOK_URL"),
		WebhookTimeout: envDuration("WEBHOOK_TIMEOUT", 10*time.Second),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 50
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.DocsRoots == "" {
		return fmt.Errorf("DOCNAV_DOCS_ROOTS is required")
	}
	if c.OrderPolicy != "" {
		if _, err := orderconfig.ParsePolicy(c.OrderPolicy); err != nil {
			return fmt.Errorf("DOCNAV_ORDER_POLICY: %w", err)
		}
	}
	return nil
}

// Policy returns the parsed order policy override, or empty when the
// operator left DOCNAV_ORDER_POLICY unset and per-file policies apply.
func (c Config) Policy() orderconfig.Policy {
	if c.OrderPolicy == "" {
		return ""
	}
	p, err := orderconfig.ParsePolicy(c.OrderPolicy)
	if err != nil {
		return orderconfig.PolicyWarn
	}
	return p
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
