package postgres

import (
	"testing"
	"time"

	"github.com/ngocxb/caseflow/internal/platform/config"
)

func baseDatabaseConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "caseflow",
		Password: "secret",
		Name:     "caseflow",
		SSLMode:  "disable",
	}
}

func TestBuildPoolConfig_AppliesLimits(t *testing.T) {
	t.Parallel()

	cfg := baseDatabaseConfig()
	cfg.MaxOpenConns = 10
	cfg.MaxIdleConns = 3
	cfg.ConnMaxLifetime = time.Hour
	cfg.ConnMaxIdleTime = 10 * time.Minute

	poolCfg, err := BuildPoolConfig(cfg)
	if err != nil {
		t.Fatalf("BuildPoolConfig returned error: %v", err)
	}

	if poolCfg.MaxConns != 10 {
		t.Fatalf("unexpected max conns: %d", poolCfg.MaxConns)
	}
	if poolCfg.MinConns != 3 {
		t.Fatalf("unexpected min conns: %d", poolCfg.MinConns)
	}
	if poolCfg.MaxConnLifetime != time.Hour {
		t.Fatalf("unexpected max conn lifetime: %v", poolCfg.MaxConnLifetime)
	}
	if poolCfg.MaxConnIdleTime != 10*time.Minute {
		t.Fatalf("unexpected max conn idle time: %v", poolCfg.MaxConnIdleTime)
	}
}

func TestBuildPoolConfig_ZeroValuesKeepDefaults(t *testing.T) {
	t.Parallel()

	poolCfg, err := BuildPoolConfig(baseDatabaseConfig())
	if err != nil {
		t.Fatalf("BuildPoolConfig returned error: %v", err)
	}

	defaults, err := BuildPoolConfig(baseDatabaseConfig())
	if err != nil {
		t.Fatalf("BuildPoolConfig returned error: %v", err)
	}

	if poolCfg.MaxConns != defaults.MaxConns {
		t.Fatalf("zero config must not override defaults")
	}
}

func TestBuildPoolConfig_InvalidDSN(t *testing.T) {
	t.Parallel()

	cfg := baseDatabaseConfig()
	cfg.Host = "local host"

	if _, err := BuildPoolConfig(cfg); err == nil {
		t.Fatalf("expected error for invalid DSN")
	}
}
