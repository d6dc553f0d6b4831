package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "environment: test\ndataset:\n  path: data/avocado.csv\n")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Server.Port != 8050 {
		t.Fatalf("expected default port 8050, got %d", c.Server.Port)
	}
	if c.Dataset.Path != "data/avocado.csv" {
		t.Fatalf("unexpected dataset path %q", c.Dataset.Path)
	}
	if c.Dataset.Source != SourceCSV {
		t.Fatalf("expected csv source, got %q", c.Dataset.Source)
	}
	if c.Cache.TTL != 5*time.Minute {
		t.Fatalf("expected default ttl, got %v", c.Cache.TTL)
	}
	if c.Dashboard.DefaultRegion != "Albany" || c.Dashboard.DefaultType != "organic" {
		t.Fatalf("unexpected dashboard defaults %+v", c.Dashboard)
	}
}

func TestLoadRejectsUnknownSource(t *testing.T) {
	path := writeConfig(t, "environment: test\ndataset:\n  source: parquet\n")

	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestLoadClickHouseRequiresTable(t *testing.T) {
	path := writeConfig(t, "environment: test\ndataset:\n  source: clickhouse\nclickhouse:\n  host: localhost\n")

	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for missing table")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "environment: test\n")
	t.Setenv("AVODASH_PORT", "9090")
	t.Setenv("AVODASH_DATASET_PATH", "/tmp/other.csv")
	t.Setenv("REDIS_ADDR", "cache:6380")

	c, err := LoadWithEnv(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Server.Port != 9090 {
		t.Fatalf("expected port override, got %d", c.Server.Port)
	}
	if c.Dataset.Path != "/tmp/other.csv" {
		t.Fatalf("expected path override, got %q", c.Dataset.Path)
	}
	if !c.Cache.Redis.Enabled || c.Cache.Redis.Host != "cache" || c.Cache.Redis.Port != 6380 {
		t.Fatalf("unexpected redis override %+v", c.Cache.Redis)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error")
	}
}
