package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Server: ServerConfig{Port: "8080"},
		Database: DatabaseConfig{
			Driver: DriverSQLite,
			Path:   "/tmp/tracking.db",
		},
		Catalog:  CatalogConfig{BaseURL: "http://localhost:9090", Timeout: 5 * time.Second},
		Tracking: TrackingConfig{TreeRowCap: 1000, TreePageSize: 100, SearchPageSize: 50},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestValidate_Environment(t *testing.T) {
	cfg := validConfig()
	cfg.App.Environment = "testing"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown environment")
	}
}

func TestValidate_LogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Logger.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown log level")
	}
}

func TestValidate_PostgresRequiresDSN(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Driver = DriverPostgres
	cfg.Database.DSN = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when postgres driver has no DSN")
	}

	cfg.Database.DSN = "postgres://localhost/tracking"
	if err := cfg.Validate(); err != nil {
		t.Errorf("postgres with DSN should validate: %v", err)
	}
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Driver = "oracle"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown driver")
	}
}

func TestValidate_TreeRowCap(t *testing.T) {
	cfg := validConfig()
	cfg.Tracking.TreeRowCap = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for non-positive tree row cap")
	}
}

func TestExpandPath_Tilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := expandPath("~/data/tracking.db", "")
	if err != nil {
		t.Fatalf("expandPath: %v", err)
	}
	want := filepath.Join(home, "data", "tracking.db")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyUsesDefault(t *testing.T) {
	got, err := expandPath("", "/var/lib/tracking.db")
	if err != nil {
		t.Fatalf("expandPath: %v", err)
	}
	if got != "/var/lib/tracking.db" {
		t.Errorf("got %q", got)
	}
}

func TestSplitList(t *testing.T) {
	got := splitList("http://a.local, http://b.local,,  ")
	if len(got) != 2 || got[0] != "http://a.local" || got[1] != "http://b.local" {
		t.Errorf("got %v", got)
	}
}

func TestGetConfigValue_Precedence(t *testing.T) {
	t.Setenv("CFG_TEST_KEY", "from-env")

	if got := getConfigValue("from-flag", "CFG_TEST_KEY", "dflt"); got != "from-flag" {
		t.Errorf("flag should win: got %q", got)
	}
	if got := getConfigValue("", "CFG_TEST_KEY", "dflt"); got != "from-env" {
		t.Errorf("env should win over default: got %q", got)
	}
	if got := getConfigValue("", "CFG_TEST_MISSING", "dflt"); got != "dflt" {
		t.Errorf("default should apply: got %q", got)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\nCFG_ENVFILE_A=hello\nCFG_ENVFILE_B=\"quoted\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		os.Unsetenv("CFG_ENVFILE_A")
		os.Unsetenv("CFG_ENVFILE_B")
	})

	if err := loadEnvFile(path); err != nil {
		t.Fatalf("loadEnvFile: %v", err)
	}
	if got := os.Getenv("CFG_ENVFILE_A"); got != "hello" {
		t.Errorf("A: got %q", got)
	}
	if got := os.Getenv("CFG_ENVFILE_B"); got != "quoted" {
		t.Errorf("B: got %q", got)
	}
}
