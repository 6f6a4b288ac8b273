package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: "127.0.0.1"
  port: 9000
storage:
  database_path: "test.db"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Storage.DatabasePath == "" {
		t.Error("database_path should be set")
	}
	if cfg.Debug {
		t.Error("debug should default to false when unset")
	}
}

func TestLoad_expandPathDotSlashRelativeToConfigDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: "localhost"
  port: 8080
storage:
  database_path: "./data/db/rehabflow.db"
intake:
  directories: ["./intake/plans"]
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	wantDB := filepath.Join(dir, "data", "db", "rehabflow.db")
	if cfg.Storage.DatabasePath != wantDB {
		t.Errorf("database_path = %s, want %s", cfg.Storage.DatabasePath, wantDB)
	}
	if len(cfg.Intake.Directories) != 1 {
		t.Fatalf("intake directories: got %d", len(cfg.Intake.Directories))
	}
	wantIntake := filepath.Join(dir, "intake", "plans")
	if cfg.Intake.Directories[0] != wantIntake {
		t.Errorf("intake directory = %s, want %s", cfg.Intake.Directories[0], wantIntake)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	if cfg.Server.Host != "localhost" {
		t.Errorf("default host: got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port: got %d", cfg.Server.Port)
	}
	if cfg.Search.DefaultLimit != 10 {
		t.Errorf("default limit: got %d", cfg.Search.DefaultLimit)
	}
	if cfg.Intake.Extensions == nil {
		t.Error("intake extensions should be set by default")
	}
	if cfg.Intake.Extensions[0] != ".txt" {
		t.Errorf("intake extensions: got %v", cfg.Intake.Extensions)
	}
	if cfg.Missions.DefaultDurationDays != 56 {
		t.Errorf("default mission duration: got %d", cfg.Missions.DefaultDurationDays)
	}
	if cfg.Matching.MatchThreshold != 0.6 {
		t.Errorf("default match threshold: got %f", cfg.Matching.MatchThreshold)
	}
}

func TestApplyDefaults_PartialMissionsConfigKept(t *testing.T) {
	cfg := &Config{}
	cfg.Missions.DefaultPoints = 75
	ApplyDefaults(cfg)
	if cfg.Missions.DefaultPoints != 75 {
		t.Errorf("explicit points overwritten: got %d", cfg.Missions.DefaultPoints)
	}
	if cfg.Missions.TherapyPoints != 100 {
		t.Errorf("therapy points should be backfilled: got %d", cfg.Missions.TherapyPoints)
	}
}

func TestApplyDefaults_IntakeRecursiveWhenDirectoriesSet(t *testing.T) {
	cfg := &Config{Intake: IntakeConfig{Directories: []string{"/tmp/plans"}}}
	ApplyDefaults(cfg)
	if cfg.Intake.Recursive == nil || !*cfg.Intake.Recursive {
		t.Error("recursive should default to true when directories are set")
	}
}

func TestIntakeConfig_RecursiveOrDefault(t *testing.T) {
	t.Run("nil_returns_true", func(t *testing.T) {
		w := &IntakeConfig{}
		if got := w.RecursiveOrDefault(); !got {
			t.Errorf("RecursiveOrDefault() = %v, want true", got)
		}
	})
	t.Run("false_returns_false", func(t *testing.T) {
		f := false
		w := &IntakeConfig{Recursive: &f}
		if got := w.RecursiveOrDefault(); got {
			t.Errorf("RecursiveOrDefault() = %v, want false", got)
		}
	})
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "saved.yaml")
	cfg := &Config{
		Server:  ServerConfig{Host: "localhost", Port: 9090},
		Storage: StorageConfig{DatabasePath: "/tmp/db"},
	}
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Server.Port != 9090 {
		t.Errorf("loaded port: got %d", loaded.Server.Port)
	}
}
