package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Username != DefaultUsername {
		t.Errorf("Username = %q, expected %q", cfg.Username, DefaultUsername)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, expected %d", cfg.Port, DefaultPort)
	}
	if cfg.ROMPath != DefaultROMPath {
		t.Errorf("ROMPath = %q, expected %q", cfg.ROMPath, DefaultROMPath)
	}
	if cfg.QueueFile != DefaultQueueFile {
		t.Errorf("QueueFile = %q, expected %q", cfg.QueueFile, DefaultQueueFile)
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cabfetch.yaml")
	content := "host: 192.168.1.100\nport: 2222\nqueue_file: /tmp/q.json\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Host != "192.168.1.100" {
		t.Errorf("Host = %q", cfg.Host)
	}
	if cfg.Port != 2222 {
		t.Errorf("Port = %d, expected 2222", cfg.Port)
	}
	if cfg.QueueFile != "/tmp/q.json" {
		t.Errorf("QueueFile = %q", cfg.QueueFile)
	}
	// Untouched fields keep their defaults
	if cfg.Username != DefaultUsername {
		t.Errorf("Username = %q, expected default", cfg.Username)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("host: [unclosed"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Expected error for malformed yaml")
	}
}

func TestValidateRequiresHost(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err == nil {
		t.Fatal("Expected error when host is empty")
	}

	cfg.Host = "10.0.0.5"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}
