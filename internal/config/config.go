package config

import (
	"fmt"
	"os"

	"github.com/mholtz/cabfetch/internal/models"
	"gopkg.in/yaml.v3"
)

// Default connection and path settings for Batocera appliances
const (
	DefaultUsername  = "root"
	DefaultPassword  = "linux"
	DefaultPort      = 22
	DefaultROMPath   = "/userdata/roms"
	DefaultQueueFile = "download_queue.json"
)

// Config contains connection settings for the appliance and local paths
type Config struct {
	Host     string `yaml:"host"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Port     int    `yaml:"port"`

	ROMPath   string `yaml:"rom_path"`
	QueueFile string `yaml:"queue_file"`
}

// Default returns a Config populated with default values
func Default() *Config {
	return &Config{
		Username:  DefaultUsername,
		Password:  DefaultPassword,
		Port:      DefaultPort,
		ROMPath:   DefaultROMPath,
		QueueFile: DefaultQueueFile,
	}
}

// Load reads a YAML config file and merges it over the defaults.
// A missing file is not an error; the defaults are returned unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, &models.CabFetchError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("failed to read config file: %w", err),
		}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &models.CabFetchError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("failed to parse %s: %w", path, err),
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills fields an explicit config file may have blanked
func (c *Config) applyDefaults() {
	if c.Username == "" {
		c.Username = DefaultUsername
	}
	if c.Password == "" {
		c.Password = DefaultPassword
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.ROMPath == "" {
		c.ROMPath = DefaultROMPath
	}
	if c.QueueFile == "" {
		c.QueueFile = DefaultQueueFile
	}
}

// Validate checks that the settings required for a remote connection are present
func (c *Config) Validate() error {
	if c.Host == "" {
		return &models.CabFetchError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("host is required for this command (use --host or the config file)"),
		}
	}
	return nil
}
