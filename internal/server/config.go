package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the HCL server configuration:
//
//	server {
//	  address   = "localhost"
//	  port      = 8080
//	  log_level = "info"
//	}
//
//	store "sqlite" {
//	  path = "data/keepormull.db"
//	}
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Store  *StoreSettings `hcl:"store,block"`
}

// ServerSettings contains listener-level configuration.
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// StoreSettings selects the datastore backend.
type StoreSettings struct {
	Backend string `hcl:"backend,label"`
	Path    string `hcl:"path,optional"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Store: &StoreSettings{
			Backend: "memory",
		},
	}
}

// LoadConfig loads configuration from an HCL file, falling back to defaults
// when the file does not exist.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if config.Server.Address == "" {
		config.Server.Address = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}
	if config.Store == nil {
		config.Store = &StoreSettings{Backend: "memory"}
	}
	switch config.Store.Backend {
	case "memory", "json", "sqlite":
	default:
		return nil, fmt.Errorf("unknown store backend %q", config.Store.Backend)
	}
	if config.Store.Path == "" {
		switch config.Store.Backend {
		case "json":
			config.Store.Path = "data"
		case "sqlite":
			config.Store.Path = "data/keepormull.db"
		}
	}

	return &config, nil
}

// Addr returns the host:port the server should listen on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
