// Package config loads tuffi.yaml and fills in defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tuffi-studio/tuffi/internal/core"
)

const DefaultFile = "tuffi.yaml"

type Server struct {
	// Addr matches the frontend toolchain's default dev port.
	Addr string `yaml:"addr"`
	// ExtraHeaders are added on top of the fixed isolation header set.
	ExtraHeaders map[string]string `yaml:"extra_headers"`
}

type Watch struct {
	// Extensions that trigger a reload when files change.
	Extensions []string `yaml:"extensions"`
}

type Config struct {
	// StagingDir holds compiled frontend outputs awaiting packaging.
	StagingDir string `yaml:"staging_dir"`
	// DistDir receives the packaged bundle and is served in development.
	DistDir string      `yaml:"dist_dir"`
	Naming  core.Naming `yaml:"naming"`
	Server  Server      `yaml:"server"`
	Watch   Watch       `yaml:"watch"`
}

func (c *Config) defaults() {
	if c.StagingDir == "" {
		c.StagingDir = "frontend/staging"
	}
	if c.DistDir == "" {
		c.DistDir = "frontend/dist"
	}

	def := core.DefaultNaming()
	if c.Naming.EntryFileNames == "" {
		c.Naming.EntryFileNames = def.EntryFileNames
	}
	if c.Naming.ChunkFileNames == "" {
		c.Naming.ChunkFileNames = def.ChunkFileNames
	}
	if c.Naming.StyleFileName == "" {
		c.Naming.StyleFileName = def.StyleFileName
	}
	if c.Naming.AssetFileNames == "" {
		c.Naming.AssetFileNames = def.AssetFileNames
	}

	if c.Server.Addr == "" {
		c.Server.Addr = "localhost:5173"
	}
	if len(c.Watch.Extensions) == 0 {
		c.Watch.Extensions = []string{".js", ".css", ".html"}
	}
}

func Default() *Config {
	c := &Config{}
	c.defaults()
	return c
}

// Load reads the given config file. A missing file is not an error: the
// defaults apply.
func Load(path string) (*Config, error) {
	c := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			c.defaults()
			return c, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	c.defaults()
	return c, nil
}
