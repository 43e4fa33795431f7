// Package config provides centralized configuration management for the explorer.
// Values come from struct-tag defaults, optionally overridden by environment
// variables, and are validated once on startup to fail fast on misconfiguration.
package config

import (
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all application configuration.
//
// Only fields carrying an env tag can be overridden from the environment.
// Everything else is fixed by its default tag.
type Config struct {
	Server  ServerConfig
	Data    DataConfig
	Logging LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to
	Host string `default:"0.0.0.0"`

	// Port is the port to listen on (PORT, default: 8000)
	Port int `env:"PORT" default:"8000"`

	ReadTimeout     time.Duration `default:"15s"`
	WriteTimeout    time.Duration `default:"30s"`
	IdleTimeout     time.Duration `default:"60s"`
	ShutdownTimeout time.Duration `default:"10s"`
}

// DataConfig locates the CSV input files.
type DataConfig struct {
	// Dir holds one file per dataset. Relative paths resolve against the
	// program's directory first, then the working directory (see Path).
	Dir string `default:"data"`
}

// Path resolves Dir. An absolute Dir is returned as is. A relative Dir is
// joined to programDir when that directory exists there; otherwise it is
// left relative to the working directory, which covers `go run` where the
// binary lives in a temporary build directory.
func (c *DataConfig) Path(programDir string) string {
	if filepath.IsAbs(c.Dir) || programDir == "" {
		return c.Dir
	}

	candidate := filepath.Join(programDir, c.Dir)
	if info, err := os.Stat(candidate); err == nil && info.IsDir() {
		return candidate
	}
	return c.Dir
}

// ProgramDir returns the directory holding the running executable, or ""
// when it cannot be determined.
func ProgramDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error
	Level string `default:"info"`

	// Format is the log format: text or json
	Format string `default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
