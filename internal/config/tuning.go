// Package config loads the JSON tuning file for the ingest service. Fields
// omitted from the file keep their defaults, so partial configs are safe.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/mmwave.report/internal/serialmux"
	"github.com/banshee-data/mmwave.report/internal/units"
)

// TuningConfig represents the root configuration for the ingest service.
// All fields are optional; the Get* accessors supply defaults.
type TuningConfig struct {
	// Serial parameters for the sensor data port.
	DataPort *string `json:"data_port,omitempty"`
	BaudRate *int    `json:"baud_rate,omitempty"`
	DataBits *int    `json:"data_bits,omitempty"`
	StopBits *int    `json:"stop_bits,omitempty"`
	Parity   *string `json:"parity,omitempty"`

	// Service parameters.
	ListenAddr   *string `json:"listen_addr,omitempty"`
	DatabasePath *string `json:"database_path,omitempty"`

	// Default velocity units served by the API.
	VelocityUnits *string `json:"velocity_units,omitempty"`
}

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file. The file must have a
// .json extension and stay under the max file size.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for values that would break the service.
func (c *TuningConfig) Validate() error {
	if c.VelocityUnits != nil && !units.IsValid(*c.VelocityUnits) {
		return fmt.Errorf("invalid velocity units %q: valid values are %s", *c.VelocityUnits, units.GetValidUnitsString())
	}
	if _, err := c.PortOptions().Normalize(); err != nil {
		return fmt.Errorf("invalid serial options: %w", err)
	}
	return nil
}

// GetDataPort returns the configured data port path, or the given fallback.
func (c *TuningConfig) GetDataPort(fallback string) string {
	if c.DataPort != nil {
		return *c.DataPort
	}
	return fallback
}

// GetListenAddr returns the configured listen address, or the given fallback.
func (c *TuningConfig) GetListenAddr(fallback string) string {
	if c.ListenAddr != nil {
		return *c.ListenAddr
	}
	return fallback
}

// GetDatabasePath returns the configured database path, or the given fallback.
func (c *TuningConfig) GetDatabasePath(fallback string) string {
	if c.DatabasePath != nil {
		return *c.DatabasePath
	}
	return fallback
}

// GetVelocityUnits returns the configured velocity units, defaulting to m/s.
func (c *TuningConfig) GetVelocityUnits() string {
	if c.VelocityUnits != nil {
		return *c.VelocityUnits
	}
	return units.MPS
}

// PortOptions assembles serial port options from the configured fields.
// Unset fields are zero-valued and filled in by serialmux normalization.
func (c *TuningConfig) PortOptions() serialmux.PortOptions {
	opts := serialmux.PortOptions{}
	if c.BaudRate != nil {
		opts.BaudRate = *c.BaudRate
	}
	if c.DataBits != nil {
		opts.DataBits = *c.DataBits
	}
	if c.StopBits != nil {
		opts.StopBits = *c.StopBits
	}
	if c.Parity != nil {
		opts.Parity = *c.Parity
	}
	return opts
}
