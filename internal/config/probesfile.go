package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProbesFile is the YAML alternative to passing probes on the command line:
//
//	name: db-backup
//	grace: 25h
//	probes:
//	  - ":9999"
//	  - GET /health
//	  - file-updated 2m /var/run/backup.stamp
type ProbesFile struct {
	Name   string   `yaml:"name"`
	Grace  string   `yaml:"grace"`
	Timer  string   `yaml:"timer"`
	Probes []string `yaml:"probes"`
}

// LoadProbesFile reads and parses a probes declaration file.
func LoadProbesFile(path string) (*ProbesFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read probes file: %w", err)
	}
	var pf ProbesFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse probes file %s: %w", path, err)
	}
	return &pf, nil
}

// Apply merges file values into the config. Command-line values win; the
// file only fills what the caller left unset.
func (c *Config) Apply(pf *ProbesFile) {
	if c.Name == "" {
		c.Name = pf.Name
	}
	if c.GraceLiteral == "" && c.TimerFile == "" {
		c.GraceLiteral = pf.Grace
		c.TimerFile = pf.Timer
	}
	if len(c.Probes) == 0 {
		c.Probes = pf.Probes
	}
}
