// Package pipeline builds the configuration consumed by the deployed
// Snakemake pipelines and handles pipeline deployment itself.
package pipeline

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tdayris/bigr-utils/internal/filelock"
	"github.com/tdayris/bigr-utils/internal/logger"
)

// Identity names the deployed pipeline, as sniffed from its Snakefile.
type Identity struct {
	Name string `yaml:"name"`
	Tag  string `yaml:"tag"`
}

// Config is the content of config.yaml.
type Config struct {
	Genomes  string                 `yaml:"genomes"`
	Samples  string                 `yaml:"samples"`
	Pipeline Identity               `yaml:"pipeline"`
	Params   map[string]interface{} `yaml:"params"`
}

// IdentityFromSnakefile scans a deployed Snakefile for the github("...")
// module line and extracts the pipeline name and tag. A Snakefile without
// that line yields the zero Identity and no error: the configuration is
// still usable, just unversioned.
func IdentityFromSnakefile(path string) (Identity, error) {
	file, err := os.Open(path)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to open snakefile: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "github(") {
			continue
		}
		fields := strings.Split(line, `"`)
		// github("owner/name", ..., tag="vX.Y.Z")
		if len(fields) < 4 {
			continue
		}
		repo := fields[1]
		name := repo[strings.LastIndex(repo, "/")+1:]
		tag := fields[len(fields)-2]
		return Identity{Name: name, Tag: tag}, nil
	}
	if err := scanner.Err(); err != nil {
		return Identity{}, fmt.Errorf("failed to scan snakefile: %w", err)
	}
	return Identity{}, nil
}

// ParseParams converts key=value arguments into the params section.
// Values spelled true/false become booleans; entries without an equal sign
// are ignored like the original tooling did.
func ParseParams(pairs []string) map[string]interface{} {
	params := make(map[string]interface{}, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			continue
		}
		switch strings.ToLower(value) {
		case "true":
			params[key] = true
		case "false":
			params[key] = false
		default:
			params[key] = value
		}
	}
	return params
}

// Render serializes the configuration to YAML.
func (c Config) Render() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal configuration: %w", err)
	}
	return data, nil
}

// WriteConfig stores the configuration at path under the overwrite guard.
func WriteConfig(path string, cfg Config, force bool, rep logger.Reporter) error {
	data, err := cfg.Render()
	if err != nil {
		return err
	}

	err = filelock.GuardedWrite(path, data, force)
	if errors.Is(err, filelock.ErrExists) {
		rep.Report(logger.LevelWarn, "a configuration file already exists at %s, not overwriting", path)
		return nil
	}
	if err != nil {
		return err
	}

	rep.Report(logger.LevelInfo, "pipeline configuration written to %s", path)
	return nil
}

// LoadConfig reads a previously written config.yaml.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read configuration: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return cfg, nil
}
