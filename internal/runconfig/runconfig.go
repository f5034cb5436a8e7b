// Package runconfig loads clustering run settings from a YAML file.
package runconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/TrevorS/proximity"
)

// File is the on-disk run configuration.
//
//	method: kmeans
//	clusters: 9
//	iterations: 5
//	algorithm: divide_conquer
//	workers: 4
//	log_level: debug
type File struct {
	Method     string `yaml:"method"`
	Clusters   int    `yaml:"clusters"`
	Iterations int    `yaml:"iterations"`
	Algorithm  string `yaml:"algorithm"`
	Workers    int    `yaml:"workers"`
	LogLevel   string `yaml:"log_level"`
}

// Default returns the settings used when no file is given.
func Default() File {
	cfg := proximity.DefaultConfig()
	return File{
		Method:     string(cfg.Method),
		Clusters:   cfg.NumClusters,
		Iterations: cfg.NumIterations,
		Algorithm:  string(cfg.Algorithm),
		LogLevel:   "info",
	}
}

// Load reads path on top of Default. Keys missing from the file keep their
// default values; unknown keys are an error.
func Load(path string) (File, error) {
	f := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return f, fmt.Errorf("runconfig: %w", err)
	}
	if err := Decode(raw, &f); err != nil {
		return f, fmt.Errorf("runconfig: %s: %w", path, err)
	}
	return f, nil
}

// Decode overlays the YAML document in raw onto f. Unknown keys are an
// error; an empty document leaves f unchanged.
func Decode(raw []byte, f *File) error {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Level parses LogLevel into a zap level.
func (f File) Level() (zapcore.Level, error) {
	return zapcore.ParseLevel(f.LogLevel)
}

// Config converts the file into a library config that logs to logger.
func (f File) Config(logger *zap.Logger) proximity.Config {
	return proximity.Config{
		Method:        proximity.Method(f.Method),
		NumClusters:   f.Clusters,
		NumIterations: f.Iterations,
		Algorithm:     proximity.Algorithm(f.Algorithm),
		Workers:       f.Workers,
		Logger:        logger,
	}
}
