// Package config handles resourcegen configuration loading and management.
package config

import (
	"time"

	"github.com/xaphier/Eternal-Lands/pkg/resource"
)

// Config holds all resourcegen settings.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Header  HeaderConfig  `yaml:"header"`
	Watch   WatchConfig   `yaml:"watch"`
	Logging LoggingConfig `yaml:"logging"`
}

// InputConfig holds fixture locations.
type InputConfig struct {
	Dir string `yaml:"dir"` // Directory holding test0.dds ... test14.dds
}

// OutputConfig holds where the generated header goes.
type OutputConfig struct {
	Path string `yaml:"path"` // Empty writes to stdout
}

// HeaderConfig holds the boilerplate around the generated arrays.
type HeaderConfig struct {
	Tool          string `yaml:"tool"`
	FileName      string `yaml:"file_name"`
	Author        string `yaml:"author"`
	Copyright     string `yaml:"copyright"`
	Guard         string `yaml:"guard"`
	Prerequisites string `yaml:"prerequisites"`
	Namespace     string `yaml:"namespace"`
}

// WatchConfig holds watch mode settings.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	opts := resource.DefaultOptions()
	return &Config{
		Input: InputConfig{
			Dir: ".",
		},
		Output: OutputConfig{
			Path: "",
		},
		Header: HeaderConfig{
			Tool:          opts.Tool,
			FileName:      opts.FileName,
			Author:        opts.Author,
			Copyright:     opts.Copyright,
			Guard:         opts.Guard,
			Prerequisites: opts.Prerequisites,
			Namespace:     opts.Namespace,
		},
		Watch: WatchConfig{
			Debounce: 200 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Options converts the header section into render options.
func (h HeaderConfig) Options() resource.Options {
	return resource.Options{
		Tool:          h.Tool,
		FileName:      h.FileName,
		Author:        h.Author,
		Copyright:     h.Copyright,
		Guard:         h.Guard,
		Prerequisites: h.Prerequisites,
		Namespace:     h.Namespace,
	}
}
