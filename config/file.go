package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unsafe"

	"github.com/BurntSushi/toml"
	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func init() {
	// durations are more readable as "5s" than as 5000000000. Plain numbers are still
	// accepted and treated as nanoseconds.
	jsoniter.RegisterTypeDecoderFunc("time.Duration", func(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
		switch iter.WhatIsNext() {
		case jsoniter.StringValue:
			d, err := time.ParseDuration(iter.ReadString())
			if err != nil {
				iter.ReportError("decode time.Duration", err.Error())
				return
			}

			*(*time.Duration)(ptr) = d
		case jsoniter.NumberValue:
			*(*time.Duration)(ptr) = time.Duration(iter.ReadInt64())
		default:
			iter.ReportError("decode time.Duration", "must be either a string or a number")
		}
	})
}

type Format uint8

const (
	JSON Format = iota
	TOML
	YAML
)

// FormatOf guesses the format by the file extension. Anything unknown is treated as JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML
	case ".yaml", ".yml":
		return YAML
	default:
		return JSON
	}
}

// Load overlays the file on top of defaults. Fields missing in the file keep their default
// values. Keys are the field names; JSON and TOML match them case-insensitively, while YAML
// expects them lowercased, so lowercase keys work everywhere. The resulting config is
// validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseFormat(data, FormatOf(path))
}

// Parse does the same as Load, but for an already read JSON document.
func Parse(data []byte) (*Config, error) {
	return ParseFormat(data, JSON)
}

func ParseFormat(data []byte, format Format) (*Config, error) {
	cfg := Default()

	var err error
	switch format {
	case TOML:
		var md toml.MetaData
		md, err = toml.Decode(string(data), cfg)
		if undecoded := md.Undecoded(); err == nil && len(undecoded) > 0 {
			err = fmt.Errorf("unknown keys %v", undecoded)
		}
	case YAML:
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}

	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}
