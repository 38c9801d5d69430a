package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileOption adjusts how LoadFile treats a config file.
type FileOption func(*fileOptions)

type fileOptions struct {
	allowed map[string]struct{}
}

// AllowKeys accepts top-level keys that target does not declare. Commands
// sharing one config file use it to skip keys owned by another command.
func AllowKeys(keys ...string) FileOption {
	return func(o *fileOptions) {
		if o.allowed == nil {
			o.allowed = make(map[string]struct{}, len(keys))
		}
		for _, key := range keys {
			o.allowed[strings.TrimSpace(key)] = struct{}{}
		}
	}
}

// LoadFile decodes the TOML file at path onto target.
//
// An empty path is a no-op. Keys present in the file that target does not
// declare are rejected unless allowed through AllowKeys.
func LoadFile(path string, target any, opts ...FileOption) error {
	var options fileOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	meta, err := toml.DecodeFile(path, target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config file %s: %w", path, err)
		}
		return fmt.Errorf("decode config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			if _, ok := options.allowed[key[0]]; ok {
				continue
			}
			keys = append(keys, key.String())
		}
		if len(keys) == 0 {
			return nil
		}
		return fmt.Errorf("config file %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// PathFromArgs returns the value of a -config/--config flag in args, if any.
//
// It lets callers load the file before the full flag set is parsed so that
// explicit flags still take precedence over file values.
func PathFromArgs(args []string) string {
	for idx := 0; idx < len(args); idx++ {
		arg := args[idx]
		if arg == "--" {
			return ""
		}
		name := strings.TrimLeft(arg, "-")
		if name == arg || len(arg)-len(name) > 2 {
			continue
		}
		if value, ok := strings.CutPrefix(name, "config="); ok {
			return value
		}
		if name == "config" && idx+1 < len(args) {
			return args[idx+1]
		}
	}
	return ""
}
