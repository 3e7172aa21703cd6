// Package config loads YAML defaults for the command line flags.
//
// A configuration file is a flat mapping of flag names to values. Dashes
// and underscores in keys are interchangeable:
//
//	file: /srv/mrno/in.wav
//	left_tty: /dev/ttyUSB0
//	right_tty: /dev/ttyUSB1
//	interval: 250ms
//	delay: 10ms
//	no_stty: false
//	loops: 0
//
// Flags given on the command line take precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

var errNotScalar = errors.New("value is not a scalar")

// Values holds the parsed key/value pairs of a configuration file.
type Values map[string]any

// Parse decodes a YAML mapping. An empty document yields no values.
func Parse(r io.Reader) (Values, error) {
	values := Values{}

	err := yaml.NewDecoder(r).Decode(&values)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	return values, nil
}

// Load reads and parses the file at path.
func Load(path string) (Values, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Lookup returns the value for a flag name as a string.
func (v Values) Lookup(name string) (string, bool, error) {
	raw, ok := v[name]
	if !ok {
		raw, ok = v[strings.ReplaceAll(name, "-", "_")]
	}

	if !ok || raw == nil {
		return "", false, nil
	}

	switch raw.(type) {
	case Values, map[string]any, []any:
		return "", false, fmt.Errorf("%s: %w", name, errNotScalar)
	}

	return fmt.Sprint(raw), true, nil
}

// Loader is a kong.ConfigurationLoader for YAML files.
func Loader(r io.Reader) (kong.Resolver, error) {
	values, err := Parse(r)
	if err != nil {
		return nil, err
	}

	return kong.ResolverFunc(func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		s, ok, err := values.Lookup(flag.Name)
		if err != nil || !ok {
			return nil, err
		}

		return s, nil
	}), nil
}
