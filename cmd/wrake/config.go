package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// YAML is a kong.ConfigurationLoader for YAML config files.
// Keys are flag names, with either dashes or underscores:
//
//	proxy: socks5h://127.0.0.1:9050
//	user-agent: Mozilla/5.0
//	depth: 3
func YAML(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	var f kong.ResolverFunc = func(context *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		v, ok := values[flag.Name]
		if !ok {
			v, ok = values[strings.ReplaceAll(flag.Name, "-", "_")]
		}
		if !ok || v == nil {
			return nil, nil
		}
		switch v.(type) {
		case map[string]any, []any:
			return nil, fmt.Errorf("config key %q: expected a scalar value", flag.Name)
		}
		return fmt.Sprint(v), nil
	}

	return f, nil
}
