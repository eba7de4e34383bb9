// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package routemig

import (
	"bytes"
	_ "embed"
	"io"
	"os"

	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"

	"rsc.io/routemig/route"
)

//go:embed default_config.yaml
var defaultConfigYAML []byte

// Config names the framework types the rule works with.
type Config struct {
	// RouteListClass is the route collection type. Only methods
	// returning it are scanned for registrations.
	RouteListClass string `yaml:"route_list_class"`

	// RouterClass is the router contract that route-producing
	// expressions must be assignable to.
	RouterClass string `yaml:"router_class"`

	// RouteClass is the route type instantiated by registrations.
	RouteClass string `yaml:"route_class"`

	// RouterTypes are types that implement the router contract without
	// the program declaring it, typically framework classes. When empty,
	// it is the route list, route and router classes.
	RouterTypes []string `yaml:"router_types"`

	// AnnotationClass is the kind of the metadata tag attached to handlers.
	AnnotationClass string `yaml:"annotation_class"`

	// HandlerSuffix marks handler classes by name, as in HomePresenter.
	HandlerSuffix string `yaml:"handler_suffix"`

	// ActionPrefixes mark action methods on handler classes, in the order
	// they are tried when resolving "Presenter:action" targets.
	ActionPrefixes []string `yaml:"action_prefixes"`

	// DefaultAction is the handler method of a registration that names
	// only the handler class.
	DefaultAction string `yaml:"default_action"`

	// HTTPVerbs are the static factory methods that restrict the route
	// they wrap to one HTTP method.
	HTTPVerbs []string `yaml:"http_verbs"`

	// Reflection holds return types of methods outside the program,
	// keyed by "Class::method".
	Reflection route.Reflection `yaml:"reflection"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	cfg := new(Config)
	if err := decodeConfig(defaultConfigYAML, cfg); err != nil {
		panic("routemig: bad default config: " + err.Error())
	}
	return cfg
}

// ParseConfig parses a YAML configuration. Settings it leaves out keep
// their default values. Unknown settings are an error.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := decodeConfig(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads and parses the configuration file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("loading config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, xerrors.Errorf("loading config %s: %w", path, err)
	}
	return cfg, nil
}

func decodeConfig(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !xerrors.Is(err, io.EOF) {
		return xerrors.Errorf("parsing config: %w", err)
	}
	return nil
}

// RouterTypeList returns RouterTypes, or its default when it is empty.
func (c *Config) RouterTypeList() []string {
	if len(c.RouterTypes) > 0 {
		return c.RouterTypes
	}
	return []string{c.RouteListClass, c.RouteClass, c.RouterClass}
}

// Validate reports the first setting of c that cannot work.
func (c *Config) Validate() error {
	required := []struct {
		field, value string
	}{
		{"route_list_class", c.RouteListClass},
		{"router_class", c.RouterClass},
		{"route_class", c.RouteClass},
		{"annotation_class", c.AnnotationClass},
		{"handler_suffix", c.HandlerSuffix},
		{"default_action", c.DefaultAction},
	}
	for _, r := range required {
		if r.value == "" {
			return newConfigError(r.field, "must not be empty")
		}
	}
	if len(c.ActionPrefixes) == 0 {
		return newConfigError("action_prefixes", "must list at least one prefix")
	}
	for _, p := range c.ActionPrefixes {
		if p == "" {
			return newConfigError("action_prefixes", "empty prefix")
		}
	}
	for _, typ := range c.RouterTypes {
		if typ == "" {
			return newConfigError("router_types", "empty type")
		}
	}
	for _, v := range c.HTTPVerbs {
		if v == "" {
			return newConfigError("http_verbs", "empty verb")
		}
	}
	return nil
}
