// Package config loads chatexport settings through viper.
// Values come from defaults, a YAML config file, CHATEXPORT_* environment
// variables and bound command-line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/andybalholm/cascadia"
	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/chatexport/core/conversation"
	"github.com/gaurav-prasanna/chatexport/core/dom"
	"github.com/gaurav-prasanna/chatexport/core/extract"
	"github.com/gaurav-prasanna/chatexport/core/markdown"
	"github.com/gaurav-prasanna/chatexport/core/output"
)

// ErrUnknownRole is returned for a roles entry other than user or assistant.
var ErrUnknownRole = errors.New("unknown role")

// Output formats.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatPDF      = "pdf"
)

// Keys shared between defaults, flags and the config file.
const (
	KeyContainer     = "container"
	KeyTurnAttribute = "turn_attribute"
	KeyRoles         = "roles"
	KeyMaxDepth      = "max_depth"
	KeyOutputDir     = "output_dir"
	KeyName          = "name"
	KeyFormat        = "format"
	KeyFrontMatter   = "front_matter"
)

// RoleConfig locates and labels one speaker role.
type RoleConfig struct {
	Selector string `mapstructure:"selector" yaml:"selector"`
	Label    string `mapstructure:"label" yaml:"label"`
}

// Config holds every chatexport setting.
type Config struct {
	Container     []string              `mapstructure:"container" yaml:"container"`
	TurnAttribute string                `mapstructure:"turn_attribute" yaml:"turn_attribute"`
	Roles         map[string]RoleConfig `mapstructure:"roles" yaml:"roles"`
	MaxDepth      int                   `mapstructure:"max_depth" yaml:"max_depth"`
	OutputDir     string                `mapstructure:"output_dir" yaml:"output_dir"`
	Name          string                `mapstructure:"name" yaml:"name"`
	Format        string                `mapstructure:"format" yaml:"format"`
	FrontMatter   bool                  `mapstructure:"front_matter" yaml:"front_matter"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyContainer, extract.DefaultContainers)
	v.SetDefault(KeyTurnAttribute, conversation.TurnAttribute)
	v.SetDefault(KeyRoles, map[string]any{
		conversation.User.String(): map[string]any{
			"selector": conversation.UserSelector,
			"label":    "### User",
		},
		conversation.Assistant.String(): map[string]any{
			"selector": conversation.AssistantSelector,
			"label":    "### ChatGPT",
		},
	})
	v.SetDefault(KeyMaxDepth, markdown.DefaultMaxDepth)
	v.SetDefault(KeyOutputDir, "")
	v.SetDefault(KeyName, output.DefaultName)
	v.SetDefault(KeyFormat, FormatMarkdown)
	v.SetDefault(KeyFrontMatter, false)
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks formats, roles and every selector. Container selectors run
// through cascadia in the extractor; role selectors run on dom trees.
func (c Config) Validate() error {
	switch c.Format {
	case FormatMarkdown, FormatJSON, FormatPDF:
	default:
		return fmt.Errorf("unsupported format %q (want markdown, json or pdf)", c.Format)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative")
	}
	for _, s := range c.Container {
		if _, err := cascadia.Compile(s); err != nil {
			return fmt.Errorf("container selector %q: %w", s, err)
		}
	}
	for _, name := range c.roleNames() {
		if _, ok := conversation.ParseRole(name); !ok {
			return fmt.Errorf("roles.%s: %w", name, ErrUnknownRole)
		}
		if _, err := dom.Compile(c.Roles[name].Selector); err != nil {
			return fmt.Errorf("roles.%s.selector: %w", name, err)
		}
	}
	return nil
}

// Strategies builds the conversation strategy table from the roles section.
func (c Config) Strategies() (conversation.Strategies, error) {
	out := conversation.Strategies{}
	for _, name := range c.roleNames() {
		role, ok := conversation.ParseRole(name)
		if !ok {
			return nil, fmt.Errorf("roles.%s: %w", name, ErrUnknownRole)
		}
		rc := c.Roles[name]
		sel, err := dom.Compile(rc.Selector)
		if err != nil {
			return nil, fmt.Errorf("roles.%s.selector: %w", name, err)
		}
		out[role] = conversation.Strategy{
			Label:  rc.Label,
			Locate: conversation.SelectorLocator(sel),
		}
	}
	return out, nil
}

func (c Config) roleNames() []string {
	names := make([]string, 0, len(c.Roles))
	for name := range c.Roles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
