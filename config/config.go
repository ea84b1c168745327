package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/philipp01105/nlogtree/core"
	"github.com/philipp01105/nlogtree/logger"
)

// Config describes the state of the logger tree
type Config struct {
	// Hierarchical enables per-logger levels
	Hierarchical bool `yaml:"hierarchical"`
	// Level is the root level. Empty keeps the current one.
	Level string `yaml:"level,omitempty"`
	// StackTraceLevel is the threshold for automatic stack capture.
	// Empty keeps the current one.
	StackTraceLevel string `yaml:"stack_trace_level,omitempty"`
	// Loggers lists per-logger levels, applied in hierarchical mode only
	Loggers []Logger `yaml:"loggers,omitempty"`
}

// Logger sets the level of one named logger
type Logger struct {
	Name  string `yaml:"name"`
	Level string `yaml:"level"`
}

// Load reads and parses the config file at path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML config. Unknown keys are rejected. An empty
// document yields the zero Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &cfg, nil
}

// Marshal encodes c as YAML
func (c *Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type resolvedLogger struct {
	name  string
	level core.Level
}

type resolved struct {
	level      *core.Level
	stackLevel *core.Level
	loggers    []resolvedLogger
}

// resolve parses every level of c and reports all problems at once
func (c *Config) resolve() (*resolved, error) {
	var (
		r   resolved
		err error
	)

	parse := func(field, s string) *core.Level {
		if s == "" {
			return nil
		}
		lvl, perr := core.ParseLevel(s)
		if perr != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", field, perr))
			return nil
		}
		return &lvl
	}

	r.level = parse("level", c.Level)
	r.stackLevel = parse("stack_trace_level", c.StackTraceLevel)

	if len(c.Loggers) > 0 && !c.Hierarchical {
		err = multierr.Append(err, fmt.Errorf("loggers: %w: per-logger levels need hierarchical mode", logger.ErrUnsupported))
	}

	seen := make(map[string]bool, len(c.Loggers))
	for i, l := range c.Loggers {
		field := fmt.Sprintf("loggers[%d]", i)
		if l.Name == "" {
			err = multierr.Append(err, fmt.Errorf("%s: name is required, use level for the root logger", field))
			continue
		}
		if verr := logger.ValidateName(l.Name); verr != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", field, verr))
			continue
		}
		if seen[l.Name] {
			err = multierr.Append(err, fmt.Errorf("%s: duplicate logger %q", field, l.Name))
			continue
		}
		seen[l.Name] = true
		if lvl := parse(field+".level", l.Level); lvl != nil {
			r.loggers = append(r.loggers, resolvedLogger{name: l.Name, level: *lvl})
		} else if l.Level == "" {
			err = multierr.Append(err, fmt.Errorf("%s: level is required", field))
		}
	}

	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Validate reports every invalid level or logger entry in c
func (c *Config) Validate() error {
	_, err := c.resolve()
	return err
}

// levelText renders a level so that core.ParseLevel accepts it again
func levelText(l core.Level) string {
	if predefined := core.LookupLevel(l.Rank); predefined.Name != "" {
		return predefined.Name
	}
	return strconv.Itoa(l.Rank)
}

// Apply makes the logger tree match c. Nothing is changed if c fails to
// validate. In hierarchical mode, loggers that carry a level but are not
// listed in c are reset to inherit. Errors from individual loggers, such
// as a level change attempted from a level-change handler, are combined
// and do not stop the remaining entries.
func Apply(c *Config) error {
	r, err := c.resolve()
	if err != nil {
		return err
	}

	logger.SetHierarchical(c.Hierarchical)
	if r.stackLevel != nil {
		logger.SetStackTraceLevel(*r.stackLevel)
	}
	if r.level != nil {
		err = multierr.Append(err, logger.Root().SetLevel(*r.level))
	}

	if !c.Hierarchical {
		return err
	}

	listed := make(map[string]bool, len(r.loggers))
	for _, rl := range r.loggers {
		l, gerr := logger.Get(rl.name)
		if gerr != nil {
			err = multierr.Append(err, gerr)
			continue
		}
		listed[l.FullName()] = true
		err = multierr.Append(err, l.SetLevel(rl.level))
	}

	for _, l := range logger.Attached() {
		if l.IsRoot() || listed[l.FullName()] {
			continue
		}
		if _, ok := l.OwnLevel(); ok {
			err = multierr.Append(err, l.ClearLevel())
		}
	}
	return err
}

// LoadAndApply loads the file at path and applies it
func LoadAndApply(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	return cfg, Apply(cfg)
}

// Current describes the present state of the logger tree
func Current() *Config {
	cfg := &Config{
		Hierarchical:    logger.Hierarchical(),
		Level:           levelText(logger.Root().Level()),
		StackTraceLevel: levelText(logger.StackTraceLevel()),
	}
	for _, l := range logger.Attached() {
		if l.IsRoot() {
			continue
		}
		if lvl, ok := l.OwnLevel(); ok {
			cfg.Loggers = append(cfg.Loggers, Logger{Name: l.FullName(), Level: levelText(lvl)})
		}
	}
	return cfg
}
