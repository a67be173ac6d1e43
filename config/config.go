// Package config loads action defaults from YAML.
//
//	language: ja
//	log:
//	  level: debug
//	meta:
//	  service: users
//	context:
//	  tenant: acme
package config

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	goaction "github.com/reoring/goaction"
	"github.com/reoring/goaction/i18n"
)

// Config is the decoded document. Unknown keys are rejected.
type Config struct {
	Language string         `yaml:"language"`
	Log      Log            `yaml:"log"`
	Meta     map[string]any `yaml:"meta"`
	Context  map[string]any `yaml:"context"`
}

// Log configures the logger handed to goaction.WithLogger.
type Log struct {
	// Level is one of debug, info, warn, error. Empty disables logging.
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text (default) or json
}

// Load decodes a single YAML document from r.
func Load(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var c Config
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return &c, nil
		}
		return nil, errors.Wrap(err, "config: decode")
	}
	c.Meta = normalizeMap(c.Meta)
	c.Context = normalizeMap(c.Context)
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadFile reads and decodes the file at path.
func LoadFile(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: read %s", path)
	}
	return Load(bytes.NewReader(b))
}

func (c *Config) validate() error {
	switch c.Language {
	case "", "en", "ja":
	default:
		return errors.Errorf("config: unsupported language %q", c.Language)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return errors.Errorf("config: unsupported log format %q", c.Log.Format)
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if s == "" {
		return l, nil
	}
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return l, errors.Wrapf(err, "config: log level %q", s)
	}
	return l, nil
}

// Options turns the document into Create options. Logs go to w. The language,
// when set, is applied process-wide through i18n.SetLanguage.
func (c *Config) Options(w io.Writer) ([]goaction.Option, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	var opts []goaction.Option
	if c.Meta != nil {
		opts = append(opts, goaction.WithMeta(goaction.Meta(c.Meta)))
	}
	if c.Context != nil {
		opts = append(opts, goaction.WithContext(goaction.StaticContext(goaction.Values(c.Context))))
	}
	if c.Log.Level != "" && w != nil {
		lvl, _ := parseLevel(c.Log.Level)
		ho := &slog.HandlerOptions{Level: lvl}
		var h slog.Handler = slog.NewTextHandler(w, ho)
		if strings.EqualFold(c.Log.Format, "json") {
			h = slog.NewJSONHandler(w, ho)
		}
		opts = append(opts, goaction.WithLogger(slog.New(h)))
	}
	if c.Language != "" {
		i18n.SetLanguage(c.Language)
	}
	return opts, nil
}

// normalizeMap converts nested YAML maps into JSON-like map[string]any.
func normalizeMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return normalizeMap(t)
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			if ks, ok := k.(string); ok {
				out[ks] = normalizeValue(vv)
			}
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = normalizeValue(t[i])
		}
		return out
	default:
		return v
	}
}
