package pipeline

import (
	"fmt"
	"strings"

	"github.com/dosanma1/forge-deploy/internal/config"
)

// LogColor selects how a plugin log line is emphasised.
type LogColor string

const (
	ColorNone LogColor = ""
	ColorRed  LogColor = "red"
)

// LogOptions mirrors the pipeline log call options.
type LogOptions struct {
	Verbose bool
	Color   LogColor
}

// Base carries the configuration plumbing shared by plugins. Embed it and
// call NewBase from the plugin constructor.
type Base struct {
	name     string
	defaults config.Options
	options  config.Options
}

// NewBase creates a Base with declared defaults. enabled defaults to true
// unless the plugin declares otherwise.
func NewBase(name string, defaults config.Options) Base {
	defaults = defaults.Clone()
	if _, ok := defaults.Get("enabled"); !ok {
		defaults = defaults.Set("enabled", true)
	}
	return Base{name: name, defaults: defaults}
}

// Name implements Plugin.
func (b *Base) Name() string {
	return b.name
}

// Configure implements Configurer.
func (b *Base) Configure(opts config.Options) error {
	b.options = opts.Clone()
	return nil
}

// PluginConfig returns the configured options in declaration order, without
// defaults.
func (b *Base) PluginConfig() config.Options {
	return b.options.Clone()
}

// ReadConfig resolves an option: configured value first, then the declared
// default.
func (b *Base) ReadConfig(key string) any {
	if v, ok := b.options.Get(key); ok {
		return v
	}
	v, _ := b.defaults.Get(key)
	return v
}

// ReadString resolves an option as a string. Missing values are "".
func (b *Base) ReadString(key string) string {
	v := b.ReadConfig(key)
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// ReadBool resolves an option by truthiness.
func (b *Base) ReadBool(key string) bool {
	return Truthy(b.ReadConfig(key))
}

// Enabled reports whether the enabled option resolves true.
func (b *Base) Enabled() bool {
	return b.ReadBool("enabled")
}

// Log writes a plugin log line. Verbose lines are debug output, red lines are
// warnings. Logging never fails.
func (b *Base) Log(pctx *Context, msg string, opts LogOptions) {
	if pctx == nil || pctx.UI == nil {
		return
	}
	logger := pctx.UI.Logger().With("plugin", b.name)
	switch {
	case opts.Verbose:
		logger.Debug(msg)
	case opts.Color == ColorRed:
		logger.Warn(msg)
	default:
		logger.Info(msg)
	}
}

// Truthy reports whether a configuration value counts as true.
func Truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case int:
		return val != 0
	case int64:
		return val != 0
	case uint64:
		return val != 0
	case float64:
		return val != 0
	default:
		return true
	}
}

// StringList resolves a value that may be a single string, a
// comma-separated string, or a YAML sequence.
func StringList(v any) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case []string:
		return val
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, fmt.Sprint(item))
		}
		return out
	case string:
		if val == "" {
			return nil
		}
		parts := strings.Split(val, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	default:
		return []string{fmt.Sprint(val)}
	}
}
