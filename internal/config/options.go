package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Option is a single plugin option.
type Option struct {
	Key   string
	Value any
}

// Options is a plugin configuration that keeps keys in declaration order.
// Plugins that translate options into command-line flags rely on that order.
type Options []Option

// NewOptions builds Options from alternating key/value pairs.
func NewOptions(kv ...any) Options {
	opts := make(Options, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		opts = opts.Set(fmt.Sprint(kv[i]), kv[i+1])
	}
	return opts
}

// UnmarshalYAML decodes a YAML mapping, preserving key order.
func (o *Options) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*o = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: plugin config must be a mapping", node.Line)
	}

	opts := make(Options, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var value any
		if err := node.Content[i+1].Decode(&value); err != nil {
			return fmt.Errorf("line %d: failed to decode %q: %w", node.Content[i+1].Line, node.Content[i].Value, err)
		}
		opts = opts.Set(node.Content[i].Value, value)
	}

	*o = opts
	return nil
}

// Get returns the value stored under key.
func (o Options) Get(key string) (any, bool) {
	for _, opt := range o {
		if opt.Key == key {
			return opt.Value, true
		}
	}
	return nil, false
}

// Set returns options with key set to value. An existing key keeps its
// position; a new key is appended.
func (o Options) Set(key string, value any) Options {
	for i := range o {
		if o[i].Key == key {
			o[i].Value = value
			return o
		}
	}
	return append(o, Option{Key: key, Value: value})
}

// Keys returns option keys in declaration order.
func (o Options) Keys() []string {
	keys := make([]string, 0, len(o))
	for _, opt := range o {
		keys = append(keys, opt.Key)
	}
	return keys
}

// Clone returns a shallow copy.
func (o Options) Clone() Options {
	if o == nil {
		return nil
	}
	out := make(Options, len(o))
	copy(out, o)
	return out
}
