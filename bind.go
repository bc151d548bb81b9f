package tsugihagi

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// BindOption configures Bind.
type BindOption func(*mapstructure.DecoderConfig)

// WithTagName sets the struct tag consulted during decoding.
// Default is "json", matching how documents are usually produced.
func WithTagName(tag string) BindOption {
	return func(c *mapstructure.DecoderConfig) {
		c.TagName = tag
	}
}

// WithStrictTypes disables weak type conversion, so a string "8080" no
// longer decodes into an int field.
func WithStrictTypes() BindOption {
	return func(c *mapstructure.DecoderConfig) {
		c.WeaklyTypedInput = false
	}
}

// Bind decodes a document (typically the output of Apply) into a typed Go
// struct. Weak type conversion is enabled by default because the format
// decoders produce different numeric types (YAML yields int where JSON
// yields float64).
//
// Example:
//
//	var cfg ServerConfig
//	out, err := tsugihagi.Apply(doc, patch)
//	if err != nil {
//	    return err
//	}
//	if err := tsugihagi.Bind(out, &cfg); err != nil {
//	    return err
//	}
func Bind(doc any, target any, opts ...BindOption) error {
	config := &mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
		TagName:          "json",
	}
	for _, opt := range opts {
		opt(config)
	}
	decoder, err := mapstructure.NewDecoder(config)
	if err != nil {
		return fmt.Errorf("failed to build decoder: %w", err)
	}
	if err := decoder.Decode(doc); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	return nil
}
