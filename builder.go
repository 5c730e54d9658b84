package inicfg

import (
	"fmt"

	"golang.org/x/text/encoding"
	"gopkg.in/ini.v1"
)

// ValidatorFunc validates a fully read ConfigFile. It runs at the end of
// the build process and should return an error if validation fails.
type ValidatorFunc func(c *ConfigFile) error

// Builder provides a fluent interface for constructing a ConfigFile.
type Builder struct {
	file       string
	schema     SchemaFunc
	opts       []FileOption
	validators []ValidatorFunc
}

// NewBuilder creates a new configuration builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithFile sets the configuration file path. When set, Build reads the
// file before returning.
func (b *Builder) WithFile(path string) *Builder {
	b.file = path
	return b
}

// WithSchema sets the schema function that defines the section tree.
func (b *Builder) WithSchema(schema SchemaFunc) *Builder {
	b.schema = schema
	return b
}

// WithReadOnly disables mutation and saving on the built ConfigFile.
func (b *Builder) WithReadOnly() *Builder {
	b.opts = append(b.opts, WithReadOnly())
	return b
}

// WithEncoding sets the text encoding for reading and writing the file.
func (b *Builder) WithEncoding(enc encoding.Encoding) *Builder {
	b.opts = append(b.opts, WithEncoding(enc))
	return b
}

// WithLoadOptions configures the underlying INI parser.
func (b *Builder) WithLoadOptions(opts ini.LoadOptions) *Builder {
	b.opts = append(b.opts, WithLoadOptions(opts))
	return b
}

// WithValidator adds a validation function that runs after the file is
// read. Multiple validators are executed in the order they are added.
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build creates the ConfigFile, reads the file when a path was given, and
// runs the validators.
func (b *Builder) Build() (*ConfigFile, error) {
	opts := b.opts
	if b.file != "" {
		opts = append(opts, WithFile(b.file))
	}
	c := New(b.schema, opts...)

	if b.file != "" {
		if err := c.Read(); err != nil {
			return nil, err
		}
	}

	for _, validator := range b.validators {
		if err := validator(c); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}
	return c, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *ConfigFile {
	c, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("config build failed: %v", err))
	}
	return c
}
