package inicfg

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
	"gopkg.in/ini.v1"
)

// SchemaFunc defines the structure of a config file. It runs on every
// read, after the raw text is parsed and before typed parsing, and must
// populate the ConfigFile with sections and options:
//
//	func schema(c *inicfg.ConfigFile) error {
//	    _, err := inicfg.NewSection(c, "Server",
//	        inicfg.Str("Host"),
//	        inicfg.Int("Port"),
//	    )
//	    return err
//	}
//
// Because it runs on every re-read it should do nothing beyond building
// the tree.
type SchemaFunc func(c *ConfigFile) error

// ConfigFile is the root of a typed config definition. It owns the
// sections, drives the read/parse/save lifecycle, and is the single
// mutation gateway enforcing the read-only policy.
//
// A ConfigFile has exactly one owner at a time; operations are synchronous
// and must not be interleaved from multiple goroutines. Concurrent
// external modification of the file between Read and Save is
// last-writer-wins.
type ConfigFile struct {
	filename string
	readOnly bool
	enc      encoding.Encoding
	loadOpts ini.LoadOptions
	schema   SchemaFunc

	// raw mirrors the on-disk state; Set stages changes into it so Save
	// reflects every prior Set.
	raw      *ini.File
	sections map[string]*Section
	order    []string
}

// FileOption adjusts a ConfigFile at construction time.
type FileOption func(*ConfigFile)

// WithFile sets the file target read by Read and written by Save.
func WithFile(path string) FileOption {
	return func(c *ConfigFile) { c.filename = path }
}

// WithReadOnly prevents changing option values, deleting sections, and
// writing to the file in any way.
func WithReadOnly() FileOption {
	return func(c *ConfigFile) { c.readOnly = true }
}

// WithEncoding sets the text encoding used to decode the file on read and
// encode it on save. The default is UTF-8 as-is.
func WithEncoding(enc encoding.Encoding) FileOption {
	return func(c *ConfigFile) { c.enc = enc }
}

// WithLoadOptions configures the underlying INI parser. Note that go-ini
// treats key names case-sensitively by default, which this package relies
// on.
func WithLoadOptions(opts ini.LoadOptions) FileOption {
	return func(c *ConfigFile) { c.loadOpts = opts }
}

// New creates a ConfigFile with the given schema. Nothing is read until
// Read or ReadFile is called.
func New(schema SchemaFunc, opts ...FileOption) *ConfigFile {
	c := &ConfigFile{
		schema:   schema,
		sections: make(map[string]*Section),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.raw = ini.Empty(c.loadOpts)
	return c
}

// Open creates a ConfigFile bound to path and reads it immediately.
func Open(path string, schema SchemaFunc, opts ...FileOption) (*ConfigFile, error) {
	c := New(schema, opts...)
	if err := c.ReadFile(path); err != nil {
		return nil, err
	}
	return c, nil
}

// Read reads the file given at construction. It fails with ErrNoFile when
// no file target was ever given.
func (c *ConfigFile) Read() error { return c.ReadFile("") }

// ReadFile reads and parses the config file at path (or the previously
// given target when path is empty). Every read is a full rebuild: the
// section tree is discarded, the schema function runs again, and all
// sections re-parse, so unsaved in-memory edits revert to the on-disk
// values.
func (c *ConfigFile) ReadFile(path string) error {
	if path != "" {
		c.filename = path
	}
	if c.filename == "" {
		return ErrNoFile
	}
	if c.schema == nil {
		return ErrNoSchema
	}

	f, err := os.Open(c.filename)
	if err != nil {
		return err
	}
	defer f.Close()

	var r io.Reader = f
	if c.enc != nil {
		r = transform.NewReader(f, c.enc.NewDecoder())
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	raw, err := ini.LoadSources(c.loadOpts, data)
	if err != nil {
		return err
	}

	c.raw = raw
	c.sections = make(map[string]*Section)
	c.order = nil
	if err := c.schema(c); err != nil {
		return err
	}
	for _, name := range c.order {
		if err := c.sections[name].parse(raw); err != nil {
			return err
		}
	}
	return nil
}

// RegisterSection adds a section to this config file. Sections normally
// register themselves through NewSection.
func (c *ConfigFile) RegisterSection(s *Section) error {
	if c.HasSection(s.name) {
		return &DuplicateSectionError{Section: s.name}
	}
	s.cfg = c
	c.sections[s.name] = s
	c.order = append(c.order, s.name)
	return nil
}

// Section returns the named section, failing with NoSectionError when the
// schema did not declare it.
func (c *ConfigFile) Section(name string) (*Section, error) {
	s, ok := c.sections[name]
	if !ok {
		return nil, &NoSectionError{Section: name}
	}
	return s, nil
}

// Set is the single mutation gateway. It resolves the section and option
// by name, type-checks and stores the new value, and stages the new raw
// string into the in-memory model so that Save reflects every prior Set.
// Options that are not persisted skip the staging step.
func (c *ConfigFile) Set(section, option string, value any) error {
	if c.readOnly {
		return &ReadOnlyError{File: c.filename}
	}
	sec, err := c.Section(section)
	if err != nil {
		return err
	}
	opt, err := sec.Option(option)
	if err != nil {
		return err
	}
	if err := opt.Set(value); err != nil {
		return err
	}
	if opt.linked {
		raw, err := opt.Raw()
		if err != nil {
			return err
		}
		c.raw.Section(sec.name).Key(opt.name).SetValue(raw)
	}
	return nil
}

// Save writes the current raw model to the file, replacing its contents.
// It is a no-op when the ConfigFile is read-only or has no file target.
// The write goes through a temp file and rename so a failed save never
// truncates the original.
func (c *ConfigFile) Save() error {
	if c.readOnly || c.filename == "" {
		return nil
	}
	var buf bytes.Buffer
	if _, err := c.raw.WriteTo(&buf); err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	data := buf.Bytes()
	if c.enc != nil {
		encoded, _, err := transform.Bytes(c.enc.NewEncoder(), data)
		if err != nil {
			return fmt.Errorf("failed to encode config text: %w", err)
		}
		data = encoded
	}
	return atomicWriteFile(c.filename, data)
}

// DeleteSection removes a section from the file and the tree, returning
// the removed Section.
func (c *ConfigFile) DeleteSection(name string) (*Section, error) {
	if c.readOnly {
		return nil, &ReadOnlyError{File: c.filename}
	}
	s, ok := c.sections[name]
	if !ok {
		return nil, &NoSectionError{Section: name}
	}
	c.raw.DeleteSection(name)
	delete(c.sections, name)
	for i, n := range c.order {
		if n == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return s, nil
}

// HasSection reports whether a section with the given name is registered.
func (c *ConfigFile) HasSection(name string) bool {
	_, ok := c.sections[name]
	return ok
}

// ContainsSection reports whether s is registered to this config file. A
// section object counts only when this file is its registered owner.
func (c *ConfigFile) ContainsSection(s *Section) bool {
	return s != nil && s.cfg == c && c.sections[s.name] == s
}

// Sections returns the Section objects in registration order.
func (c *ConfigFile) Sections() []*Section {
	secs := make([]*Section, len(c.order))
	for i, name := range c.order {
		secs[i] = c.sections[name]
	}
	return secs
}

// SectionNames returns the section names in registration order.
func (c *ConfigFile) SectionNames() []string {
	names := make([]string, len(c.order))
	copy(names, c.order)
	return names
}

// Len returns the number of sections in this config file.
func (c *ConfigFile) Len() int { return len(c.order) }

// Filename returns the current file target, or the empty string.
func (c *ConfigFile) Filename() string { return c.filename }

// ReadOnly reports whether mutation and saving are disabled.
func (c *ConfigFile) ReadOnly() bool { return c.readOnly }

// Raw exposes the underlying parsed model. Mutating it directly bypasses
// type checks and the read-only policy.
func (c *ConfigFile) Raw() *ini.File { return c.raw }

// atomicWriteFile writes data to path through a temp file in the same
// directory followed by a rename.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	tempPath := tempFile.Name()
	defer os.Remove(tempPath) // Clean up on any error

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}
