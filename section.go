package inicfg

import (
	"gopkg.in/ini.v1"
)

// Section is an ordered, named mapping of options, owned by a ConfigFile.
// Sections are created inside the schema function and register themselves
// with their ConfigFile immediately.
type Section struct {
	cfg     *ConfigFile
	name    string
	options map[string]*Option
	order   []string
}

// NewSection creates a section, registers it with cfg, and registers each
// option in order. Registration fails with DuplicateSectionError or
// DuplicateOptionError on name collisions.
func NewSection(cfg *ConfigFile, name string, options ...*Option) (*Section, error) {
	s := &Section{
		cfg:     cfg,
		name:    name,
		options: make(map[string]*Option),
	}
	if err := cfg.RegisterSection(s); err != nil {
		return nil, err
	}
	for _, opt := range options {
		if err := s.RegisterOption(opt); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Name returns the section's name as it appears in the file.
func (s *Section) Name() string { return s.name }

// File returns the ConfigFile this section is registered to.
func (s *Section) File() *ConfigFile { return s.cfg }

// RegisterOption adds an option to this section. The option's registration
// callback may decline storage (collections do) while still performing its
// expansion side effect.
func (s *Section) RegisterOption(opt *Option) error {
	if s.Has(opt.name) {
		return &DuplicateOptionError{Section: s.name, Option: opt.name}
	}
	store, err := opt.onRegister(s)
	if err != nil {
		return err
	}
	if store {
		s.options[opt.name] = opt
		s.order = append(s.order, opt.name)
	}
	return nil
}

// Option returns the Option object itself rather than its value.
func (s *Section) Option(name string) (*Option, error) {
	opt, ok := s.options[name]
	if !ok {
		return nil, &NoOptionError{Section: s.name, Option: name}
	}
	return opt, nil
}

// Value returns the current value of the named option. Derived options
// recompute on every call.
func (s *Section) Value(name string) (any, error) {
	opt, err := s.Option(name)
	if err != nil {
		return nil, err
	}
	return opt.Value()
}

// Get returns the value of the named option, or def when the option does
// not exist or its value cannot be resolved.
func (s *Section) Get(name string, def any) any {
	v, err := s.Value(name)
	if err != nil {
		return def
	}
	return v
}

// Set routes through the ConfigFile mutation gateway, so type checks, the
// read-only policy, and raw-model staging all apply.
func (s *Section) Set(option string, value any) error {
	return s.cfg.Set(s.name, option, value)
}

// Raw returns the named option's current raw text form, recomputed from
// its value rather than the originally read string.
func (s *Section) Raw(name string) (string, error) {
	opt, err := s.Option(name)
	if err != nil {
		return "", err
	}
	return opt.Raw()
}

// Has reports whether an option with the given name is registered.
func (s *Section) Has(name string) bool {
	_, ok := s.options[name]
	return ok
}

// Contains reports whether opt is registered to this section. An option
// object counts only when this section is its registered owner.
func (s *Section) Contains(opt *Option) bool {
	return opt != nil && opt.section == s && s.options[opt.name] == opt
}

// Keys returns the option names in registration order.
func (s *Section) Keys() []string {
	keys := make([]string, len(s.order))
	copy(keys, s.order)
	return keys
}

// Options returns the Option objects in registration order.
func (s *Section) Options() []*Option {
	opts := make([]*Option, len(s.order))
	for i, name := range s.order {
		opts[i] = s.options[name]
	}
	return opts
}

// Len returns the number of options in this section.
func (s *Section) Len() int { return len(s.order) }

// parse pulls raw strings from the parsed model into typed option values,
// in registration order.
func (s *Section) parse(raw *ini.File) error {
	for _, name := range s.order {
		if err := s.options[name].parse(raw, s.name); err != nil {
			return err
		}
	}
	return nil
}
