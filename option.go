package inicfg

import (
	"reflect"
	"strings"

	"gopkg.in/ini.v1"
)

// Converter turns the raw text form of an option into a Go value and back.
// Implement it to define custom option kinds:
//
//	type hexConv struct{}
//
//	func (hexConv) FromString(s string) (any, error) {
//	    return strconv.ParseInt(s, 16, 64)
//	}
//
//	func (hexConv) ToString(v any) (string, error) {
//	    return strconv.FormatInt(v.(int64), 16), nil
//	}
//
//	opt := inicfg.NewOption("Color", hexConv{}, inicfg.WithCheck(int64(0)))
//
// FromString receives a normalized string: embedded newlines collapsed to
// spaces and surrounding whitespace stripped. ToString must be its inverse
// up to the option's equivalence: FromString(ToString(v)) yields a value
// equal to v, even if the text differs from what was originally read.
type Converter interface {
	FromString(s string) (any, error)
	ToString(v any) (string, error)
}

// defaultEmptyTokens are the raw strings interpreted as "no value" unless a
// kind declares its own set. Matching is case-insensitive.
var defaultEmptyTokens = []string{"", "none", "null"}

// Option is a named, typed slot within a Section. It holds the converted
// value last read from the file or set by the caller, knows how to convert
// between that value and its raw text form, and type-checks assignments
// against its declared check type.
type Option struct {
	name        string
	section     *Section
	required    bool
	conv        Converter
	check       reflect.Type
	emptyTokens []string
	emptyValue  any
	value       any

	// linked is false for options that exist only in memory and are never
	// written to the underlying file.
	linked bool

	// compute and refs are set on derived options only.
	compute ComputeFunc
	refs    []Ref

	// registerHook, when set, replaces the default registration behavior.
	// Its boolean result controls whether the option is stored in the
	// section's mapping.
	registerHook func(*Section) (bool, error)
}

// Setting adjusts an Option at construction time.
type Setting func(*Option)

// Optional marks the option as allowed to be absent from the file. An
// absent optional option takes its declared empty value instead of
// failing the read with a NoOptionError.
func Optional() Setting {
	return func(o *Option) { o.required = false }
}

// WithEmpty replaces the option's empty token set and empty value. Any raw
// string matching a token (case-insensitively) maps to value instead of
// going through the converter. An empty token set makes every raw string,
// including the blank string, go through the converter.
func WithEmpty(tokens []string, value any) Setting {
	return func(o *Option) {
		o.emptyTokens = tokens
		o.emptyValue = value
	}
}

// WithCheck declares the type that Set enforces, given as a sample value.
// WithCheck(0) checks for int, WithCheck([]string(nil)) for []string.
func WithCheck(sample any) Setting {
	return func(o *Option) { o.check = reflect.TypeOf(sample) }
}

// NewOption builds an option around a custom Converter. Built-in kinds
// (Str, Int, List, ...) are thin wrappers over this. The option starts
// with the default empty token set, no check type, and a nil value.
func NewOption(name string, conv Converter, settings ...Setting) *Option {
	return newOption(name, conv, nil, defaultEmptyTokens, nil, settings)
}

func newOption(name string, conv Converter, check reflect.Type, tokens []string, empty any, settings []Setting) *Option {
	o := &Option{
		name:        name,
		required:    true,
		conv:        conv,
		check:       check,
		emptyTokens: tokens,
		emptyValue:  empty,
		linked:      true,
	}
	for _, s := range settings {
		s(o)
	}
	o.value = o.emptyValue
	return o
}

// Name returns the option's name as it appears in the file.
func (o *Option) Name() string { return o.name }

// Section returns the section this option is registered to, or nil.
func (o *Option) Section() *Section { return o.section }

// Required reports whether the option must be present in the file.
func (o *Option) Required() bool { return o.required }

// Linked reports whether the option is persisted to the underlying file.
func (o *Option) Linked() bool { return o.linked }

// Value returns the option's current converted value. Derived options
// recompute their value on every call; resolution of their references can
// fail with NoSectionError or NoOptionError.
func (o *Option) Value() (any, error) {
	if o.compute != nil {
		return o.derive()
	}
	return o.value, nil
}

// Set stores a new in-memory value after checking it against the option's
// declared type. It does not touch the underlying raw model; route through
// ConfigFile.Set or Section.Set to keep the file consistent.
func (o *Option) Set(value any) error {
	if o.compute != nil {
		return ErrSetDerived
	}
	if o.section != nil && o.check != nil {
		got := reflect.TypeOf(value)
		if got == nil || !got.AssignableTo(o.check) {
			return &TypeCheckError{
				Section: o.section.name,
				Option:  o.name,
				Want:    o.check,
				Got:     got,
			}
		}
	}
	o.value = value
	return nil
}

// FromString converts raw option text into a value using the option's
// converter.
func (o *Option) FromString(s string) (any, error) { return o.conv.FromString(s) }

// ToString converts a value into raw option text using the option's
// converter.
func (o *Option) ToString(v any) (string, error) { return o.conv.ToString(v) }

// Raw returns the option's current raw text form, recomputed from the
// value. It is not necessarily byte-identical to the originally read text.
func (o *Option) Raw() (string, error) { return o.conv.ToString(o.value) }

// onRegister binds the option to its section. When a registration hook is
// present its result decides whether the option is stored in the section's
// mapping; option collections use this to expand without storing
// themselves.
func (o *Option) onRegister(s *Section) (bool, error) {
	o.section = s
	if o.registerHook != nil {
		return o.registerHook(s)
	}
	return true, nil
}

// parse pulls the option's raw string out of the parsed model and converts
// it. A missing raw section fails with NoSectionError. A missing key fails
// with NoOptionError when the option is required, and otherwise resolves
// to the declared empty value. Conversion errors propagate unchanged.
func (o *Option) parse(raw *ini.File, sectionName string) error {
	if !o.linked {
		return nil
	}
	src, err := raw.GetSection(sectionName)
	if err != nil {
		return &NoSectionError{Section: sectionName}
	}
	if !src.HasKey(o.name) {
		if o.required {
			return &NoOptionError{Section: sectionName, Option: o.name}
		}
		o.value = o.emptyValue
		return nil
	}
	val := normalize(src.Key(o.name).String())
	if o.isEmptyToken(val) {
		o.value = o.emptyValue
		return nil
	}
	v, err := o.conv.FromString(val)
	if err != nil {
		return err
	}
	o.value = v
	return nil
}

func (o *Option) isEmptyToken(val string) bool {
	for _, tok := range o.emptyTokens {
		if strings.EqualFold(val, tok) {
			return true
		}
	}
	return false
}

// clone returns an unbound copy of the option with its value reset to the
// empty value. Section collections use clones so that each expanded
// section mutates its own options.
func (o *Option) clone() *Option {
	dup := *o
	dup.section = nil
	dup.value = dup.emptyValue
	return &dup
}

// normalize collapses embedded newlines to spaces and strips surrounding
// whitespace from a raw value.
func normalize(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
}
