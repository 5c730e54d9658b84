package inicfg

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrNoFile is returned by Read when no file target was given in the
	// constructor or as a parameter.
	ErrNoFile = errors.New("no config file was given")

	// ErrNoSchema is returned by Read when the ConfigFile has no schema
	// function to build its section tree with.
	ErrNoSchema = errors.New("no schema function was given")

	// ErrUnlinked is returned when FromString or ToString is called on an
	// option that exists only in memory and has no textual form.
	ErrUnlinked = errors.New("option is not linked to the config file")

	// ErrSetDerived is returned when attempting to set a derived option.
	// Derived values are computed from their references and are read-only.
	ErrSetDerived = errors.New("cannot set the value of a derived option")
)

// NoSectionError reports a reference to a section that is not registered
// with the ConfigFile, or a declared section missing from the file.
type NoSectionError struct {
	Section string
}

func (e *NoSectionError) Error() string {
	return fmt.Sprintf("no section %q", e.Section)
}

// NoOptionError reports a reference to an option that is not registered
// with its section, or a required option missing from the file.
type NoOptionError struct {
	Section string
	Option  string
}

func (e *NoOptionError) Error() string {
	return fmt.Sprintf("no option %q in section %q", e.Option, e.Section)
}

// DuplicateSectionError reports registration of a section name that the
// ConfigFile already holds. This is a schema definition error.
type DuplicateSectionError struct {
	Section string
}

func (e *DuplicateSectionError) Error() string {
	return fmt.Sprintf("section %q already exists", e.Section)
}

// DuplicateOptionError reports registration of an option name that the
// section already holds. This is a schema definition error.
type DuplicateOptionError struct {
	Section string
	Option  string
}

func (e *DuplicateOptionError) Error() string {
	return fmt.Sprintf("option %q already exists in section %q", e.Option, e.Section)
}

// TypeCheckError reports a Set call whose value does not match the
// option's declared type.
type TypeCheckError struct {
	Section string
	Option  string
	Want    reflect.Type
	Got     reflect.Type
}

func (e *TypeCheckError) Error() string {
	got := "nil"
	if e.Got != nil {
		got = e.Got.String()
	}
	return fmt.Sprintf("%s/%s: expected type %s, got %s", e.Section, e.Option, e.Want, got)
}

// ReadOnlyError reports a mutation attempt against a read-only ConfigFile.
type ReadOnlyError struct {
	File string
}

func (e *ReadOnlyError) Error() string {
	return fmt.Sprintf("config file %q is read-only", e.File)
}
