package inicfg

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Scan unmarshals the section's current option values into the target
// struct pointer. Fields are matched by `ini` tag, falling back to the
// field name. Conversion is weakly typed, so a Str option can populate an
// int field when its text parses.
//
//	type server struct {
//	    Host string `ini:"Host"`
//	    Port int    `ini:"Port"`
//	}
//
//	var s server
//	err := sec.Scan(&s)
func (s *Section) Scan(target any) error {
	values, err := s.valueMap()
	if err != nil {
		return err
	}
	return decode(values, target)
}

// Scan unmarshals the whole file into the target struct pointer, one
// nested struct per section. Section fields are matched by `ini` tag,
// falling back to the field name.
func (c *ConfigFile) Scan(target any) error {
	values := make(map[string]any, len(c.order))
	for _, name := range c.order {
		secValues, err := c.sections[name].valueMap()
		if err != nil {
			return err
		}
		values[name] = secValues
	}
	return decode(values, target)
}

// valueMap snapshots the section's option values, resolving derived
// options in the process.
func (s *Section) valueMap() (map[string]any, error) {
	values := make(map[string]any, len(s.order))
	for _, name := range s.order {
		v, err := s.options[name].Value()
		if err != nil {
			return nil, err
		}
		values[name] = v
	}
	return values, nil
}

func decode(values map[string]any, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("scan target must be non-nil pointer, got %T", target)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "ini",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}
	if err := decoder.Decode(values); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	return nil
}
