package inicfg

import (
	"bytes"
	"encoding/base64"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Str declares a string option. The raw text is the value; the default
// empty tokens ("", "none", "null") resolve to nil.
func Str(name string, settings ...Setting) *Option {
	return newOption(name, strConv{}, reflect.TypeOf(""), defaultEmptyTokens, nil, settings)
}

type strConv struct{}

func (strConv) FromString(s string) (any, error) { return s, nil }

func (strConv) ToString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("expected string value, got %T", v)
	}
	return s, nil
}

// Int declares an integer option. The blank string resolves to 0.
func Int(name string, settings ...Setting) *Option {
	return newOption(name, intConv{}, reflect.TypeOf(0), []string{""}, 0, settings)
}

type intConv struct{}

func (intConv) FromString(s string) (any, error) { return strconv.Atoi(s) }

func (intConv) ToString(v any) (string, error) {
	n, ok := v.(int)
	if !ok {
		return "", fmt.Errorf("expected int value, got %T", v)
	}
	return strconv.Itoa(n), nil
}

// Float declares a float64 option. The blank string resolves to 0.0.
func Float(name string, settings ...Setting) *Option {
	return newOption(name, floatConv{}, reflect.TypeOf(0.0), []string{""}, 0.0, settings)
}

type floatConv struct{}

func (floatConv) FromString(s string) (any, error) { return strconv.ParseFloat(s, 64) }

func (floatConv) ToString(v any) (string, error) {
	f, ok := v.(float64)
	if !ok {
		return "", fmt.Errorf("expected float64 value, got %T", v)
	}
	return strconv.FormatFloat(f, 'g', -1, 64), nil
}

// Decimal declares an arbitrary-precision decimal option backed by
// decimal.Decimal, for values where binary floats lose precision.
func Decimal(name string, settings ...Setting) *Option {
	return newOption(name, decimalConv{}, reflect.TypeOf(decimal.Decimal{}), defaultEmptyTokens, nil, settings)
}

type decimalConv struct{}

func (decimalConv) FromString(s string) (any, error) { return decimal.NewFromString(s) }

func (decimalConv) ToString(v any) (string, error) {
	d, ok := v.(decimal.Decimal)
	if !ok {
		return "", fmt.Errorf("expected decimal.Decimal value, got %T", v)
	}
	return d.String(), nil
}

// boolTruthy lists the raw values read as true, case-insensitively.
// Anything else reads as false. Serialization always writes true/false.
var boolTruthy = []string{"true", "yes", "on", "enabled"}

// Bool declares a boolean option. The blank string resolves to false.
func Bool(name string, settings ...Setting) *Option {
	return newOption(name, boolConv{}, reflect.TypeOf(false), []string{""}, false, settings)
}

type boolConv struct{}

func (boolConv) FromString(s string) (any, error) {
	for _, t := range boolTruthy {
		if strings.EqualFold(s, t) {
			return true, nil
		}
	}
	return false, nil
}

func (boolConv) ToString(v any) (string, error) {
	b, ok := v.(bool)
	if !ok {
		return "", fmt.Errorf("expected bool value, got %T", v)
	}
	return strconv.FormatBool(b), nil
}

// List declares an option holding a delimited list of values. Each raw
// item is converted with the item function; the value is a []T. The blank
// string converts to an empty list rather than nil, so List has no empty
// tokens by default: blank is a normal value.
//
//	inicfg.List("Ports", strconv.Atoi, ",")
func List[T any](name string, item func(string) (T, error), delimiter string, settings ...Setting) *Option {
	conv := listConv[T]{item: item, delim: delimiter}
	return newOption(name, conv, reflect.TypeOf([]T(nil)), nil, nil, settings)
}

// StrList declares a list of strings with the conventional ", " delimiter.
func StrList(name string, settings ...Setting) *Option {
	return List(name, func(s string) (string, error) { return s, nil }, ", ", settings...)
}

type listConv[T any] struct {
	item  func(string) (T, error)
	delim string
}

func (c listConv[T]) FromString(s string) (any, error) {
	if s == "" {
		return []T{}, nil
	}
	parts := strings.Split(s, c.delim)
	items := make([]T, 0, len(parts))
	for _, p := range parts {
		v, err := c.item(p)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, nil
}

func (c listConv[T]) ToString(v any) (string, error) {
	items, ok := v.([]T)
	if !ok {
		return "", fmt.Errorf("expected %T value, got %T", []T(nil), v)
	}
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprint(item)
	}
	return strings.Join(parts, c.delim), nil
}

// Span is an integer interval with an inclusive start and exclusive stop.
type Span struct {
	Start int
	Stop  int
}

// Contains reports whether n falls within the span.
func (s Span) Contains(n int) bool { return n >= s.Start && n < s.Stop }

// Range declares an option holding a Span, written as the start and stop
// joined by the delimiter, e.g. "5-10" with delimiter "-".
func Range(name string, delimiter string, settings ...Setting) *Option {
	conv := rangeConv{delim: delimiter}
	return newOption(name, conv, reflect.TypeOf(Span{}), defaultEmptyTokens, nil, settings)
}

type rangeConv struct {
	delim string
}

func (c rangeConv) FromString(s string) (any, error) {
	parts := strings.Split(s, c.delim)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid range %q: expected start%sstop", s, c.delim)
	}
	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, err
	}
	stop, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, err
	}
	return Span{Start: start, Stop: stop}, nil
}

func (c rangeConv) ToString(v any) (string, error) {
	span, ok := v.(Span)
	if !ok {
		return "", fmt.Errorf("expected Span value, got %T", v)
	}
	return strconv.Itoa(span.Start) + c.delim + strconv.Itoa(span.Stop), nil
}

// isoLayout is the default date-time layout: ISO-8601 without an offset.
// Fractional seconds are accepted on parse and preserved on write.
const (
	isoLayout     = "2006-01-02T15:04:05"
	isoLayoutFrac = "2006-01-02T15:04:05.999999999"
	dateLayout    = "2006-01-02"
)

// DateTime declares a time.Time option. An empty layout selects ISO-8601;
// otherwise layout is a Go reference-time layout string.
func DateTime(name string, layout string, settings ...Setting) *Option {
	conv := timeConv{layout: layout}
	return newOption(name, conv, reflect.TypeOf(time.Time{}), defaultEmptyTokens, nil, settings)
}

type timeConv struct {
	layout string
}

func (c timeConv) FromString(s string) (any, error) {
	if c.layout != "" {
		return time.Parse(c.layout, s)
	}
	// time.Parse handles fractional seconds implicitly when the input has
	// them, so the bare layout covers both.
	if t, err := time.Parse(isoLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(dateLayout, s)
}

func (c timeConv) ToString(v any) (string, error) {
	t, ok := v.(time.Time)
	if !ok {
		return "", fmt.Errorf("expected time.Time value, got %T", v)
	}
	if c.layout != "" {
		return t.Format(c.layout), nil
	}
	return t.Format(isoLayoutFrac), nil
}

// Date declares a calendar-date option. The value is a time.Time at
// midnight UTC of the parsed day. An empty layout selects 2006-01-02.
func Date(name string, layout string, settings ...Setting) *Option {
	conv := dateConv{layout: layout}
	return newOption(name, conv, reflect.TypeOf(time.Time{}), defaultEmptyTokens, nil, settings)
}

type dateConv struct {
	layout string
}

func (c dateConv) FromString(s string) (any, error) {
	layout := c.layout
	if layout == "" {
		layout = dateLayout
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return nil, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func (c dateConv) ToString(v any) (string, error) {
	t, ok := v.(time.Time)
	if !ok {
		return "", fmt.Errorf("expected time.Time value, got %T", v)
	}
	layout := c.layout
	if layout == "" {
		layout = dateLayout
	}
	return t.Format(layout), nil
}

// Blob declares an option for arbitrary Go values, stored in the file as
// base64-encoded gob data. Concrete types crossing the encoder as
// interface values must be registered with gob.Register. Blob performs no
// type check on Set.
func Blob(name string, settings ...Setting) *Option {
	return newOption(name, blobConv{}, nil, defaultEmptyTokens, nil, settings)
}

type blobConv struct{}

func (blobConv) FromString(s string) (any, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	var v any
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func (blobConv) ToString(v any) (string, error) {
	// gob cannot encode a nil interface; nil round-trips through the blank
	// string, which the empty token set maps back to nil.
	if v == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&v); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Dict declares an option holding a JSON object, with a map[string]any
// value. The blank string converts to an empty map; use Blob for values
// that JSON cannot represent.
func Dict(name string, settings ...Setting) *Option {
	return newOption(name, dictConv{}, reflect.TypeOf(map[string]any(nil)), nil, nil, settings)
}

// JSON is an alias for Dict.
func JSON(name string, settings ...Setting) *Option {
	return Dict(name, settings...)
}

type dictConv struct{}

func (dictConv) FromString(s string) (any, error) {
	if s == "" {
		return map[string]any{}, nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, err
	}
	return m, nil
}

func (dictConv) ToString(v any) (string, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return "", fmt.Errorf("expected map[string]any value, got %T", v)
	}
	data, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
