package registry

import (
	"fmt"
	"math"
	"slices"
	"strconv"
)

// Kind is the value type of a flag.
type Kind int

const (
	KindString Kind = iota
	KindFloat
	KindInt
	KindBool
	KindPath
)

// String returns the name used in usage listings.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindPath:
		return "path"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Path is a path-typed flag value. It serializes as a plain string.
type Path string

// FlagSpec is one declared flag. Its fields are read through accessors so a
// declared spec cannot change after [Declarer] returns it.
type FlagSpec struct {
	name       string
	kind       Kind
	def        any
	hasDefault bool
	choices    []string
	usage      string
	group      string
}

// Name returns the flag name as written on the command line without dashes.
func (s FlagSpec) Name() string { return s.name }

// Kind returns the value type.
func (s FlagSpec) Kind() Kind { return s.kind }

// Usage returns the help text.
func (s FlagSpec) Usage() string { return s.usage }

// Group returns the name of the group that declared the flag.
func (s FlagSpec) Group() string { return s.group }

// Default returns the declared default and whether one was declared.
// The value has the Go type of the kind: string, float64, int, bool or Path.
func (s FlagSpec) Default() (any, bool) { return s.def, s.hasDefault }

// Choices returns a copy of the allowed values, or nil if any value is allowed.
func (s FlagSpec) Choices() []string { return slices.Clone(s.choices) }

// Allows reports whether the canonical string form of a value is permitted.
func (s FlagSpec) Allows(v string) bool {
	return len(s.choices) == 0 || slices.Contains(s.choices, v)
}

// Option configures a flag declaration.
type Option func(*FlagSpec)

// Default sets the value used when neither the config file nor the command
// line sets the flag.
func Default(v any) Option {
	return func(s *FlagSpec) {
		s.def = v
		s.hasDefault = true
	}
}

// Choices restricts the flag to the given values. Values are compared in
// their canonical string form.
func Choices(values ...any) Option {
	return func(s *FlagSpec) {
		s.choices = s.choices[:0:0]
		for _, v := range values {
			s.choices = append(s.choices, fmt.Sprint(v))
		}
	}
}

// Normalize converts v to the Go type of kind. It accepts the loose types a
// YAML decoder or a Go literal produces, such as an int for a float flag.
func Normalize(kind Kind, v any) (any, error) {
	switch kind {
	case KindString:
		switch x := v.(type) {
		case string:
			return x, nil
		case Path:
			return string(x), nil
		}
	case KindPath:
		switch x := v.(type) {
		case string:
			return Path(x), nil
		case Path:
			return x, nil
		}
	case KindFloat:
		switch x := v.(type) {
		case float64:
			return x, nil
		case float32:
			return float64(x), nil
		case int:
			return float64(x), nil
		case int64:
			return float64(x), nil
		}
	case KindInt:
		switch x := v.(type) {
		case int:
			return x, nil
		case int64:
			return int(x), nil
		case float64:
			if x == math.Trunc(x) && x >= math.MinInt && x < -math.MinInt {
				return int(x), nil
			}
		}
	case KindBool:
		if x, ok := v.(bool); ok {
			return x, nil
		}
	}
	return nil, fmt.Errorf("%v (%T) is not a valid %s", v, v, kind)
}

// Format returns the canonical string form of a normalized value, the form
// the flag parser accepts back.
func Format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case Path:
		return string(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

// Parse converts a command-line string to the Go type of kind.
func Parse(kind Kind, raw string) (any, error) {
	switch kind {
	case KindString:
		return raw, nil
	case KindPath:
		return Path(raw), nil
	case KindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a valid float", raw)
		}
		return f, nil
	case KindInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%q is not a valid int", raw)
		}
		return n, nil
	case KindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%q is not a valid bool", raw)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unsupported kind %s", kind)
	}
}
