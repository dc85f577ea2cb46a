package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"

	"gopkg.in/yaml.v3"
)

// File is a decoded configuration file: flattened flag names and group names
// at the top level, group flag names one level down.
type File map[string]any

// Group returns the mapping stored under a group name. ok is false when the
// group is absent or empty (a key with nothing under it decodes to nil);
// isMap is false when the entry exists but is not a mapping.
func (f File) Group(name string) (group map[string]any, ok, isMap bool) {
	v, ok := f[name]
	if !ok || v == nil {
		return nil, false, false
	}
	group, isMap = v.(map[string]any)
	return group, true, isMap
}

// ToMap returns a deep copy of the file contents.
func (f File) ToMap() map[string]any {
	return deepCopy(f)
}

// Status describes the outcome of [Load].
type Status int

const (
	// StatusNone means no path was given.
	StatusNone Status = iota
	// StatusMissing means the path does not exist. It is not an error.
	StatusMissing
	// StatusLoaded means the file was read and decoded.
	StatusLoaded
	// StatusInvalid means the file exists but could not be read or decoded.
	StatusInvalid
)

func (s Status) String() string {
	switch s {
	case StatusNone:
		return "none"
	case StatusMissing:
		return "missing"
	case StatusLoaded:
		return "loaded"
	case StatusInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result is the outcome of loading a configuration file. Values is never nil.
type Result struct {
	Path   string
	Status Status
	Values File
	// Err is a *ReadError when Status is StatusInvalid.
	Err error
}

// ReadError reports a configuration file that exists but cannot be used.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading config file %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Load reads and decodes the YAML file at path. It never fails outright: a
// missing file yields StatusMissing and an unreadable or malformed one
// yields StatusInvalid with the cause in Err. In both cases Values is empty.
func Load(path string) Result {
	res := Result{Path: path, Values: File{}}
	if path == "" {
		return res
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			res.Status = StatusMissing
			return res
		}
		res.Status = StatusInvalid
		res.Err = &ReadError{Path: path, Err: err}
		return res
	}
	values, err := Parse(data)
	if err != nil {
		res.Status = StatusInvalid
		res.Err = &ReadError{Path: path, Err: err}
		return res
	}
	res.Status = StatusLoaded
	res.Values = values
	return res
}

// Parse decodes a YAML document into a File. An empty document is an empty
// File; a document whose top level is not a mapping is an error.
func Parse(data []byte) (File, error) {
	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	if values == nil {
		return File{}, nil
	}
	return File(values), nil
}

func deepCopy(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := maps.Clone(m)
	for k, v := range out {
		if sub, ok := v.(map[string]any); ok {
			out[k] = deepCopy(sub)
		}
	}
	return out
}
