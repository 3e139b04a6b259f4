package dumper

import (
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/bjaus/dumper/internal/typeindex"
)

// ProfileFormat is the encoding of a profile document.
type ProfileFormat string

const (
	ProfileYAML ProfileFormat = "yaml"
	ProfileTOML ProfileFormat = "toml"
	ProfileJSON ProfileFormat = "json"
)

// String returns the format name.
func (f ProfileFormat) String() string { return string(f) }

// ParseProfileFormat parses a profile format name. "yml" is accepted as an
// alias for YAML.
func ParseProfileFormat(s string) (ProfileFormat, error) {
	switch strings.ToLower(s) {
	case "yaml", "yml":
		return ProfileYAML, nil
	case "toml":
		return ProfileTOML, nil
	case "json":
		return ProfileJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Profile is a declarative set of rules that can be stored in a file and
// applied to a [Config] with [ApplyProfile].
//
// Types are named "pkg.Type" (or just "Type" when unambiguous), builtin
// types by their bare name. Fields are named "Owner.Field".
type Profile struct {
	ExcludeTypes  []string            `mapstructure:"exclude_types"`
	ExcludeFields []string            `mapstructure:"exclude_fields"`
	Types         map[string]RuleSpec `mapstructure:"types"`
	Fields        map[string]RuleSpec `mapstructure:"fields"`
}

// RuleSpec describes the steps of one chain. Set steps are appended in a
// fixed order: Format, Template, JSON, Case, Trim.
type RuleSpec struct {
	Format   string `mapstructure:"format"`
	Template string `mapstructure:"template"`
	JSON     bool   `mapstructure:"json"`
	Case     string `mapstructure:"case"` // "upper" or "lower"
	Trim     *int   `mapstructure:"trim"`
}

// LoadProfile reads a profile document in format f from r.
func LoadProfile(r io.Reader, f ProfileFormat) (Profile, error) {
	var (
		raw map[string]any
		err error
	)
	switch f {
	case ProfileYAML:
		raw, err = decodeYAML(r)
	case ProfileTOML:
		raw, err = decodeTOML(r)
	case ProfileJSON:
		raw, err = decodeJSON(r)
	default:
		return Profile{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	if err != nil {
		return Profile{}, err
	}

	var p Profile
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &p,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
	})
	if err != nil {
		return Profile{}, fmt.Errorf("%w: %s", ErrInvalidProfile, err)
	}
	if err := dec.Decode(raw); err != nil {
		return Profile{}, fmt.Errorf("%w: %s", ErrInvalidProfile, err)
	}
	return p, nil
}

// LoadProfileFile reads a profile from path. The format is taken from the
// file extension.
func LoadProfileFile(path string) (Profile, error) {
	f, err := ParseProfileFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return Profile{}, err
	}
	file, err := os.Open(path)
	if err != nil {
		return Profile{}, err
	}
	defer file.Close()
	return LoadProfile(file, f)
}

// ApplyProfile returns a copy of c extended with every rule in p. Names are
// resolved against the types reachable from T. On error c is returned
// unchanged.
func ApplyProfile[T any](c Config[T], p Profile) (Config[T], error) {
	idx := typeindex.New(reflect.TypeFor[T](), uuidType)
	out := c

	for _, name := range p.ExcludeTypes {
		t, err := lookupType(idx, name)
		if err != nil {
			return c, err
		}
		out = out.ExcludingType(t)
	}
	for _, name := range p.ExcludeFields {
		f, err := lookupField(idx, name)
		if err != nil {
			return c, err
		}
		out = out.ExcludingField(f)
	}
	for _, name := range slices.Sorted(maps.Keys(p.Types)) {
		t, err := lookupType(idx, name)
		if err != nil {
			return c, err
		}
		steps, err := p.Types[name].steps()
		if err != nil {
			return c, fmt.Errorf("type %s: %w", name, err)
		}
		for _, s := range steps {
			out = out.WithTypeRule(t, s)
		}
	}
	for _, name := range slices.Sorted(maps.Keys(p.Fields)) {
		f, err := lookupField(idx, name)
		if err != nil {
			return c, err
		}
		steps, err := p.Fields[name].steps()
		if err != nil {
			return c, fmt.Errorf("field %s: %w", name, err)
		}
		for _, s := range steps {
			out = out.WithFieldRule(f, s)
		}
	}
	return out, nil
}

func (r RuleSpec) steps() ([]Step, error) {
	var steps []Step
	if r.Format != "" {
		verb := r.Format
		steps = append(steps, func(v any) string { return fmt.Sprintf(verb, v) })
	}
	if r.Template != "" {
		s, err := templateStep(r.Template)
		if err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}
	if r.JSON {
		steps = append(steps, jsonStep)
	}
	switch strings.ToLower(r.Case) {
	case "":
	case "upper":
		steps = append(steps, func(v any) string { return strings.ToUpper(text(v)) })
	case "lower":
		steps = append(steps, func(v any) string { return strings.ToLower(text(v)) })
	default:
		return nil, fmt.Errorf("%w: unknown case %q", ErrInvalidProfile, r.Case)
	}
	if r.Trim != nil {
		n := *r.Trim
		steps = append(steps, func(v any) string { return trim(text(v), n) })
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("%w: rule has no steps", ErrInvalidProfile)
	}
	return steps, nil
}

func lookupType(idx *typeindex.Index, name string) (reflect.Type, error) {
	t, err := idx.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, err)
	}
	return t, nil
}

func lookupField(idx *typeindex.Index, name string) (FieldID, error) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return FieldID{}, fmt.Errorf("%w: %q is not of the form Owner.Field", ErrInvalidSelector, name)
	}
	owner, err := lookupType(idx, name[:i])
	if err != nil {
		return FieldID{}, err
	}
	return fieldByName(owner, name[i+1:])
}
