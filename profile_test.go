package dumper_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/dumper"
)

const yamlProfile = `
exclude_types: [uuid.UUID]
exclude_fields: [Person.Age]
types:
  float64: {format: "%.1f"}
fields:
  Person.Name: {case: upper, trim: 2}
  Employee.Tags: {json: true}
`

const tomlProfile = `
exclude_types = ["uuid.UUID"]
exclude_fields = ["Person.Age"]

[types.float64]
format = "%.1f"

[fields."Person.Name"]
case = "upper"
trim = 2

[fields."Employee.Tags"]
json = true
`

const jsonProfile = `{
  "exclude_types": ["uuid.UUID"],
  "exclude_fields": ["Person.Age"],
  "types": {"float64": {"format": "%.1f"}},
  "fields": {
    "Person.Name": {"case": "upper", "trim": 2},
    "Employee.Tags": {"json": true}
  }
}`

var profileEmployee = Employee{
	ID:     uuid.New(),
	Person: Person{Name: "Bob", Age: 41},
	Salary: 10,
	Tags:   []string{"x"},
}

const profileOut = "Employee\n" +
	"\tPerson = Person\n" +
	"\t\tName = BO\n" +
	"\tHome = null\n" +
	"\tWork = null\n" +
	"\tSalary = 10.0\n" +
	"\tJoined = 0001-01-01T00:00:00Z\n" +
	"\tTenure = 0s\n" +
	"\tTags = [\"x\"]\n" +
	"\tActive = false\n"

func TestParseProfileFormat(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input   string
		want    dumper.ProfileFormat
		wantErr require.ErrorAssertionFunc
	}{
		"yaml":    {input: "yaml", want: dumper.ProfileYAML, wantErr: require.NoError},
		"yml":     {input: "yml", want: dumper.ProfileYAML, wantErr: require.NoError},
		"toml":    {input: "TOML", want: dumper.ProfileTOML, wantErr: require.NoError},
		"json":    {input: "json", want: dumper.ProfileJSON, wantErr: require.NoError},
		"unknown": {input: "xml", want: "", wantErr: require.Error},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := dumper.ParseProfileFormat(tt.input)
			tt.wantErr(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadAndApplyProfile(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		doc    string
		format dumper.ProfileFormat
	}{
		"yaml": {doc: yamlProfile, format: dumper.ProfileYAML},
		"toml": {doc: tomlProfile, format: dumper.ProfileTOML},
		"json": {doc: jsonProfile, format: dumper.ProfileJSON},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			p, err := dumper.LoadProfile(strings.NewReader(tt.doc), tt.format)
			require.NoError(t, err)
			assert.Equal(t, []string{"uuid.UUID"}, p.ExcludeTypes)
			require.NotNil(t, p.Fields["Person.Name"].Trim)
			assert.Equal(t, 2, *p.Fields["Person.Name"].Trim)

			cfg, err := dumper.ApplyProfile(dumper.New[Employee](), p)
			require.NoError(t, err)
			assert.Equal(t, profileOut, cfg.PrintToString(profileEmployee))
		})
	}
}

func TestLoadProfileFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "dump.yml")
	require.NoError(t, os.WriteFile(path, []byte(yamlProfile), 0o600))

	p, err := dumper.LoadProfileFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Person.Age"}, p.ExcludeFields)
}

func TestLoadProfileFileErrors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	_, err := dumper.LoadProfileFile(filepath.Join(dir, "dump.ini"))
	require.ErrorIs(t, err, dumper.ErrUnsupportedFormat)

	_, err = dumper.LoadProfileFile(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadProfileErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		doc    string
		format dumper.ProfileFormat
		want   error
	}{
		"unsupported format": {doc: "", format: "xml", want: dumper.ErrUnsupportedFormat},
		"bad yaml":           {doc: "types: [", format: dumper.ProfileYAML, want: dumper.ErrInvalidProfile},
		"bad toml":           {doc: "types = ", format: dumper.ProfileTOML, want: dumper.ErrInvalidProfile},
		"bad json":           {doc: "{", format: dumper.ProfileJSON, want: dumper.ErrInvalidProfile},
		"unknown key":        {doc: "colors: true", format: dumper.ProfileYAML, want: dumper.ErrInvalidProfile},
		"wrong shape":        {doc: `{"types": 3}`, format: dumper.ProfileJSON, want: dumper.ErrInvalidProfile},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := dumper.LoadProfile(strings.NewReader(tt.doc), tt.format)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoadProfileEmptyYAML(t *testing.T) {
	t.Parallel()
	p, err := dumper.LoadProfile(strings.NewReader(""), dumper.ProfileYAML)
	require.NoError(t, err)
	assert.Empty(t, p.ExcludeTypes)
}

func TestApplyProfileErrors(t *testing.T) {
	t.Parallel()
	trim := 1
	tests := map[string]struct {
		profile dumper.Profile
		want    error
	}{
		"unknown excluded type": {
			profile: dumper.Profile{ExcludeTypes: []string{"Nope"}},
			want:    dumper.ErrUnknownType,
		},
		"unknown field owner": {
			profile: dumper.Profile{ExcludeFields: []string{"Nope.Name"}},
			want:    dumper.ErrUnknownType,
		},
		"unknown field": {
			profile: dumper.Profile{ExcludeFields: []string{"Person.Nope"}},
			want:    dumper.ErrInvalidSelector,
		},
		"malformed field": {
			profile: dumper.Profile{ExcludeFields: []string{"Person"}},
			want:    dumper.ErrInvalidSelector,
		},
		"unknown rule type": {
			profile: dumper.Profile{Types: map[string]dumper.RuleSpec{"Nope": {Trim: &trim}}},
			want:    dumper.ErrUnknownType,
		},
		"empty rule": {
			profile: dumper.Profile{Types: map[string]dumper.RuleSpec{"int": {}}},
			want:    dumper.ErrInvalidProfile,
		},
		"bad case": {
			profile: dumper.Profile{Fields: map[string]dumper.RuleSpec{"Person.Name": {Case: "title"}}},
			want:    dumper.ErrInvalidProfile,
		},
		"bad template": {
			profile: dumper.Profile{Fields: map[string]dumper.RuleSpec{"Person.Name": {Template: "{{"}}},
			want:    dumper.ErrInvalidTemplate,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			base := dumper.New[Team]()
			cfg, err := dumper.ApplyProfile(base, tt.profile)
			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, base.PrintToString(Team{Lead: ann}), cfg.PrintToString(Team{Lead: ann}))
		})
	}
}

func TestApplyProfilePartialFailureLeavesConfig(t *testing.T) {
	t.Parallel()
	base := dumper.New[Person]()
	_, err := dumper.ApplyProfile(base, dumper.Profile{
		ExcludeFields: []string{"Person.Age"},
		ExcludeTypes:  []string{"Nope"},
	})
	require.Error(t, err)
	assert.Equal(t, annOut, base.PrintToString(ann))
}

func TestApplyProfileTemplateAndLower(t *testing.T) {
	t.Parallel()
	p := dumper.Profile{
		Types: map[string]dumper.RuleSpec{
			"Person": {Template: "{{.Name}}/{{.Age}}", Case: "lower"},
		},
	}
	cfg, err := dumper.ApplyProfile(dumper.New[Team](), p)
	require.NoError(t, err)
	assert.Equal(t, "Team\n\tLead = ann/30\n", cfg.PrintToString(Team{Lead: ann}))
}

func TestApplyProfileQualifiedName(t *testing.T) {
	t.Parallel()
	p := dumper.Profile{ExcludeFields: []string{"dumper_test.Person.Age"}}
	cfg, err := dumper.ApplyProfile(dumper.New[Person](), p)
	require.NoError(t, err)
	assert.Equal(t, "Person\n\tName = Ann\n", cfg.PrintToString(ann))
}
