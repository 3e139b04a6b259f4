// Package dumper renders arbitrary Go values as indented, human-readable
// text.
//
// The central type is [Config], an immutable set of rules. Every method that
// adds a rule returns a new Config and leaves the receiver untouched, so a
// Config can be shared, reused as a base, and forked freely:
//
//	base := dumper.New[Person]()
//	short := dumper.Exclude[uuid.UUID](base)
//	fmt.Print(short.PrintToString(p))
//
// # Output
//
// A struct renders as its type name followed by one line per exported field,
// in declaration order, indented by one tab per nesting level:
//
//	Person
//		Name = Ann
//		Age = 30
//
// Booleans, numbers, strings, [time.Time], [time.Duration] and [uuid.UUID]
// are leaves and render on a single line. Nil pointers, interfaces, maps and
// slices render as "null". Slices, arrays and maps are not expanded; they
// render as their type name unless a rule says otherwise. Cyclic graphs are
// not detected.
//
// # Exclusion
//
// Exclude a type everywhere in the graph, or one specific field:
//
//	cfg = dumper.Exclude[time.Time](cfg)
//	cfg, err = dumper.ExcludeField(cfg, func(p *Person) *int { return &p.Age })
//
// Excluding a field never affects other fields of the same type.
//
// # Rules
//
// [SerializeType] and [SerializeField] start a [Rule]. Its terminal methods
// append a step to the target's [Chain] and return the new Config:
//
//	name := dumper.MustField(func(p *Person) *string { return &p.Name })
//	cfg = dumper.SerializeType[float64](cfg).Format("%.2f")
//	cfg = dumper.SerializeField(cfg, name).Then(strings.ToUpper)
//	cfg = dumper.SerializeField(cfg, name).TrimTo(3)
//
// Steps run in the order they were added; the first receives the raw value,
// each later step the previous string. Registering f then g yields g(f(v)).
//
// # Precedence
//
// At every depth the same order applies: exclusion, then a field rule, then
// a type rule, then the default leaf form, then field-by-field descent. A
// type rule therefore overrides even the formatting of numbers and strings.
//
// # Profiles
//
// Rules can also live in a YAML, TOML or JSON document:
//
//	p, err := dumper.LoadProfileFile("dump.yaml")
//	cfg, err = dumper.ApplyProfile(cfg, p)
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrInvalidSelector] — a selector or field name does not identify a
//     direct exported field
//   - [ErrInvalidTemplate] — invalid text/template syntax
//   - [ErrUnsupportedFormat] — unknown profile format
//   - [ErrUnknownType] — a profile names a type not reachable from the root
//   - [ErrInvalidProfile] — a profile document cannot be decoded
package dumper
