package inicfg

// ComputeFunc calculates a derived option's value from the current values
// of its references, passed positionally in declaration order.
type ComputeFunc func(args ...any) any

// Ref identifies an option referenced by a derived option. An empty
// Section means the derived option's own section.
type Ref struct {
	Section string
	Name    string
}

// Unlinked declares an option that exists only in memory and is never
// written to the underlying file. Parsing skips it, and converting it to
// or from text fails with ErrUnlinked. It can still be set; the new value
// stays in memory.
func Unlinked(name string, value any, settings ...Setting) *Option {
	o := newOption(name, unlinkedConv{}, nil, nil, nil, settings)
	o.linked = false
	o.value = value
	return o
}

type unlinkedConv struct{}

func (unlinkedConv) FromString(string) (any, error) { return nil, ErrUnlinked }

func (unlinkedConv) ToString(any) (string, error) { return "", ErrUnlinked }

// Derived declares a read-only option computed from the values of other
// options. The compute function receives the resolved reference values in
// declaration order and runs on every access; results are never cached, so
// a non-deterministic function yields a different value per read.
//
//	inicfg.Derived("Total",
//	    func(args ...any) any { return args[0].(int) + args[1].(int) },
//	    inicfg.Ref{Name: "Count"},
//	    inicfg.Ref{Section: "Other", Name: "Base"},
//	)
func Derived(name string, compute ComputeFunc, refs ...Ref) *Option {
	o := Unlinked(name, nil)
	o.compute = compute
	o.refs = refs
	return o
}

// derive resolves each reference against the owning ConfigFile and invokes
// the compute function. Resolution failures surface as NoSectionError or
// NoOptionError at access time.
func (o *Option) derive() (any, error) {
	args := make([]any, len(o.refs))
	for i, ref := range o.refs {
		sec := o.section
		if ref.Section != "" {
			if o.section == nil {
				return nil, &NoSectionError{Section: ref.Section}
			}
			s, err := o.section.cfg.Section(ref.Section)
			if err != nil {
				return nil, err
			}
			sec = s
		}
		if sec == nil {
			return nil, &NoOptionError{Option: ref.Name}
		}
		v, err := sec.Value(ref.Name)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return o.compute(args...), nil
}
