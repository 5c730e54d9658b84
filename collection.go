package inicfg

import (
	"gopkg.in/ini.v1"
)

// Collection declares a schema element that expands into one concrete
// option per raw key found in the owning section that no explicitly
// declared option has claimed. The maker builds each option from its raw
// key name. Declare explicit options before the collection: expansion runs
// at registration time and consumes every remaining key in file order.
//
//	inicfg.NewSection(c, "Limits",
//	    inicfg.Str("Comment"),
//	    inicfg.Collection(func(name string) *inicfg.Option {
//	        return inicfg.Int(name)
//	    }),
//	)
//
// The collection itself is never stored as a queryable option.
func Collection(maker func(name string) *Option) *Option {
	o := Unlinked("", nil)
	o.registerHook = func(s *Section) (bool, error) {
		src, err := s.cfg.raw.GetSection(s.name)
		if err != nil {
			return false, nil
		}
		for _, key := range src.KeyStrings() {
			if s.Has(key) {
				continue
			}
			if err := s.RegisterOption(maker(key)); err != nil {
				return false, err
			}
		}
		return false, nil
	}
	return o
}

// NewSectionCollection expands into one Section per raw section name found
// in the file that the schema has not already claimed, excluding the
// DEFAULT pseudo-section. Each new section receives independent copies of
// the template options, so mutating one expanded section never affects a
// sibling. Declare explicit sections before calling this: expansion
// consumes every remaining raw section.
func NewSectionCollection(c *ConfigFile, template ...*Option) error {
	for _, name := range c.raw.SectionStrings() {
		if name == ini.DefaultSection || c.HasSection(name) {
			continue
		}
		copies := make([]*Option, len(template))
		for i, opt := range template {
			copies[i] = opt.clone()
		}
		if _, err := NewSection(c, name, copies...); err != nil {
			return err
		}
	}
	return nil
}
