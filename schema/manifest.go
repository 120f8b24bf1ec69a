package schema

import (
	"fmt"
	"strings"

	"github.com/signadot/plistkit/ir"
)

// Source looks up the constraint for a key path within a preference
// domain. Array elements appear in key paths as ElementKey.
type Source interface {
	Lookup(domain string, keyPath []string) (*Constraint, bool)
}

// Manifest holds the constraints of one preference domain.
type Manifest struct {
	Domain string
	Title  string

	constraints map[string]*Constraint
	order       []string
}

func NewManifest(domain string) *Manifest {
	return &Manifest{
		Domain:      domain,
		constraints: map[string]*Constraint{},
	}
}

// Add records c for keyPath, replacing any previous constraint.
func (m *Manifest) Add(keyPath []string, c *Constraint) error {
	if c.Format != "" {
		if _, err := c.regexp(); err != nil {
			return err
		}
	}
	if c.Default != nil {
		if err := c.Check(c.Default); err != nil {
			return fmt.Errorf("%w: default for %s: %w", ErrManifest, JoinKeyPath(keyPath), err)
		}
	}
	k := JoinKeyPath(keyPath)
	if _, ok := m.constraints[k]; !ok {
		m.order = append(m.order, k)
	}
	m.constraints[k] = c
	return nil
}

func (m *Manifest) Constraint(keyPath []string) (*Constraint, bool) {
	c, ok := m.constraints[JoinKeyPath(keyPath)]
	return c, ok
}

// KeyPaths returns the joined key paths in the order they were added.
func (m *Manifest) KeyPaths() []string {
	return append([]string{}, m.order...)
}

// ParseManifest reads a manifest from a profile manifest document: a dict
// with pfm_domain and a tree of pfm_subkeys, each naming pfm_name and
// pfm_type and optionally pfm_default, pfm_range_min, pfm_range_max,
// pfm_range_list, pfm_format, pfm_require, pfm_title and pfm_description.
func ParseManifest(it *ir.Item) (*Manifest, error) {
	if it.Type != ir.DictType {
		return nil, fmt.Errorf("%w: expected a dict, got %s", ErrManifest, it.Type)
	}
	domain := stringField(it, "pfm_domain")
	if domain == "" {
		return nil, fmt.Errorf("%w: missing pfm_domain", ErrManifest)
	}
	m := NewManifest(domain)
	m.Title = stringField(it, "pfm_title")
	if err := m.addSubkeys(nil, it.Dict.Get("pfm_subkeys"), false); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manifest) addSubkeys(prefix []string, subkeys *ir.Item, elements bool) error {
	if subkeys == nil {
		return nil
	}
	if subkeys.Type != ir.ArrayType {
		return fmt.Errorf("%w: pfm_subkeys of %q is a %s", ErrManifest, JoinKeyPath(prefix), subkeys.Type)
	}
	for _, sub := range subkeys.Array {
		if sub.Type != ir.DictType {
			return fmt.Errorf("%w: subkey of %q is a %s", ErrManifest, JoinKeyPath(prefix), sub.Type)
		}
		name := stringField(sub, "pfm_name")
		if elements {
			name = ElementKey
		}
		if name == "" {
			return fmt.Errorf("%w: subkey of %q has no pfm_name", ErrManifest, JoinKeyPath(prefix))
		}
		keyPath := append(append([]string{}, prefix...), name)
		c, err := constraintOf(sub)
		if err != nil {
			return fmt.Errorf("%w (at %s)", err, JoinKeyPath(keyPath))
		}
		if err := m.Add(keyPath, c); err != nil {
			return err
		}
		if err := m.addSubkeys(keyPath, sub.Dict.Get("pfm_subkeys"), c.Type == ir.ArrayType); err != nil {
			return err
		}
	}
	return nil
}

func constraintOf(sub *ir.Item) (*Constraint, error) {
	tn := stringField(sub, "pfm_type")
	t, err := ir.ParseType(tn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManifest, err)
	}
	c := &Constraint{
		Type:        t,
		Title:       stringField(sub, "pfm_title"),
		Description: stringField(sub, "pfm_description"),
		Default:     sub.Dict.Get("pfm_default"),
		Format:      stringField(sub, "pfm_format"),
		Required:    strings.EqualFold(stringField(sub, "pfm_require"), "always"),
	}
	if c.Default != nil && c.Default.Type != t {
		// manifests commonly write numbers and dates as strings
		c.Default = c.Default.Converting(t)
	}
	if v := sub.Dict.Get("pfm_range_min"); v != nil && v.Type == ir.NumberType {
		f := v.Float()
		c.Min = &f
	}
	if v := sub.Dict.Get("pfm_range_max"); v != nil && v.Type == ir.NumberType {
		f := v.Float()
		c.Max = &f
	}
	if v := sub.Dict.Get("pfm_range_list"); v != nil && v.Type == ir.ArrayType {
		c.Values = v.Array
	}
	return c, nil
}

func stringField(it *ir.Item, key string) string {
	v := it.Dict.Get(key)
	if v == nil || v.Type != ir.StringType {
		return ""
	}
	return v.String
}
