package schema

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/signadot/plistkit/ir"
)

// Constraint describes what a manifest allows at one key path.
type Constraint struct {
	Type        ir.Type
	Title       string
	Description string
	Default     *ir.Item
	Min, Max    *float64
	// Format is a regular expression strings must match.
	Format string
	// Values, when non-empty, lists the allowed values.
	Values   []*ir.Item
	Required bool
}

// DefaultItem returns the manifest default, or the zero value of the
// constraint's type.
func (c *Constraint) DefaultItem() *ir.Item {
	if c.Default != nil {
		return c.Default
	}
	return ir.Default(c.Type)
}

func (c *Constraint) Check(it *ir.Item) error {
	if it.Type != c.Type {
		return fmt.Errorf("%w: expected %s, got %s", ErrConstraint, c.Type, it.Type)
	}
	if it.Type == ir.NumberType {
		f := it.Float()
		if c.Min != nil && f < *c.Min {
			return fmt.Errorf("%w: %s is below the minimum %g", ErrConstraint, ir.FormatNumber(it), *c.Min)
		}
		if c.Max != nil && f > *c.Max {
			return fmt.Errorf("%w: %s is above the maximum %g", ErrConstraint, ir.FormatNumber(it), *c.Max)
		}
	}
	if it.Type == ir.StringType && c.Format != "" {
		re, err := c.regexp()
		if err != nil {
			return err
		}
		if !re.MatchString(it.String) {
			return fmt.Errorf("%w: %q does not match %q", ErrConstraint, it.String, c.Format)
		}
	}
	if len(c.Values) != 0 && !slices.ContainsFunc(c.Values, it.Equal) {
		return fmt.Errorf("%w: value not in the allowed list", ErrConstraint)
	}
	return nil
}

func (c *Constraint) regexp() (*regexp.Regexp, error) {
	re, err := regexp.Compile(c.Format)
	if err != nil {
		return nil, fmt.Errorf("%w: bad format %q: %w", ErrManifest, c.Format, err)
	}
	return re, nil
}
