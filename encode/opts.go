package encode

import "github.com/signadot/plistkit/format"

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

func EncodeXML() EncodeOption  { return EncodeFormat(format.XMLFormat) }
func EncodeJSON() EncodeOption { return EncodeFormat(format.JSONFormat) }
func EncodeYAML() EncodeOption { return EncodeFormat(format.YAMLFormat) }

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.format
}

// EncodeIndent sets the string repeated once per nesting level. XML
// defaults to a tab, JSON to two spaces. YAML ignores it.
func EncodeIndent(s string) EncodeOption {
	return func(es *EncState) { es.indent = &s }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		if c == nil {
			es.Color = nil
			return
		}
		es.Color = c.Color
	}
}
