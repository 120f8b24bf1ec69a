// Package encode writes ir items as property list XML, or as their JSON and
// YAML projections.
//
// # Usage
//
//	it := ir.FromKeyVals([]ir.Pair{
//	    {Key: "PayloadType", Value: ir.FromString("Configuration")},
//	    {Key: "PayloadVersion", Value: ir.FromInt(1)},
//	})
//	err := encode.Encode(it, os.Stdout)
//
//	// JSON projection, dates and data become strings
//	err = encode.Encode(it, os.Stdout, encode.EncodeJSON())
//
// XML output always carries the XML declaration and the plist DOCTYPE and
// is indented with tabs. Dict key order is kept in every format.
//
// # Related Packages
//
//   - github.com/signadot/plistkit/ir - item representation
//   - github.com/signadot/plistkit/parse - the reading side
package encode
