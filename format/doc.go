// Package format names the textual projections of a property list.
//
// XMLFormat is the Apple plist 1.0 XML document and the default. JSONFormat
// and YAMLFormat are order-preserving projections used for tooling; dates
// and data are carried as strings in both.
//
// # Related Packages
//
//   - github.com/signadot/plistkit/parse - Parse text to IR
//   - github.com/signadot/plistkit/encode - Encode IR to text
package format
