// Package schema is the manifest lookup contract used when editing
// preference payloads: which type and default value a key path has in a
// domain, and what values are acceptable there.
//
// Manifests are usually loaded from profile manifest documents with
// ParseManifest and registered in the global Registry.
package schema
