// Package patch applies RFC 6902 JSON patch documents to property list
// items without going through JSON, so that dict order, dates and data
// survive.
package patch
