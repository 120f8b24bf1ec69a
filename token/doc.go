// Package token provides source positions for parsed property lists.
package token
