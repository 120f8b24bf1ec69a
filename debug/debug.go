package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Parse bool
	Tree  bool
	Patch bool
	Eval  bool
	Match bool
	LSP   bool
	Build bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("PLIST_DEBUG_PARSE")
	d.Tree = boolEnv("PLIST_DEBUG_TREE")
	d.Patch = boolEnv("PLIST_DEBUG_PATCH")
	d.Eval = boolEnv("PLIST_DEBUG_EVAL")
	d.Match = boolEnv("PLIST_DEBUG_MATCH")
	d.LSP = boolEnv("PLIST_DEBUG_LSP")
	d.Build = boolEnv("PLIST_DEBUG_BUILD")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Tree() bool {
	return d.Tree
}
func Patch() bool {
	return d.Patch
}
func Eval() bool {
	return d.Eval
}
func Match() bool {
	return d.Match
}
func LSP() bool {
	return d.LSP
}
func Build() bool {
	return d.Build
}
