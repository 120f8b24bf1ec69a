package eval

import (
	"fmt"
	"slices"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/signadot/plistkit/debug"
	"github.com/signadot/plistkit/ir"
)

// NodeEnv is the environment Find evaluates its expression in.
type NodeEnv struct {
	Path  string `expr:"path"`
	Key   string `expr:"key"`
	Index int    `expr:"index"`
	Depth int    `expr:"depth"`
	Type  string `expr:"type"`
	Value any    `expr:"value"`
	Count int    `expr:"count"`
}

// DocEnv is the environment Eval evaluates its expression in.
type DocEnv struct {
	Doc any `expr:"doc"`
}

// Match is an item selected by Find.
type Match struct {
	Path    []int
	KeyPath string
	Item    *ir.Item
}

// Find evaluates the boolean expression at every item of doc, in document
// order, and returns the items for which it holds. The expression sees
//
//	path   the key path of the item, such as $.PayloadContent[0]
//	key    its dict key, "" if the parent is not a dict
//	index  its position in the parent, -1 for the root
//	depth  the number of steps from the root
//	type   the type name (Array, Bool, Data, Date, Dict, Number, String)
//	value  the item converted with ToValue
//	count  the number of children
//
// and the functions getpath, listpath and getenv.
func Find(doc *ir.Item, expression string) ([]Match, error) {
	prg, err := compile(doc, expression, expr.Env(NodeEnv{}), expr.AsBool())
	if err != nil {
		return nil, err
	}
	var res []Match
	err = doc.Walk(func(path []int, key string, it *ir.Item) (bool, error) {
		env := nodeEnv(doc, path, key, it)
		out, err := expr.Run(prg, env)
		if err != nil {
			return false, fmt.Errorf("%w: at %s: %w", ErrEval, env.Path, err)
		}
		if out.(bool) {
			res = append(res, Match{Path: slices.Clone(path), KeyPath: env.Path, Item: it})
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	if debug.Eval() {
		debug.Logf("eval: %q matched %d items\n", expression, len(res))
	}
	return res, nil
}

// Eval evaluates expression once with doc converted by ToValue bound to
// "doc".
func Eval(doc *ir.Item, expression string) (any, error) {
	prg, err := compile(doc, expression, expr.Env(DocEnv{}))
	if err != nil {
		return nil, err
	}
	out, err := expr.Run(prg, DocEnv{Doc: ToValue(doc)})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEval, err)
	}
	return out, nil
}

func compile(doc *ir.Item, expression string, opts ...expr.Option) (*vm.Program, error) {
	opts = append(exprOpts(doc), opts...)
	prg, err := expr.Compile(expression, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEval, err)
	}
	return prg, nil
}

func nodeEnv(doc *ir.Item, path []int, key string, it *ir.Item) NodeEnv {
	index := -1
	if len(path) > 0 {
		index = path[len(path)-1]
	}
	return NodeEnv{
		Path:  doc.PathString(path),
		Key:   key,
		Index: index,
		Depth: len(path),
		Type:  it.Type.String(),
		Value: ToValue(it),
		Count: it.ChildCount(),
	}
}
