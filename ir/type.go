package ir

import "fmt"

type Type int

const (
	ArrayType Type = iota
	BoolType
	DataType
	DateType
	DictType
	NumberType
	StringType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		ArrayType:  "Array",
		BoolType:   "Bool",
		DataType:   "Data",
		DateType:   "Date",
		DictType:   "Dict",
		NumberType: "Number",
		StringType: "String",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, err := ParseType(string(d))
	if err != nil {
		return err
	}
	*t = tt
	return nil
}

// ParseType accepts the type names as printed by String or in lower case,
// the plist element names ("integer", "real", ...) and the manifest type
// names ("dictionary", "float").
func ParseType(v string) (Type, error) {
	tt, ok := map[string]Type{
		"Array":      ArrayType,
		"array":      ArrayType,
		"Bool":       BoolType,
		"bool":       BoolType,
		"boolean":    BoolType,
		"Data":       DataType,
		"data":       DataType,
		"Date":       DateType,
		"date":       DateType,
		"Dict":       DictType,
		"dict":       DictType,
		"dictionary": DictType,
		"Number":     NumberType,
		"number":     NumberType,
		"integer":    NumberType,
		"real":       NumberType,
		"float":      NumberType,
		"String":     StringType,
		"string":     StringType,
	}[v]
	if !ok {
		return 0, fmt.Errorf("unrecognized type %q", v)
	}
	return tt, nil
}

func Types() []Type {
	return []Type{
		ArrayType,
		BoolType,
		DataType,
		DateType,
		DictType,
		NumberType,
		StringType,
	}
}

// IsCollection reports whether items of type t have children.
func (t Type) IsCollection() bool {
	switch t {
	case ArrayType, DictType:
		return true
	default:
		return false
	}
}
