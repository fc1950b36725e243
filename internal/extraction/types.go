package extraction

// ParsedFile holds everything extracted from one source file, in source
// declaration order. Records are created once per extraction pass and are
// read-only afterwards.
type ParsedFile struct {
	FilePath    string
	Interfaces  []ParsedInterface
	TypeAliases []ParsedTypeAlias
	Functions   []ParsedFunction
}

// ParsedInterface represents an exported interface declaration.
// Method signatures are normalized into properties whose Type is a rendered
// function-type string ("(params) => returnType"), so rendering stays uniform.
type ParsedInterface struct {
	Name        string
	Description string
	Properties  []ParsedProperty
	Extends     []string // nil when the interface has no extends clause
}

// ParsedProperty represents one property (or normalized method) of an interface.
type ParsedProperty struct {
	Name        string
	Type        string // textual rendering of the declared type
	Required    bool   // false when the declaration carries an optional marker
	Description string
}

// ParsedTypeAlias represents an exported type alias declaration.
type ParsedTypeAlias struct {
	Name        string
	Type        string // right-hand-side type expression, rendered verbatim
	Description string
}

// ParsedFunction represents an exported function declaration or an exported
// variable bound to a function expression (named after the binding).
type ParsedFunction struct {
	Name        string
	Description string
	Parameters  []ParsedParameter
	ReturnType  string
	IsAsync     bool
}

// ParsedParameter represents one function parameter.
type ParsedParameter struct {
	Name        string
	Type        string
	Required    bool // false for optional parameters and parameters with defaults
	Description string
}

// IsEmpty reports whether the file contributed no declarations at all.
func (f *ParsedFile) IsEmpty() bool {
	return len(f.Interfaces) == 0 && len(f.TypeAliases) == 0 && len(f.Functions) == 0
}
