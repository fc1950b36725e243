package parsers

import (
	"context"
	"fmt"
	"os"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/mvp-joe/tsdoc/internal/extraction"
)

// typeScriptParser extracts exported declarations from TypeScript files.
type typeScriptParser struct {
	language *sitter.Language
}

// NewTypeScriptParser creates a new TypeScript parser.
func NewTypeScriptParser() *typeScriptParser {
	return &typeScriptParser{
		language: sitter.NewLanguage(typescript.LanguageTypescript()),
	}
}

// ParseFile parses a TypeScript source file and returns its documentation
// model. Only exported top-level declarations appear in the result.
func (p *typeScriptParser) ParseFile(ctx context.Context, filePath string) (*extraction.ParsedFile, error) {
	source, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return p.Parse(source, filePath)
}

// Parse parses TypeScript source and extracts exported declarations.
func (p *typeScriptParser) Parse(source []byte, filePath string) (*extraction.ParsedFile, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(p.language)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse typescript file: %s", filePath)
	}
	defer tree.Close()

	file := &extraction.ParsedFile{
		FilePath:    filePath,
		Interfaces:  []extraction.ParsedInterface{},
		TypeAliases: []extraction.ParsedTypeAlias{},
		Functions:   []extraction.ParsedFunction{},
	}

	// Only declarations wrapped in an export statement are part of the
	// module's public surface; everything else is skipped outright.
	root := tree.RootNode()
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(uint(i))
		if child.Kind() != "export_statement" {
			continue
		}
		doc := resolveDocComment(precedingCommentBlocks(child, source))
		p.extractExported(child, source, doc, file)
	}

	return file, nil
}

// extractExported extracts the declaration carried by an export statement.
// The statement's own doc comment is passed down so that variable bindings
// resolve descriptions from the enclosing statement, not the initializer.
func (p *typeScriptParser) extractExported(node *sitter.Node, source []byte, doc docComment, file *extraction.ParsedFile) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		switch child.Kind() {
		case "interface_declaration":
			if iface := p.extractInterface(child, source, doc); iface != nil {
				file.Interfaces = append(file.Interfaces, *iface)
			}
		case "type_alias_declaration":
			if alias := p.extractTypeAlias(child, source, doc); alias != nil {
				file.TypeAliases = append(file.TypeAliases, *alias)
			}
		case "function_declaration":
			file.Functions = append(file.Functions, p.extractFunction(child, source, doc))
		case "lexical_declaration", "variable_declaration":
			for _, decl := range findChildrenByType(child, "variable_declarator") {
				if fn := p.extractFunctionBinding(decl, source, doc); fn != nil {
					file.Functions = append(file.Functions, *fn)
				}
			}
		}
	}
}

// extractInterface extracts an exported interface declaration. Method
// signatures are normalized into properties with a synthesized function-type
// string so the rendering table logic stays uniform.
func (p *typeScriptParser) extractInterface(node *sitter.Node, source []byte, doc docComment) *extraction.ParsedInterface {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}

	iface := &extraction.ParsedInterface{
		Name:        extractNodeText(nameNode, source),
		Description: doc.description,
		Properties:  []extraction.ParsedProperty{},
	}

	if heritage := findChildByType(node, "extends_type_clause"); heritage != nil {
		iface.Extends = extractHeritageTypes(heritage, source)
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		body = findChildByType(node, "interface_body")
	}
	if body == nil {
		return iface
	}

	for i := 0; i < int(body.ChildCount()); i++ {
		member := body.Child(uint(i))
		var prop *extraction.ParsedProperty
		switch member.Kind() {
		case "property_signature":
			prop = p.extractPropertySignature(member, source)
		case "method_signature":
			prop = p.extractMethodSignature(member, source)
		default:
			continue
		}
		if prop == nil {
			continue
		}
		prop.Description = resolveDocComment(precedingCommentBlocks(member, source)).description
		iface.Properties = append(iface.Properties, *prop)
	}

	return iface
}

// extractHeritageTypes captures the literal text of each superinterface
// reference in an extends clause (generic arguments stay verbatim).
func extractHeritageTypes(node *sitter.Node, source []byte) []string {
	var types []string
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		switch child.Kind() {
		case "extends", ",":
			continue
		default:
			types = append(types, extractNodeText(child, source))
		}
	}
	return types
}

// extractPropertySignature extracts one interface property.
func (p *typeScriptParser) extractPropertySignature(node *sitter.Node, source []byte) *extraction.ParsedProperty {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}

	return &extraction.ParsedProperty{
		Name:     extractNodeText(nameNode, source),
		Type:     typeAnnotationText(node.ChildByFieldName("type"), source),
		Required: !hasChildOfType(node, "?"),
	}
}

// extractMethodSignature extracts one interface method as a property whose
// type is a rendered function-type string "(params) => returnType".
func (p *typeScriptParser) extractMethodSignature(node *sitter.Node, source []byte) *extraction.ParsedProperty {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}

	params := p.extractParameters(node.ChildByFieldName("parameters"), source, nil)
	returnType := typeAnnotationText(node.ChildByFieldName("return_type"), source)
	if returnType == "" {
		returnType = "void"
	}

	rendered := make([]string, 0, len(params))
	for _, param := range params {
		name := param.Name
		if !param.Required {
			name += "?"
		}
		rendered = append(rendered, fmt.Sprintf("%s: %s", name, param.Type))
	}

	return &extraction.ParsedProperty{
		Name:     extractNodeText(nameNode, source),
		Type:     fmt.Sprintf("(%s) => %s", strings.Join(rendered, ", "), returnType),
		Required: !hasChildOfType(node, "?"),
	}
}

// extractTypeAlias extracts an exported type alias declaration. The
// right-hand side is rendered verbatim, never resolved.
func (p *typeScriptParser) extractTypeAlias(node *sitter.Node, source []byte, doc docComment) *extraction.ParsedTypeAlias {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}

	return &extraction.ParsedTypeAlias{
		Name:        extractNodeText(nameNode, source),
		Type:        extractNodeText(node.ChildByFieldName("value"), source),
		Description: doc.description,
	}
}

// extractFunction extracts an exported named function declaration. A
// declaration without a resolvable name falls back to "anonymous"; arrow
// bindings never take this path since they are named after the binding.
func (p *typeScriptParser) extractFunction(node *sitter.Node, source []byte, doc docComment) extraction.ParsedFunction {
	name := "anonymous"
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		name = extractNodeText(nameNode, source)
	}

	returnType := typeAnnotationText(node.ChildByFieldName("return_type"), source)
	if returnType == "" {
		returnType = "void"
	}

	return extraction.ParsedFunction{
		Name:        name,
		Description: doc.description,
		Parameters:  p.extractParameters(node.ChildByFieldName("parameters"), source, doc.params),
		ReturnType:  returnType,
		IsAsync:     hasChildOfType(node, "async"),
	}
}

// extractFunctionBinding extracts a variable declarator whose initializer is
// an arrow (or other anonymous) function expression. The binding name becomes
// the function name. Returns nil for non-function initializers.
func (p *typeScriptParser) extractFunctionBinding(decl *sitter.Node, source []byte, doc docComment) *extraction.ParsedFunction {
	nameNode := decl.ChildByFieldName("name")
	value := decl.ChildByFieldName("value")
	if nameNode == nil || value == nil {
		return nil
	}

	switch value.Kind() {
	case "arrow_function", "function_expression", "function":
	default:
		return nil
	}

	returnType := typeAnnotationText(value.ChildByFieldName("return_type"), source)
	if returnType == "" {
		returnType = "void"
	}

	var params []extraction.ParsedParameter
	if paramsNode := value.ChildByFieldName("parameters"); paramsNode != nil {
		params = p.extractParameters(paramsNode, source, doc.params)
	} else if single := value.ChildByFieldName("parameter"); single != nil {
		// Parenthesis-free arrow parameter: x => ...
		param := extraction.ParsedParameter{
			Name:     extractNodeText(single, source),
			Type:     "any",
			Required: true,
		}
		if desc, ok := doc.params[param.Name]; ok {
			param.Description = desc
		}
		params = []extraction.ParsedParameter{param}
	}
	if params == nil {
		params = []extraction.ParsedParameter{}
	}

	return &extraction.ParsedFunction{
		Name:        extractNodeText(nameNode, source),
		Description: doc.description,
		Parameters:  params,
		ReturnType:  returnType,
		IsAsync:     hasChildOfType(value, "async"),
	}
}

// extractParameters extracts formal parameters in declaration order, pairing
// each with its resolved description by name. Parameters with an optional
// marker or a default value are not required.
func (p *typeScriptParser) extractParameters(node *sitter.Node, source []byte, descriptions map[string]string) []extraction.ParsedParameter {
	params := []extraction.ParsedParameter{}
	if node == nil {
		return params
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		switch child.Kind() {
		case "required_parameter", "optional_parameter":
		default:
			continue
		}

		param := extraction.ParsedParameter{
			Name:     extractNodeText(child.ChildByFieldName("pattern"), source),
			Type:     typeAnnotationText(child.ChildByFieldName("type"), source),
			Required: child.Kind() == "required_parameter" && child.ChildByFieldName("value") == nil,
		}
		if param.Type == "" {
			param.Type = "any"
		}
		if desc, ok := descriptions[param.Name]; ok {
			param.Description = desc
		}
		params = append(params, param)
	}

	return params
}
