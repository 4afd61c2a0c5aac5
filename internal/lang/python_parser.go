package lang

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

type pythonParser struct{}

func (pythonParser) Parse(content []byte) (Result, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return Result{LineCount: countLines(content)}, err
	}
	defer tree.Close()

	root := tree.RootNode()
	var res Result
	res.LineCount = countLines(content)
	walkPythonNode(root, content, &res)
	return res, nil
}

func walkPythonNode(node *sitter.Node, content []byte, res *Result) {
	if node == nil {
		return
	}
	switch node.Type() {
	case "function_definition":
		if sym, ok := pythonFuncSymbol(node, content); ok {
			res.Symbols = append(res.Symbols, sym)
		}
	case "class_definition":
		if sym, ok := pythonClassSymbol(node, content); ok {
			res.Symbols = append(res.Symbols, sym)
		}
	case "decorated_definition":
		// The decorator itself isn't a symbol; recurse to the definition it wraps.
	case "import_statement":
		res.Imports = append(res.Imports, pythonImportStatement(node, content)...)
		return
	case "import_from_statement":
		if mod, ok := pythonImportFrom(node, content); ok {
			res.Imports = append(res.Imports, mod)
		}
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkPythonNode(node.Child(i), content, res)
	}
}

func pythonFuncSymbol(node *sitter.Node, content []byte) (Symbol, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return Symbol{}, false
	}
	name := nodeText(content, nameNode.StartByte(), nameNode.EndByte())

	var sig strings.Builder
	sig.WriteString("def ")
	sig.WriteString(name)
	if params := node.ChildByFieldName("parameters"); params != nil {
		sig.WriteString(nodeText(content, params.StartByte(), params.EndByte()))
	}
	if ret := node.ChildByFieldName("return_type"); ret != nil {
		sig.WriteString(" -> ")
		sig.WriteString(nodeText(content, ret.StartByte(), ret.EndByte()))
	}

	return Symbol{
		Name:      name,
		Kind:      KindFunction,
		Signature: normalizeSignature(sig.String()),
		StartLine: int(node.StartPoint().Row) + 1,
		EndLine:   int(node.EndPoint().Row) + 1,
	}, true
}

func pythonClassSymbol(node *sitter.Node, content []byte) (Symbol, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return Symbol{}, false
	}
	name := nodeText(content, nameNode.StartByte(), nameNode.EndByte())

	header := "class " + name
	if bases := node.ChildByFieldName("superclasses"); bases != nil {
		header += nodeText(content, bases.StartByte(), bases.EndByte())
	}

	return Symbol{
		Name:      name,
		Kind:      KindClass,
		Signature: normalizeSignature(header),
		StartLine: int(node.StartPoint().Row) + 1,
		EndLine:   int(node.EndPoint().Row) + 1,
	}, true
}

func pythonImportStatement(node *sitter.Node, content []byte) []string {
	var out []string
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "dotted_name":
			out = append(out, nodeText(content, child.StartByte(), child.EndByte()))
		case "aliased_import":
			if name := child.ChildByFieldName("name"); name != nil {
				out = append(out, nodeText(content, name.StartByte(), name.EndByte()))
			}
		}
	}
	return out
}

func pythonImportFrom(node *sitter.Node, content []byte) (string, bool) {
	mod := node.ChildByFieldName("module_name")
	if mod == nil {
		return "", false
	}
	return nodeText(content, mod.StartByte(), mod.EndByte()), true
}
