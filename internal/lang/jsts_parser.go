package lang

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

type javascriptParser struct{}

func (javascriptParser) Parse(content []byte) (Result, error) {
	return parseJSFamily(content, javascript.GetLanguage(), false)
}

type typescriptParser struct{}

func (typescriptParser) Parse(content []byte) (Result, error) {
	return parseJSFamily(content, typescript.GetLanguage(), true)
}

func parseJSFamily(content []byte, language *sitter.Language, withTypes bool) (Result, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(language)

	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return Result{LineCount: countLines(content)}, err
	}
	defer tree.Close()

	root := tree.RootNode()
	var res Result
	res.LineCount = countLines(content)
	walkJSNode(root, content, &res, withTypes)
	return res, nil
}

func walkJSNode(node *sitter.Node, content []byte, res *Result, withTypes bool) {
	if node == nil {
		return
	}
	switch node.Type() {
	case "function_declaration", "generator_function_declaration":
		if sym, ok := jsFuncSymbol(node, content, "function"); ok {
			res.Symbols = append(res.Symbols, sym)
		}
	case "method_definition":
		if sym, ok := jsFuncSymbol(node, content, ""); ok {
			sym.Kind = KindMethod
			res.Symbols = append(res.Symbols, sym)
		}
	case "class_declaration":
		if sym, ok := jsClassSymbol(node, content); ok {
			res.Symbols = append(res.Symbols, sym)
		}
	case "interface_declaration":
		if withTypes {
			if sym, ok := jsInterfaceSymbol(node, content); ok {
				res.Symbols = append(res.Symbols, sym)
			}
		}
	case "type_alias_declaration":
		if withTypes {
			if sym, ok := jsTypeAliasSymbol(node, content); ok {
				res.Symbols = append(res.Symbols, sym)
			}
		}
	case "import_statement":
		if imp, ok := jsImportSource(node, content); ok {
			res.Imports = append(res.Imports, imp)
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkJSNode(node.Child(i), content, res, withTypes)
	}
}

func jsFuncSymbol(node *sitter.Node, content []byte, keyword string) (Symbol, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return Symbol{}, false
	}
	name := nodeText(content, nameNode.StartByte(), nameNode.EndByte())

	var sig strings.Builder
	if keyword != "" {
		sig.WriteString(keyword + " ")
	}
	sig.WriteString(name)
	if params := node.ChildByFieldName("parameters"); params != nil {
		sig.WriteString(nodeText(content, params.StartByte(), params.EndByte()))
	}
	if ret := node.ChildByFieldName("return_type"); ret != nil {
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

func jsClassSymbol(node *sitter.Node, content []byte) (Symbol, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return Symbol{}, false
	}
	name := nodeText(content, nameNode.StartByte(), nameNode.EndByte())

	header := "class " + name
	if heritage := node.ChildByFieldName("heritage"); heritage != nil {
		header += " " + nodeText(content, heritage.StartByte(), heritage.EndByte())
	}

	return Symbol{
		Name:      name,
		Kind:      KindClass,
		Signature: normalizeSignature(header),
		StartLine: int(node.StartPoint().Row) + 1,
		EndLine:   int(node.EndPoint().Row) + 1,
	}, true
}

func jsInterfaceSymbol(node *sitter.Node, content []byte) (Symbol, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return Symbol{}, false
	}
	name := nodeText(content, nameNode.StartByte(), nameNode.EndByte())
	return Symbol{
		Name:      name,
		Kind:      KindInterface,
		Signature: normalizeSignature("interface " + name),
		StartLine: int(node.StartPoint().Row) + 1,
		EndLine:   int(node.EndPoint().Row) + 1,
	}, true
}

func jsTypeAliasSymbol(node *sitter.Node, content []byte) (Symbol, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return Symbol{}, false
	}
	name := nodeText(content, nameNode.StartByte(), nameNode.EndByte())
	return Symbol{
		Name:      name,
		Kind:      KindType,
		Signature: normalizeSignature("type " + name),
		StartLine: int(node.StartPoint().Row) + 1,
		EndLine:   int(node.EndPoint().Row) + 1,
	}, true
}

func jsImportSource(node *sitter.Node, content []byte) (string, bool) {
	src := node.ChildByFieldName("source")
	if src == nil {
		return "", false
	}
	raw := nodeText(content, src.StartByte(), src.EndByte())
	return strings.Trim(raw, `"'`), true
}
