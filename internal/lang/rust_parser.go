package lang

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
)

type rustParser struct{}

func (rustParser) Parse(content []byte) (Result, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(rust.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return Result{LineCount: countLines(content)}, err
	}
	defer tree.Close()

	root := tree.RootNode()
	var res Result
	res.LineCount = countLines(content)
	walkRustNode(root, content, &res)
	return res, nil
}

func walkRustNode(node *sitter.Node, content []byte, res *Result) {
	if node == nil {
		return
	}
	switch node.Type() {
	case "function_item":
		if sym, ok := rustFuncSymbol(node, content); ok {
			res.Symbols = append(res.Symbols, sym)
		}
	case "struct_item":
		if sym, ok := rustNamedSymbol(node, content, KindStruct, "struct"); ok {
			res.Symbols = append(res.Symbols, sym)
		}
	case "enum_item":
		if sym, ok := rustNamedSymbol(node, content, KindEnum, "enum"); ok {
			res.Symbols = append(res.Symbols, sym)
		}
	case "trait_item":
		if sym, ok := rustNamedSymbol(node, content, KindTrait, "trait"); ok {
			res.Symbols = append(res.Symbols, sym)
		}
	case "impl_item":
		if sym, ok := rustImplSymbol(node, content); ok {
			res.Symbols = append(res.Symbols, sym)
		}
	case "use_declaration":
		if imp, ok := rustUseImport(node, content); ok {
			res.Imports = append(res.Imports, imp)
		}
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkRustNode(node.Child(i), content, res)
	}
}

func rustFuncSymbol(node *sitter.Node, content []byte) (Symbol, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return Symbol{}, false
	}
	name := nodeText(content, nameNode.StartByte(), nameNode.EndByte())

	var sig strings.Builder
	sig.WriteString("fn ")
	sig.WriteString(name)
	if tp := node.ChildByFieldName("type_parameters"); tp != nil {
		sig.WriteString(nodeText(content, tp.StartByte(), tp.EndByte()))
	}
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

func rustNamedSymbol(node *sitter.Node, content []byte, kind, keyword string) (Symbol, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return Symbol{}, false
	}
	name := nodeText(content, nameNode.StartByte(), nameNode.EndByte())
	return Symbol{
		Name:      name,
		Kind:      kind,
		Signature: normalizeSignature(keyword + " " + name),
		StartLine: int(node.StartPoint().Row) + 1,
		EndLine:   int(node.EndPoint().Row) + 1,
	}, true
}

func rustImplSymbol(node *sitter.Node, content []byte) (Symbol, bool) {
	typeNode := node.ChildByFieldName("type")
	if typeNode == nil {
		return Symbol{}, false
	}
	typeName := nodeText(content, typeNode.StartByte(), typeNode.EndByte())

	header := "impl "
	name := typeName
	if traitNode := node.ChildByFieldName("trait"); traitNode != nil {
		traitName := nodeText(content, traitNode.StartByte(), traitNode.EndByte())
		header += traitName + " for " + typeName
		name = traitName + " for " + typeName
	} else {
		header += typeName
	}

	return Symbol{
		Name:      name,
		Kind:      KindImpl,
		Signature: normalizeSignature(header),
		StartLine: int(node.StartPoint().Row) + 1,
		EndLine:   int(node.EndPoint().Row) + 1,
	}, true
}

func rustUseImport(node *sitter.Node, content []byte) (string, bool) {
	arg := node.ChildByFieldName("argument")
	if arg == nil {
		return "", false
	}
	return nodeText(content, arg.StartByte(), arg.EndByte()), true
}
