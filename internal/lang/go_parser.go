package lang

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

// goParser extracts symbols and imports from Go source via tree-sitter's
// concrete syntax tree, walking nodes directly rather than through the
// tree-sitter query language.
type goParser struct{}

func (goParser) Parse(content []byte) (Result, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(golang.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return Result{LineCount: countLines(content)}, err
	}
	defer tree.Close()

	root := tree.RootNode()
	var res Result
	res.LineCount = countLines(content)
	res.Imports = goImports(root, content)
	walkGoNode(root, content, &res)
	return res, nil
}

func walkGoNode(node *sitter.Node, content []byte, res *Result) {
	if node == nil {
		return
	}
	switch node.Type() {
	case "function_declaration":
		if sym, ok := goFuncSymbol(node, content, ""); ok {
			res.Symbols = append(res.Symbols, sym)
		}
	case "method_declaration":
		receiver := goReceiverType(node, content)
		if sym, ok := goFuncSymbol(node, content, receiver); ok {
			sym.Kind = KindMethod
			res.Symbols = append(res.Symbols, sym)
		}
	case "type_declaration":
		res.Symbols = append(res.Symbols, goTypeSymbols(node, content)...)
		return // children already covered by goTypeSymbols
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkGoNode(node.Child(i), content, res)
	}
}

func goFuncSymbol(node *sitter.Node, content []byte, receiver string) (Symbol, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return Symbol{}, false
	}
	name := nodeText(content, nameNode.StartByte(), nameNode.EndByte())

	var sig strings.Builder
	sig.WriteString("func ")
	if receiver != "" {
		sig.WriteString("(" + receiver + ") ")
	}
	sig.WriteString(name)
	if tp := node.ChildByFieldName("type_parameters"); tp != nil {
		sig.WriteString(nodeText(content, tp.StartByte(), tp.EndByte()))
	}
	if params := node.ChildByFieldName("parameters"); params != nil {
		sig.WriteString(nodeText(content, params.StartByte(), params.EndByte()))
	}
	if result := node.ChildByFieldName("result"); result != nil {
		sig.WriteString(" ")
		sig.WriteString(nodeText(content, result.StartByte(), result.EndByte()))
	}

	return Symbol{
		Name:      name,
		Kind:      KindFunction,
		Signature: normalizeSignature(sig.String()),
		StartLine: int(node.StartPoint().Row) + 1,
		EndLine:   int(node.EndPoint().Row) + 1,
	}, true
}

func goReceiverType(node *sitter.Node, content []byte) string {
	receiverNode := node.ChildByFieldName("receiver")
	if receiverNode == nil {
		return ""
	}
	return nodeText(content, receiverNode.StartByte(), receiverNode.EndByte())
}

// goTypeSymbols handles both `type X struct{...}` and grouped
// `type ( X struct{...}; Y interface{...} )` declarations.
func goTypeSymbols(node *sitter.Node, content []byte) []Symbol {
	var out []Symbol
	for i := 0; i < int(node.ChildCount()); i++ {
		spec := node.Child(i)
		if spec.Type() != "type_spec" && spec.Type() != "type_alias" {
			continue
		}
		nameNode := spec.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		name := nodeText(content, nameNode.StartByte(), nameNode.EndByte())

		kind := KindType
		header := "type " + name
		if typeNode := spec.ChildByFieldName("type"); typeNode != nil {
			switch typeNode.Type() {
			case "struct_type":
				kind = KindStruct
				header += " struct"
			case "interface_type":
				kind = KindInterface
				header += " interface"
			default:
				header += " " + nodeText(content, typeNode.StartByte(), typeNode.EndByte())
			}
		}

		out = append(out, Symbol{
			Name:      name,
			Kind:      kind,
			Signature: normalizeSignature(header),
			StartLine: int(spec.StartPoint().Row) + 1,
			EndLine:   int(spec.EndPoint().Row) + 1,
		})
	}
	return out
}

func goImports(root *sitter.Node, content []byte) []string {
	var imports []string
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		if child.Type() != "import_declaration" {
			continue
		}
		for j := 0; j < int(child.ChildCount()); j++ {
			grandchild := child.Child(j)
			switch grandchild.Type() {
			case "import_spec":
				if p, ok := goImportPath(grandchild, content); ok {
					imports = append(imports, p)
				}
			case "import_spec_list":
				for k := 0; k < int(grandchild.ChildCount()); k++ {
					spec := grandchild.Child(k)
					if spec.Type() == "import_spec" {
						if p, ok := goImportPath(spec, content); ok {
							imports = append(imports, p)
						}
					}
				}
			}
		}
	}
	return imports
}

func goImportPath(spec *sitter.Node, content []byte) (string, bool) {
	pathNode := spec.ChildByFieldName("path")
	if pathNode == nil {
		return "", false
	}
	raw := nodeText(content, pathNode.StartByte(), pathNode.EndByte())
	return strings.Trim(raw, `"`), true
}
