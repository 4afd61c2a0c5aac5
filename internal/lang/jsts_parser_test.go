package lang

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJavaScriptParser_ExtractsFunctionClassAndImport(t *testing.T) {
	content := []byte(`import { readFile } from 'fs';

class Widget {
  render() {
    return null;
  }
}

function build(x) {
  return x;
}
`)
	res, err := javascriptParser{}.Parse(content)
	require.NoError(t, err)

	byName := map[string]Symbol{}
	for _, sym := range res.Symbols {
		byName[sym.Name] = sym
	}
	require.Contains(t, byName, "Widget")
	require.Equal(t, KindClass, byName["Widget"].Kind)
	require.Contains(t, byName, "render")
	require.Equal(t, KindMethod, byName["render"].Kind)
	require.Contains(t, byName, "build")
	require.Equal(t, KindFunction, byName["build"].Kind)

	require.ElementsMatch(t, []string{"fs"}, res.Imports)
}

func TestTypeScriptParser_ExtractsInterfaceAndTypeAlias(t *testing.T) {
	content := []byte(`interface Shape {
  area(): number;
}

type Point = { x: number; y: number };
`)
	res, err := typescriptParser{}.Parse(content)
	require.NoError(t, err)

	byName := map[string]Symbol{}
	for _, sym := range res.Symbols {
		byName[sym.Name] = sym
	}
	require.Contains(t, byName, "Shape")
	require.Equal(t, KindInterface, byName["Shape"].Kind)
	require.Contains(t, byName, "Point")
	require.Equal(t, KindType, byName["Point"].Kind)
}

func TestJavaScriptParser_IgnoresTypeScriptOnlyConstructs(t *testing.T) {
	// interface/type alias nodes don't exist in the JS grammar at all, so
	// this only documents that withTypes=false gates the TS-only branches.
	res, err := javascriptParser{}.Parse([]byte("function f() {}\n"))
	require.NoError(t, err)
	require.Len(t, res.Symbols, 1)
}
