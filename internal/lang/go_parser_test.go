package lang

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGoParser_ExtractsStructsInterfacesAndMethods(t *testing.T) {
	content, err := os.ReadFile("../../testdata/go/level-02-structs-interfaces/src/types.go")
	require.NoError(t, err)

	res, err := goParser{}.Parse(content)
	require.NoError(t, err)

	byName := map[string]Symbol{}
	for _, sym := range res.Symbols {
		byName[sym.Name] = sym
	}

	require.Contains(t, byName, "Config")
	require.Equal(t, KindStruct, byName["Config"].Kind)

	require.Contains(t, byName, "Handler")
	require.Equal(t, KindInterface, byName["Handler"].Kind)

	require.Contains(t, byName, "Server")
	require.Equal(t, KindStruct, byName["Server"].Kind)

	require.Contains(t, byName, "NewServer")
	require.Equal(t, KindFunction, byName["NewServer"].Kind)

	require.Contains(t, byName, "Handle")
	require.Equal(t, KindMethod, byName["Handle"].Kind)
	require.Contains(t, byName["Handle"].Signature, "(s *Server)")
}

func TestGoParser_ExtractsImports(t *testing.T) {
	content := []byte(`package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println(os.Args)
}
`)
	res, err := goParser{}.Parse(content)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"fmt", "os"}, res.Imports)
}

func TestGoParser_LineCountOnUnparseableInput(t *testing.T) {
	res, _ := goParser{}.Parse([]byte("not even close to go\n\nsource\n"))
	require.Equal(t, 3, res.LineCount)
}
