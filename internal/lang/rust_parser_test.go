package lang

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRustParser_ExtractsStructTraitImplAndUse(t *testing.T) {
	content := []byte(`use std::fmt;

struct Point {
    x: i32,
    y: i32,
}

trait Shape {
    fn area(&self) -> f64;
}

impl Shape for Point {
    fn area(&self) -> f64 {
        0.0
    }
}

fn main() {}
`)
	res, err := rustParser{}.Parse(content)
	require.NoError(t, err)

	byName := map[string]Symbol{}
	for _, sym := range res.Symbols {
		byName[sym.Name] = sym
	}
	require.Contains(t, byName, "Point")
	require.Equal(t, KindStruct, byName["Point"].Kind)
	require.Contains(t, byName, "Shape")
	require.Equal(t, KindTrait, byName["Shape"].Kind)
	require.Contains(t, byName, "main")
	require.Equal(t, KindFunction, byName["main"].Kind)

	var implSym *Symbol
	for i := range res.Symbols {
		if res.Symbols[i].Kind == KindImpl {
			implSym = &res.Symbols[i]
		}
	}
	require.NotNil(t, implSym)
	require.Equal(t, "Shape for Point", implSym.Name)

	require.ElementsMatch(t, []string{"std::fmt"}, res.Imports)
}
