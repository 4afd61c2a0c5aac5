package lang

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyPath(t *testing.T) {
	cases := []struct {
		path    string
		want    string
		tracked bool
	}{
		{"main.go", "go", true},
		{"script.py", "python", true},
		{"app.tsx", "typescript", true},
		{"README.md", "markdown", true},
		{"image.png", "", false},
	}
	for _, c := range cases {
		got, ok := ClassifyPath(c.path)
		require.Equal(t, c.tracked, ok, c.path)
		require.Equal(t, c.want, got, c.path)
	}
}

func TestDispatch_FallsBackToLineCountForTrackedOnly(t *testing.T) {
	p := Dispatch("markdown")
	_, ok := p.(lineCountParser)
	require.True(t, ok)
}

func TestDispatch_ReturnsFullParserForSupportedLanguage(t *testing.T) {
	p := Dispatch("go")
	_, ok := p.(goParser)
	require.True(t, ok)
}

func TestNormalizeSignature_CollapsesWhitespace(t *testing.T) {
	require.Equal(t, "func Foo( x int ) error", normalizeSignature("func Foo(\n\tx int\n) error"))
}
