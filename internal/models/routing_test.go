package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDependsOnNames(t *testing.T) {
	op := SewingOperation{DependsOn: "kol takma, yaka takma"}
	require.Equal(t, []string{"kol takma", "yaka takma"}, op.DependsOnNames())
}

func TestDependsOnNames_TrimsWhitespace(t *testing.T) {
	op := SewingOperation{DependsOn: "  kol takma ,yaka takma  ,  etek baskı"}
	require.Equal(t, []string{"kol takma", "yaka takma", "etek baskı"}, op.DependsOnNames())
}

func TestDependsOnNames_SkipsEmptySegments(t *testing.T) {
	op := SewingOperation{DependsOn: "kol takma,, ,yaka takma,"}
	require.Equal(t, []string{"kol takma", "yaka takma"}, op.DependsOnNames())
}

func TestDependsOnNames_Empty(t *testing.T) {
	require.Nil(t, (&SewingOperation{DependsOn: ""}).DependsOnNames())
	require.Nil(t, (&SewingOperation{DependsOn: "   "}).DependsOnNames())
}

func TestDependsOnNames_SingleName(t *testing.T) {
	op := SewingOperation{DependsOn: "kesim"}
	require.Equal(t, []string{"kesim"}, op.DependsOnNames())
}
