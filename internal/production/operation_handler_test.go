package production

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseOpID(t *testing.T) {
	id, err := parseOpID("42")
	require.NoError(t, err)
	require.Equal(t, uint(42), id)
}

func TestParseOpID_LeadingZero(t *testing.T) {
	id, err := parseOpID("05")
	require.NoError(t, err)
	require.Equal(t, uint(5), id)
}

func TestParseOpID_Invalid(t *testing.T) {
	for _, s := range []string{"", "abc", "0", "-3"} {
		_, err := parseOpID(s)
		require.Error(t, err, s)
	}
}
