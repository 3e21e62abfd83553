package table

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRowRoundTrip(t *testing.T) {
	cases := []Row{
		{ID: 1, Username: "user1", Email: "person1@example.com"},
		{ID: 0, Username: "", Email: ""},
		{ID: 4294967295, Username: strRepeat("a", UsernameMaxLength), Email: strRepeat("b", EmailMaxLength)},
	}

	for _, want := range cases {
		var buf [RowSize]byte
		require.NoError(t, SerializeRow(want, buf[:]))

		got, err := DeserializeRow(buf[:])
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestSerializeRowRejectsWrongSize(t *testing.T) {
	err := SerializeRow(Row{}, make([]byte, RowSize-1))
	require.Error(t, err)
}

func TestDeserializeRowRejectsWrongSize(t *testing.T) {
	_, err := DeserializeRow(make([]byte, RowSize+1))
	require.Error(t, err)
}

func strRepeat(s string, n int) string {
	out := make([]byte, 0, n)
	for len(out) < n {
		out = append(out, s...)
	}
	return string(out[:n])
}
