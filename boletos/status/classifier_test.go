package status

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyDefaults(t *testing.T) {
	t.Parallel()

	c := NewClassifier(nil, nil)

	cases := []struct {
		in       string
		wantNorm string
		wantCat  Category
	}{
		{"PAGO NO DIA", "PAGO NO DIA", CategoryPaid},
		{"pago", "PAGO", CategoryPaid},
		{"  Liquidado  ", "LIQUIDADO", CategoryPaid},
		{"VENCIDO", "VENCIDO", CategoryOpen},
		{"a  vencer / vencido", "A VENCER / VENCIDO", CategoryOpen},
		{"pendente", "PENDENTE", CategoryOpen},
		{"QUASE PAGO", "QUASE PAGO", CategoryUnknown},
		{"", "", CategoryUnknown},
	}
	for _, tc := range cases {
		norm, cat := c.Classify(tc.in)
		require.Equal(t, tc.wantNorm, norm, "input %q", tc.in)
		require.Equal(t, tc.wantCat, cat, "input %q", tc.in)
	}
}

func TestClassifyNoSubstringMatch(t *testing.T) {
	t.Parallel()

	c := NewClassifier(nil, nil)
	// Contains "PAGO" but is not an exact keyword: must stay UNKNOWN.
	_, cat := c.Classify("PAGO PARCIALMENTE")
	require.Equal(t, CategoryUnknown, cat)
}

func TestClassifyOverrides(t *testing.T) {
	t.Parallel()

	c := NewClassifier([]string{"settled"}, []string{"overdue"})

	_, cat := c.Classify("SETTLED")
	require.Equal(t, CategoryPaid, cat)
	_, cat = c.Classify("overdue")
	require.Equal(t, CategoryOpen, cat)
	// Defaults are fully replaced, not merged.
	_, cat = c.Classify("PAGO")
	require.Equal(t, CategoryUnknown, cat)
}

func TestUnknownStatusesTracked(t *testing.T) {
	t.Parallel()

	c := NewClassifier(nil, nil)
	c.Classify("QUASE PAGO")
	c.Classify("quase  pago")
	c.Classify("EM NEGOCIACAO")

	require.Equal(t, []string{"EM NEGOCIACAO", "QUASE PAGO"}, c.UnknownStatuses())
}
