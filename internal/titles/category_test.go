package titles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyCategory(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"ISHARES CORE S&P 500 ETF", CategoryETF},
		{"etf shares", CategoryETF},
		{"*W EXP 07/01/2024", CategoryWarrant},
		{"Warrant (expires 2024-07-01)", CategoryWarrant},
		{"COM", "COM"},
		{"NETFLIX COM", "NETFLIX COM"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyCategory(tt.title))
		})
	}
}

func TestClassifyCategories(t *testing.T) {
	out := ClassifyCategories([]string{"COM", "SPDR ETF"})
	assert.Equal(t, []string{"COM", CategoryETF}, out)
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"*W EXP 07/01/2024", "Expiring Security - Rights & Warrants"},
		{"Warrant (expiry unknown)", "Expiring Security - Rights & Warrants"},
		{"IBONDS DEC 2026 TERM", "Target Maturity Bond ETF"},
		{"NOTE 2.500% 5/1", "Fixed Income Note"},
		{"CLASS A COMMON", "Common Stock - Class A"},
		{"COMMON STOCK CLASS B", "Common Stock - Class B"},
		{"common shares", "Common Stock"},
		{"PFD SER A", "Preferred Stock"},
		{"SPONSORED ADR", "American Depositary Receipt"},
		{"UNIT LTD PARTN", "Partnership Unit"},
		{"MSCI EMERG MKT ETF", "Emerging Markets Equity ETF"},
		{"S&P 500 INDEX", "US Large Cap Equity ETF"},
		{"GOLD TR", "Commodity ETF"},
		{"SHS", "Equity Security"},
		{"  ", Unclassified},
		{"XYZ", Unclassified},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.title))
		})
	}
}

func TestCategories(t *testing.T) {
	cats := Categories()

	require.NotEmpty(t, cats)
	assert.Equal(t, "Expiring Security - Rights & Warrants", cats[0])
	assert.Equal(t, Unclassified, cats[len(cats)-1])
}

func TestClassifyColumn(t *testing.T) {
	rs := holdingsSet(t, "SPDR ETF", "CLASS A COMMON")

	require.NoError(t, ClassifyColumn(rs, ColumnClass, Into(ColumnCategory), false))
	simple, err := rs.Column(ColumnCategory)
	require.NoError(t, err)
	assert.Equal(t, []string{CategoryETF, "CLASS A COMMON"}, simple)

	require.NoError(t, ClassifyColumn(rs, ColumnClass, Into(ColumnCategory), true))
	detailed, err := rs.Column(ColumnCategory)
	require.NoError(t, err)
	assert.Equal(t, []string{"Exchange Traded Fund", "Common Stock - Class A"}, detailed)
}
