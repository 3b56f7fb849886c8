package filings

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/holdings-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/holdings-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/holdings-cli/internal/core/domain"
	"github.com/custodia-labs/holdings-cli/internal/core/services"
)

func newCatalog(t *testing.T, filings ...domain.StoredFiling) *services.CatalogService {
	t.Helper()
	store := memory.NewFilingStore()
	for i := range filings {
		require.NoError(t, store.SaveFiling(context.Background(), &filings[i], nil))
	}
	return services.NewCatalogService(store)
}

func TestView_LoadsFilings(t *testing.T) {
	v := NewView(nil, nil, newCatalog(t, domain.StoredFiling{
		AccessionNumber: "0001364742-24-000010",
		FilerName:       "BlackRock Inc.",
		Period:          "20231231",
		TotalValue:      1234567,
	}))

	msg := v.Init()()
	loaded, ok := msg.(messages.FilingsLoaded)
	require.True(t, ok)
	v, _ = v.Update(loaded)

	require.NoError(t, v.Err())
	require.Len(t, v.Filings(), 1)
	f, ok := v.Selected()
	require.True(t, ok)
	assert.Equal(t, "BlackRock Inc.", f.FilerName)
	assert.Contains(t, v.View(), "1,234,567")
}

func TestView_NoCatalog(t *testing.T) {
	v := NewView(nil, nil, nil)

	v, _ = v.Update(v.Init()())

	assert.ErrorIs(t, v.Err(), ErrCatalogUnavailable)
	assert.Contains(t, v.View(), "catalog service not available")
}

func TestView_Empty(t *testing.T) {
	v := NewView(nil, nil, newCatalog(t))

	v, _ = v.Update(v.Init()())

	_, ok := v.Selected()
	assert.False(t, ok)
	assert.Contains(t, v.View(), "No filings catalogued yet")
}

func TestView_Keys(t *testing.T) {
	v := NewView(nil, nil, nil)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd, "enter without a selection does nothing")

	v.SetFilings([]domain.StoredFiling{{AccessionNumber: "A"}, {AccessionNumber: "B"}})

	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.FilingSelected{Filing: domain.StoredFiling{AccessionNumber: "A"}}, cmd())

	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewLookup}, cmd())
}

func TestView_SetFilingsResetsCursor(t *testing.T) {
	v := NewView(nil, nil, nil)
	v.SetFilings([]domain.StoredFiling{{AccessionNumber: "A"}, {AccessionNumber: "B"}})
	v.table.SetCursor(1)

	v.SetFilings([]domain.StoredFiling{{AccessionNumber: "C"}})

	f, ok := v.Selected()
	require.True(t, ok)
	assert.Equal(t, "C", f.AccessionNumber)
}

func TestRow(t *testing.T) {
	row := Row(domain.StoredFiling{
		AccessionNumber: "A",
		FilerName:       "Vanguard Group Inc",
		Period:          "20240331",
		SubmissionType:  "13F-HR",
		HoldingCount:    3,
		TotalValue:      1000,
	})

	assert.Len(t, row, len(Columns()))
	assert.Equal(t, "3", row[4])
	assert.Equal(t, "1,000", row[5])
}
