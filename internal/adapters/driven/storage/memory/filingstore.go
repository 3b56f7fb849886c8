package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driven"
)

// Ensure FilingStore implements the interface.
var _ driven.FilingStore = (*FilingStore)(nil)

// FilingStore is an in-memory implementation of driven.FilingStore.
type FilingStore struct {
	mu       sync.RWMutex
	filings  map[string]domain.StoredFiling
	holdings map[string][]domain.HoldingRecord
}

// NewFilingStore creates a new in-memory filing store.
func NewFilingStore() *FilingStore {
	return &FilingStore{
		filings:  make(map[string]domain.StoredFiling),
		holdings: make(map[string][]domain.HoldingRecord),
	}
}

// SaveFiling stores or replaces a filing and its holdings.
func (s *FilingStore) SaveFiling(_ context.Context, filing *domain.StoredFiling, holdings []domain.HoldingRecord) error {
	if filing == nil || filing.AccessionNumber == "" {
		return fmt.Errorf("saving filing: accession number required: %w", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.filings[filing.AccessionNumber]; ok {
		filing.ID = existing.ID
	} else if filing.ID == "" {
		filing.ID = uuid.New().String()
	}

	s.filings[filing.AccessionNumber] = *filing
	s.holdings[filing.AccessionNumber] = append([]domain.HoldingRecord(nil), holdings...)
	return nil
}

// GetFiling retrieves a filing by accession number.
func (s *FilingStore) GetFiling(_ context.Context, accession string) (*domain.StoredFiling, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	filing, ok := s.filings[accession]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &filing, nil
}

// ListFilings returns all filings, newest period first.
func (s *FilingStore) ListFilings(_ context.Context) ([]domain.StoredFiling, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filings := make([]domain.StoredFiling, 0, len(s.filings))
	for _, f := range s.filings {
		filings = append(filings, f)
	}
	sortFilings(filings)
	return filings, nil
}

// GetHoldings returns a filing's holdings in document order.
func (s *FilingStore) GetHoldings(_ context.Context, accession string) ([]domain.HoldingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.filings[accession]; !ok {
		return nil, domain.ErrNotFound
	}
	return append([]domain.HoldingRecord{}, s.holdings[accession]...), nil
}

// FindByCUSIP returns every stored holding with the given CUSIP.
func (s *FilingStore) FindByCUSIP(_ context.Context, cusip string) ([]domain.HoldingMatch, error) {
	cusip = strings.TrimSpace(cusip)

	s.mu.RLock()
	defer s.mu.RUnlock()

	filings := make([]domain.StoredFiling, 0, len(s.filings))
	for _, f := range s.filings {
		filings = append(filings, f)
	}
	sortFilings(filings)

	var matches []domain.HoldingMatch
	for _, f := range filings {
		for _, h := range s.holdings[f.AccessionNumber] {
			if strings.EqualFold(h.CUSIP, cusip) {
				matches = append(matches, domain.HoldingMatch{Filing: f, Holding: h})
			}
		}
	}
	return matches, nil
}

// DeleteFiling removes a filing and its holdings.
func (s *FilingStore) DeleteFiling(_ context.Context, accession string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.filings[accession]; !ok {
		return domain.ErrNotFound
	}
	delete(s.filings, accession)
	delete(s.holdings, accession)
	return nil
}

func sortFilings(filings []domain.StoredFiling) {
	sort.Slice(filings, func(i, j int) bool {
		if filings[i].Period != filings[j].Period {
			return filings[i].Period > filings[j].Period
		}
		return filings[i].AccessionNumber < filings[j].AccessionNumber
	})
}
