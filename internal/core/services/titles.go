package services

import (
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driving"
	"github.com/custodia-labs/holdings-cli/internal/titles"
)

// Ensure TitleService implements the interface.
var _ driving.TitleService = (*TitleService)(nil)

// TitleService normalises and classifies security class titles.
type TitleService struct{}

// NewTitleService creates a new title service.
func NewTitleService() *TitleService {
	return &TitleService{}
}

// Normalize returns the display form of one title.
func (s *TitleService) Normalize(title string) string {
	return titles.NormalizeTitle(title)
}

// NormalizeAll normalises each title, preserving length and order.
func (s *TitleService) NormalizeAll(values []string) []string {
	return titles.NormalizeTitles(values)
}

// Classify returns the category of a title.
func (s *TitleService) Classify(title string, detailed bool) string {
	if detailed {
		return titles.Categorize(title)
	}
	return titles.ClassifyCategory(title)
}
