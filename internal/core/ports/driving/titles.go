package driving

// TitleService normalises and classifies security class titles.
// Normalisation never fails.
type TitleService interface {
	// Normalize returns the display form of one title.
	Normalize(title string) string

	// NormalizeAll normalises each title, preserving length and order.
	NormalizeAll(titles []string) []string

	// Classify returns the category of a title. Detailed selects the
	// full taxonomy instead of the ETF/Warrant split.
	Classify(title string, detailed bool) string
}
