package titles

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
)

// ColumnCategory is the column written by the category processor.
const ColumnCategory = "class_category"

// Simple categories.
const (
	CategoryETF     = "ETF"
	CategoryWarrant = "Warrant"
)

// Unclassified is returned by Categorize when no rule matches.
const Unclassified = "Unclassified Security"

var etfWord = regexp.MustCompile(`\bETF\b`)

// ClassifyCategory sorts a title into ETF, Warrant, or its own title.
// Titles already normalised to the warrant display form count as warrants.
func ClassifyCategory(title string) string {
	upper := strings.ToUpper(title)
	switch {
	case etfWord.MatchString(upper):
		return CategoryETF
	case strings.Contains(upper, "*W"), strings.HasPrefix(upper, "WARRANT ("):
		return CategoryWarrant
	default:
		return title
	}
}

// ClassifyCategories classifies each title, preserving length and order.
func ClassifyCategories(titles []string) []string {
	out := make([]string, len(titles))
	for i, t := range titles {
		out[i] = ClassifyCategory(t)
	}
	return out
}

// ClassifyColumn classifies every value of column and writes the result to
// target. Detailed selects Categorize instead of ClassifyCategory.
func ClassifyColumn(rs *domain.RecordSet, column string, target ColumnTarget, detailed bool) error {
	if detailed {
		return mapColumn(rs, column, target, Categorize)
	}
	return mapColumn(rs, column, target, ClassifyCategory)
}

type rule struct {
	category string
	match    func(t string) bool
}

func containsAny(words ...string) func(string) bool {
	return func(t string) bool {
		for _, w := range words {
			if strings.Contains(t, w) {
				return true
			}
		}
		return false
	}
}

func allOf(preds ...func(string) bool) func(string) bool {
	return func(t string) bool {
		for _, p := range preds {
			if !p(t) {
				return false
			}
		}
		return true
	}
}

func hasPrefix(p string) func(string) bool {
	return func(t string) bool { return strings.HasPrefix(t, p) }
}

var (
	isETF    = containsAny("ETF")
	isCommon = containsAny("COM STK", "COM SHS", "COMMON STOCK", "COMMON SHARES",
		"COMMON", "COM NEW", "COM PAR", "COM NPV", "COM UNIT", "ORDINARY")
)

// detailedRules are evaluated in order; the first match wins.
var detailedRules = []rule{
	{"Expiring Security - Rights & Warrants", func(t string) bool {
		return strings.Contains(t, "*W EXP") || strings.HasPrefix(t, "WARRANT (") ||
			(strings.Contains(t, "RIGHT") && !strings.Contains(t, "99/99"))
	}},
	{"Target Maturity Bond ETF", containsAny("IBOND")},
	{"Fixed Income Note", hasPrefix("NOTE ")},
	{"Common Stock - Class A", allOf(isCommon, containsAny("CL A", "CLASS A", "SER A"))},
	{"Common Stock - Class B", allOf(isCommon, containsAny("CL B", "CLASS B", "SER B"))},
	{"Common Stock - Class C", allOf(isCommon, containsAny("CL C", "CLASS C", "SER C"))},
	{"Common Stock", isCommon},
	{"Preferred Stock", containsAny("PFD", "PREF", "PREFERRED")},
	{"American Depositary Receipt", containsAny("ADR", "ADS", "SPON")},
	{"Partnership Unit", func(t string) bool {
		return strings.HasPrefix(t, "UNIT") || (strings.Contains(t, "UNIT") && strings.Contains(t, "LP"))
	}},
	{"US Treasury Security", containsAny("TREASURY", "TREAS", "T-BILL")},
	{"Municipal Bond ETF", containsAny("MUNI", "MUNICIPAL")},
	{"High Yield Bond ETF", containsAny("HIGH YIELD", "HIGH YLD", "HI YLD")},
	{"Investment Grade Bond ETF", containsAny("INVT GR", "INVESTMENT GRADE", "INV GR")},
	{"Short Term Bond ETF", containsAny("SHORT TERM", "SHORT-TERM", "SHRT", "SHORT DUR")},
	{"Intermediate Term Bond ETF", containsAny("INTERMEDIATE", "INTERMED", "INT-TERM")},
	{"Long Term Bond ETF", containsAny("LONG TERM", "LONG-TERM", "LT ", "20+", "25+")},
	{"Inflation Protected Bond ETF", func(t string) bool {
		return strings.Contains(t, "TIPS") || (strings.Contains(t, "INFLATION") && isETF(t))
	}},
	{"ESG/Sustainable Equity ETF", func(t string) bool {
		return containsAny("ESG", "SUSTAINABLE")(t) || (strings.Contains(t, "CLEAN") && isETF(t))
	}},
	{"Asia Pacific Equity ETF", containsAny("CHINA", "ASIA", "PACIFIC", "HONG KONG", "TAIWAN", "JAPAN", "INDIA", "KOREA")},
	{"European Equity ETF", containsAny("EUROPE", "EURO", "EAFE", "UK", "GERMANY", "FRANCE", "SPAIN", "ITALY")},
	{"Latin America Equity ETF", containsAny("LATIN", "BRAZIL", "MEXICO", "CHILE")},
	{"Emerging Markets Equity ETF", containsAny("EMERG", "EM MKT", "EM MK")},
	{"Technology Sector ETF", containsAny("TECH", "SEMICONDUCTOR", "SOFTWARE", "CYBER", "CLOUD", "AI", "ARTIFICIAL")},
	{"Healthcare Sector ETF", containsAny("HEALTH", "PHARMA", "BIOTECH", "MEDICAL")},
	{"Financial Sector ETF", containsAny("FINANC", "BANK", "BK ETF", "INSURANCE")},
	{"Energy Sector ETF", containsAny("ENERGY", "OIL", "GAS")},
	{"Industrial Sector ETF", containsAny("INDUST", "AEROSPACE", "DEFENSE")},
	{"Consumer Discretionary Sector ETF", containsAny("CONSUM DIS", "CONSUMER DIS")},
	{"Consumer Staples Sector ETF", containsAny("CONSUM STP", "CONSUMER STP", "CONSUM STAPLE")},
	{"Utilities Sector ETF", allOf(containsAny("UTIL"), isETF)},
	{"Materials Sector ETF", func(t string) bool {
		return strings.Contains(t, "MATERIAL") || (strings.Contains(t, "METAL") && isETF(t))
	}},
	{"Communication Services Sector ETF", allOf(containsAny("COMM"), containsAny("SVC"))},
	{"Real Estate Equity ETF", containsAny("REAL EST", "REIT")},
	{"Dividend Focused Equity ETF", allOf(containsAny("DIV"), isETF)},
	{"Growth Equity ETF", allOf(containsAny("GROW", "GRW", "GWT"), isETF)},
	{"Value Equity ETF", allOf(containsAny("VALUE", "VAL", "VL "), isETF)},
	{"Momentum Equity ETF", allOf(containsAny("MOMENT", "MOMNT"), isETF)},
	{"Low Volatility Equity ETF", allOf(containsAny("LOW VOL", "MIN VOL"), isETF)},
	{"Quality Equity ETF", allOf(containsAny("QUAL"), isETF)},
	{"US Large Cap Equity ETF", containsAny("LARGE CAP", "LRG CAP", "LCAP", "MEGA CAP", "S&P 500", "S&P500", "RUSSELL 1000")},
	{"US Mid Cap Equity ETF", containsAny("MID CAP", "MDCP", "MIDCAP", "S&P 400", "RUSSELL MID")},
	{"US Small Cap Equity ETF", containsAny("SMALL CAP", "SML CAP", "SMCP", "SMLCP", "S&P 600", "RUSSELL 2000")},
	{"International Developed Markets Equity ETF", allOf(containsAny("INTL", "INTERNATIONAL", "GLOBAL", "WORLD", "DEVELOPED"), isETF)},
	{"Fixed Income Bond ETF", allOf(containsAny("BOND", "BD ETF", "CORP BD", "AGGREGATE"), isETF)},
	{"Commodity ETF", containsAny("GOLD", "SILVER", "COMMODITY", "METAL", "PLATINUM", "PALLADIUM")},
	{"Equity Security", containsAny("SHS", "SHARES", "STK", "STOCK", "CAP STK")},
	{"Exchange Traded Fund", containsAny("ETF", "INDEX", "FUND")},
	{"Fixed Income Security", containsAny("BOND", "NOTE", "DEBT", "DEBENTURE")},
}

// Categorize maps a title onto the detailed security taxonomy.
// Matching is on the upper-cased title with whitespace collapsed.
func Categorize(title string) string {
	t := strings.ToUpper(strings.Join(strings.Fields(title), " "))
	if t == "" {
		return Unclassified
	}
	for _, r := range detailedRules {
		if r.match(t) {
			return r.category
		}
	}
	return Unclassified
}

// Categories returns every category Categorize can produce, in rule order.
func Categories() []string {
	out := make([]string, 0, len(detailedRules)+1)
	for _, r := range detailedRules {
		out = append(out, r.category)
	}
	return append(out, Unclassified)
}
