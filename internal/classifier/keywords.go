package classifier

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"kharcha/internal/feature"
	"kharcha/internal/model"
)

// KeywordRule maps one lowercase keyword to the category it implies. Rules
// are scanned in order and the first keyword found in the text wins.
type KeywordRule struct {
	Keyword  string         `yaml:"keyword"`
	Category model.Category `yaml:"category"`
}

// MatchKeyword scans the rules in priority order and returns the category of
// the first keyword present in the text. Matching is substring-based over the
// normalized text, so "grocery" also catches "groceries". The second return
// is false when no rule matches.
func MatchKeyword(rules []KeywordRule, text string) (model.Category, bool) {
	normalized := feature.Normalize(text)
	if normalized == "" {
		return "", false
	}
	for _, r := range rules {
		if r.Keyword != "" && strings.Contains(normalized, r.Keyword) {
			return r.Category, true
		}
	}
	return "", false
}

// keywordRulesFile is the on-disk format for a custom keyword table.
type keywordRulesFile struct {
	Rules []KeywordRule `yaml:"rules"`
}

// LoadKeywordRules reads a custom keyword table from a YAML file. The file
// replaces the default table entirely, keeping its rule order as the priority
// order.
func LoadKeywordRules(path string) ([]KeywordRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read keyword rules file: %w", err)
	}
	var file keywordRulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("could not parse keyword rules file: %w", err)
	}
	if len(file.Rules) == 0 {
		return nil, fmt.Errorf("keyword rules file %s defines no rules", path)
	}
	for i, r := range file.Rules {
		if r.Keyword == "" {
			return nil, fmt.Errorf("keyword rule %d has an empty keyword", i)
		}
		if !r.Category.Valid() {
			return nil, fmt.Errorf("keyword rule %d (%q) has unknown category %q", i, r.Keyword, r.Category)
		}
	}
	return file.Rules, nil
}

// DefaultKeywordRules returns the built-in keyword table, tuned for Indian
// spending vocabulary. Multi-word phrases come first so that "amazon prime"
// or "health insurance" wins over the shorter brand or generic word inside
// it; single keywords follow in category order.
func DefaultKeywordRules() []KeywordRule {
	return []KeywordRule{
		// Multi-word phrases take priority over their substrings.
		{Keyword: "reliance fresh", Category: model.CategoryGroceries},
		{Keyword: "amazon prime", Category: model.CategoryEntertainment},
		{Keyword: "electricity bill", Category: model.CategoryUtilities},
		{Keyword: "water bill", Category: model.CategoryUtilities},
		{Keyword: "phone bill", Category: model.CategoryUtilities},
		{Keyword: "health insurance", Category: model.CategoryInsurance},
		{Keyword: "car insurance", Category: model.CategoryInsurance},
		{Keyword: "life insurance", Category: model.CategoryInsurance},
		{Keyword: "term insurance", Category: model.CategoryInsurance},
		{Keyword: "mutual fund", Category: model.CategoryInvestment},
		{Keyword: "fixed deposit", Category: model.CategoryInvestment},

		// Groceries.
		{Keyword: "dmart", Category: model.CategoryGroceries},
		{Keyword: "bigbazaar", Category: model.CategoryGroceries},
		{Keyword: "supermarket", Category: model.CategoryGroceries},
		{Keyword: "grocery", Category: model.CategoryGroceries},
		{Keyword: "groceries", Category: model.CategoryGroceries},
		{Keyword: "vegetables", Category: model.CategoryGroceries},
		{Keyword: "fruits", Category: model.CategoryGroceries},
		{Keyword: "milk", Category: model.CategoryGroceries},
		{Keyword: "bread", Category: model.CategoryGroceries},
		{Keyword: "rice", Category: model.CategoryGroceries},
		{Keyword: "dal", Category: model.CategoryGroceries},
		{Keyword: "sabzi", Category: model.CategoryGroceries},
		{Keyword: "kirana", Category: model.CategoryGroceries},
		{Keyword: "ration", Category: model.CategoryGroceries},
		{Keyword: "provisions", Category: model.CategoryGroceries},

		// Dining.
		{Keyword: "swiggy", Category: model.CategoryDining},
		{Keyword: "zomato", Category: model.CategoryDining},
		{Keyword: "restaurant", Category: model.CategoryDining},
		{Keyword: "cafe", Category: model.CategoryDining},
		{Keyword: "dhaba", Category: model.CategoryDining},
		{Keyword: "hotel", Category: model.CategoryDining},
		{Keyword: "food", Category: model.CategoryDining},
		{Keyword: "lunch", Category: model.CategoryDining},
		{Keyword: "dinner", Category: model.CategoryDining},
		{Keyword: "breakfast", Category: model.CategoryDining},
		{Keyword: "pizza", Category: model.CategoryDining},
		{Keyword: "burger", Category: model.CategoryDining},
		{Keyword: "biryani", Category: model.CategoryDining},
		{Keyword: "dominos", Category: model.CategoryDining},
		{Keyword: "kfc", Category: model.CategoryDining},
		{Keyword: "mcdonalds", Category: model.CategoryDining},
		{Keyword: "subway", Category: model.CategoryDining},
		{Keyword: "haldiram", Category: model.CategoryDining},
		{Keyword: "bikanervala", Category: model.CategoryDining},

		// Transport.
		{Keyword: "uber", Category: model.CategoryTransport},
		{Keyword: "ola", Category: model.CategoryTransport},
		{Keyword: "rapido", Category: model.CategoryTransport},
		{Keyword: "metro", Category: model.CategoryTransport},
		{Keyword: "bus", Category: model.CategoryTransport},
		{Keyword: "train", Category: model.CategoryTransport},
		{Keyword: "auto", Category: model.CategoryTransport},
		{Keyword: "rickshaw", Category: model.CategoryTransport},
		{Keyword: "petrol", Category: model.CategoryTransport},
		{Keyword: "diesel", Category: model.CategoryTransport},
		{Keyword: "fuel", Category: model.CategoryTransport},
		{Keyword: "cng", Category: model.CategoryTransport},
		{Keyword: "parking", Category: model.CategoryTransport},
		{Keyword: "toll", Category: model.CategoryTransport},
		{Keyword: "fastag", Category: model.CategoryTransport},
		{Keyword: "irctc", Category: model.CategoryTransport},
		{Keyword: "flight", Category: model.CategoryTransport},
		{Keyword: "taxi", Category: model.CategoryTransport},
		{Keyword: "cab", Category: model.CategoryTransport},

		// Housing.
		{Keyword: "rent", Category: model.CategoryHousing},
		{Keyword: "maintenance", Category: model.CategoryHousing},
		{Keyword: "society", Category: model.CategoryHousing},
		{Keyword: "housing", Category: model.CategoryHousing},
		{Keyword: "apartment", Category: model.CategoryHousing},
		{Keyword: "flat", Category: model.CategoryHousing},
		{Keyword: "cylinder", Category: model.CategoryHousing},
		{Keyword: "lpg", Category: model.CategoryHousing},
		{Keyword: "repair", Category: model.CategoryHousing},
		{Keyword: "furniture", Category: model.CategoryHousing},
		{Keyword: "paint", Category: model.CategoryHousing},

		// Entertainment.
		{Keyword: "movie", Category: model.CategoryEntertainment},
		{Keyword: "pvr", Category: model.CategoryEntertainment},
		{Keyword: "inox", Category: model.CategoryEntertainment},
		{Keyword: "netflix", Category: model.CategoryEntertainment},
		{Keyword: "hotstar", Category: model.CategoryEntertainment},
		{Keyword: "spotify", Category: model.CategoryEntertainment},
		{Keyword: "concert", Category: model.CategoryEntertainment},
		{Keyword: "bookmyshow", Category: model.CategoryEntertainment},
		{Keyword: "game", Category: model.CategoryEntertainment},
		{Keyword: "party", Category: model.CategoryEntertainment},
		{Keyword: "club", Category: model.CategoryEntertainment},

		// Healthcare.
		{Keyword: "doctor", Category: model.CategoryHealthcare},
		{Keyword: "hospital", Category: model.CategoryHealthcare},
		{Keyword: "clinic", Category: model.CategoryHealthcare},
		{Keyword: "medicine", Category: model.CategoryHealthcare},
		{Keyword: "pharmacy", Category: model.CategoryHealthcare},
		{Keyword: "apollo", Category: model.CategoryHealthcare},
		{Keyword: "medlife", Category: model.CategoryHealthcare},
		{Keyword: "1mg", Category: model.CategoryHealthcare},
		{Keyword: "netmeds", Category: model.CategoryHealthcare},
		{Keyword: "health", Category: model.CategoryHealthcare},
		{Keyword: "treatment", Category: model.CategoryHealthcare},
		{Keyword: "checkup", Category: model.CategoryHealthcare},
		{Keyword: "medical", Category: model.CategoryHealthcare},

		// Shopping.
		{Keyword: "amazon", Category: model.CategoryShopping},
		{Keyword: "flipkart", Category: model.CategoryShopping},
		{Keyword: "myntra", Category: model.CategoryShopping},
		{Keyword: "ajio", Category: model.CategoryShopping},
		{Keyword: "meesho", Category: model.CategoryShopping},
		{Keyword: "shopping", Category: model.CategoryShopping},
		{Keyword: "clothes", Category: model.CategoryShopping},
		{Keyword: "shoes", Category: model.CategoryShopping},
		{Keyword: "mall", Category: model.CategoryShopping},
		{Keyword: "fashion", Category: model.CategoryShopping},
		{Keyword: "accessories", Category: model.CategoryShopping},
		{Keyword: "gadget", Category: model.CategoryShopping},

		// Education.
		{Keyword: "fees", Category: model.CategoryEducation},
		{Keyword: "tuition", Category: model.CategoryEducation},
		{Keyword: "course", Category: model.CategoryEducation},
		{Keyword: "udemy", Category: model.CategoryEducation},
		{Keyword: "coursera", Category: model.CategoryEducation},
		{Keyword: "book", Category: model.CategoryEducation},
		{Keyword: "study", Category: model.CategoryEducation},
		{Keyword: "school", Category: model.CategoryEducation},
		{Keyword: "college", Category: model.CategoryEducation},
		{Keyword: "university", Category: model.CategoryEducation},
		{Keyword: "coaching", Category: model.CategoryEducation},
		{Keyword: "exam", Category: model.CategoryEducation},
		{Keyword: "education", Category: model.CategoryEducation},

		// Utilities.
		{Keyword: "internet", Category: model.CategoryUtilities},
		{Keyword: "wifi", Category: model.CategoryUtilities},
		{Keyword: "broadband", Category: model.CategoryUtilities},
		{Keyword: "jio", Category: model.CategoryUtilities},
		{Keyword: "airtel", Category: model.CategoryUtilities},
		{Keyword: "vodafone", Category: model.CategoryUtilities},
		{Keyword: "bsnl", Category: model.CategoryUtilities},
		{Keyword: "recharge", Category: model.CategoryUtilities},
		{Keyword: "mobile", Category: model.CategoryUtilities},
		{Keyword: "postpaid", Category: model.CategoryUtilities},
		{Keyword: "prepaid", Category: model.CategoryUtilities},
		{Keyword: "electricity", Category: model.CategoryUtilities},

		// Insurance.
		{Keyword: "lic", Category: model.CategoryInsurance},
		{Keyword: "insurance", Category: model.CategoryInsurance},
		{Keyword: "premium", Category: model.CategoryInsurance},
		{Keyword: "policy", Category: model.CategoryInsurance},

		// Investment.
		{Keyword: "sip", Category: model.CategoryInvestment},
		{Keyword: "stock", Category: model.CategoryInvestment},
		{Keyword: "shares", Category: model.CategoryInvestment},
		{Keyword: "zerodha", Category: model.CategoryInvestment},
		{Keyword: "groww", Category: model.CategoryInvestment},
		{Keyword: "upstox", Category: model.CategoryInvestment},
		{Keyword: "investment", Category: model.CategoryInvestment},
		{Keyword: "ppf", Category: model.CategoryInvestment},
		{Keyword: "nps", Category: model.CategoryInvestment},
	}
}
