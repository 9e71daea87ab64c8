package catalog

import (
	"strings"

	"github.com/krishiseeds/catalog-service/internal/types"
)

// CategoryRule maps a lower-cased keyword to a category
type CategoryRule struct {
	Keyword  string
	Category types.Category
}

func (r CategoryRule) match(text string) bool {
	return strings.Contains(text, r.Keyword)
}

// cropNameRules are evaluated against the crop name column. Order is precedence:
// pigeon pea must win over gram, and field crops before the generic vegetable words.
var cropNameRules = []CategoryRule{
	{"cotton", types.CategoryCotton},
	{"kapas", types.CategoryCotton},
	{"wheat", types.CategoryWheat},
	{"groundnut", types.CategoryGroundnut},
	{"peanut", types.CategoryGroundnut},
	{"cumin", types.CategoryCumin},
	{"jeera", types.CategoryCumin},
	{"sesame", types.CategorySesame},
	{"castor", types.CategoryCastor},
	{"maize", types.CategoryMaize},
	{"corn", types.CategoryMaize},
	{"pigeon", types.CategoryPigeonPea},
	{"arhar", types.CategoryPigeonPea},
	{"tur dal", types.CategoryPigeonPea},
	{"gram", types.CategoryGram},
	{"chana", types.CategoryGram},
	{"chickpea", types.CategoryGram},
	{"millet", types.CategoryMillet},
	{"bajra", types.CategoryMillet},
	{"jowar", types.CategoryMillet},
	{"sorghum", types.CategoryMillet},
	{"coriander", types.CategoryCoriander},
	{"dhania", types.CategoryCoriander},
	{"vegetable", types.CategoryVegetable},
	{"okra", types.CategoryVegetable},
	{"bhindi", types.CategoryVegetable},
	{"gourd", types.CategoryVegetable},
	{"tomato", types.CategoryVegetable},
	{"chilli", types.CategoryVegetable},
	{"brinjal", types.CategoryVegetable},
	{"cucumber", types.CategoryVegetable},
	{"bean", types.CategoryVegetable},
	{"hybrid", types.CategoryHybrid},
	{"crop", types.CategoryCrop},
}

// productNameRules catch vegetables whose crop name column is blank or unhelpful
var productNameRules = []CategoryRule{
	{"okra", types.CategoryVegetable},
	{"bottle", types.CategoryVegetable},
	{"bitter", types.CategoryVegetable},
	{"sponge", types.CategoryVegetable},
	{"ridge", types.CategoryVegetable},
	{"chilli", types.CategoryVegetable},
	{"tomato", types.CategoryVegetable},
	{"cucumber", types.CategoryVegetable},
	{"bean", types.CategoryVegetable},
}

// InferCategory picks a category from the crop name, then the product name.
// First matching rule wins; Other when nothing matches.
func InferCategory(cropName, productName string) types.Category {
	if c, ok := firstMatch(cropNameRules, strings.ToLower(strings.TrimSpace(cropName))); ok {
		return c
	}
	if c, ok := firstMatch(productNameRules, strings.ToLower(strings.TrimSpace(productName))); ok {
		return c
	}
	return types.CategoryOther
}

func firstMatch(rules []CategoryRule, text string) (types.Category, bool) {
	if text == "" {
		return "", false
	}
	for _, r := range rules {
		if r.match(text) {
			return r.Category, true
		}
	}
	return "", false
}

// seasonRule maps any of its keywords to a season tag
type seasonRule struct {
	Keywords []string
	Season   types.Season
}

var seasonRules = []seasonRule{
	{[]string{"kharif", "monsoon"}, types.SeasonMonsoon},
	{[]string{"rabi", "winter"}, types.SeasonWinter},
	{[]string{"summer"}, types.SeasonSummer},
	{[]string{"all season", "all-season"}, types.SeasonAllSeason},
	{[]string{"spring"}, types.SeasonSpring},
}

// MapSeasons maps free-text season labels to season tags in table order.
// The result is never empty: unmatched input yields [All-Season].
func MapSeasons(text string) []types.Season {
	lower := strings.ToLower(text)
	var out []types.Season
	for _, r := range seasonRules {
		for _, kw := range r.Keywords {
			if strings.Contains(lower, kw) {
				out = append(out, r.Season)
				break
			}
		}
	}
	if len(out) == 0 {
		return []types.Season{types.SeasonAllSeason}
	}
	return out
}

// ParseDifficulty maps free text to a difficulty level, defaulting to Beginner
func ParseDifficulty(text string) types.Difficulty {
	lower := strings.ToLower(strings.TrimSpace(text))
	switch {
	case strings.Contains(lower, "advanced"), strings.Contains(lower, "expert"), strings.Contains(lower, "hard"):
		return types.DifficultyAdvanced
	case strings.Contains(lower, "intermediate"), strings.Contains(lower, "medium"), strings.Contains(lower, "moderate"):
		return types.DifficultyIntermediate
	default:
		return types.DifficultyBeginner
	}
}

// ParseCategory resolves a category label case-insensitively
func ParseCategory(s string) (types.Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range types.Categories {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}

// ParseSeason resolves a season label case-insensitively
func ParseSeason(s string) (types.Season, bool) {
	s = strings.TrimSpace(s)
	for _, v := range types.Seasons {
		if strings.EqualFold(string(v), s) {
			return v, true
		}
	}
	return "", false
}

// ParseDifficultyLabel resolves an exact difficulty label case-insensitively
func ParseDifficultyLabel(s string) (types.Difficulty, bool) {
	s = strings.TrimSpace(s)
	for _, d := range types.Difficulties {
		if strings.EqualFold(string(d), s) {
			return d, true
		}
	}
	return "", false
}

// parseFlag reads yes/no style spreadsheet cells. ok is false for blank or unknown values.
func parseFlag(s string) (value bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1", "in stock", "available":
		return true, true
	case "no", "n", "false", "0", "out of stock", "unavailable", "sold out":
		return false, true
	default:
		return false, false
	}
}
