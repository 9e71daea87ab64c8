package catalog

import (
	"strings"

	"github.com/krishiseeds/catalog-service/internal/types"
)

// Field names a canonical product attribute read from a raw record
type Field string

const (
	FieldName            Field = "name"
	FieldCropName        Field = "cropName"
	FieldDescription     Field = "description"
	FieldLongDescription Field = "longDescription"
	FieldSubcategory     Field = "subcategory"
	FieldSeason          Field = "season"
	FieldDifficulty      Field = "difficulty"
	FieldAvailability    Field = "availability"
	FieldFeatured        Field = "featured"
	FieldImages          Field = "images"
	FieldSeedColor       Field = "seedColor"
	FieldFlowerColor     Field = "flowerColor"
	FieldFruitShape      Field = "fruitShape"
	FieldHeight          Field = "height"
	FieldMaturity        Field = "maturity"
	FieldYield           Field = "yield"
)

// FieldPattern pairs a lower-case key substring with the field it feeds
type FieldPattern struct {
	Pattern string
	Field   Field
}

// fieldPatterns is evaluated top to bottom; for each field the first pattern
// that matches an unclaimed key wins. More specific patterns come first, so
// "long description" claims its column before "description" can.
var fieldPatterns = []FieldPattern{
	{"product name", FieldName},
	{"variety name", FieldName},
	{"variety", FieldName},
	{"crop name", FieldCropName},
	{"crop", FieldCropName},
	{"long description", FieldLongDescription},
	{"details", FieldLongDescription},
	{"morphological", FieldDescription},
	{"description", FieldDescription},
	{"characteristics", FieldDescription},
	{"sub category", FieldSubcategory},
	{"subcategory", FieldSubcategory},
	{"sub-category", FieldSubcategory},
	{"season", FieldSeason},
	{"sowing", FieldSeason},
	{"difficulty", FieldDifficulty},
	{"availability", FieldAvailability},
	{"in stock", FieldAvailability},
	{"featured", FieldFeatured},
	{"image", FieldImages},
	{"photo", FieldImages},
	{"seed color", FieldSeedColor},
	{"seed colour", FieldSeedColor},
	{"fruit color", FieldSeedColor},
	{"fruit colour", FieldSeedColor},
	{"flower color", FieldFlowerColor},
	{"flower colour", FieldFlowerColor},
	{"fruit shape", FieldFruitShape},
	{"shape", FieldFruitShape},
	{"height", FieldHeight},
	{"maturity days", FieldMaturity},
	{"maturity", FieldMaturity},
	{"duration", FieldMaturity},
	{"yield", FieldYield},
}

// specField describes how an extracted field becomes a specification entry
type specField struct {
	Field Field
	Name  string
	Group types.SpecGroup
}

var specFields = []specField{
	{FieldSeedColor, "Seed / Fruit Color", types.SpecGroupBasic},
	{FieldFlowerColor, "Flower Color", types.SpecGroupBasic},
	{FieldFruitShape, "Fruit Shape", types.SpecGroupBasic},
	{FieldHeight, "Plant Height", types.SpecGroupGrowing},
	{FieldMaturity, "Maturity", types.SpecGroupHarvest},
	{FieldYield, "Yield", types.SpecGroupHarvest},
}

// keyIndex is a case-insensitive view of one record's keys, built once per record
type keyIndex struct {
	keys   []string
	values []string
}

func newKeyIndex(rec types.RawRecord) keyIndex {
	idx := keyIndex{
		keys:   make([]string, len(rec.Cells)),
		values: make([]string, len(rec.Cells)),
	}
	for i, c := range rec.Cells {
		idx.keys[i] = strings.ToLower(strings.TrimSpace(c.Key))
		idx.values[i] = strings.TrimSpace(c.Value)
	}
	return idx
}

// lookup returns the position of the first unclaimed key containing substr
func (k keyIndex) lookup(substr string, claimed []bool) (int, bool) {
	for i, key := range k.keys {
		if !claimed[i] && strings.Contains(key, substr) {
			return i, true
		}
	}
	return -1, false
}

// exact returns the position of the unclaimed key equal to name
func (k keyIndex) exact(name string, claimed []bool) (int, bool) {
	for i, key := range k.keys {
		if !claimed[i] && key == name {
			return i, true
		}
	}
	return -1, false
}

// extract resolves every field through the pattern table. A field keeps the
// first matched key even when that cell is blank, so a later looser pattern
// cannot steal a value from an unrelated column. Each key feeds one field.
func extract(idx keyIndex, patterns []FieldPattern) map[Field]string {
	out := make(map[Field]string, len(patterns))
	resolved := make(map[Field]bool, len(patterns))
	claimed := make([]bool, len(idx.keys))
	for _, p := range patterns {
		if resolved[p.Field] {
			continue
		}
		if i, ok := idx.lookup(p.Pattern, claimed); ok {
			out[p.Field] = idx.values[i]
			resolved[p.Field] = true
			claimed[i] = true
		}
	}
	if !resolved[FieldName] {
		if i, ok := idx.exact("name", claimed); ok {
			out[FieldName] = idx.values[i]
		}
	}
	return out
}
