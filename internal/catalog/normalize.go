package catalog

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/krishiseeds/catalog-service/internal/types"
)

const (
	DefaultSubcategory      = "General"
	DefaultMaturityTime     = "Varies by variety and season"
	DefaultYieldExpectation = "Depends on soil, irrigation and season"
)

var imageSplitRe = regexp.MustCompile(`[,;|\n]`)

// Normalizer turns raw spreadsheet records into canonical products
type Normalizer struct {
	now func() time.Time
}

// NewNormalizer creates a normalizer that stamps products with the current time
func NewNormalizer() *Normalizer {
	return &Normalizer{now: time.Now}
}

// WithClock returns a copy of the normalizer using the given clock
func (n *Normalizer) WithClock(now func() time.Time) *Normalizer {
	return &Normalizer{now: now}
}

// BatchResult is the outcome of normalizing a batch of records
type BatchResult struct {
	Products []types.Product      `json:"products"`
	Skipped  int                  `json:"skipped"`
	Warnings []types.ParseWarning `json:"warnings"`
}

// Normalize converts one record. ok is false when the record has no product name.
func (n *Normalizer) Normalize(rec types.RawRecord) (types.Product, bool) {
	fields := extract(newKeyIndex(rec), fieldPatterns)

	name := strings.TrimSpace(fields[FieldName])
	if name == "" {
		return types.Product{}, false
	}

	ts := n.now().UTC()
	p := types.Product{
		ID:               Slugify(name),
		Name:             name,
		Category:         InferCategory(fields[FieldCropName], name),
		Subcategory:      orDefault(fields[FieldSubcategory], DefaultSubcategory),
		Description:      fields[FieldDescription],
		LongDescription:  fields[FieldLongDescription],
		Specifications:   buildSpecifications(fields),
		Seasonality:      MapSeasons(fields[FieldSeason]),
		DifficultyLevel:  ParseDifficulty(fields[FieldDifficulty]),
		MaturityTime:     orDefault(fields[FieldMaturity], DefaultMaturityTime),
		YieldExpectation: orDefault(fields[FieldYield], DefaultYieldExpectation),
		Availability:     true,
		Images:           buildImages(fields[FieldImages], name),
		CreatedAt:        ts,
		UpdatedAt:        ts,
	}
	if p.LongDescription == "" {
		p.LongDescription = p.Description
	}
	if v, ok := parseFlag(fields[FieldAvailability]); ok {
		p.Availability = v
	}
	if v, ok := parseFlag(fields[FieldFeatured]); ok {
		p.Featured = v
	}
	return p, true
}

// NormalizeAll converts a batch. Records without a name are skipped and
// colliding ids get numeric suffixes in source order.
func (n *Normalizer) NormalizeAll(records []types.RawRecord) BatchResult {
	res := BatchResult{
		Products: make([]types.Product, 0, len(records)),
		Warnings: make([]types.ParseWarning, 0),
	}
	ids := newSlugAllocator()
	for _, rec := range records {
		p, ok := n.Normalize(rec)
		if !ok {
			res.Skipped++
			continue
		}
		id := ids.allocate(p.ID)
		switch {
		case p.ID == "":
			res.Warnings = append(res.Warnings, types.ParseWarning{
				RowNumber: rowNumber(rec),
				Field:     types.StringPtr("id"),
				Message:   "name " + strconv.Quote(p.Name) + " has no slug characters, using id " + id,
			})
		case id != p.ID:
			res.Warnings = append(res.Warnings, types.ParseWarning{
				RowNumber: rowNumber(rec),
				Field:     types.StringPtr("id"),
				Message:   "duplicate product id " + strconv.Quote(p.ID) + " renamed to " + id,
			})
		}
		p.ID = id
		res.Products = append(res.Products, p)
	}
	return res
}

func buildSpecifications(fields map[Field]string) []types.Specification {
	specs := make([]types.Specification, 0, len(specFields))
	for _, sf := range specFields {
		v := strings.TrimSpace(fields[sf.Field])
		if v == "" {
			continue
		}
		specs = append(specs, types.Specification{
			ID:       Slugify(sf.Name),
			Name:     sf.Name,
			Value:    v,
			Category: sf.Group,
		})
	}
	return specs
}

func buildImages(cell, name string) []types.Image {
	images := make([]types.Image, 0)
	for _, part := range imageSplitRe.Split(cell, -1) {
		url := strings.TrimSpace(part)
		if url == "" {
			continue
		}
		images = append(images, types.Image{
			URL:       url,
			AltText:   name,
			IsPrimary: len(images) == 0,
			SortOrder: len(images),
		})
	}
	return OrderImages(images)
}

// OrderImages keeps at most one primary image, placed
// first, the rest by sort order. The input slice is not modified.
func OrderImages(images []types.Image) []types.Image {
	out := append([]types.Image(nil), images...)
	primary := -1
	for i := range out {
		if out[i].IsPrimary {
			if primary == -1 {
				primary = i
			} else {
				out[i].IsPrimary = false
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsPrimary != out[j].IsPrimary {
			return out[i].IsPrimary
		}
		return out[i].SortOrder < out[j].SortOrder
	})
	if out == nil {
		return []types.Image{}
	}
	return out
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}

func rowNumber(rec types.RawRecord) *int {
	if rec.RowNumber == 0 {
		return nil
	}
	return types.IntPtr(rec.RowNumber)
}
