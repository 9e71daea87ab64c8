package types

import "time"

// Category is the closed set of catalog categories
type Category string

const (
	CategoryVegetable Category = "Vegetable"
	CategoryCrop      Category = "Crop"
	CategoryHybrid    Category = "Hybrid"
	CategoryCotton    Category = "Cotton"
	CategoryWheat     Category = "Wheat"
	CategoryGroundnut Category = "Groundnut"
	CategoryCumin     Category = "Cumin"
	CategorySesame    Category = "Sesame"
	CategoryCastor    Category = "Castor"
	CategoryMaize     Category = "Maize"
	CategoryGram      Category = "Gram"
	CategoryPigeonPea Category = "Pigeon Pea"
	CategoryMillet    Category = "Millet"
	CategoryCoriander Category = "Coriander"
	CategoryOther     Category = "Other"
)

// Categories lists every category in display order
var Categories = []Category{
	CategoryVegetable, CategoryCrop, CategoryHybrid, CategoryCotton, CategoryWheat,
	CategoryGroundnut, CategoryCumin, CategorySesame, CategoryCastor, CategoryMaize,
	CategoryGram, CategoryPigeonPea, CategoryMillet, CategoryCoriander, CategoryOther,
}

// Season is a controlled-vocabulary growing season tag
type Season string

const (
	SeasonMonsoon   Season = "Monsoon"
	SeasonWinter    Season = "Winter"
	SeasonSummer    Season = "Summer"
	SeasonAllSeason Season = "All-Season"
	SeasonSpring    Season = "Spring"
)

// Seasons lists every season tag in display order
var Seasons = []Season{SeasonMonsoon, SeasonWinter, SeasonSummer, SeasonAllSeason, SeasonSpring}

// Difficulty is the cultivation difficulty of a product
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

// Difficulties lists every difficulty level in ascending order
var Difficulties = []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}

// SpecGroup groups specifications on the product page
type SpecGroup string

const (
	SpecGroupBasic   SpecGroup = "Basic"
	SpecGroupGrowing SpecGroup = "Growing"
	SpecGroupHarvest SpecGroup = "Harvest"
)

// Specification is a single named attribute of a product
type Specification struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Category SpecGroup `json:"category" jsonschema:"enum=Basic,enum=Growing,enum=Harvest"`
}

// Image is a product image reference
type Image struct {
	URL       string `json:"url"`
	AltText   string `json:"altText"`
	IsPrimary bool   `json:"isPrimary"`
	SortOrder int    `json:"sortOrder"`
}

// Product is the canonical catalog entry
type Product struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Category         Category        `json:"category"`
	Subcategory      string          `json:"subcategory"`
	Description      string          `json:"description"`
	LongDescription  string          `json:"longDescription"`
	Specifications   []Specification `json:"specifications"`
	Seasonality      []Season        `json:"seasonality"`
	DifficultyLevel  Difficulty      `json:"difficultyLevel"`
	MaturityTime     string          `json:"maturityTime"`
	YieldExpectation string          `json:"yieldExpectation"`
	Availability     bool            `json:"availability"`
	Featured         bool            `json:"featured"`
	Images           []Image         `json:"images"`
	Views            int64           `json:"views"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// PrimaryImage returns the primary image, or the first image when none is flagged
func (p Product) PrimaryImage() *Image {
	if len(p.Images) == 0 {
		return nil
	}
	for i := range p.Images {
		if p.Images[i].IsPrimary {
			return &p.Images[i]
		}
	}
	return &p.Images[0]
}

// HasSeason reports whether the product is tagged with any of the given seasons
func (p Product) HasSeason(seasons map[Season]struct{}) bool {
	for _, s := range p.Seasonality {
		if _, ok := seasons[s]; ok {
			return true
		}
	}
	return false
}

// ProductPatch is a partial product update. Nil fields keep their current value.
type ProductPatch struct {
	Name             *string          `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Category         *Category        `json:"category,omitempty" validate:"omitempty,oneof=Vegetable Crop Hybrid Cotton Wheat Groundnut Cumin Sesame Castor Maize Gram 'Pigeon Pea' Millet Coriander Other"`
	Subcategory      *string          `json:"subcategory,omitempty" validate:"omitempty,max=100"`
	Description      *string          `json:"description,omitempty"`
	LongDescription  *string          `json:"longDescription,omitempty"`
	Specifications   *[]Specification `json:"specifications,omitempty" validate:"omitempty,dive"`
	Seasonality      *[]Season        `json:"seasonality,omitempty" validate:"omitempty,min=1,dive,oneof=Monsoon Winter Summer All-Season Spring"`
	DifficultyLevel  *Difficulty      `json:"difficultyLevel,omitempty" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
	MaturityTime     *string          `json:"maturityTime,omitempty"`
	YieldExpectation *string          `json:"yieldExpectation,omitempty"`
	Availability     *bool            `json:"availability,omitempty"`
	Featured         *bool            `json:"featured,omitempty"`
	Images           *[]Image         `json:"images,omitempty" validate:"omitempty,dive"`
}

// Apply merges the patch onto p and returns the result. p is not modified.
func (patch ProductPatch) Apply(p Product, now time.Time) Product {
	out := p
	if patch.Name != nil {
		out.Name = *patch.Name
	}
	if patch.Category != nil {
		out.Category = *patch.Category
	}
	if patch.Subcategory != nil {
		out.Subcategory = *patch.Subcategory
	}
	if patch.Description != nil {
		out.Description = *patch.Description
	}
	if patch.LongDescription != nil {
		out.LongDescription = *patch.LongDescription
	}
	if patch.Specifications != nil {
		out.Specifications = append([]Specification(nil), (*patch.Specifications)...)
	}
	if patch.Seasonality != nil {
		out.Seasonality = append([]Season(nil), (*patch.Seasonality)...)
	}
	if patch.DifficultyLevel != nil {
		out.DifficultyLevel = *patch.DifficultyLevel
	}
	if patch.MaturityTime != nil {
		out.MaturityTime = *patch.MaturityTime
	}
	if patch.YieldExpectation != nil {
		out.YieldExpectation = *patch.YieldExpectation
	}
	if patch.Availability != nil {
		out.Availability = *patch.Availability
	}
	if patch.Featured != nil {
		out.Featured = *patch.Featured
	}
	if patch.Images != nil {
		out.Images = append([]Image(nil), (*patch.Images)...)
	}
	out.UpdatedAt = now
	return out
}

// IsEmpty reports whether the patch changes nothing
func (patch ProductPatch) IsEmpty() bool {
	return patch.Name == nil && patch.Category == nil && patch.Subcategory == nil &&
		patch.Description == nil && patch.LongDescription == nil && patch.Specifications == nil &&
		patch.Seasonality == nil && patch.DifficultyLevel == nil && patch.MaturityTime == nil &&
		patch.YieldExpectation == nil && patch.Availability == nil && patch.Featured == nil &&
		patch.Images == nil
}

// ProductSummary is the list-view projection of a product
type ProductSummary struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Category        Category   `json:"category"`
	Subcategory     string     `json:"subcategory"`
	Description     string     `json:"description"`
	Seasonality     []Season   `json:"seasonality"`
	DifficultyLevel Difficulty `json:"difficultyLevel"`
	Availability    bool       `json:"availability"`
	Featured        bool       `json:"featured"`
	Image           *Image     `json:"image,omitempty"`
}

// Summary projects p for list responses
func (p Product) Summary() ProductSummary {
	s := ProductSummary{
		ID:              p.ID,
		Name:            p.Name,
		Category:        p.Category,
		Subcategory:     p.Subcategory,
		Description:     p.Description,
		Seasonality:     p.Seasonality,
		DifficultyLevel: p.DifficultyLevel,
		Availability:    p.Availability,
		Featured:        p.Featured,
	}
	if img := p.PrimaryImage(); img != nil {
		cp := *img
		s.Image = &cp
	}
	return s
}
