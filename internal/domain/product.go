package domain

// VariantKind tells the storefront how a variant is picked.
type VariantKind string

const (
	VariantSingleSelect VariantKind = "single_select"
	VariantMultiSelect  VariantKind = "multi_select"
)

// Product is the normalized storefront item. BasePrice is in minor currency
// units (cents). Products are immutable once mapped and replaced wholesale on
// refetch.
type Product struct {
	ID          string           `bson:"id" json:"id"`
	Name        string           `bson:"name" json:"name"`
	Description string           `bson:"description,omitempty" json:"description,omitempty"`
	BasePrice   int64            `bson:"base_price" json:"base_price"`
	CategoryIDs []string         `bson:"category_ids" json:"category_ids"`
	Categories  []string         `bson:"categories" json:"categories"`
	Variants    []ProductVariant `bson:"variants,omitempty" json:"variants,omitempty"`
	ImageURLs   []string         `bson:"image_urls,omitempty" json:"image_urls,omitempty"`
	Ingredients []string         `bson:"ingredients,omitempty" json:"ingredients,omitempty"`
	Unit        string           `bson:"unit,omitempty" json:"unit,omitempty"`
	Quantity    float64          `bson:"quantity,omitempty" json:"quantity,omitempty"`
	Active      bool             `bson:"active" json:"active"`
}

type ProductVariant struct {
	ID      string          `bson:"id" json:"id"`
	Name    string          `bson:"name" json:"name"`
	Kind    VariantKind     `bson:"kind" json:"kind"`
	Options []VariantOption `bson:"options" json:"options"`
}

// VariantOption is one choice inside a variant. PriceDelta is the signed
// difference from the product's base price in minor units; nil means the
// option carries no additional cost, which is distinct from an explicit
// zero-priced option.
type VariantOption struct {
	ID         string  `bson:"id" json:"id"`
	Name       string  `bson:"name" json:"name"`
	PriceDelta *int64  `bson:"price_delta,omitempty" json:"price_delta,omitempty"`
	Unit       string  `bson:"unit,omitempty" json:"unit,omitempty"`
	Quantity   float64 `bson:"quantity,omitempty" json:"quantity,omitempty"`
}
