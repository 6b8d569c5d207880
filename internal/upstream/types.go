package upstream

import "encoding/json"

// Raw shapes of the commerce platform's catalog objects. The upstream schema
// is only partially documented and drifts between API versions, so everything
// beyond the fields we rely on is tolerated loosely and several historical
// field names are accepted for the same concept.

type CatalogObject struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	IsDeleted bool            `json:"is_deleted,omitempty"`
	ItemData  json.RawMessage `json:"item_data,omitempty"`
}

type ItemData struct {
	Name             string            `json:"name"`
	Description      string            `json:"description,omitempty"`
	Ingredients      []string          `json:"ingredients,omitempty"`
	Variations       []ItemVariation   `json:"variations,omitempty"`
	ModifierListInfo []ModifierListRef `json:"modifier_list_info,omitempty"`
	CategoryIDs      []string          `json:"category_ids,omitempty"`
	CategoryID       string            `json:"category_id,omitempty"`
	ImageIDs         []string          `json:"image_ids,omitempty"`
	IsArchived       bool              `json:"is_archived,omitempty"`
	Stockable        bool              `json:"stockable,omitempty"`
	Sellable         bool              `json:"sellable,omitempty"`
}

type ItemVariation struct {
	ID            string          `json:"id"`
	VariationData json.RawMessage `json:"item_variation_data,omitempty"`
}

type VariationData struct {
	Name            string `json:"name"`
	PriceMoney      *Money `json:"price_money,omitempty"`
	MeasurementUnit string `json:"measurement_unit,omitempty"`
	Quantity        string `json:"quantity,omitempty"`
	Ordinal         int    `json:"ordinal,omitempty"`
}

type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency,omitempty"`
}

type ModifierListRef struct {
	ModifierListID string `json:"modifier_list_id"`
	Enabled        *bool  `json:"enabled,omitempty"`
}

type ModifierList struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	SelectionType string     `json:"selection_type,omitempty"`
	MinSelected   int        `json:"min_selected,omitempty"`
	MaxSelected   int        `json:"max_selected,omitempty"`
	Modifiers     []Modifier `json:"modifiers,omitempty"`
}

type Modifier struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceMoney *Money `json:"price_money,omitempty"`
	Ordinal    int    `json:"ordinal,omitempty"`
}

// RawCategory keeps the loose map form around so the mapping layer can probe
// the historical parent-pointer field names without the ambiguity leaking any
// further.
type RawCategory struct {
	ID                  string                  `json:"id"`
	Data                map[string]interface{}  `json:"category_data,omitempty"`
	AvailabilityPeriods []RawAvailabilityPeriod `json:"availability_periods,omitempty"`
}

type RawAvailabilityPeriod struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	DayOfWeek string `json:"day_of_week,omitempty"`
}

type RawDiscount struct {
	ID   string                 `json:"id"`
	Data map[string]interface{} `json:"discount_data,omitempty"`
}

type CatalogImage struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type MeasurementUnit struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation,omitempty"`
	Precision    int    `json:"precision,omitempty"`
}
