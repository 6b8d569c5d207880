package catalog

import (
	"encoding/json"
	"testing"

	"github.com/bmartin2011/Fetterman-s-sub000/internal/domain"
	"github.com/bmartin2011/Fetterman-s-sub000/internal/upstream"
)

func rawItem(t *testing.T, id string, data string) upstream.CatalogObject {
	t.Helper()
	return upstream.CatalogObject{
		ID:       id,
		Type:     "ITEM",
		ItemData: json.RawMessage(data),
	}
}

func TestMapProducts_SizeVariantFromVariations(t *testing.T) {
	item := rawItem(t, "ITEM1", `{
		"name": "Italian Sub",
		"variations": [
			{"id": "V1", "item_variation_data": {"name": "Small", "price_money": {"amount": 500}}},
			{"id": "V2", "item_variation_data": {"name": "Large", "price_money": {"amount": 650}}}
		]
	}`)

	products := MapProducts([]upstream.CatalogObject{item}, nil, nil, nil)
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}

	p := products[0]
	if p.BasePrice != 500 {
		t.Fatalf("expected base price from first variation, got %d", p.BasePrice)
	}
	if len(p.Variants) != 1 || p.Variants[0].Name != "Size" {
		t.Fatalf("expected one Size variant, got %+v", p.Variants)
	}

	options := p.Variants[0].Options
	if len(options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(options))
	}
	if options[0].PriceDelta != nil {
		t.Fatalf("first option must carry no delta, got %d", *options[0].PriceDelta)
	}
	if options[1].PriceDelta == nil || *options[1].PriceDelta != 150 {
		t.Fatalf("expected +150 delta on second option, got %+v", options[1].PriceDelta)
	}
}

func TestMapProducts_SingleVariationHasNoSizeVariant(t *testing.T) {
	item := rawItem(t, "ITEM1", `{
		"name": "Cookie",
		"variations": [
			{"id": "V1", "item_variation_data": {"name": "Regular", "price_money": {"amount": 250}}}
		]
	}`)

	products := MapProducts([]upstream.CatalogObject{item}, nil, nil, nil)
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}
	if len(products[0].Variants) != 0 {
		t.Fatalf("single variation must not synthesize a Size variant, got %+v", products[0].Variants)
	}
	if products[0].BasePrice != 250 {
		t.Fatalf("expected base price 250, got %d", products[0].BasePrice)
	}
}

func TestMapProducts_SkipsArchivedAndDeleted(t *testing.T) {
	archived := rawItem(t, "ITEM1", `{"name": "Old", "is_archived": true}`)
	deleted := upstream.CatalogObject{
		ID:        "ITEM2",
		Type:      "ITEM",
		IsDeleted: true,
		ItemData:  json.RawMessage(`{"name": "Gone"}`),
	}
	kept := rawItem(t, "ITEM3", `{"name": "Current"}`)

	products := MapProducts([]upstream.CatalogObject{archived, deleted, kept}, nil, nil, nil)
	if len(products) != 1 || products[0].ID != "ITEM3" {
		t.Fatalf("expected only the live item, got %+v", products)
	}
}

func TestMapProducts_MalformedItemDoesNotAbortBatch(t *testing.T) {
	broken := rawItem(t, "BAD", `{"name": 42`)
	good := rawItem(t, "GOOD", `{"name": "Turkey Sub"}`)

	products := MapProducts([]upstream.CatalogObject{broken, good}, nil, nil, nil)
	if len(products) != 1 || products[0].ID != "GOOD" {
		t.Fatalf("expected the good item to survive, got %+v", products)
	}
}

func TestMapProducts_MalformedVariationIsDropped(t *testing.T) {
	item := rawItem(t, "ITEM1", `{
		"name": "Soup",
		"variations": [
			{"id": "V1", "item_variation_data": {"name": "Cup", "price_money": {"amount": 300}}},
			{"id": "V2", "item_variation_data": "not-an-object"},
			{"id": "V3", "item_variation_data": {"name": "Bowl", "price_money": {"amount": 450}}}
		]
	}`)

	products := MapProducts([]upstream.CatalogObject{item}, nil, nil, nil)
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}
	if len(products[0].Variants) != 1 || len(products[0].Variants[0].Options) != 2 {
		t.Fatalf("expected the malformed variation to be omitted, got %+v", products[0].Variants)
	}
}

func TestMapProducts_ImagesResolvedAndUnresolvedDropped(t *testing.T) {
	item := rawItem(t, "ITEM1", `{"name": "Drink", "image_ids": ["IMG1", "IMG_MISSING"]}`)

	products := MapProducts([]upstream.CatalogObject{item}, nil, nil, map[string]string{
		"IMG1": "https://cdn.example.com/img1.png",
	})
	if len(products[0].ImageURLs) != 1 || products[0].ImageURLs[0] != "https://cdn.example.com/img1.png" {
		t.Fatalf("unexpected image urls: %v", products[0].ImageURLs)
	}
}

func TestMapProducts_CategoryResolution(t *testing.T) {
	listed := rawItem(t, "ITEM1", `{"name": "A", "category_ids": ["CAT1", "CAT_MISSING"]}`)
	singular := rawItem(t, "ITEM2", `{"name": "B", "category_id": "CAT1"}`)
	none := rawItem(t, "ITEM3", `{"name": "C"}`)

	names := map[string]string{"CAT1": "Subs"}
	products := MapProducts([]upstream.CatalogObject{listed, singular, none}, nil, names, nil)

	if got := products[0].Categories; len(got) != 2 || got[0] != "Subs" || got[1] != uncategorized {
		t.Fatalf("unexpected categories: %v", got)
	}
	if got := products[1].Categories; len(got) != 1 || got[0] != "Subs" {
		t.Fatalf("expected singular category field to be supported, got %v", got)
	}
	if got := products[2].Categories; len(got) != 1 || got[0] != uncategorized {
		t.Fatalf("expected uncategorized default, got %v", got)
	}
}

func TestMapProducts_ModifierListVariants(t *testing.T) {
	item := rawItem(t, "ITEM1", `{
		"name": "Sub",
		"modifier_list_info": [
			{"modifier_list_id": "ML1"},
			{"modifier_list_id": "ML_DISABLED", "enabled": false}
		]
	}`)

	lists := []upstream.ModifierList{
		{
			ID:            "ML1",
			Name:          "Toppings",
			SelectionType: "MULTIPLE",
			Modifiers: []upstream.Modifier{
				{ID: "M1", Name: "Extra Cheese", PriceMoney: &upstream.Money{Amount: 75}},
				{ID: "M2", Name: "Lettuce"},
				{ID: "M3", Name: "0"},
				{ID: "M4", Name: "null"},
			},
		},
		{ID: "ML_DISABLED", Name: "Hidden", SelectionType: "SINGLE"},
	}

	products := MapProducts([]upstream.CatalogObject{item}, lists, nil, nil)
	if len(products[0].Variants) != 1 {
		t.Fatalf("expected 1 modifier variant, got %+v", products[0].Variants)
	}

	v := products[0].Variants[0]
	if v.Kind != domain.VariantMultiSelect {
		t.Fatalf("expected multi-select, got %s", v.Kind)
	}
	if len(v.Options) != 2 {
		t.Fatalf("expected sentinel names to be filtered, got %+v", v.Options)
	}
	if v.Options[0].PriceDelta == nil || *v.Options[0].PriceDelta != 75 {
		t.Fatalf("expected priced modifier delta, got %+v", v.Options[0].PriceDelta)
	}
	if v.Options[1].PriceDelta != nil {
		t.Fatalf("unpriced modifier must carry no delta, got %d", *v.Options[1].PriceDelta)
	}
}

func TestMapProducts_IngredientsFromDescription(t *testing.T) {
	item := rawItem(t, "ITEM1", `{
		"name": "Garden Salad",
		"description": "lettuce, tomato; cucumber\nred onion,, this clause rambles on for far too long to plausibly be a single ingredient name"
	}`)

	products := MapProducts([]upstream.CatalogObject{item}, nil, nil, nil)
	got := products[0].Ingredients
	want := []string{"lettuce", "tomato", "cucumber", "red onion"}
	if len(got) != len(want) {
		t.Fatalf("unexpected ingredients: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %q at %d, got %q", want[i], i, got[i])
		}
	}
}

func TestMapProducts_StructuredIngredientsPreferred(t *testing.T) {
	item := rawItem(t, "ITEM1", `{
		"name": "Smoothie",
		"description": "banana, strawberry",
		"ingredients": ["mango", "pineapple"]
	}`)

	products := MapProducts([]upstream.CatalogObject{item}, nil, nil, nil)
	got := products[0].Ingredients
	if len(got) != 2 || got[0] != "mango" {
		t.Fatalf("expected structured list to win, got %v", got)
	}
}

func TestMapProducts_UnitInference(t *testing.T) {
	tests := []struct {
		name     string
		itemName string
		unit     string
		quantity float64
	}{
		{"ounces", "Kettle Chips 1.5 oz", "oz", 1.5},
		{"fluid ounces", "Cola 20 fl oz", "fl oz", 20},
		{"pounds", "Deli Ham 1 lb", "lb", 1},
		{"no hint", "Club Sandwich", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := rawItem(t, "ITEM1", `{"name": "`+tt.itemName+`"}`)
			products := MapProducts([]upstream.CatalogObject{item}, nil, nil, nil)
			if products[0].Unit != tt.unit || products[0].Quantity != tt.quantity {
				t.Fatalf("got unit=%q quantity=%v", products[0].Unit, products[0].Quantity)
			}
		})
	}
}

func TestMapProducts_ExplicitVariationUnitWins(t *testing.T) {
	item := rawItem(t, "ITEM1", `{
		"name": "Chips 1.5 oz",
		"variations": [
			{"id": "V1", "item_variation_data": {"name": "Bag", "measurement_unit": "g", "quantity": "42.5"}}
		]
	}`)

	products := MapProducts([]upstream.CatalogObject{item}, nil, nil, nil)
	if products[0].Unit != "g" || products[0].Quantity != 42.5 {
		t.Fatalf("expected explicit unit to win, got unit=%q quantity=%v", products[0].Unit, products[0].Quantity)
	}
}
