package catalog

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/bmartin2011/Fetterman-s-sub000/internal/domain"
	"github.com/bmartin2011/Fetterman-s-sub000/internal/upstream"
	"github.com/spf13/cast"
)

const uncategorized = "uncategorized"

// unitPattern matches measurement hints in item names, e.g. "Chips 1.5 oz"
// or "Soda 20 fl oz". "fl oz" must be probed before "oz".
var unitPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(fl\s?oz|oz|lb)\b`)

// modifier option names the upstream catalog uses as placeholders
var sentinelNames = map[string]bool{
	"":          true,
	"0":         true,
	"null":      true,
	"undefined": true,
}

// MapProducts normalizes raw catalog items into storefront products. It is
// pure: all upstream data is fetched beforehand and passed in. A malformed
// item is skipped; it never aborts the rest of the batch.
func MapProducts(
	objects []upstream.CatalogObject,
	modifierLists []upstream.ModifierList,
	categoryNames map[string]string,
	imageURLs map[string]string,
) []domain.Product {
	listsByID := make(map[string]upstream.ModifierList, len(modifierLists))
	for _, list := range modifierLists {
		listsByID[list.ID] = list
	}

	products := make([]domain.Product, 0, len(objects))
	for _, obj := range objects {
		if obj.Type != "ITEM" || obj.IsDeleted {
			continue
		}

		product, err := mapItem(obj, listsByID, categoryNames, imageURLs)
		if err != nil || product == nil {
			continue
		}

		products = append(products, *product)
	}

	return products
}

type parsedVariation struct {
	id       string
	name     string
	price    *int64
	unit     string
	quantity float64
}

// mapItem returns (nil, nil) for items that are skipped on purpose
// (archived) and an error for items whose payload cannot be decoded.
func mapItem(
	obj upstream.CatalogObject,
	listsByID map[string]upstream.ModifierList,
	categoryNames map[string]string,
	imageURLs map[string]string,
) (*domain.Product, error) {
	var data upstream.ItemData
	if err := json.Unmarshal(obj.ItemData, &data); err != nil {
		return nil, fmt.Errorf("failed to decode item %s: %w", obj.ID, err)
	}

	if data.IsArchived {
		return nil, nil
	}

	variations := parseVariations(data.Variations)

	var basePrice int64
	if len(variations) > 0 && variations[0].price != nil {
		basePrice = *variations[0].price
	}

	var images []string
	for _, imageID := range data.ImageIDs {
		// unresolved image ids are dropped, not errors
		if url, ok := imageURLs[imageID]; ok {
			images = append(images, url)
		}
	}

	ingredients := data.Ingredients
	if len(ingredients) == 0 {
		ingredients = extractIngredients(data.Description)
	}

	var variants []domain.ProductVariant
	if sizeVariant := buildSizeVariant(variations, basePrice); sizeVariant != nil {
		variants = append(variants, *sizeVariant)
	}
	variants = append(variants, buildModifierVariants(data.ModifierListInfo, listsByID)...)

	categoryIDs := data.CategoryIDs
	if len(categoryIDs) == 0 && data.CategoryID != "" {
		categoryIDs = []string{data.CategoryID}
	}

	var categories []string
	for _, id := range categoryIDs {
		name, ok := categoryNames[id]
		if !ok {
			name = uncategorized
		}
		categories = append(categories, name)
	}
	if len(categories) == 0 {
		categories = []string{uncategorized}
	}

	unit, quantity := resolveMeasurement(variations, data.Name)

	return &domain.Product{
		ID:          obj.ID,
		Name:        data.Name,
		Description: data.Description,
		BasePrice:   basePrice,
		CategoryIDs: categoryIDs,
		Categories:  categories,
		Variants:    variants,
		ImageURLs:   images,
		Ingredients: ingredients,
		Unit:        unit,
		Quantity:    quantity,
		Active:      true,
	}, nil
}

// parseVariations decodes variation payloads, silently dropping any single
// variation that cannot be parsed.
func parseVariations(raw []upstream.ItemVariation) []parsedVariation {
	variations := make([]parsedVariation, 0, len(raw))
	for _, v := range raw {
		if len(v.VariationData) == 0 {
			continue
		}

		var data upstream.VariationData
		if err := json.Unmarshal(v.VariationData, &data); err != nil {
			continue
		}

		parsed := parsedVariation{
			id:   v.ID,
			name: data.Name,
			unit: data.MeasurementUnit,
		}
		if data.PriceMoney != nil {
			price := data.PriceMoney.Amount
			parsed.price = &price
		}
		if data.Quantity != "" {
			parsed.quantity = cast.ToFloat64(strings.TrimSpace(data.Quantity))
		}

		variations = append(variations, parsed)
	}

	return variations
}

// buildSizeVariant synthesizes a "Size" choice from an item's variations.
// A single variation carries no meaningful choice, so it yields nothing.
// Option prices are deltas from the first variation; a delta of exactly zero
// is represented as no delta at all so the storefront never renders "+$0.00".
func buildSizeVariant(variations []parsedVariation, basePrice int64) *domain.ProductVariant {
	if len(variations) <= 1 {
		return nil
	}

	options := make([]domain.VariantOption, 0, len(variations))
	for _, v := range variations {
		option := domain.VariantOption{
			ID:       v.id,
			Name:     v.name,
			Unit:     v.unit,
			Quantity: v.quantity,
		}
		if v.price != nil {
			if delta := *v.price - basePrice; delta != 0 {
				option.PriceDelta = &delta
			}
		}
		options = append(options, option)
	}

	return &domain.ProductVariant{
		ID:      "size",
		Name:    "Size",
		Kind:    domain.VariantSingleSelect,
		Options: options,
	}
}

func buildModifierVariants(refs []upstream.ModifierListRef, listsByID map[string]upstream.ModifierList) []domain.ProductVariant {
	var variants []domain.ProductVariant
	for _, ref := range refs {
		if ref.Enabled != nil && !*ref.Enabled {
			continue
		}

		list, ok := listsByID[ref.ModifierListID]
		if !ok {
			continue
		}

		kind := domain.VariantSingleSelect
		if strings.EqualFold(list.SelectionType, "MULTIPLE") {
			kind = domain.VariantMultiSelect
		}

		options := make([]domain.VariantOption, 0, len(list.Modifiers))
		for _, m := range list.Modifiers {
			if sentinelNames[strings.ToLower(strings.TrimSpace(m.Name))] {
				continue
			}

			option := domain.VariantOption{
				ID:   m.ID,
				Name: m.Name,
			}
			if m.PriceMoney != nil && m.PriceMoney.Amount != 0 {
				delta := m.PriceMoney.Amount
				option.PriceDelta = &delta
			}
			options = append(options, option)
		}

		if len(options) == 0 {
			continue
		}

		variants = append(variants, domain.ProductVariant{
			ID:      list.ID,
			Name:    list.Name,
			Kind:    kind,
			Options: options,
		})
	}

	return variants
}

// extractIngredients falls back to splitting the free-text description on
// commas, semicolons and newlines. Tokens that are empty or implausibly long
// are discarded and the result is capped at 10 entries.
func extractIngredients(description string) []string {
	if description == "" {
		return nil
	}

	tokens := strings.FieldsFunc(description, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})

	var ingredients []string
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" || len(token) > 50 {
			continue
		}
		ingredients = append(ingredients, token)
		if len(ingredients) == 10 {
			break
		}
	}

	return ingredients
}

// resolveMeasurement prefers an explicit unit on the first variation and
// falls back to inferring one from the item name.
func resolveMeasurement(variations []parsedVariation, name string) (string, float64) {
	if len(variations) > 0 && variations[0].unit != "" {
		return variations[0].unit, variations[0].quantity
	}

	match := unitPattern.FindStringSubmatch(name)
	if match == nil {
		return "", 0
	}

	unit := strings.ToLower(strings.Join(strings.Fields(match[2]), " "))
	return unit, cast.ToFloat64(match[1])
}
