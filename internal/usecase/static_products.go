package usecase

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/kalpavruksha/backend/internal/domain"
)

// The built-in recommendation table ships inside the binary. Values are
// heterogeneous on purpose (bare URL, URL list, product record, record list)
// and are normalized through coerceProducts at lookup time, never at call
// sites.

//go:embed static_products.json
var staticProductsJSON []byte

// staticEntry keeps the raw value shape until coercion
type staticEntry struct {
	Key      string          `json:"key"`
	Products json.RawMessage `json:"products"`
}

var staticCatalog []staticEntry

func init() {
	var doc struct {
		Items []staticEntry `json:"items"`
	}
	if err := json.Unmarshal(staticProductsJSON, &doc); err != nil {
		panic(fmt.Sprintf("static product table is invalid: %v", err))
	}
	staticCatalog = doc.Items
}

// LookupStaticProducts returns the built-in products for a disease label.
// Table keys are scanned in declared order; the first key with bidirectional
// containment against the normalized label wins. Unknown labels yield an
// empty result.
func LookupStaticProducts(diseaseType string) []domain.Product {
	n := NormalizeKey(diseaseType)
	if n == "" {
		return nil
	}
	for _, entry := range staticCatalog {
		if keysMatch(NormalizeKey(entry.Key), n) {
			return coerceProducts(entry.Products)
		}
	}
	return nil
}

// coerceProducts is the single place that maps a heterogeneous table value to
// an ordered product list. A bare URL string becomes {Name: "Product", URL};
// a single record becomes a one-element list; lists are coerced element-wise;
// anything else yields nothing.
func coerceProducts(raw json.RawMessage) []domain.Product {
	value := bytes.TrimSpace(raw)
	if len(value) == 0 {
		return nil
	}

	switch value[0] {
	case '"':
		var url string
		if err := json.Unmarshal(value, &url); err != nil {
			return nil
		}
		return []domain.Product{{Name: "Product", URL: url}}
	case '{':
		var product domain.Product
		if err := json.Unmarshal(value, &product); err != nil {
			return nil
		}
		return []domain.Product{product}
	case '[':
		var elements []json.RawMessage
		if err := json.Unmarshal(value, &elements); err != nil {
			return nil
		}
		products := make([]domain.Product, 0, len(elements))
		for _, element := range elements {
			products = append(products, coerceProducts(element)...)
		}
		return products
	default:
		return nil
	}
}
