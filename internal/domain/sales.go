package domain

import (
	"sort"
	"strings"
	"unicode"
)

// ExtractProductCode pulls the product code out of a nomenclature value.
// Input rows name products like "Mens shorts_C3 34770.4007/6214"; the code is
// everything after the first underscore. Returns "" when no code is present.
func ExtractProductCode(nomenclature string) string {
	idx := strings.Index(nomenclature, "_")
	if idx < 0 || idx == len(nomenclature)-1 {
		return ""
	}
	return nomenclature[idx+1:]
}

// ExtractStoreID pulls the leading numeric store identifier from a store row
// label, e.g. "0130143 MSK-PCM-Mega 2 Khimki" -> "130143". Leading zeros are
// dropped so identifiers compare equal across file formats. Returns "" for
// labels that do not start with digits.
func ExtractStoreID(label string) string {
	label = strings.TrimSpace(label)
	end := 0
	for end < len(label) && unicode.IsDigit(rune(label[end])) {
		end++
	}
	if end == 0 {
		return ""
	}
	id := strings.TrimLeft(label[:end], "0")
	if id == "" {
		id = "0"
	}
	return id
}

// StoreSales is one store's sales volume for a product.
type StoreSales struct {
	StoreID   string `json:"storeId"`
	StoreName string `json:"storeName"`
	Quantity  int    `json:"quantity"`
}

// ProductSales is the sales breakdown of a single product across stores.
type ProductSales struct {
	ProductCode   string       `json:"productCode"`
	TotalQuantity int          `json:"totalQuantity"`
	Stores        []StoreSales `json:"stores"`
}

// SalesPriorityData holds per-product sales volumes, keyed by product code.
// It is produced by the ingestion layer from a hierarchical sales report.
type SalesPriorityData struct {
	Products map[string]ProductSales `json:"products"`
}

// NewSalesPriorityData returns empty sales data.
func NewSalesPriorityData() *SalesPriorityData {
	return &SalesPriorityData{Products: make(map[string]ProductSales)}
}

// Add records a product's sales breakdown.
func (d *SalesPriorityData) Add(p ProductSales) {
	if d.Products == nil {
		d.Products = make(map[string]ProductSales)
	}
	d.Products[p.ProductCode] = p
}

// BuildStoreIDMap maps normalized store identifiers to the full store names
// of a priority list, so sales rows can be matched back to config stores.
func BuildStoreIDMap(priority []string) map[string]string {
	m := make(map[string]string, len(priority))
	for _, store := range priority {
		if id := ExtractStoreID(StoreCode(store)); id != "" {
			m[id] = store
		}
	}
	return m
}

// SalesRanking orders destinations by a product's sales volume, highest
// selling store first, falling back to the static priority order for
// products or stores the sales data does not know.
type SalesRanking struct {
	data     *SalesPriorityData
	fallback []string
	idMap    map[string]string
	excluded map[string]bool
}

// NewSalesRanking builds a sales-derived ranking scoped to a config's known,
// non-excluded stores.
func NewSalesRanking(data *SalesPriorityData, cfg DistributionConfig) *SalesRanking {
	excluded := make(map[string]bool, len(cfg.ExcludedStores))
	for _, store := range cfg.ExcludedStores {
		excluded[store] = true
	}
	return &SalesRanking{
		data:     data,
		fallback: cfg.ActiveStores(),
		idMap:    BuildStoreIDMap(cfg.StorePriority),
		excluded: excluded,
	}
}

// Order implements Ranking.
func (r *SalesRanking) Order(product string) []string {
	if r.data == nil {
		return r.fallback
	}
	code := ExtractProductCode(product)
	if code == "" {
		return r.fallback
	}
	sales, ok := r.data.Products[code]
	if !ok {
		return r.fallback
	}

	stores := append([]StoreSales(nil), sales.Stores...)
	sort.SliceStable(stores, func(a, b int) bool {
		return stores[a].Quantity > stores[b].Quantity
	})

	order := make([]string, 0, len(r.fallback))
	seen := make(map[string]bool, len(r.fallback))
	for _, s := range stores {
		store, ok := r.idMap[ExtractStoreID(s.StoreID)]
		if !ok || r.excluded[store] || seen[store] {
			continue
		}
		order = append(order, store)
		seen[store] = true
	}
	for _, store := range r.fallback {
		if !seen[store] {
			order = append(order, store)
		}
	}
	return order
}
