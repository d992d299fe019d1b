package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Warehouse sink identifiers. The stock sink is the only warehouse identifier
// that can appear as a receiver; both can appear as senders depending on the
// pool an allocation run was sourced from.
const (
	WarehouseStock = "Stock"
	WarehousePhoto = "Photo"
)

// Pool selects which warehouse quantity pool an allocation run draws from.
type Pool string

const (
	PoolStock Pool = "stock"
	PoolPhoto Pool = "photo"
)

// IsValid reports whether the pool is one of the two known pools.
func (p Pool) IsValid() bool {
	return p == PoolStock || p == PoolPhoto
}

// Sink returns the warehouse identifier used as the sender for transfers
// sourced from this pool.
func (p Pool) Sink() string {
	if p == PoolPhoto {
		return WarehousePhoto
	}
	return WarehouseStock
}

// IsWarehouse reports whether an identifier names a warehouse sink rather
// than a store.
func IsWarehouse(id string) bool {
	return id == WarehouseStock || id == WarehousePhoto
}

// ProductRow is one row of an inventory snapshot: a (nomenclature, variant)
// pair with a quantity per store and the two warehouse pool quantities.
// Index is the row's position in the source table and is the key transfers
// use to refer back to their originating row.
type ProductRow struct {
	Index        int            `bson:"index" json:"index"`
	Nomenclature string         `bson:"nomenclature" json:"nomenclature"`
	Variant      string         `bson:"variant" json:"variant"`
	Stock        int            `bson:"stock" json:"stock"`
	PhotoStock   int            `bson:"photoStock" json:"photoStock"`
	Quantities   map[string]int `bson:"quantities" json:"quantities"`
}

// Quantity returns the row's quantity at a store. Absent stores count as zero.
func (r *ProductRow) Quantity(store string) int {
	return r.Quantities[store]
}

// PoolQuantity returns the row's quantity in the given warehouse pool.
func (r *ProductRow) PoolQuantity(p Pool) int {
	if p == PoolPhoto {
		return r.PhotoStock
	}
	return r.Stock
}

// Snapshot is the full set of product rows at a point in time. Engines treat
// it as immutable input; Project produces a new Snapshot rather than mutating
// one in place.
type Snapshot struct {
	Rows []ProductRow `bson:"rows" json:"rows"`
}

// NewSnapshot builds a snapshot from rows. Rows that carry no indices at all
// (every Index zero) are numbered by position; explicit indices are kept
// as-is, whatever their order, since transfers refer to rows by index.
func NewSnapshot(rows []ProductRow) *Snapshot {
	if len(rows) > 1 {
		allZero := true
		for i := range rows {
			if rows[i].Index != 0 {
				allZero = false
				break
			}
		}
		if allZero {
			for i := range rows {
				rows[i].Index = i
			}
		}
	}
	return &Snapshot{Rows: rows}
}

// Validate rejects structurally invalid snapshots. Negative starting
// quantities are the only fatal condition; everything else is representable
// as warnings or empty results.
func (s *Snapshot) Validate() error {
	seen := make(map[int]bool, len(s.Rows))
	for i := range s.Rows {
		row := &s.Rows[i]
		if seen[row.Index] {
			return fmt.Errorf("%w: row index %d", ErrDuplicateRowIndex, row.Index)
		}
		seen[row.Index] = true
		if row.Stock < 0 || row.PhotoStock < 0 {
			return fmt.Errorf("%w: row %d warehouse pool", ErrNegativeQuantity, row.Index)
		}
		for store, qty := range row.Quantities {
			if qty < 0 {
				return fmt.Errorf("%w: row %d store %q", ErrNegativeQuantity, row.Index, store)
			}
		}
	}
	return nil
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	rows := make([]ProductRow, len(s.Rows))
	for i, row := range s.Rows {
		quantities := make(map[string]int, len(row.Quantities))
		for store, qty := range row.Quantities {
			quantities[store] = qty
		}
		row.Quantities = quantities
		rows[i] = row
	}
	return &Snapshot{Rows: rows}
}

// Row returns the row with the given index, or nil.
func (s *Snapshot) Row(index int) *ProductRow {
	for i := range s.Rows {
		if s.Rows[i].Index == index {
			return &s.Rows[i]
		}
	}
	return nil
}

// Stores returns the sorted set of store identifiers that appear anywhere in
// the snapshot's quantity columns.
func (s *Snapshot) Stores() []string {
	set := make(map[string]bool)
	for i := range s.Rows {
		for store := range s.Rows[i].Quantities {
			set[store] = true
		}
	}
	stores := make([]string, 0, len(set))
	for store := range set {
		stores = append(stores, store)
	}
	sort.Strings(stores)
	return stores
}

// ProductGroup is all variant rows of one nomenclature, in row order. The
// diversity rule operates on groups; rows of distinct groups are independent.
type ProductGroup struct {
	Nomenclature string
	Rows         []*ProductRow
}

// DistinctVariants counts the group's variants present (quantity > 0) at a
// store.
func (g *ProductGroup) DistinctVariants(store string) int {
	present := make(map[string]bool)
	for _, row := range g.Rows {
		if row.Quantity(store) > 0 {
			present[row.Variant] = true
		}
	}
	return len(present)
}

// Groups partitions the snapshot's rows by nomenclature, preserving
// first-appearance order so results stay deterministic.
func (s *Snapshot) Groups() []ProductGroup {
	byName := make(map[string]int)
	groups := make([]ProductGroup, 0)
	for i := range s.Rows {
		row := &s.Rows[i]
		idx, ok := byName[row.Nomenclature]
		if !ok {
			idx = len(groups)
			byName[row.Nomenclature] = idx
			groups = append(groups, ProductGroup{Nomenclature: row.Nomenclature})
		}
		groups[idx].Rows = append(groups[idx].Rows, row)
	}
	return groups
}

// StoreCode extracts the numeric code prefix from a store name, e.g.
// "125007 MSK-PC-Gagarinsky" -> "125007". Warehouse identifiers and names
// without a prefix are returned unchanged.
func StoreCode(store string) string {
	if IsWarehouse(store) {
		return store
	}
	fields := strings.Fields(store)
	if len(fields) == 0 {
		return store
	}
	return fields[0]
}
