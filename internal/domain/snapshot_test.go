package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewSnapshotAssignsIndices(t *testing.T) {
	s := NewSnapshot([]ProductRow{
		{Nomenclature: "Shorts_C3 34770", Variant: "S"},
		{Nomenclature: "Shorts_C3 34770", Variant: "M"},
		{Nomenclature: "Shorts_C3 34770", Variant: "L"},
	})

	for i, r := range s.Rows {
		if r.Index != i {
			t.Errorf("row %d got index %d", i, r.Index)
		}
	}
}

func TestNewSnapshotKeepsExistingIndices(t *testing.T) {
	s := NewSnapshot([]ProductRow{
		{Index: 0, Variant: "S"},
		{Index: 5, Variant: "M"},
		{Index: 9, Variant: "L"},
	})

	if s.Rows[1].Index != 5 || s.Rows[2].Index != 9 {
		t.Errorf("indices were reassigned: %v, %v", s.Rows[1].Index, s.Rows[2].Index)
	}
}

func TestNewSnapshotKeepsReorderedIndices(t *testing.T) {
	s := NewSnapshot([]ProductRow{
		{Index: 1, Nomenclature: "Shorts_C3 34770", Variant: "M"},
		{Index: 0, Nomenclature: "Shorts_C3 34770", Variant: "S", Stock: 5},
	})

	if s.Rows[0].Index != 1 || s.Rows[1].Index != 0 {
		t.Errorf("explicit indices were rewritten: got %d,%d", s.Rows[0].Index, s.Rows[1].Index)
	}
}

func TestSnapshotValidate(t *testing.T) {
	tests := []struct {
		name    string
		rows    []ProductRow
		wantErr error
	}{
		{
			name: "valid snapshot",
			rows: []ProductRow{
				row(0, "Shorts_C3 34770", "S", 2, map[string]int{storeGagarinsky: 0}),
			},
		},
		{
			name: "negative store quantity",
			rows: []ProductRow{
				row(0, "Shorts_C3 34770", "S", 2, map[string]int{storeGagarinsky: -1}),
			},
			wantErr: ErrNegativeQuantity,
		},
		{
			name: "negative pool quantity",
			rows: []ProductRow{
				row(0, "Shorts_C3 34770", "S", -2, nil),
			},
			wantErr: ErrNegativeQuantity,
		},
		{
			name: "duplicate row index",
			rows: []ProductRow{
				row(3, "Shorts_C3 34770", "S", 1, nil),
				row(3, "Shorts_C3 34770", "M", 1, nil),
			},
			wantErr: ErrDuplicateRowIndex,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&Snapshot{Rows: tt.rows}).Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSnapshotCloneIsDeep(t *testing.T) {
	s := NewSnapshot([]ProductRow{
		row(0, "Shorts_C3 34770", "S", 2, map[string]int{storeGagarinsky: 1}),
	})

	clone := s.Clone()
	clone.Rows[0].Quantities[storeGagarinsky] = 99
	clone.Rows[0].Stock = 99

	if s.Rows[0].Quantity(storeGagarinsky) != 1 || s.Rows[0].Stock != 2 {
		t.Error("clone shares state with the original")
	}
}

func TestGroupsPreserveFirstAppearanceOrder(t *testing.T) {
	s := NewSnapshot([]ProductRow{
		row(0, "Shorts_C3 34770", "S", 0, nil),
		row(1, "Jeans_D1 20115", "30", 0, nil),
		row(2, "Shorts_C3 34770", "M", 0, nil),
	})

	groups := s.Groups()

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Nomenclature != "Shorts_C3 34770" || groups[1].Nomenclature != "Jeans_D1 20115" {
		t.Errorf("groups out of order: %v, %v", groups[0].Nomenclature, groups[1].Nomenclature)
	}
	if len(groups[0].Rows) != 2 {
		t.Errorf("expected both shorts rows in one group, got %d", len(groups[0].Rows))
	}
}

func TestDistinctVariantsCountsPresence(t *testing.T) {
	g := ProductGroup{
		Nomenclature: "Shorts_C3 34770",
		Rows: []*ProductRow{
			{Variant: "S", Quantities: map[string]int{storeGagarinsky: 2}},
			{Variant: "M", Quantities: map[string]int{storeGagarinsky: 0}},
			{Variant: "S", Quantities: map[string]int{storeGagarinsky: 1}},
		},
	}

	if got := g.DistinctVariants(storeGagarinsky); got != 1 {
		t.Errorf("distinct variants = %d, want 1 (duplicate sizes collapse)", got)
	}
}

func TestSnapshotStoresSorted(t *testing.T) {
	s := NewSnapshot([]ProductRow{
		row(0, "Shorts_C3 34770", "S", 0, map[string]int{storeKhimki: 1}),
		row(1, "Shorts_C3 34770", "M", 0, map[string]int{storeGagarinsky: 0, storeNevsky: 2}),
	})

	want := []string{storeGagarinsky, storeNevsky, storeKhimki}
	if got := s.Stores(); !reflect.DeepEqual(got, want) {
		t.Errorf("stores = %v, want %v", got, want)
	}
}

func TestStoreCode(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{storeGagarinsky, "125007"},
		{WarehouseStock, WarehouseStock},
		{WarehousePhoto, WarehousePhoto},
		{"", ""},
		{"standalone", "standalone"},
	}

	for _, tt := range tests {
		if got := StoreCode(tt.in); got != tt.want {
			t.Errorf("StoreCode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPoolSink(t *testing.T) {
	if PoolStock.Sink() != WarehouseStock {
		t.Errorf("stock sink = %q", PoolStock.Sink())
	}
	if PoolPhoto.Sink() != WarehousePhoto {
		t.Errorf("photo sink = %q", PoolPhoto.Sink())
	}
	if Pool("frozen").IsValid() {
		t.Error("unknown pool reported valid")
	}
}
