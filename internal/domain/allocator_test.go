package domain

import (
	"reflect"
	"testing"
)

const (
	storeGagarinsky = "125007 MSK-PC-Gagarinsky"
	storeKhimki     = "130143 MSK-PCM-Mega Khimki"
	storeNevsky     = "125016 SPB-PC-Nevsky"
	storeBelaya     = "130270 EKB-PCM-Mega Belaya Dacha"
)

func testConfig() DistributionConfig {
	return DistributionConfig{
		StorePriority:    []string{storeGagarinsky, storeKhimki, storeNevsky, storeBelaya},
		BalanceThreshold: 2,
	}
}

func row(index int, nomenclature, variant string, stock int, quantities map[string]int) ProductRow {
	if quantities == nil {
		quantities = map[string]int{}
	}
	return ProductRow{
		Index:        index,
		Nomenclature: nomenclature,
		Variant:      variant,
		Stock:        stock,
		Quantities:   quantities,
	}
}

func TestAllocateTopsUpEmptyStores(t *testing.T) {
	// Two variants present at the store, a third one missing: normal mode
	// ships one unit of the missing variant.
	s := NewSnapshot([]ProductRow{
		row(0, "Shorts_C3 34770", "S", 5, map[string]int{storeGagarinsky: 2}),
		row(1, "Shorts_C3 34770", "M", 5, map[string]int{storeGagarinsky: 1}),
		row(2, "Shorts_C3 34770", "L", 5, map[string]int{storeGagarinsky: 0}),
	})

	transfers, notes := Allocate(s, testConfig(), PoolStock)

	want := []Transfer{
		{RowIndex: 2, Sender: WarehouseStock, Receiver: storeGagarinsky, Quantity: 1},
		{RowIndex: 0, Sender: WarehouseStock, Receiver: storeKhimki, Quantity: 1},
		{RowIndex: 1, Sender: WarehouseStock, Receiver: storeKhimki, Quantity: 1},
		{RowIndex: 2, Sender: WarehouseStock, Receiver: storeKhimki, Quantity: 1},
		{RowIndex: 0, Sender: WarehouseStock, Receiver: storeNevsky, Quantity: 1},
		{RowIndex: 1, Sender: WarehouseStock, Receiver: storeNevsky, Quantity: 1},
		{RowIndex: 2, Sender: WarehouseStock, Receiver: storeNevsky, Quantity: 1},
		{RowIndex: 0, Sender: WarehouseStock, Receiver: storeBelaya, Quantity: 1},
		{RowIndex: 1, Sender: WarehouseStock, Receiver: storeBelaya, Quantity: 1},
		{RowIndex: 2, Sender: WarehouseStock, Receiver: storeBelaya, Quantity: 1},
	}
	if !reflect.DeepEqual(transfers, want) {
		t.Errorf("transfers mismatch:\n got %v\nwant %v", transfers, want)
	}
	if len(notes) != 0 {
		t.Errorf("expected no notes, got %v", notes)
	}
}

func TestAllocatePoolDepletionFollowsPriority(t *testing.T) {
	// One unit in the pool per row: the first-ranked empty store takes it,
	// later stores in the order see nothing left.
	s := NewSnapshot([]ProductRow{
		row(0, "Shorts_C3 34770", "S", 1, map[string]int{storeGagarinsky: 1, storeKhimki: 1}),
		row(1, "Shorts_C3 34770", "M", 1, map[string]int{storeGagarinsky: 1, storeKhimki: 1}),
		row(2, "Shorts_C3 34770", "L", 1, nil),
	})

	transfers, _ := Allocate(s, testConfig(), PoolStock)

	want := []Transfer{
		{RowIndex: 2, Sender: WarehouseStock, Receiver: storeGagarinsky, Quantity: 1},
	}
	if !reflect.DeepEqual(transfers, want) {
		t.Errorf("transfers mismatch:\n got %v\nwant %v", transfers, want)
	}
	for _, tr := range transfers {
		if tr.Receiver == storeKhimki && tr.RowIndex == 2 {
			t.Errorf("pool for row 2 was spent twice")
		}
	}
}

func TestAllocateDiversityAllOrNothing(t *testing.T) {
	tests := []struct {
		name          string
		stocks        []int
		wantShipped   int
		wantNotedRows []int
	}{
		{
			name:        "three variants available ships all three",
			stocks:      []int{1, 1, 1, 0},
			wantShipped: 3,
		},
		{
			name:        "four variants available ships first three in row order",
			stocks:      []int{1, 1, 1, 1},
			wantShipped: 3,
		},
		{
			name:          "two variants available ships nothing",
			stocks:        []int{1, 1, 0, 0},
			wantShipped:   0,
			wantNotedRows: []int{0, 1},
		},
		{
			name:          "one variant available ships nothing",
			stocks:        []int{0, 1, 0, 0},
			wantShipped:   0,
			wantNotedRows: []int{1},
		},
	}

	cfg := DistributionConfig{StorePriority: []string{storeGagarinsky}}
	variants := []string{"S", "M", "L", "XL"}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := make([]ProductRow, len(tt.stocks))
			for i, stock := range tt.stocks {
				rows[i] = row(i, "Shorts_C3 34770", variants[i], stock, nil)
			}
			s := NewSnapshot(rows)

			transfers, notes := Allocate(s, cfg, PoolStock)

			if len(transfers) != tt.wantShipped {
				t.Fatalf("expected %d transfers, got %d: %v", tt.wantShipped, len(transfers), transfers)
			}
			if tt.wantShipped > 0 {
				// First eligible variants in row order, one unit each.
				for i, tr := range transfers {
					if tr.Quantity != 1 {
						t.Errorf("transfer %d quantity = %d, want 1", i, tr.Quantity)
					}
				}
				if transfers[0].RowIndex != 0 || transfers[1].RowIndex != 1 || transfers[2].RowIndex != 2 {
					t.Errorf("diversity shipment not in row order: %v", transfers)
				}
			}

			var notedRows []int
			for _, n := range notes {
				if n.Reason != NoteInsufficientVariants {
					t.Errorf("unexpected note reason %q", n.Reason)
				}
				notedRows = append(notedRows, n.RowIndex)
			}
			if !reflect.DeepEqual(notedRows, tt.wantNotedRows) {
				t.Errorf("noted rows = %v, want %v", notedRows, tt.wantNotedRows)
			}
		})
	}
}

func TestAllocateNoteDroppedWhenRowShipsElsewhere(t *testing.T) {
	// Gagarinsky is in diversity mode and gets nothing, which notes rows 0
	// and 1. Khimki then tops up row 0 in normal mode, so only the row that
	// ended the run empty keeps its note.
	s := NewSnapshot([]ProductRow{
		row(0, "Shorts_C3 34770", "M", 5, map[string]int{storeGagarinsky: 0, storeKhimki: 0}),
		row(1, "Shorts_C3 34770", "L", 5, map[string]int{storeGagarinsky: 0, storeKhimki: 1}),
		row(2, "Shorts_C3 34770", "XL", 5, map[string]int{storeGagarinsky: 1, storeKhimki: 1}),
	})
	cfg := DistributionConfig{StorePriority: []string{storeGagarinsky, storeKhimki}}

	transfers, notes := Allocate(s, cfg, PoolStock)

	wantTransfers := []Transfer{
		{RowIndex: 0, Sender: WarehouseStock, Receiver: storeKhimki, Quantity: 1},
	}
	if !reflect.DeepEqual(transfers, wantTransfers) {
		t.Errorf("transfers mismatch:\n got %v\nwant %v", transfers, wantTransfers)
	}

	wantNotes := []RowNote{{RowIndex: 1, Reason: NoteInsufficientVariants}}
	if !reflect.DeepEqual(notes, wantNotes) {
		t.Errorf("notes = %v, want %v", notes, wantNotes)
	}
}

func TestAllocateDiversityCountsPresentVariants(t *testing.T) {
	// The store holds two distinct variants already: normal mode applies even
	// though one row of the group sits at zero.
	s := NewSnapshot([]ProductRow{
		row(0, "Shorts_C3 34770", "S", 1, map[string]int{storeGagarinsky: 1}),
		row(1, "Shorts_C3 34770", "M", 1, map[string]int{storeGagarinsky: 3}),
		row(2, "Shorts_C3 34770", "L", 1, nil),
	})
	cfg := DistributionConfig{StorePriority: []string{storeGagarinsky}}

	transfers, notes := Allocate(s, cfg, PoolStock)

	want := []Transfer{
		{RowIndex: 2, Sender: WarehouseStock, Receiver: storeGagarinsky, Quantity: 1},
	}
	if !reflect.DeepEqual(transfers, want) {
		t.Errorf("transfers mismatch:\n got %v\nwant %v", transfers, want)
	}
	if len(notes) != 0 {
		t.Errorf("expected no notes, got %v", notes)
	}
}

func TestAllocateSkipsExcludedStores(t *testing.T) {
	cfg := testConfig()
	cfg.ExcludedStores = []string{storeKhimki}

	s := NewSnapshot([]ProductRow{
		row(0, "Shorts_C3 34770", "S", 10, map[string]int{storeGagarinsky: 1, storeNevsky: 1}),
		row(1, "Shorts_C3 34770", "M", 10, map[string]int{storeGagarinsky: 1, storeNevsky: 1}),
	})

	transfers, _ := Allocate(s, cfg, PoolStock)

	for _, tr := range transfers {
		if tr.Receiver == storeKhimki {
			t.Errorf("excluded store received a transfer: %v", tr)
		}
	}
}

func TestAllocatePhotoPoolUsesPhotoStock(t *testing.T) {
	s := NewSnapshot([]ProductRow{
		{Index: 0, Nomenclature: "Shorts_C3 34770", Variant: "S", Stock: 0, PhotoStock: 2,
			Quantities: map[string]int{storeGagarinsky: 1}},
		{Index: 1, Nomenclature: "Shorts_C3 34770", Variant: "M", Stock: 0, PhotoStock: 2,
			Quantities: map[string]int{storeGagarinsky: 2}},
		{Index: 2, Nomenclature: "Shorts_C3 34770", Variant: "L", Stock: 0, PhotoStock: 2,
			Quantities: map[string]int{}},
	})

	transfers, _ := Allocate(s, testConfig(), PoolPhoto)

	if len(transfers) == 0 {
		t.Fatal("expected transfers from the photo pool")
	}
	for _, tr := range transfers {
		if tr.Sender != WarehousePhoto {
			t.Errorf("sender = %q, want %q", tr.Sender, WarehousePhoto)
		}
	}

	// The stock pool is empty, so selecting it must produce nothing.
	stockTransfers, _ := Allocate(s, testConfig(), PoolStock)
	if len(stockTransfers) != 0 {
		t.Errorf("expected no transfers from the empty stock pool, got %v", stockTransfers)
	}
}

func TestAllocateConservation(t *testing.T) {
	// Units shipped per row never exceed that row's pool quantity.
	s := NewSnapshot([]ProductRow{
		row(0, "Shorts_C3 34770", "S", 2, map[string]int{storeGagarinsky: 1, storeKhimki: 1}),
		row(1, "Shorts_C3 34770", "M", 1, map[string]int{storeGagarinsky: 1, storeKhimki: 1}),
		row(2, "Shorts_C3 34770", "L", 3, nil),
		row(3, "Jeans_D1 20115", "30", 1, map[string]int{storeNevsky: 1, storeBelaya: 1}),
		row(4, "Jeans_D1 20115", "32", 0, map[string]int{storeNevsky: 1, storeBelaya: 1}),
	})

	transfers, _ := Allocate(s, testConfig(), PoolStock)

	shipped := make(map[int]int)
	for _, tr := range transfers {
		shipped[tr.RowIndex] += tr.Quantity
	}
	for idx, total := range shipped {
		if pool := s.Row(idx).Stock; total > pool {
			t.Errorf("row %d shipped %d units from a pool of %d", idx, total, pool)
		}
	}
}

func TestAllocateIsDeterministic(t *testing.T) {
	s := NewSnapshot([]ProductRow{
		row(0, "Shorts_C3 34770", "S", 4, map[string]int{storeGagarinsky: 1}),
		row(1, "Shorts_C3 34770", "M", 4, map[string]int{storeKhimki: 2}),
		row(2, "Shorts_C3 34770", "L", 4, nil),
		row(3, "Jeans_D1 20115", "30", 2, map[string]int{storeNevsky: 1, storeGagarinsky: 1}),
	})

	first, firstNotes := Allocate(s, testConfig(), PoolStock)
	second, secondNotes := Allocate(s, testConfig(), PoolStock)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("two runs on the same input diverged:\n%v\n%v", first, second)
	}
	if !reflect.DeepEqual(firstNotes, secondNotes) {
		t.Errorf("notes diverged:\n%v\n%v", firstNotes, secondNotes)
	}
}

func TestAllocateLeavesSnapshotUntouched(t *testing.T) {
	s := NewSnapshot([]ProductRow{
		row(0, "Shorts_C3 34770", "S", 4, map[string]int{storeGagarinsky: 1}),
		row(1, "Shorts_C3 34770", "M", 4, nil),
		row(2, "Shorts_C3 34770", "L", 4, nil),
	})
	before := s.Clone()

	Allocate(s, testConfig(), PoolStock)

	if !reflect.DeepEqual(s, before) {
		t.Error("Allocate mutated its input snapshot")
	}
}
