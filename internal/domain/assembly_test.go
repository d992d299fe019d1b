package domain

import (
	"reflect"
	"testing"
)

func TestAssemblePreviewsCoversEveryRow(t *testing.T) {
	s := NewSnapshot([]ProductRow{
		row(0, "Shorts_C3 34770", "S", 2, nil),
		row(1, "Shorts_C3 34770", "M", 2, nil),
		row(2, "Jeans_D1 20115", "30", 0, nil),
	})
	transfers := []Transfer{
		{RowIndex: 0, Sender: WarehouseStock, Receiver: storeGagarinsky, Quantity: 1},
		{RowIndex: 0, Sender: WarehouseStock, Receiver: storeKhimki, Quantity: 1},
	}
	notes := []RowNote{{RowIndex: 2, Reason: NoteInsufficientVariants}}

	previews := AssemblePreviews(s, transfers, notes)

	if len(previews) != 3 {
		t.Fatalf("expected a preview per row, got %d", len(previews))
	}
	if previews[0].TotalQuantity() != 2 || !previews[0].HasTransfers() {
		t.Errorf("row 0 preview = %+v, want 2 units", previews[0])
	}
	if previews[1].HasTransfers() {
		t.Errorf("row 1 should be empty, got %+v", previews[1])
	}
	if previews[2].Note != NoteInsufficientVariants {
		t.Errorf("row 2 note = %q, want %q", previews[2].Note, NoteInsufficientVariants)
	}
	if previews[2].Product != "Jeans_D1 20115" || previews[2].Variant != "30" {
		t.Errorf("row 2 identity wrong: %+v", previews[2])
	}
}

func TestAssembleResultsGroupsByPair(t *testing.T) {
	s := NewSnapshot([]ProductRow{
		row(0, "Shorts_C3 34770", "S", 0, nil),
		row(1, "Shorts_C3 34770", "M", 0, nil),
	})
	transfers := []Transfer{
		{RowIndex: 0, Sender: storeGagarinsky, Receiver: storeKhimki, Quantity: 1},
		{RowIndex: 0, Sender: storeGagarinsky, Receiver: WarehouseStock, Quantity: 2},
		{RowIndex: 1, Sender: storeGagarinsky, Receiver: storeKhimki, Quantity: 1},
	}

	results := AssembleResults(s, transfers)

	want := []TransferResult{
		{
			Sender: "125007", Receiver: "130143",
			Lines: []ResultLine{
				{Product: "Shorts_C3 34770", Variant: "S", Quantity: 1},
				{Product: "Shorts_C3 34770", Variant: "M", Quantity: 1},
			},
		},
		{
			Sender: "125007", Receiver: WarehouseStock,
			Lines: []ResultLine{
				{Product: "Shorts_C3 34770", Variant: "S", Quantity: 2},
			},
		},
	}
	if !reflect.DeepEqual(results, want) {
		t.Errorf("results mismatch:\n got %+v\nwant %+v", results, want)
	}
	if results[0].UnitTotal() != 2 || results[1].UnitTotal() != 2 {
		t.Errorf("unit totals wrong: %d, %d", results[0].UnitTotal(), results[1].UnitTotal())
	}
}

func TestAssembleResultsFirstAppearanceOrder(t *testing.T) {
	s := NewSnapshot([]ProductRow{
		row(0, "Shorts_C3 34770", "S", 0, nil),
	})
	transfers := []Transfer{
		{RowIndex: 0, Sender: WarehouseStock, Receiver: storeNevsky, Quantity: 1},
		{RowIndex: 0, Sender: WarehouseStock, Receiver: storeGagarinsky, Quantity: 1},
		{RowIndex: 0, Sender: WarehouseStock, Receiver: storeNevsky, Quantity: 1},
	}

	results := AssembleResults(s, transfers)

	if len(results) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(results))
	}
	if results[0].Receiver != "125016" || results[1].Receiver != "125007" {
		t.Errorf("tables out of first-appearance order: %+v", results)
	}
	if len(results[0].Lines) != 2 {
		t.Errorf("expected both Nevsky transfers in one table, got %+v", results[0])
	}
}

func TestAssembleResultsSkipsUnknownRows(t *testing.T) {
	s := NewSnapshot([]ProductRow{
		row(0, "Shorts_C3 34770", "S", 0, nil),
	})
	transfers := []Transfer{
		{RowIndex: 9, Sender: WarehouseStock, Receiver: storeGagarinsky, Quantity: 1},
	}

	if results := AssembleResults(s, transfers); len(results) != 0 {
		t.Errorf("expected no tables, got %+v", results)
	}
}

func TestTransferResultTable(t *testing.T) {
	result := TransferResult{
		Sender: "125007", Receiver: "130143",
		Lines: []ResultLine{
			{Product: "Shorts_C3 34770", Variant: "M", Quantity: 3},
		},
	}

	table := result.Table()

	if len(table) != 1 {
		t.Fatalf("expected 1 table row, got %d", len(table))
	}
	if len(table[0]) != len(OutputColumns) {
		t.Fatalf("row width = %d, want %d", len(table[0]), len(OutputColumns))
	}
	if table[0][2] != "Shorts_C3 34770" || table[0][3] != "M" || table[0][8] != "3" {
		t.Errorf("row content wrong: %v", table[0])
	}
}
