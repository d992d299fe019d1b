package domain

import "strconv"

// Transfer is a single planned movement of units from a sender to a receiver
// for one snapshot row. Sender and receiver are store identifiers or a
// warehouse sink identifier. Quantity is always at least 1 and never exceeds
// the sender's remaining balance at the moment the transfer was decided.
type Transfer struct {
	RowIndex int    `bson:"rowIndex" json:"rowIndex"`
	Sender   string `bson:"sender" json:"sender"`
	Receiver string `bson:"receiver" json:"receiver"`
	Quantity int    `bson:"quantity" json:"quantity"`
}

// NoteReason annotates a row whose transfers were suppressed by a rule rather
// than by plain unavailability.
type NoteReason string

// NoteInsufficientVariants marks a row the diversity rule skipped because
// fewer than the required number of distinct variants were available.
const NoteInsufficientVariants NoteReason = "insufficient distinct variants available"

// RowNote ties a NoteReason to its row.
type RowNote struct {
	RowIndex int        `bson:"rowIndex" json:"rowIndex"`
	Reason   NoteReason `bson:"reason" json:"reason"`
}

// TransferPreview is the per-row view of a planned run: the row's identity
// and its ordered transfers, plus the diversity annotation when the rule
// suppressed the row. Rows without transfers are still represented so the
// rule's effect stays auditable.
type TransferPreview struct {
	RowIndex  int        `bson:"rowIndex" json:"rowIndex"`
	Product   string     `bson:"product" json:"product"`
	Variant   string     `bson:"variant" json:"variant"`
	Transfers []Transfer `bson:"transfers" json:"transfers"`
	Note      NoteReason `bson:"note,omitempty" json:"note,omitempty"`
}

// TotalQuantity sums the units this row would move.
func (p TransferPreview) TotalQuantity() int {
	total := 0
	for _, t := range p.Transfers {
		total += t.Quantity
	}
	return total
}

// HasTransfers reports whether the row moves anything.
func (p TransferPreview) HasTransfers() bool {
	return len(p.Transfers) > 0
}

// ResultLine is one row's contribution to a sender/receiver result table.
type ResultLine struct {
	Product  string `bson:"product" json:"product"`
	Variant  string `bson:"variant" json:"variant"`
	Quantity int    `bson:"quantity" json:"quantity"`
}

// TransferResult collects every transfer between one (sender, receiver) pair
// across all rows, as the output table handed to the serialization layer.
// Stores are addressed by their code prefix; the warehouse sink keeps its
// sink name.
type TransferResult struct {
	Sender   string       `bson:"sender" json:"sender"`
	Receiver string       `bson:"receiver" json:"receiver"`
	Lines    []ResultLine `bson:"lines" json:"lines"`
}

// UnitTotal sums the units in this result table.
func (r TransferResult) UnitTotal() int {
	total := 0
	for _, line := range r.Lines {
		total += line.Quantity
	}
	return total
}

// OutputColumns is the fixed column set of a result table. Identification
// columns other than the item name and variant are left blank; filling them
// belongs to the consuming serialization layer.
var OutputColumns = []string{
	"article",
	"itemCode",
	"item",
	"variant",
	"purpose",
	"series",
	"packageCode",
	"package",
	"quantity",
}

// Table materializes the result as rows matching OutputColumns.
func (r TransferResult) Table() [][]string {
	rows := make([][]string, 0, len(r.Lines))
	for _, line := range r.Lines {
		rows = append(rows, []string{
			"", "", line.Product, line.Variant, "", "", "", "",
			strconv.Itoa(line.Quantity),
		})
	}
	return rows
}
