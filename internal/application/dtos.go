package application

import "time"

// TransferDTO represents one planned movement in responses.
type TransferDTO struct {
	RowIndex int    `json:"rowIndex"`
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	Quantity int    `json:"quantity"`
}

// PreviewDTO represents the per-row view of a run.
type PreviewDTO struct {
	RowIndex  int           `json:"rowIndex"`
	Product   string        `json:"product"`
	Variant   string        `json:"variant"`
	Transfers []TransferDTO `json:"transfers"`
	Note      string        `json:"note,omitempty"`
}

// ResultLineDTO is one row's contribution to a result table.
type ResultLineDTO struct {
	Product  string `json:"product"`
	Variant  string `json:"variant"`
	Quantity int    `json:"quantity"`
}

// ResultTableDTO is one sender/receiver result table.
type ResultTableDTO struct {
	Sender    string          `json:"sender"`
	Receiver  string          `json:"receiver"`
	Lines     []ResultLineDTO `json:"lines"`
	UnitTotal int             `json:"unitTotal"`
}

// WarningDTO represents a recoverable inconsistency raised during a run.
type WarningDTO struct {
	Code     string `json:"code"`
	RowIndex int    `json:"rowIndex"`
	Message  string `json:"message"`
}

// RunSummaryDTO is the roll-up of a run.
type RunSummaryDTO struct {
	RowsProcessed     int `json:"rowsProcessed"`
	RowsWithTransfers int `json:"rowsWithTransfers"`
	UnitsMoved        int `json:"unitsMoved"`
	Tables            int `json:"tables"`
}

// RunDTO represents a full distribution run in responses.
type RunDTO struct {
	RunID     string           `json:"runId"`
	Mode      string           `json:"mode"`
	Pool      string           `json:"pool,omitempty"`
	Transfers []TransferDTO    `json:"transfers"`
	Previews  []PreviewDTO     `json:"previews"`
	Results   []ResultTableDTO `json:"results"`
	Warnings  []WarningDTO     `json:"warnings,omitempty"`
	Summary   RunSummaryDTO    `json:"summary"`
	DryRun    bool             `json:"dryRun"`
	CreatedAt time.Time        `json:"createdAt"`
}

// RunListItemDTO is the simplified run view for list responses.
type RunListItemDTO struct {
	RunID     string        `json:"runId"`
	Mode      string        `json:"mode"`
	Pool      string        `json:"pool,omitempty"`
	Summary   RunSummaryDTO `json:"summary"`
	Warnings  int           `json:"warnings"`
	CreatedAt time.Time     `json:"createdAt"`
}

// ProjectionDTO is the outcome of applying transfers to a snapshot.
type ProjectionDTO struct {
	Rows     []ProjectedRowDTO `json:"rows"`
	Warnings []WarningDTO      `json:"warnings,omitempty"`
}

// ProjectedRowDTO is one row of a projected snapshot.
type ProjectedRowDTO struct {
	Index        int            `json:"index"`
	Nomenclature string         `json:"nomenclature"`
	Variant      string         `json:"variant"`
	Stock        int            `json:"stock"`
	PhotoStock   int            `json:"photoStock"`
	Quantities   map[string]int `json:"quantities"`
}

// ConfigDTO represents a stored distribution config in responses.
type ConfigDTO struct {
	Name             string           `json:"name,omitempty"`
	StorePriority    []string         `json:"storePriority"`
	ExcludedStores   []string         `json:"excludedStores,omitempty"`
	BalanceThreshold int              `json:"balanceThreshold"`
	BalancePairs     []BalancePairDTO `json:"balancePairs,omitempty"`
}

// BalancePairDTO is an unordered pair of stores that exchange surplus first.
type BalancePairDTO struct {
	A string `json:"a"`
	B string `json:"b"`
}
