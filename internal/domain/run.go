package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RunMode distinguishes allocation runs from rebalancing runs.
type RunMode string

const (
	RunModeAllocation RunMode = "allocation"
	RunModeRebalance  RunMode = "rebalance"
)

// RunSummary is the roll-up the original operator reports carried: how many
// rows moved anything, how many units moved and how many result tables were
// produced.
type RunSummary struct {
	RowsProcessed     int `bson:"rowsProcessed" json:"rowsProcessed"`
	RowsWithTransfers int `bson:"rowsWithTransfers" json:"rowsWithTransfers"`
	UnitsMoved        int `bson:"unitsMoved" json:"unitsMoved"`
	Tables            int `bson:"tables" json:"tables"`
}

// DistributionRun is a persisted record of one engine run: the config it used,
// every planned transfer, the per-row previews and result tables, and any
// warnings raised along the way.
type DistributionRun struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	RunID     string             `bson:"runId" json:"runId"`
	Mode      RunMode            `bson:"mode" json:"mode"`
	Pool      Pool               `bson:"pool,omitempty" json:"pool,omitempty"`
	Config    DistributionConfig `bson:"config" json:"config"`
	Transfers []Transfer         `bson:"transfers" json:"transfers"`
	Previews  []TransferPreview  `bson:"previews" json:"previews"`
	Results   []TransferResult   `bson:"results" json:"results"`
	Warnings  []Warning          `bson:"warnings,omitempty" json:"warnings,omitempty"`
	Summary   RunSummary         `bson:"summary" json:"summary"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Summarize recomputes the run's summary from its previews and results.
func (r *DistributionRun) Summarize() {
	summary := RunSummary{
		RowsProcessed: len(r.Previews),
		Tables:        len(r.Results),
	}
	for _, p := range r.Previews {
		if p.HasTransfers() {
			summary.RowsWithTransfers++
			summary.UnitsMoved += p.TotalQuantity()
		}
	}
	r.Summary = summary
}

// RunRepository persists distribution runs.
type RunRepository interface {
	Save(ctx context.Context, run *DistributionRun) error
	FindByRunID(ctx context.Context, runID string) (*DistributionRun, error)
	List(ctx context.Context, limit int64) ([]*DistributionRun, error)
}

// ConfigRepository persists named distribution configs.
type ConfigRepository interface {
	Save(ctx context.Context, name string, cfg DistributionConfig) error
	FindByName(ctx context.Context, name string) (*DistributionConfig, error)
	List(ctx context.Context) ([]string, error)
}
