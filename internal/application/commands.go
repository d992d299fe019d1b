package application

import "github.com/wms-platform/distribution-service/internal/domain"

// AllocateCommand requests a warehouse-to-store allocation run. The config is
// given inline or referenced by name; exactly one of the two must be set.
type AllocateCommand struct {
	Rows       []domain.ProductRow
	Config     *domain.DistributionConfig
	ConfigName string
	Pool       string
	DryRun     bool
}

// RebalanceCommand requests a store-to-store rebalancing run. SalesPriority,
// when present, replaces the static priority order with a per-product
// sales-volume ranking.
type RebalanceCommand struct {
	Rows          []domain.ProductRow
	Config        *domain.DistributionConfig
	ConfigName    string
	SalesPriority []domain.ProductSales
	DryRun        bool
}

// ProjectCommand applies a set of planned transfers to a snapshot and returns
// the projected state. Projection never persists anything.
type ProjectCommand struct {
	Rows      []domain.ProductRow
	Transfers []domain.Transfer
}

// SaveConfigCommand stores a named distribution config, replacing any config
// already stored under the same name.
type SaveConfigCommand struct {
	Name   string
	Config domain.DistributionConfig
}

// GetRunQuery fetches one persisted run by its run identifier.
type GetRunQuery struct {
	RunID string
}

// ListRunsQuery lists recent persisted runs, newest first.
type ListRunsQuery struct {
	Limit int64
}
