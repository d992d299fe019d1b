package application

import "github.com/wms-platform/distribution-service/internal/domain"

// ToTransferDTOs converts domain transfers to their response form.
func ToTransferDTOs(transfers []domain.Transfer) []TransferDTO {
	dtos := make([]TransferDTO, 0, len(transfers))
	for _, t := range transfers {
		dtos = append(dtos, TransferDTO{
			RowIndex: t.RowIndex,
			Sender:   t.Sender,
			Receiver: t.Receiver,
			Quantity: t.Quantity,
		})
	}
	return dtos
}

// ToPreviewDTOs converts per-row previews to their response form.
func ToPreviewDTOs(previews []domain.TransferPreview) []PreviewDTO {
	dtos := make([]PreviewDTO, 0, len(previews))
	for _, p := range previews {
		dtos = append(dtos, PreviewDTO{
			RowIndex:  p.RowIndex,
			Product:   p.Product,
			Variant:   p.Variant,
			Transfers: ToTransferDTOs(p.Transfers),
			Note:      string(p.Note),
		})
	}
	return dtos
}

// ToResultTableDTOs converts sender/receiver result tables to their response
// form, carrying the precomputed unit total.
func ToResultTableDTOs(results []domain.TransferResult) []ResultTableDTO {
	dtos := make([]ResultTableDTO, 0, len(results))
	for _, r := range results {
		lines := make([]ResultLineDTO, 0, len(r.Lines))
		for _, l := range r.Lines {
			lines = append(lines, ResultLineDTO{
				Product:  l.Product,
				Variant:  l.Variant,
				Quantity: l.Quantity,
			})
		}
		dtos = append(dtos, ResultTableDTO{
			Sender:    r.Sender,
			Receiver:  r.Receiver,
			Lines:     lines,
			UnitTotal: r.UnitTotal(),
		})
	}
	return dtos
}

// ToWarningDTOs converts warnings to their response form.
func ToWarningDTOs(warnings []domain.Warning) []WarningDTO {
	if len(warnings) == 0 {
		return nil
	}
	dtos := make([]WarningDTO, 0, len(warnings))
	for _, w := range warnings {
		dtos = append(dtos, WarningDTO{
			Code:     string(w.Code),
			RowIndex: w.RowIndex,
			Message:  w.Message,
		})
	}
	return dtos
}

// ToRunDTO converts a full distribution run to its response form.
func ToRunDTO(run *domain.DistributionRun, dryRun bool) *RunDTO {
	if run == nil {
		return nil
	}
	return &RunDTO{
		RunID:     run.RunID,
		Mode:      string(run.Mode),
		Pool:      string(run.Pool),
		Transfers: ToTransferDTOs(run.Transfers),
		Previews:  ToPreviewDTOs(run.Previews),
		Results:   ToResultTableDTOs(run.Results),
		Warnings:  ToWarningDTOs(run.Warnings),
		Summary:   RunSummaryDTO(run.Summary),
		DryRun:    dryRun,
		CreatedAt: run.CreatedAt,
	}
}

// ToRunListItemDTO converts a run to its simplified list form.
func ToRunListItemDTO(run *domain.DistributionRun) RunListItemDTO {
	return RunListItemDTO{
		RunID:     run.RunID,
		Mode:      string(run.Mode),
		Pool:      string(run.Pool),
		Summary:   RunSummaryDTO(run.Summary),
		Warnings:  len(run.Warnings),
		CreatedAt: run.CreatedAt,
	}
}

// ToProjectionDTO converts a projected snapshot and its warnings to the
// response form.
func ToProjectionDTO(s *domain.Snapshot, warnings []domain.Warning) *ProjectionDTO {
	rows := make([]ProjectedRowDTO, 0, len(s.Rows))
	for _, r := range s.Rows {
		rows = append(rows, ProjectedRowDTO{
			Index:        r.Index,
			Nomenclature: r.Nomenclature,
			Variant:      r.Variant,
			Stock:        r.Stock,
			PhotoStock:   r.PhotoStock,
			Quantities:   r.Quantities,
		})
	}
	return &ProjectionDTO{
		Rows:     rows,
		Warnings: ToWarningDTOs(warnings),
	}
}

// ToConfigDTO converts a stored config to its response form.
func ToConfigDTO(name string, cfg domain.DistributionConfig) *ConfigDTO {
	pairs := make([]BalancePairDTO, 0, len(cfg.BalancePairs))
	for _, p := range cfg.BalancePairs {
		pairs = append(pairs, BalancePairDTO{A: p.A, B: p.B})
	}
	return &ConfigDTO{
		Name:             name,
		StorePriority:    cfg.StorePriority,
		ExcludedStores:   cfg.ExcludedStores,
		BalanceThreshold: cfg.BalanceThreshold,
		BalancePairs:     pairs,
	}
}

// FromConfigDTO converts an inbound config payload to its domain form.
func FromConfigDTO(dto ConfigDTO) domain.DistributionConfig {
	pairs := make([]domain.BalancePair, 0, len(dto.BalancePairs))
	for _, p := range dto.BalancePairs {
		pairs = append(pairs, domain.BalancePair{A: p.A, B: p.B})
	}
	return domain.DistributionConfig{
		StorePriority:    dto.StorePriority,
		ExcludedStores:   dto.ExcludedStores,
		BalanceThreshold: dto.BalanceThreshold,
		BalancePairs:     pairs,
	}
}
