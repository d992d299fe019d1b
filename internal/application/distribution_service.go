package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wms-platform/distribution-service/internal/domain"
	apperrors "github.com/wms-platform/distribution-service/pkg/errors"
	"github.com/wms-platform/distribution-service/pkg/events"
	"github.com/wms-platform/distribution-service/pkg/kafka"
	"github.com/wms-platform/distribution-service/pkg/logging"
	"github.com/wms-platform/distribution-service/pkg/metrics"
)

// EventPublisher is the slice of the kafka producer the service needs.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event *events.Event) error
}

// DistributionService orchestrates distribution runs: it validates input,
// executes the planning engines, assembles previews and result tables,
// persists the run and publishes a completion event.
type DistributionService struct {
	runs         domain.RunRepository
	configs      domain.ConfigRepository
	publisher    EventPublisher
	eventFactory *events.EventFactory
	logger       *logging.Logger
	metrics      *metrics.Metrics
}

func NewDistributionService(
	runs domain.RunRepository,
	configs domain.ConfigRepository,
	publisher EventPublisher,
	eventFactory *events.EventFactory,
	logger *logging.Logger,
	m *metrics.Metrics,
) *DistributionService {
	return &DistributionService{
		runs:         runs,
		configs:      configs,
		publisher:    publisher,
		eventFactory: eventFactory,
		logger:       logger,
		metrics:      m,
	}
}

// Allocate plans a warehouse-to-store allocation run.
func (s *DistributionService) Allocate(ctx context.Context, cmd AllocateCommand) (*RunDTO, error) {
	start := time.Now()

	snapshot, cfg, err := s.prepare(ctx, cmd.Rows, cmd.Config, cmd.ConfigName)
	if err != nil {
		return nil, err
	}

	pool := domain.PoolStock
	if cmd.Pool != "" {
		pool = domain.Pool(cmd.Pool)
		if !pool.IsValid() {
			return nil, apperrors.MapDomainError(fmt.Errorf("%w %q", domain.ErrInvalidPool, cmd.Pool))
		}
	}

	warnings := domain.CheckConfig(snapshot, cfg)
	transfers, notes := domain.Allocate(snapshot, cfg, pool)

	run := s.buildRun(domain.RunModeAllocation, pool, cfg, snapshot, transfers, notes, warnings)
	if err := s.finishRun(ctx, run, cmd.DryRun, start); err != nil {
		return nil, err
	}
	return ToRunDTO(run, cmd.DryRun), nil
}

// Rebalance plans a store-to-store rebalancing run. With sales data present
// the destination order follows per-product sales volume instead of the
// static priority list.
func (s *DistributionService) Rebalance(ctx context.Context, cmd RebalanceCommand) (*RunDTO, error) {
	start := time.Now()

	snapshot, cfg, err := s.prepare(ctx, cmd.Rows, cmd.Config, cmd.ConfigName)
	if err != nil {
		return nil, err
	}

	var ranking domain.Ranking = domain.NewStaticRanking(cfg)
	if len(cmd.SalesPriority) > 0 {
		data := domain.NewSalesPriorityData()
		for _, p := range cmd.SalesPriority {
			data.Add(p)
		}
		ranking = domain.NewSalesRanking(data, cfg)
	}

	warnings := domain.CheckConfig(snapshot, cfg)
	transfers := domain.RebalanceRanked(snapshot, cfg, ranking)

	run := s.buildRun(domain.RunModeRebalance, "", cfg, snapshot, transfers, nil, warnings)
	if err := s.finishRun(ctx, run, cmd.DryRun, start); err != nil {
		return nil, err
	}
	return ToRunDTO(run, cmd.DryRun), nil
}

// Project applies planned transfers to a snapshot and returns the projected
// state. A projection is a pure computation and is never persisted.
func (s *DistributionService) Project(ctx context.Context, cmd ProjectCommand) (*ProjectionDTO, error) {
	snapshot := domain.NewSnapshot(cmd.Rows)
	if err := snapshot.Validate(); err != nil {
		return nil, apperrors.MapDomainError(err)
	}

	projected, warnings := domain.Project(snapshot, cmd.Transfers)
	for _, w := range warnings {
		s.metrics.RecordWarning(string(w.Code))
	}
	return ToProjectionDTO(projected, warnings), nil
}

// GetRun fetches one persisted run.
func (s *DistributionService) GetRun(ctx context.Context, query GetRunQuery) (*RunDTO, error) {
	run, err := s.runs.FindByRunID(ctx, query.RunID)
	if err == domain.ErrRunNotFound {
		return nil, apperrors.ErrNotFoundWithID("run", query.RunID)
	}
	if err != nil {
		s.logger.Error("Failed to get run", "runId", query.RunID, "error", err)
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return ToRunDTO(run, false), nil
}

// ListRuns lists recent persisted runs, newest first.
func (s *DistributionService) ListRuns(ctx context.Context, query ListRunsQuery) ([]RunListItemDTO, error) {
	limit := query.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	runs, err := s.runs.List(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to list runs", "error", err)
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	items := make([]RunListItemDTO, 0, len(runs))
	for _, run := range runs {
		items = append(items, ToRunListItemDTO(run))
	}
	return items, nil
}

// SaveConfig stores a named config, replacing any previous config under the
// same name, and publishes a config-saved event.
func (s *DistributionService) SaveConfig(ctx context.Context, cmd SaveConfigCommand) error {
	if cmd.Name == "" {
		return apperrors.ErrValidation("config name is required")
	}
	if err := cmd.Config.Validate(); err != nil {
		return apperrors.MapDomainError(err)
	}

	if err := s.configs.Save(ctx, cmd.Name, cmd.Config); err != nil {
		s.logger.Error("Failed to save config", "name", cmd.Name, "error", err)
		return fmt.Errorf("failed to save config: %w", err)
	}

	s.publish(ctx, kafka.Topics.ConfigEvents, s.eventFactory.CreateConfigSavedEvent(ctx, events.ConfigSavedData{
		Name:    cmd.Name,
		Stores:  len(cmd.Config.StorePriority),
		SavedAt: time.Now().UTC(),
	}))

	s.logger.Info("Saved distribution config", "name", cmd.Name, "stores", len(cmd.Config.StorePriority))
	return nil
}

// GetConfig fetches one named config.
func (s *DistributionService) GetConfig(ctx context.Context, name string) (*ConfigDTO, error) {
	cfg, err := s.configs.FindByName(ctx, name)
	if err == domain.ErrConfigNotFound {
		return nil, apperrors.ErrNotFoundWithID("config", name)
	}
	if err != nil {
		s.logger.Error("Failed to get config", "name", name, "error", err)
		return nil, fmt.Errorf("failed to get config: %w", err)
	}
	return ToConfigDTO(name, *cfg), nil
}

// ListConfigs lists the names of all stored configs.
func (s *DistributionService) ListConfigs(ctx context.Context) ([]string, error) {
	names, err := s.configs.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list configs", "error", err)
		return nil, fmt.Errorf("failed to list configs: %w", err)
	}
	return names, nil
}

// ImportConfigYAML parses a YAML config document and stores it under a name.
func (s *DistributionService) ImportConfigYAML(ctx context.Context, name string, data []byte) error {
	cfg, err := domain.ParseConfigYAML(data)
	if err != nil {
		return apperrors.ErrValidation(err.Error())
	}
	return s.SaveConfig(ctx, SaveConfigCommand{Name: name, Config: cfg})
}

// ExportConfigYAML renders a stored config as a YAML document.
func (s *DistributionService) ExportConfigYAML(ctx context.Context, name string) ([]byte, error) {
	cfg, err := s.configs.FindByName(ctx, name)
	if err == domain.ErrConfigNotFound {
		return nil, apperrors.ErrNotFoundWithID("config", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get config: %w", err)
	}
	return domain.EncodeConfigYAML(*cfg)
}

// prepare validates the snapshot and resolves the effective config for a run.
func (s *DistributionService) prepare(
	ctx context.Context,
	rows []domain.ProductRow,
	inline *domain.DistributionConfig,
	configName string,
) (*domain.Snapshot, domain.DistributionConfig, error) {
	snapshot := domain.NewSnapshot(rows)
	if err := snapshot.Validate(); err != nil {
		return nil, domain.DistributionConfig{}, apperrors.MapDomainError(err)
	}

	var cfg domain.DistributionConfig
	switch {
	case inline != nil:
		cfg = *inline
	case configName != "":
		stored, err := s.configs.FindByName(ctx, configName)
		if err == domain.ErrConfigNotFound {
			return nil, cfg, apperrors.ErrNotFoundWithID("config", configName)
		}
		if err != nil {
			return nil, cfg, fmt.Errorf("failed to load config %q: %w", configName, err)
		}
		cfg = *stored
	default:
		return nil, cfg, apperrors.ErrValidation("either config or configName is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, cfg, apperrors.MapDomainError(err)
	}
	return snapshot, cfg, nil
}

// buildRun assembles the full run record from the engine output.
func (s *DistributionService) buildRun(
	mode domain.RunMode,
	pool domain.Pool,
	cfg domain.DistributionConfig,
	snapshot *domain.Snapshot,
	transfers []domain.Transfer,
	notes []domain.RowNote,
	warnings []domain.Warning,
) *domain.DistributionRun {
	run := &domain.DistributionRun{
		RunID:     uuid.New().String(),
		Mode:      mode,
		Pool:      pool,
		Config:    cfg,
		Transfers: transfers,
		Previews:  domain.AssemblePreviews(snapshot, transfers, notes),
		Results:   domain.AssembleResults(snapshot, transfers),
		Warnings:  warnings,
		CreatedAt: time.Now().UTC(),
	}
	run.Summarize()
	return run
}

// finishRun persists and announces a completed run unless it was a dry run,
// and records the run's metrics either way. A publish failure is logged but
// does not fail the run; the plan is already persisted.
func (s *DistributionService) finishRun(ctx context.Context, run *domain.DistributionRun, dryRun bool, start time.Time) error {
	mode := string(run.Mode)

	if !dryRun {
		if err := s.runs.Save(ctx, run); err != nil {
			s.logger.Error("Failed to save run", "runId", run.RunID, "mode", mode, "error", err)
			s.metrics.RecordRunCompleted(mode, false, time.Since(start))
			s.publish(ctx, kafka.Topics.RunEvents, s.eventFactory.CreateRunFailedEvent(ctx, events.RunFailedData{
				Mode:     mode,
				Error:    err.Error(),
				FailedAt: time.Now().UTC(),
			}))
			return fmt.Errorf("failed to save run: %w", err)
		}

		s.publish(ctx, kafka.Topics.RunEvents, s.eventFactory.CreateRunCompletedEvent(ctx, events.RunCompletedData{
			RunID:             run.RunID,
			Mode:              mode,
			Pool:              string(run.Pool),
			RowsProcessed:     run.Summary.RowsProcessed,
			RowsWithTransfers: run.Summary.RowsWithTransfers,
			UnitsMoved:        run.Summary.UnitsMoved,
			Tables:            run.Summary.Tables,
			Warnings:          len(run.Warnings),
			CompletedAt:       run.CreatedAt,
		}))
	}

	s.metrics.RecordRunCompleted(mode, true, time.Since(start))
	s.metrics.RecordTransfersPlanned(mode, len(run.Transfers), run.Summary.UnitsMoved)
	for _, w := range run.Warnings {
		s.metrics.RecordWarning(string(w.Code))
	}

	s.logger.Info("Distribution run completed",
		"runId", run.RunID,
		"mode", mode,
		"dryRun", dryRun,
		"transfers", len(run.Transfers),
		"units", run.Summary.UnitsMoved,
		"warnings", len(run.Warnings),
	)
	return nil
}

func (s *DistributionService) publish(ctx context.Context, topic string, event *events.Event) {
	if s.publisher == nil {
		return
	}
	if correlationID := logging.CorrelationIDFromContext(ctx); correlationID != "" {
		event.WithCorrelation(correlationID)
	}
	if err := s.publisher.PublishEvent(ctx, topic, event); err != nil {
		s.logger.Error("Failed to publish event", "type", event.Type, "topic", topic, "error", err)
	}
}
