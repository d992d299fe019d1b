package handlers

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wms-platform/distribution-service/internal/application"
	"github.com/wms-platform/distribution-service/internal/domain"
	"github.com/wms-platform/distribution-service/pkg/logging"
	"github.com/wms-platform/distribution-service/pkg/middleware"
)

// DistributionHandler handles HTTP requests for distribution runs and configs.
type DistributionHandler struct {
	service *application.DistributionService
	logger  *logging.Logger
}

func NewDistributionHandler(service *application.DistributionService, logger *logging.Logger) *DistributionHandler {
	return &DistributionHandler{
		service: service,
		logger:  logger,
	}
}

// AllocateRequest is the payload of POST /api/v1/distribution/allocate.
type AllocateRequest struct {
	Snapshot   []domain.ProductRow    `json:"snapshot" binding:"required"`
	Config     *application.ConfigDTO `json:"config"`
	ConfigName string                 `json:"configName"`
	Pool       string                 `json:"pool"`
	DryRun     bool                   `json:"dryRun"`
}

// RebalanceRequest is the payload of POST /api/v1/distribution/rebalance.
type RebalanceRequest struct {
	Snapshot      []domain.ProductRow    `json:"snapshot" binding:"required"`
	Config        *application.ConfigDTO `json:"config"`
	ConfigName    string                 `json:"configName"`
	SalesPriority []domain.ProductSales  `json:"salesPriority"`
	DryRun        bool                   `json:"dryRun"`
}

// ProjectRequest is the payload of POST /api/v1/distribution/project.
type ProjectRequest struct {
	Snapshot  []domain.ProductRow `json:"snapshot" binding:"required"`
	Transfers []domain.Transfer   `json:"transfers" binding:"required"`
}

// SaveConfigRequest is the payload of POST /api/v1/distribution/configs.
type SaveConfigRequest struct {
	Name   string                `json:"name" binding:"required"`
	Config application.ConfigDTO `json:"config" binding:"required"`
}

// Allocate handles POST /api/v1/distribution/allocate
func (h *DistributionHandler) Allocate(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var req AllocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responder.RespondBadRequest(err.Error())
		return
	}

	cmd := application.AllocateCommand{
		Rows:       req.Snapshot,
		ConfigName: req.ConfigName,
		Pool:       req.Pool,
		DryRun:     req.DryRun,
	}
	if req.Config != nil {
		cfg := application.FromConfigDTO(*req.Config)
		cmd.Config = &cfg
	}

	result, err := h.service.Allocate(requestContext(c), cmd)
	if err != nil {
		h.respondError(responder, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// Rebalance handles POST /api/v1/distribution/rebalance
func (h *DistributionHandler) Rebalance(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var req RebalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responder.RespondBadRequest(err.Error())
		return
	}

	cmd := application.RebalanceCommand{
		Rows:          req.Snapshot,
		ConfigName:    req.ConfigName,
		SalesPriority: req.SalesPriority,
		DryRun:        req.DryRun,
	}
	if req.Config != nil {
		cfg := application.FromConfigDTO(*req.Config)
		cmd.Config = &cfg
	}

	result, err := h.service.Rebalance(requestContext(c), cmd)
	if err != nil {
		h.respondError(responder, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// Project handles POST /api/v1/distribution/project
func (h *DistributionHandler) Project(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responder.RespondBadRequest(err.Error())
		return
	}

	result, err := h.service.Project(requestContext(c), application.ProjectCommand{
		Rows:      req.Snapshot,
		Transfers: req.Transfers,
	})
	if err != nil {
		h.respondError(responder, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// ListRuns handles GET /api/v1/distribution/runs
func (h *DistributionHandler) ListRuns(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)

	result, err := h.service.ListRuns(requestContext(c), application.ListRunsQuery{Limit: limit})
	if err != nil {
		h.respondError(responder, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// GetRun handles GET /api/v1/distribution/runs/:runId
func (h *DistributionHandler) GetRun(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	result, err := h.service.GetRun(requestContext(c), application.GetRunQuery{
		RunID: c.Param("runId"),
	})
	if err != nil {
		h.respondError(responder, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// SaveConfig handles POST /api/v1/distribution/configs
func (h *DistributionHandler) SaveConfig(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var req SaveConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responder.RespondBadRequest(err.Error())
		return
	}

	err := h.service.SaveConfig(requestContext(c), application.SaveConfigCommand{
		Name:   req.Name,
		Config: application.FromConfigDTO(req.Config),
	})
	if err != nil {
		h.respondError(responder, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": gin.H{"name": req.Name}})
}

// GetConfig handles GET /api/v1/distribution/configs/:name
func (h *DistributionHandler) GetConfig(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	result, err := h.service.GetConfig(requestContext(c), c.Param("name"))
	if err != nil {
		h.respondError(responder, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// ListConfigs handles GET /api/v1/distribution/configs
func (h *DistributionHandler) ListConfigs(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	names, err := h.service.ListConfigs(requestContext(c))
	if err != nil {
		h.respondError(responder, err)
		return
	}
	if names == nil {
		names = []string{}
	}

	c.JSON(http.StatusOK, gin.H{"data": names})
}

// ImportConfigYAML handles PUT /api/v1/distribution/configs/:name/yaml
func (h *DistributionHandler) ImportConfigYAML(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		responder.RespondBadRequest("failed to read request body")
		return
	}

	name := c.Param("name")
	if err := h.service.ImportConfigYAML(requestContext(c), name, body); err != nil {
		h.respondError(responder, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": gin.H{"name": name}})
}

// ExportConfigYAML handles GET /api/v1/distribution/configs/:name/yaml
func (h *DistributionHandler) ExportConfigYAML(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	data, err := h.service.ExportConfigYAML(requestContext(c), c.Param("name"))
	if err != nil {
		h.respondError(responder, err)
		return
	}

	c.Data(http.StatusOK, "application/yaml", data)
}

func (h *DistributionHandler) respondError(responder *middleware.ErrorResponder, err error) {
	responder.RespondWithError(err)
}

// requestContext carries the gin correlation identifiers into the request
// context so downstream logging and events pick them up.
func requestContext(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	if requestID := middleware.GetRequestID(c); requestID != "" {
		ctx = logging.ContextWithRequestID(ctx, requestID)
	}
	if correlationID := middleware.GetCorrelationID(c); correlationID != "" {
		ctx = logging.ContextWithCorrelationID(ctx, correlationID)
	}
	return ctx
}
