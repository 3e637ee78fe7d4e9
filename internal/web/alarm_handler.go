package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Ahmet872/Alarm-System/internal/entity"
	"github.com/Ahmet872/Alarm-System/internal/repo"
	"github.com/Ahmet872/Alarm-System/internal/service/evaluator"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

// AlarmHandler exposes the CRUD surface around the alarm table. The
// evaluation pipeline itself never goes through HTTP; this is the
// registration/inspection boundary for alarm owners.
type AlarmHandler struct {
	repo repo.AlarmRepo
}

func NewAlarmHandler(alarmRepo repo.AlarmRepo) *AlarmHandler {
	return &AlarmHandler{repo: alarmRepo}
}

func (h *AlarmHandler) RegisterRoutes(r *gin.Engine) {
	r.POST("/alarms", h.Create)
	r.GET("/alarms", h.List)
	r.GET("/alarms/:id", h.Get)
	r.PUT("/alarms/:id", h.Update)
	r.DELETE("/alarms/:id", h.Delete)
	r.GET("/health", h.Health)
}

type createAlarmReq struct {
	AssetClass  entity.AssetClass `json:"asset_class" binding:"required"`
	AssetSymbol string            `json:"asset_symbol" binding:"required,min=1,max=15"`
	AlarmType   entity.AlarmType  `json:"alarm_type" binding:"required"`
	Params      map[string]any    `json:"params" binding:"required"`
	Email       string            `json:"email" binding:"required,email"`
}

var validAssetClasses = []entity.AssetClass{
	entity.AssetClassCrypto, entity.AssetClassForex, entity.AssetClassStock,
}

func (h *AlarmHandler) Create(c *gin.Context) {
	var req createAlarmReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if !lo.Contains(validAssetClasses, req.AssetClass) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "asset_class must be one of crypto, forex, stock"})
		return
	}

	alarm := entity.Alarm{
		AssetClass:  req.AssetClass,
		AssetSymbol: req.AssetSymbol,
		AlarmType:   req.AlarmType,
		Params:      req.Params,
		Email:       req.Email,
		Status:      entity.AlarmStatusPending,
	}
	if err := evaluator.ValidateParams(alarm); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	id, err := h.repo.Create(c.Request.Context(), alarm)
	if err != nil {
		slog.Error("failed to create alarm", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to create alarm"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"message":  "Alarm created successfully",
		"alarm_id": id,
	})
}

func (h *AlarmHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		alarms []entity.Alarm
		err    error
	)
	if email := c.Query("email"); email != "" {
		alarms, err = h.repo.FindByEmail(ctx, email)
	} else if status := c.Query("status"); status != "" {
		alarms, err = h.repo.FindByStatus(ctx, entity.AlarmStatus(status))
	} else {
		alarms, err = h.repo.FindAll(ctx)
	}
	if err != nil {
		slog.Error("failed to list alarms", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to list alarms"})
		return
	}
	c.JSON(http.StatusOK, alarms)
}

func (h *AlarmHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid alarm id"})
		return
	}

	alarm, err := h.repo.FindById(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrAlarmNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Alarm not found"})
			return
		}
		slog.Error("failed to get alarm", "alarm", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to get alarm"})
		return
	}
	c.JSON(http.StatusOK, alarm)
}

type updateAlarmReq struct {
	Status    entity.AlarmStatus `json:"status"`
	LastError *string            `json:"last_error"`
}

func (h *AlarmHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid alarm id"})
		return
	}

	var req updateAlarmReq
	if err = c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	ctx := c.Request.Context()
	alarm, err := h.repo.FindById(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrAlarmNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Alarm not found"})
			return
		}
		slog.Error("failed to load alarm", "alarm", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to load alarm"})
		return
	}

	if req.Status != "" {
		alarm.Status = req.Status
	}
	if req.LastError != nil {
		alarm.LastError = *req.LastError
	}
	if err = h.repo.Update(ctx, alarm); err != nil {
		slog.Error("failed to update alarm", "alarm", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to update alarm"})
		return
	}
	c.JSON(http.StatusOK, alarm)
}

func (h *AlarmHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid alarm id"})
		return
	}

	if err = h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repo.ErrAlarmNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Alarm not found"})
			return
		}
		slog.Error("failed to delete alarm", "alarm", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to delete alarm"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AlarmHandler) Health(c *gin.Context) {
	if err := h.repo.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status":    "unhealthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"error":     err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database":  "connected",
	})
}
