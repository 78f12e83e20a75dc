package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"backend/services"
	"backend/transform"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	Svc *services.AnalyticsService
}

func NewAnalyticsController(svc *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{Svc: svc}
}

func (h *AnalyticsController) dateWindow(c *gin.Context) (from, to time.Time, ok bool) {
	now := time.Now()
	fromStr := c.DefaultQuery("from", now.AddDate(0, 0, -30).Format("2006-01-02"))
	toStr := c.DefaultQuery("to", now.Format("2006-01-02"))

	from, err := time.ParseInLocation("2006-01-02", fromStr, now.Location())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
		return from, to, false
	}
	to, err = time.ParseInLocation("2006-01-02", toStr, now.Location())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
		return from, to, false
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "`to` must be on/after `from`"})
		return from, to, false
	}
	return from, to, true
}

func (h *AnalyticsController) GetSummary(c *gin.Context) {
	uid := c.GetUint("userID")
	from, to, ok := h.dateWindow(c)
	if !ok {
		return
	}

	out, err := h.Svc.Summary(c.Request.Context(), uid, from, to)
	if err != nil {
		if errors.Is(err, transform.ErrMalformedInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *AnalyticsController) GetRadar(c *gin.Context) {
	uid := c.GetUint("userID")
	from, to, ok := h.dateWindow(c)
	if !ok {
		return
	}

	out, err := h.Svc.Radar(c.Request.Context(), uid, from, to)
	if err != nil {
		if errors.Is(err, transform.ErrMalformedInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"metrics": out})
}

func (h *AnalyticsController) GetPredictions(c *gin.Context) {
	uid := c.GetUint("userID")

	metric := c.Query("type")
	algorithm := transform.Algorithm(c.DefaultQuery("algorithm", string(transform.AlgorithmLinearRegression)))
	switch algorithm {
	case transform.AlgorithmLinearRegression, transform.AlgorithmMovingAverage:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "algorithm must be linear-regression or moving-average"})
		return
	}

	horizon, err := strconv.Atoi(c.DefaultQuery("horizon", "7"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid horizon"})
		return
	}

	out, err := h.Svc.Predictions(c.Request.Context(), uid, metric, algorithm, horizon)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRecord) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"type":      metric,
		"algorithm": algorithm,
		"points":    out,
	})
}

func (h *AnalyticsController) GetTrend(c *gin.Context) {
	uid := c.GetUint("userID")

	metric := c.Query("type")
	if metric == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'type' query param"})
		return
	}

	out, err := h.Svc.TrendFor(c.Request.Context(), uid, metric)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotEnoughData):
			c.JSON(http.StatusOK, gin.H{"type": metric, "trend": nil})
		case errors.Is(err, transform.ErrMalformedInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"type": metric, "trend": out})
}
