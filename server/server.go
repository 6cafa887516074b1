package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/homemade/pollday/checkin"
)

// RequestIDHeader carries a request id through to the response.
const RequestIDHeader = "X-Request-ID"

// Service is the check-in surface served over HTTP. *checkin.Checker implements it.
type Service interface {
	GetPollWorkers(configID string, precinctID string, ctx context.Context) checkin.PollWorkers
	GetPrecinct(configID string, precinctID string, ctx context.Context) checkin.PrecinctInfo
	UpdateWorkerStatuses(configID string, statuses []checkin.WorkerStatus, ctx context.Context) bool
}

// NewRouter returns the gin engine for the check-in API. Failed lookups are
// answered with 200 and an empty body ({} or {"success":false}), the same shape
// the web application has always received.
func NewRouter(svc Service, metrics *Metrics, gatherer prometheus.Gatherer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	r.Use(requestID())

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/:configId")

	api.GET("/precincts/:precinctId/workers", func(c *gin.Context) {
		result := svc.GetPollWorkers(c.Param("configId"), c.Param("precinctId"), c.Request.Context())
		metrics.observe("getPollWorkers", !result.IsEmpty())
		c.JSON(http.StatusOK, result)
	})

	api.GET("/precincts/:precinctId", func(c *gin.Context) {
		result := svc.GetPrecinct(c.Param("configId"), c.Param("precinctId"), c.Request.Context())
		metrics.observe("getPrecinct", !result.IsEmpty())
		c.JSON(http.StatusOK, result)
	})

	api.PUT("/workers/statuses", func(c *gin.Context) {
		body, err := c.GetRawData()
		var statuses []checkin.WorkerStatus
		if err == nil {
			statuses, err = checkin.ParseWorkerStatuses(body)
		}
		if err != nil {
			metrics.Operations.WithLabelValues("updateWorkerStatuses", "invalid").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"success": false})
			return
		}
		success := svc.UpdateWorkerStatuses(c.Param("configId"), statuses, c.Request.Context())
		metrics.observe("updateWorkerStatuses", success)
		c.JSON(http.StatusOK, gin.H{"success": success})
	})

	return r
}

// requestID tags each request with an id, reusing one supplied by the caller.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("requestID", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
