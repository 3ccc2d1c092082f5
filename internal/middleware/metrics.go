package middleware

import (
	"net/http"
	"time"

	"github.com/Column-org/Column-backend/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware exposes collected metrics as a JSON endpoint handler
func MetricsMiddleware(metricsCollector *metrics.MetricsCollector) gin.HandlerFunc {
	return func(c *gin.Context) {
		snapshot := metricsCollector.GetMetrics()

		c.JSON(http.StatusOK, gin.H{
			"metrics": gin.H{
				"total_requests":        snapshot.TotalRequests,
				"successful_requests":   snapshot.SuccessfulRequests,
				"failed_requests":       snapshot.FailedRequests,
				"active_requests":       snapshot.ActiveRequests,
				"average_response_time": snapshot.AverageResponseTime.String(),
				"cache_hits":            snapshot.CacheHits,
				"cache_misses":          snapshot.CacheMisses,
				"cache_hit_ratio":       metricsCollector.GetCacheHitRatio(),
				"rpc_calls":             snapshot.RPCCalls,
				"rpc_failures":          snapshot.RPCFailures,
				"average_rpc_time":      snapshot.AverageRPCTime.String(),
				"success_rate":          metricsCollector.GetSuccessRate(),
				"uptime":                metricsCollector.GetUptime().String(),
			},
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
