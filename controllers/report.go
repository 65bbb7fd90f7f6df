// controllers/report.go
package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"loyaltypos-backend/services"
	"loyaltypos-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

const (
	reportCachePrefix     = "reports:"
	dailySummaryCacheTTL  = 1 * time.Minute
	loyalCustomerCacheTTL = 5 * time.Minute
)

// ReportController serves the read-only reports. Responses are cached
// briefly in redis when a cache client is configured; report figures
// are "as of" the read time either way.
type ReportController struct {
	reports *services.ReportService
	cache   *redis.Client
}

func NewReportController(reports *services.ReportService, cache *redis.Client) *ReportController {
	return &ReportController{reports: reports, cache: cache}
}

// GetDailySummary reports a single day; ?date=YYYY-MM-DD, default today
func (rc *ReportController) GetDailySummary(c *gin.Context) {
	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
		day = parsed
	}

	cacheKey := reportCachePrefix + "daily-summary:" + day.Format("2006-01-02")
	if rc.serveFromCache(c, cacheKey) {
		return
	}

	summary, err := rc.reports.GetDailySummary(c.Request.Context(), day)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build daily summary")
		return
	}

	rc.storeInCache(c, cacheKey, summary, dailySummaryCacheTTL)
	c.JSON(http.StatusOK, summary)
}

// GetLoyalCustomers ranks members by purchase count
func (rc *ReportController) GetLoyalCustomers(c *gin.Context) {
	cacheKey := reportCachePrefix + "loyal-customers"
	if rc.serveFromCache(c, cacheKey) {
		return
	}

	customers, err := rc.reports.GetLoyalCustomers(c.Request.Context())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to rank customers")
		return
	}

	rc.storeInCache(c, cacheKey, customers, loyalCustomerCacheTTL)
	c.JSON(http.StatusOK, customers)
}

func (rc *ReportController) serveFromCache(c *gin.Context, key string) bool {
	if rc.cache == nil {
		return false
	}
	cached, err := rc.cache.Get(c.Request.Context(), key).Result()
	if err != nil {
		return false
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
	return true
}

func (rc *ReportController) storeInCache(c *gin.Context, key string, value interface{}, ttl time.Duration) {
	if rc.cache == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	// Best effort; a cache miss next time just re-runs the queries.
	rc.cache.Set(c.Request.Context(), key, payload, ttl)
}
