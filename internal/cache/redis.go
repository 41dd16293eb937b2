package cache

import (
	"context"
	"fmt"
	"time"

	"barangay-backend/internal/config"

	"github.com/redis/go-redis/v9"
)

// Cache keys
const (
	DashboardStatsKey   = "dashboard:stats"
	FinancialSummaryKey = "financial:summary"
)

// TTLs are short: the console tolerates slightly stale aggregates but
// refreshes often
const (
	dashboardTTL = 30 * time.Second
	financialTTL = 2 * time.Minute
)

var client *redis.Client

// Init initializes the Redis connection. A failure leaves the cache
// disabled; every helper short-circuits on a nil client.
func Init(cfg *config.Config) error {
	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client (nil when the cache is disabled)
func GetClient() *redis.Client {
	return client
}

// GetDashboardStats returns the cached dashboard payload if present
func GetDashboardStats(ctx context.Context) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, DashboardStatsKey).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetDashboardStats caches the dashboard payload
func SetDashboardStats(ctx context.Context, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, DashboardStatsKey, data, dashboardTTL)
}

// GetFinancialSummary returns the cached financial summary if present
func GetFinancialSummary(ctx context.Context) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, FinancialSummaryKey).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetFinancialSummary caches the financial summary
func SetFinancialSummary(ctx context.Context, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, FinancialSummaryKey, data, financialTTL)
}

// InvalidateFinancialSummary clears the summary after a new receipt
func InvalidateFinancialSummary(ctx context.Context) {
	if client == nil {
		return
	}
	client.Del(ctx, FinancialSummaryKey)
}

// InvalidateDashboard clears dashboard aggregates after any mutation
func InvalidateDashboard(ctx context.Context) {
	if client == nil {
		return
	}
	client.Del(ctx, DashboardStatsKey)
}
