package health

import (
	"context"
	"time"

	"barangay-backend/internal/storage"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// HealthChecker probes each failure domain independently: database,
// object storage and host resources. The API itself is healthy by
// construction if the handler answered.
type HealthChecker struct {
	db    *pgxpool.Pool
	store *storage.ObjectStore
}

type HealthStatus struct {
	Status   string         `json:"status"`
	Database DatabaseHealth `json:"database"`
	Storage  *StorageHealth `json:"storage,omitempty"`
	System   *SystemHealth  `json:"system,omitempty"`
}

type DatabaseHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

type StorageHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

type SystemHealth struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	DiskPercent   float64 `json:"disk_percent"`
}

func NewHealthChecker(db *pgxpool.Pool, store *storage.ObjectStore) *HealthChecker {
	return &HealthChecker{db: db, store: store}
}

// CheckBasic probes the database only, for readiness probes
func (h *HealthChecker) CheckBasic() HealthStatus {
	dbHealth := h.checkDatabase()

	status := "healthy"
	if dbHealth.Status != "healthy" {
		status = "unhealthy"
	}

	return HealthStatus{
		Status:   status,
		Database: dbHealth,
	}
}

// CheckFull probes every domain, for the admin dashboard health card
func (h *HealthChecker) CheckFull() HealthStatus {
	status := h.CheckBasic()

	if h.store != nil {
		sh := h.checkStorage()
		status.Storage = &sh
		if sh.Status != "healthy" && status.Status == "healthy" {
			status.Status = "degraded"
		}
	}

	status.System = h.checkSystem()
	return status
}

func (h *HealthChecker) checkDatabase() DatabaseHealth {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return DatabaseHealth{
			Status:       "unhealthy",
			ResponseTime: responseTime,
		}
	}

	return DatabaseHealth{
		Status:       "healthy",
		ResponseTime: responseTime,
	}
}

func (h *HealthChecker) checkStorage() StorageHealth {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	err := h.store.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return StorageHealth{
			Status:       "unhealthy",
			ResponseTime: responseTime,
		}
	}

	return StorageHealth{
		Status:       "healthy",
		ResponseTime: responseTime,
	}
}

func (h *HealthChecker) checkSystem() *SystemHealth {
	sys := &SystemHealth{}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		sys.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		sys.MemoryPercent = vm.UsedPercent
	}
	if du, err := disk.Usage("/"); err == nil {
		sys.DiskPercent = du.UsedPercent
	}

	return sys
}
