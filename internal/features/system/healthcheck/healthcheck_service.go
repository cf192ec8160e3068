package system_healthcheck

import (
	"context"
	"fmt"
	"time"

	"taskhive/internal/cache"
	"taskhive/internal/storage"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/valkey-io/valkey-go"
)

const checkTimeout = 5 * time.Second

type ComponentStatus struct {
	Healthy bool   `json:"healthy"`
	Error   string `json:"error,omitempty"`
}

type ResourceUsage struct {
	MemoryUsedPercent float64 `json:"memoryUsedPercent"`
	DiskUsedPercent   float64 `json:"diskUsedPercent"`
	DiskFreeBytes     uint64  `json:"diskFreeBytes"`
}

type HealthStatus struct {
	Status    string          `json:"status"`
	Database  ComponentStatus `json:"database"`
	Cache     ComponentStatus `json:"cache"`
	Resources *ResourceUsage  `json:"resources,omitempty"`
	CheckedAt time.Time       `json:"checkedAt"`
}

type HealthcheckService struct{}

func (s *HealthcheckService) CheckHealth() *HealthStatus {
	status := &HealthStatus{
		Status:    "ok",
		Database:  s.checkDatabase(),
		Cache:     s.checkCache(),
		CheckedAt: time.Now().UTC(),
	}

	if !status.Database.Healthy || !status.Cache.Healthy {
		status.Status = "degraded"
	}

	if usage, err := s.collectResourceUsage(); err == nil {
		status.Resources = usage
	}

	return status
}

func (s *HealthcheckService) checkDatabase() ComponentStatus {
	sqlDb, err := storage.GetDb().DB()
	if err != nil {
		return ComponentStatus{Healthy: false, Error: err.Error()}
	}

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	if err := sqlDb.PingContext(ctx); err != nil {
		return ComponentStatus{Healthy: false, Error: err.Error()}
	}

	return ComponentStatus{Healthy: true}
}

// checkCache does a full write and read round trip, not just a ping.
func (s *HealthcheckService) checkCache() ComponentStatus {
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	client := cache.GetCache()
	key := "th_health:probe"
	value := fmt.Sprintf("%d", time.Now().UnixNano())

	if err := client.Do(ctx, client.B().Set().Key(key).Value(value).
		Ex(checkTimeout).Build()).Error(); err != nil {
		return ComponentStatus{Healthy: false, Error: err.Error()}
	}

	read, err := client.Do(ctx, client.B().Get().Key(key).Build()).ToString()
	if err != nil && !valkey.IsValkeyNil(err) {
		return ComponentStatus{Healthy: false, Error: err.Error()}
	}
	if read != value {
		return ComponentStatus{Healthy: false, Error: "cache read returned stale value"}
	}

	return ComponentStatus{Healthy: true}
}

func (s *HealthcheckService) collectResourceUsage() (*ResourceUsage, error) {
	memory, err := mem.VirtualMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to read memory usage: %w", err)
	}

	diskUsage, err := disk.Usage("/")
	if err != nil {
		return nil, fmt.Errorf("failed to read disk usage: %w", err)
	}

	return &ResourceUsage{
		MemoryUsedPercent: memory.UsedPercent,
		DiskUsedPercent:   diskUsage.UsedPercent,
		DiskFreeBytes:     diskUsage.Free,
	}, nil
}
