// FilePath: internal/repository/memory/memory.events.go
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/itsatony/beachwatch/server/hub/internal/database"
	"github.com/itsatony/beachwatch/server/hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

type HeartbeatRepo struct {
	mu       sync.RWMutex
	byDevice map[string][]models.Heartbeat
}

func NewHeartbeatRepository() *HeartbeatRepo {
	return &HeartbeatRepo{byDevice: make(map[string][]models.Heartbeat)}
}

func (r *HeartbeatRepo) BeginTx(ctx context.Context) (database.Transaction, error) {
	return noopTx{}, nil
}

func (r *HeartbeatRepo) Add(ctx context.Context, heartbeat *models.Heartbeat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if heartbeat.ID == "" {
		heartbeat.ID = nuts.NID("hb", 12)
	}
	stream := append(r.byDevice[heartbeat.DeviceID], *heartbeat)
	sort.SliceStable(stream, func(i, j int) bool {
		return stream[i].CreatedAt.Before(stream[j].CreatedAt)
	})
	r.byDevice[heartbeat.DeviceID] = stream
	return nil
}

func (r *HeartbeatRepo) Latest(ctx context.Context, deviceID string) (*models.Heartbeat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stream := r.byDevice[deviceID]
	if len(stream) == 0 {
		return nil, nil
	}
	latest := stream[len(stream)-1]
	return &latest, nil
}

func (r *HeartbeatRepo) DeleteByDevice(ctx context.Context, deviceID string, tx database.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byDevice, deviceID)
	return nil
}

type BatteryChangeRepo struct {
	mu       sync.RWMutex
	byDevice map[string][]models.BatteryChange
}

func NewBatteryChangeRepository() *BatteryChangeRepo {
	return &BatteryChangeRepo{byDevice: make(map[string][]models.BatteryChange)}
}

func (r *BatteryChangeRepo) BeginTx(ctx context.Context) (database.Transaction, error) {
	return noopTx{}, nil
}

func (r *BatteryChangeRepo) Add(ctx context.Context, change *models.BatteryChange) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if change.ID == "" {
		change.ID = nuts.NID("bc", 12)
	}
	stream := append(r.byDevice[change.DeviceID], *change)
	sort.SliceStable(stream, func(i, j int) bool {
		return stream[i].CreatedAt.Before(stream[j].CreatedAt)
	})
	r.byDevice[change.DeviceID] = stream
	return nil
}

func (r *BatteryChangeRepo) Latest(ctx context.Context, deviceID string) (*models.BatteryChange, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stream := r.byDevice[deviceID]
	if len(stream) == 0 {
		return nil, nil
	}
	latest := stream[len(stream)-1]
	return &latest, nil
}

func (r *BatteryChangeRepo) ListByDevice(ctx context.Context, deviceID string, offset, limit int) ([]*models.BatteryChange, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stream := r.byDevice[deviceID]

	// Newest first, matching the postgres backend.
	desc := make([]*models.BatteryChange, 0, len(stream))
	for i := len(stream) - 1; i >= 0; i-- {
		change := stream[i]
		desc = append(desc, &change)
	}
	if offset >= len(desc) {
		return []*models.BatteryChange{}, nil
	}
	end := offset + limit
	if end > len(desc) {
		end = len(desc)
	}
	return desc[offset:end], nil
}

func (r *BatteryChangeRepo) DeleteByDevice(ctx context.Context, deviceID string, tx database.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byDevice, deviceID)
	return nil
}
