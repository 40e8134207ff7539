// FilePath: internal/repository/memory/memory.device.go
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/itsatony/beachwatch/server/hub/internal/database"
	"github.com/itsatony/beachwatch/server/hub/internal/models"
)

type DeviceRepo struct {
	mu      sync.RWMutex
	devices map[string]models.Device
}

func NewDeviceRepository() *DeviceRepo {
	return &DeviceRepo{devices: make(map[string]models.Device)}
}

func (r *DeviceRepo) BeginTx(ctx context.Context) (database.Transaction, error) {
	return noopTx{}, nil
}

func (r *DeviceRepo) Create(ctx context.Context, device *models.Device) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.devices[device.ID] = *device
	return nil
}

func (r *DeviceRepo) Get(ctx context.Context, id string) (*models.Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	device, ok := r.devices[id]
	if !ok {
		return nil, repositoryNotFound("device not found")
	}
	return &device, nil
}

func (r *DeviceRepo) Update(ctx context.Context, device *models.Device) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.devices[device.ID]; !ok {
		return repositoryNotFound("device not found")
	}
	r.devices[device.ID] = *device
	return nil
}

func (r *DeviceRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.devices[id]; !ok {
		return repositoryNotFound("device not found")
	}
	delete(r.devices, id)
	return nil
}

func (r *DeviceRepo) List(ctx context.Context, filters models.DeviceFilters, offset, limit int) ([]*models.Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matching := []*models.Device{}
	for id := range r.devices {
		device := r.devices[id]
		if filters.Status != "" && device.Status != filters.Status {
			continue
		}
		if filters.Location != "" && device.Location != filters.Location {
			continue
		}
		matching = append(matching, &device)
	}
	sort.Slice(matching, func(i, j int) bool {
		return matching[i].CreatedAt.After(matching[j].CreatedAt)
	})

	if offset >= len(matching) {
		return []*models.Device{}, nil
	}
	end := offset + limit
	if end > len(matching) {
		end = len(matching)
	}
	return matching[offset:end], nil
}

func (r *DeviceRepo) UpdateLastSeen(ctx context.Context, id string, lastSeen time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	device, ok := r.devices[id]
	if !ok {
		return repositoryNotFound("device not found")
	}
	device.LastSeen = lastSeen
	r.devices[id] = device
	return nil
}
