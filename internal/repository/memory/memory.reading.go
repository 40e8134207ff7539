// FilePath: internal/repository/memory/memory.reading.go
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/itsatony/beachwatch/server/hub/internal/database"
	"github.com/itsatony/beachwatch/server/hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// ReadingRepo is the embedded reading store. It keeps each device's
// readings sorted by created_at so Latest and RangeSince match the
// postgres backend's ordering exactly.
type ReadingRepo struct {
	mu       sync.RWMutex
	byDevice map[string][]models.TemperatureReading
	byID     map[string]string // reading id -> device id
}

func NewReadingRepository() *ReadingRepo {
	return &ReadingRepo{
		byDevice: make(map[string][]models.TemperatureReading),
		byID:     make(map[string]string),
	}
}

func (r *ReadingRepo) BeginTx(ctx context.Context) (database.Transaction, error) {
	return noopTx{}, nil
}

func (r *ReadingRepo) Add(ctx context.Context, reading *models.TemperatureReading) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if reading.ID == "" {
		reading.ID = nuts.NID("tr", 12)
	}
	reading.YearMonth = reading.BucketKey()

	stream := append(r.byDevice[reading.DeviceID], *reading)
	sort.SliceStable(stream, func(i, j int) bool {
		return stream[i].CreatedAt.Before(stream[j].CreatedAt)
	})
	r.byDevice[reading.DeviceID] = stream
	r.byID[reading.ID] = reading.DeviceID
	return nil
}

func (r *ReadingRepo) Get(ctx context.Context, id string) (*models.TemperatureReading, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	deviceID, ok := r.byID[id]
	if !ok {
		return nil, repositoryNotFound("reading not found")
	}
	for _, reading := range r.byDevice[deviceID] {
		if reading.ID == id {
			found := reading
			return &found, nil
		}
	}
	return nil, repositoryNotFound("reading not found")
}

func (r *ReadingRepo) Latest(ctx context.Context, deviceID string) (*models.TemperatureReading, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stream := r.byDevice[deviceID]
	if len(stream) == 0 {
		return nil, nil
	}
	latest := stream[len(stream)-1]
	return &latest, nil
}

func (r *ReadingRepo) RangeSince(ctx context.Context, deviceID string, since time.Time) ([]models.TemperatureReading, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stream := r.byDevice[deviceID]
	// First index with created_at >= since; stream is sorted ascending.
	idx := sort.Search(len(stream), func(i int) bool {
		return !stream[i].CreatedAt.Before(since)
	})

	result := make([]models.TemperatureReading, len(stream)-idx)
	copy(result, stream[idx:])
	return result, nil
}

func (r *ReadingRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	deviceID, ok := r.byID[id]
	if !ok {
		return nil // no-op by contract
	}
	stream := r.byDevice[deviceID]
	for i, reading := range stream {
		if reading.ID == id {
			r.byDevice[deviceID] = append(stream[:i:i], stream[i+1:]...)
			break
		}
	}
	delete(r.byID, id)
	return nil
}

func (r *ReadingRepo) DeleteByDevice(ctx context.Context, deviceID string, tx database.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, reading := range r.byDevice[deviceID] {
		delete(r.byID, reading.ID)
	}
	delete(r.byDevice, deviceID)
	return nil
}

func (r *ReadingRepo) All(ctx context.Context) ([]models.TemperatureReading, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := []models.TemperatureReading{}
	for _, stream := range r.byDevice {
		all = append(all, stream...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})
	return all, nil
}
