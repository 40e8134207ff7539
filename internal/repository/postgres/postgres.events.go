// FilePath: internal/repository/postgres/postgres.events.go
package postgres

import (
	"context"
	"database/sql"

	"github.com/itsatony/beachwatch/server/hub/internal/database"
	"github.com/itsatony/beachwatch/server/hub/internal/errors"
	"github.com/itsatony/beachwatch/server/hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// Heartbeats and battery changes share the readings database so the
// whole device timeline lives on one instance.

type HeartbeatRepo struct {
	PostgresBaseRepo
}

func NewHeartbeatRepository(db database.DB) (*HeartbeatRepo, error) {
	repo := &HeartbeatRepo{PostgresBaseRepo: PostgresBaseRepo{db: db}}
	schema := `
		CREATE TABLE IF NOT EXISTS heartbeats (
			id TEXT PRIMARY KEY,
			device_id TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`
	if _, err := db.GetDB().Exec(schema); err != nil {
		return nil, errors.NewDatabaseError("failed to initialize heartbeats schema", err)
	}
	return repo, nil
}

func (r *HeartbeatRepo) Add(ctx context.Context, heartbeat *models.Heartbeat) error {
	if heartbeat.ID == "" {
		heartbeat.ID = nuts.NID("hb", 12)
	}
	query := `
		INSERT INTO heartbeats (id, device_id, created_at)
		VALUES (:id, :device_id, :created_at)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, heartbeat)
	if err != nil {
		return errors.NewDatabaseError("failed to insert heartbeat", err)
	}
	return nil
}

func (r *HeartbeatRepo) Latest(ctx context.Context, deviceID string) (*models.Heartbeat, error) {
	heartbeat := &models.Heartbeat{}
	query := `
		SELECT * FROM heartbeats
		WHERE device_id = $1
		ORDER BY created_at DESC
		LIMIT 1`

	err := r.db.GetDB().GetContext(ctx, heartbeat, query, deviceID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.NewDatabaseError("failed to get latest heartbeat", err)
	}
	return heartbeat, nil
}

func (r *HeartbeatRepo) DeleteByDevice(ctx context.Context, deviceID string, tx database.Transaction) error {
	query := `DELETE FROM heartbeats WHERE device_id = $1`

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, deviceID)
	} else {
		_, err = r.db.GetDB().ExecContext(ctx, query, deviceID)
	}
	if err != nil {
		return errors.NewDatabaseError("failed to delete heartbeats for device", err)
	}
	return nil
}

type BatteryChangeRepo struct {
	PostgresBaseRepo
}

func NewBatteryChangeRepository(db database.DB) (*BatteryChangeRepo, error) {
	repo := &BatteryChangeRepo{PostgresBaseRepo: PostgresBaseRepo{db: db}}
	schema := `
		CREATE TABLE IF NOT EXISTS battery_changes (
			id TEXT PRIMARY KEY,
			device_id TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`
	if _, err := db.GetDB().Exec(schema); err != nil {
		return nil, errors.NewDatabaseError("failed to initialize battery changes schema", err)
	}
	return repo, nil
}

func (r *BatteryChangeRepo) Add(ctx context.Context, change *models.BatteryChange) error {
	if change.ID == "" {
		change.ID = nuts.NID("bc", 12)
	}
	query := `
		INSERT INTO battery_changes (id, device_id, created_at)
		VALUES (:id, :device_id, :created_at)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, change)
	if err != nil {
		return errors.NewDatabaseError("failed to insert battery change", err)
	}
	return nil
}

func (r *BatteryChangeRepo) Latest(ctx context.Context, deviceID string) (*models.BatteryChange, error) {
	change := &models.BatteryChange{}
	query := `
		SELECT * FROM battery_changes
		WHERE device_id = $1
		ORDER BY created_at DESC
		LIMIT 1`

	err := r.db.GetDB().GetContext(ctx, change, query, deviceID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.NewDatabaseError("failed to get latest battery change", err)
	}
	return change, nil
}

func (r *BatteryChangeRepo) ListByDevice(ctx context.Context, deviceID string, offset, limit int) ([]*models.BatteryChange, error) {
	changes := []*models.BatteryChange{}
	query := `
		SELECT * FROM battery_changes
		WHERE device_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	err := r.db.GetDB().SelectContext(ctx, &changes, query, deviceID, limit, offset)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list battery changes", err)
	}
	return changes, nil
}

func (r *BatteryChangeRepo) DeleteByDevice(ctx context.Context, deviceID string, tx database.Transaction) error {
	query := `DELETE FROM battery_changes WHERE device_id = $1`

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, deviceID)
	} else {
		_, err = r.db.GetDB().ExecContext(ctx, query, deviceID)
	}
	if err != nil {
		return errors.NewDatabaseError("failed to delete battery changes for device", err)
	}
	return nil
}
