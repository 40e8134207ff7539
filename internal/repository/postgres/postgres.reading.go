// FilePath: internal/repository/postgres/postgres.reading.go
package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/itsatony/beachwatch/server/hub/internal/database"
	"github.com/itsatony/beachwatch/server/hub/internal/errors"
	"github.com/itsatony/beachwatch/server/hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

type ReadingRepo struct {
	PostgresBaseRepo
}

func NewReadingRepository(db database.DB) (*ReadingRepo, error) {
	repo := &ReadingRepo{PostgresBaseRepo: PostgresBaseRepo{db: db}}
	if err := repo.initializeSchema(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *ReadingRepo) initializeSchema() error {
	// Readings are keyed by an opaque id and partitioned by device plus a
	// derived year-month bucket, so per-device range scans never fan out
	// across devices.
	queries := []string{
		`CREATE TABLE IF NOT EXISTS temperature_readings (
			id TEXT PRIMARY KEY,
			device_id TEXT NOT NULL,
			year_month TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			temperature DOUBLE PRECISION NOT NULL,
			signal_strength INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_temperature_readings_device_created
		 ON temperature_readings(device_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_temperature_readings_device_bucket
		 ON temperature_readings(device_id, year_month)`,
	}

	for _, query := range queries {
		if _, err := r.db.GetDB().Exec(query); err != nil {
			return errors.NewDatabaseError("failed to initialize readings schema", err)
		}
	}
	return nil
}

func (r *ReadingRepo) Add(ctx context.Context, reading *models.TemperatureReading) error {
	if reading.ID == "" {
		reading.ID = nuts.NID("tr", 12)
	}
	reading.YearMonth = reading.BucketKey()

	query := `
		INSERT INTO temperature_readings (
			id, device_id, year_month, created_at, temperature, signal_strength
		) VALUES (
			:id, :device_id, :year_month, :created_at, :temperature, :signal_strength
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, reading)
	if err != nil {
		return errors.NewDatabaseError("failed to insert temperature reading", err)
	}
	return nil
}

func (r *ReadingRepo) Get(ctx context.Context, id string) (*models.TemperatureReading, error) {
	reading := &models.TemperatureReading{}
	query := `SELECT * FROM temperature_readings WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, reading, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("reading not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get reading", err)
	}
	return reading, nil
}

func (r *ReadingRepo) Latest(ctx context.Context, deviceID string) (*models.TemperatureReading, error) {
	reading := &models.TemperatureReading{}
	query := `
		SELECT * FROM temperature_readings
		WHERE device_id = $1
		ORDER BY created_at DESC
		LIMIT 1`

	err := r.db.GetDB().GetContext(ctx, reading, query, deviceID)
	if err != nil {
		if err == sql.ErrNoRows {
			// Absence is a regular answer here, not an error: the dedup
			// check uses it to accept a device's first-ever reading.
			return nil, nil
		}
		return nil, errors.NewDatabaseError("failed to get latest reading", err)
	}
	return reading, nil
}

func (r *ReadingRepo) RangeSince(ctx context.Context, deviceID string, since time.Time) ([]models.TemperatureReading, error) {
	readings := []models.TemperatureReading{}
	query := `
		SELECT * FROM temperature_readings
		WHERE device_id = $1 AND created_at >= $2
		ORDER BY created_at ASC`

	err := r.db.GetDB().SelectContext(ctx, &readings, query, deviceID, since)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to get readings range", err)
	}
	return readings, nil
}

func (r *ReadingRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM temperature_readings WHERE id = $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, id)
	if err != nil {
		return errors.NewDatabaseError("failed to delete reading", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}
	if rows == 0 {
		// Deleting an absent reading is a no-op by contract.
		nuts.L.Debugf("[ReadingRepo] Delete of absent reading %s", id)
	}
	return nil
}

func (r *ReadingRepo) DeleteByDevice(ctx context.Context, deviceID string, tx database.Transaction) error {
	query := `DELETE FROM temperature_readings WHERE device_id = $1`

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, deviceID)
	} else {
		_, err = r.db.GetDB().ExecContext(ctx, query, deviceID)
	}
	if err != nil {
		return errors.NewDatabaseError("failed to delete readings for device", err)
	}
	return nil
}

func (r *ReadingRepo) All(ctx context.Context) ([]models.TemperatureReading, error) {
	readings := []models.TemperatureReading{}
	query := `SELECT * FROM temperature_readings ORDER BY created_at ASC`

	err := r.db.GetDB().SelectContext(ctx, &readings, query)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to scan readings", err)
	}
	return readings, nil
}
