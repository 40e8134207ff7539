// FilePath: cmd/legacyexport/main.go

// legacyexport dumps the full reading history grouped by year-month
// into one JSON file per bucket, matching the layout of the old
// station's archive exports. One-off batch tool, not part of the
// serving path.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/itsatony/beachwatch/server/hub/internal/config"
	"github.com/itsatony/beachwatch/server/hub/internal/database"
	"github.com/itsatony/beachwatch/server/hub/internal/models"
	"github.com/itsatony/beachwatch/server/hub/internal/repository/postgres"
	nuts "github.com/vaudience/go-nuts"
)

func main() {
	outputDir := flag.String("out", "./export", "directory for exported JSON files")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewReadingsDB(cfg.Database.ReadingsDB)
	if err != nil {
		log.Fatalf("Failed to connect to readings database: %v", err)
	}
	defer db.Close()

	readings, err := postgres.NewReadingRepository(db)
	if err != nil {
		log.Fatalf("Failed to initialize reading repository: %v", err)
	}

	all, err := readings.All(context.Background())
	if err != nil {
		log.Fatalf("Failed to scan readings: %v", err)
	}

	groups := map[string][]models.TemperatureReading{}
	for _, reading := range all {
		bucket := reading.YearMonth
		if bucket == "" {
			bucket = reading.BucketKey()
		}
		if _, ok := groups[bucket]; !ok {
			nuts.L.Infof("[LegacyExport] New group %s created", bucket)
		}
		groups[bucket] = append(groups[bucket], reading)
	}

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	for bucket, group := range groups {
		fileName := filepath.Join(*outputDir, bucket+".json")
		payload, err := json.MarshalIndent(group, "", "  ")
		if err != nil {
			log.Fatalf("Failed to encode group %s: %v", bucket, err)
		}
		if err := os.WriteFile(fileName, payload, 0o644); err != nil {
			log.Fatalf("Failed to write %s: %v", fileName, err)
		}
		nuts.L.Infof("[LegacyExport] Exported %d readings to %s", len(group), fileName)
	}
}
