// FilePath: cmd/ingest/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/abhayrokkam/fitbit-analytics/internal/config"
	"github.com/abhayrokkam/fitbit-analytics/internal/database"
	"github.com/abhayrokkam/fitbit-analytics/internal/fitbit"
	"github.com/abhayrokkam/fitbit-analytics/internal/ingest"
	"github.com/abhayrokkam/fitbit-analytics/internal/monitoring"
	"github.com/abhayrokkam/fitbit-analytics/internal/repository/files"
	"github.com/abhayrokkam/fitbit-analytics/internal/repository/timescale"
	nuts "github.com/vaudience/go-nuts"
)

// The ingest binary performs one run of the daily ingestion job and exits.
// A non-zero exit leaves the checkpoint unadvanced, so the scheduler's next
// invocation retries the same target date.
func main() {
	nuts.InitVersion()
	nuts.L.Infof("[Ingest] Starting ingestion run v%s", nuts.GetVersion())

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewTimescaleDB(cfg.Database.TimescaleDB)
	if err != nil {
		nuts.L.Errorf("[Ingest] Failed to connect to store: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	samples, err := timescale.NewSampleRepository(db)
	if err != nil {
		nuts.L.Errorf("[Ingest] Failed to initialize sample repository: %v", err)
		os.Exit(1)
	}

	checkpoint, err := files.NewCheckpointStore(cfg.Ingest.CheckpointPath)
	if err != nil {
		nuts.L.Errorf("[Ingest] Failed to initialize checkpoint store: %v", err)
		os.Exit(1)
	}

	source := fitbit.NewDataSource(cfg.Fitbit)
	mon := monitoring.NewService()

	job := ingest.NewJob(source, samples, checkpoint, cfg.Fitbit.ClientID, cfg.Ingest.StoreTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Fitbit.FetchTimeout+cfg.Ingest.StoreTimeout)
	defer cancel()

	result, err := job.Run(ctx)
	if err != nil {
		nuts.L.Errorf("[Ingest] Run failed: %v", err)
		mon.RecordEvent("ingest_run_failed", map[string]string{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	mon.RecordEvent("ingest_run", map[string]string{
		"target_date": result.TargetDate.Format("2006-01-02"),
		"ingested":    strconv.FormatInt(result.Ingested, 10),
		"skipped":     strconv.Itoa(result.Skipped),
	})
	fmt.Printf("ingested %d samples for %s (%d skipped)\n",
		result.Ingested, result.TargetDate.Format("2006-01-02"), result.Skipped)
}
