// Command purge-view-buckets runs one retention sweep over the view_buckets
// table. The API process schedules the same sweep nightly; this command
// exists for manual runs and backfills after downtime.
package main

import (
	"context"
	"flag"
	"log"

	"editorial-content-api/config"
	"editorial-content-api/services"

	"github.com/joho/godotenv"
)

func main() {
	retentionDays := flag.Int("retention-days", services.DefaultBucketRetentionDays, "delete buckets older than this many days")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config.InitLogging()
	config.InitDB()

	views := services.NewViewService(config.DB)
	removed, err := views.PurgeExpiredBuckets(context.Background(), *retentionDays)
	if err != nil {
		log.Fatalf("purge failed: %v", err)
	}

	log.Printf("removed %d view buckets older than %d days", removed, *retentionDays)
}
