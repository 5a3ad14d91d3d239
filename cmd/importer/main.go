// Package main provides the station directory importer. It loads a CSV of
// station reference data (code, name, locality) into PostgreSQL, upserting
// by stop code so re-runs are safe.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/multiplanner/multiplanner/internal/database"
	"github.com/multiplanner/multiplanner/internal/station"
)

func main() {
	var (
		file       = flag.String("file", "", "path to the stations CSV (code,name,locality)")
		skipHeader = flag.Bool("skip-header", true, "skip the first CSV row")
	)
	flag.Parse()

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", "multiplanner-importer").
		Logger()

	if *file == "" {
		log.Fatal().Msg("-file is required")
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("failed to open CSV")
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.Connect(ctx, database.ConfigFromEnv())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	repo := station.NewPostgresRepository(pool)

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	imported := 0
	skipped := 0
	line := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatal().Err(err).Int("line", line).Msg("failed to read CSV")
		}
		line++

		if line == 1 && *skipHeader {
			continue
		}
		if len(record) < 2 {
			skipped++
			continue
		}

		s := station.Station{
			Code: strings.TrimSpace(record[0]),
			Name: strings.TrimSpace(record[1]),
		}
		if len(record) > 2 {
			s.Locality = strings.TrimSpace(record[2])
		}
		if s.Code == "" || s.Name == "" {
			skipped++
			continue
		}

		if err := repo.Upsert(ctx, s); err != nil {
			log.Fatal().Err(err).Str("code", s.Code).Msg("failed to upsert station")
		}
		imported++
	}

	log.Info().
		Int("imported", imported).
		Int("skipped", skipped).
		Msg("station import complete")
}
