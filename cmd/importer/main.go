package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"os"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hoteldir/internal/adapters/observability"
	redisad "hoteldir/internal/adapters/redis"
	"hoteldir/internal/app"
	"hoteldir/internal/domain"
	"hoteldir/internal/shared"
	mysqlrepo "hoteldir/internal/storage/mysql"
)

// hotelRecord is one entry of the import file.
type hotelRecord struct {
	GlobalPropertyName      string   `json:"GlobalPropertyName"`
	GlobalChainCode         string   `json:"GlobalChainCode"`
	PropertyAddress1        string   `json:"PropertyAddress1"`
	PropertyAddress2        *string  `json:"PropertyAddress2"`
	PrimaryAirportCode      string   `json:"PrimaryAirportCode"`
	CityID                  int64    `json:"CityID"`
	PropertyStateProvinceID int64    `json:"PropertyStateProvinceID"`
	PropertyZipPostal       string   `json:"PropertyZipPostal"`
	PropertyPhoneNumber     string   `json:"PropertyPhoneNumber"`
	PropertyFaxNumber       *string  `json:"PropertyFaxNumber"`
	SabrePropertyRating     float64  `json:"SabrePropertyRating"`
	PropertyLatitude        float64  `json:"PropertyLatitude"`
	PropertyLongitude       float64  `json:"PropertyLongitude"`
	SourceGroupCode         string   `json:"SourceGroupCode"`
	ManagerUsername         string   `json:"ManagerUsername"`
	DistanceToTheAirport    *float64 `json:"DistanceToTheAirport"`
	RoomsNumber             *int     `json:"RoomsNumber"`
	FloorsNumber            *int     `json:"FloorsNumber"`
	HotelStars              *int     `json:"HotelStars"`
}

func (rec hotelRecord) hotel() domain.Hotel {
	return domain.Hotel{
		Name:              rec.GlobalPropertyName,
		ChainCode:         rec.GlobalChainCode,
		Address1:          rec.PropertyAddress1,
		Address2:          rec.PropertyAddress2,
		AirportCode:       rec.PrimaryAirportCode,
		CityID:            rec.CityID,
		RegionID:          rec.PropertyStateProvinceID,
		ZipPostal:         rec.PropertyZipPostal,
		PhoneNumber:       rec.PropertyPhoneNumber,
		FaxNumber:         rec.PropertyFaxNumber,
		Rating:            rec.SabrePropertyRating,
		Latitude:          rec.PropertyLatitude,
		Longitude:         rec.PropertyLongitude,
		SourceGroupCode:   rec.SourceGroupCode,
		DistanceToAirport: rec.DistanceToTheAirport,
		RoomsNumber:       rec.RoomsNumber,
		FloorsNumber:      rec.FloorsNumber,
		HotelStars:        rec.HotelStars,
	}
}

// Bulk-loads hotels from a JSON file through the same create path the
// API uses, a bounded number at a time.
func main() {
	file := flag.String("file", "hotels.json", "path to the JSON array of hotels to import")
	flag.Parse()

	ctx := context.Background()
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("read import file failed")
	}
	var records []hotelRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		log.Fatal().Err(err).Msg("import file is not a JSON array of hotels")
	}

	log.Info().
		Str("file", *file).
		Int("hotels", len(records)).
		Int("workers", cfg.Workers).
		Msg("importer starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}

	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	hotels := app.NewHotelService(repo, cache, cfg.CacheTTL)

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, rec := range records {
		rec := rec

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(int64(1))

			hv, err := hotels.Create(ctx, rec.hotel(), rec.ManagerUsername)
			if err != nil {
				log.Warn().Str("name", rec.GlobalPropertyName).Err(err).Msg("import failed")
				return
			}
			log.Info().Int64("id", hv.ID).Str("name", hv.Name).Msg("import ok")
		}()
	}

	wg.Wait()
	log.Info().Msg("import completed")
}
