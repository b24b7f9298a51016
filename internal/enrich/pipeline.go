// Package enrich orchestrates the provider fan-out that turns a city query
// into a stored, enriched search record.
package enrich

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/arsh246/weather-app/internal/errs"
	"github.com/arsh246/weather-app/internal/models"
	"github.com/arsh246/weather-app/internal/providers"
	"github.com/arsh246/weather-app/internal/store"
)

// WeatherFetcher is the weather provider as the pipeline sees it.
type WeatherFetcher interface {
	Current(ctx context.Context, city string) (providers.Weather, error)
	CurrentByCoords(ctx context.Context, lat, lon float64) (providers.Weather, error)
}

// Geocoder resolves city names to coordinates and back.
type Geocoder interface {
	Locate(ctx context.Context, city string) (providers.Location, error)
	Reverse(ctx context.Context, lat, lon float64) (string, error)
}

// VideoSearcher finds related videos for a query.
type VideoSearcher interface {
	Search(ctx context.Context, query string) ([]models.RelatedVideo, error)
}

// Pipeline answers one weather query: fan out to the three providers, join,
// persist under the caller's collection, return the record. All collaborators
// are injected; the pipeline holds no other state.
type Pipeline struct {
	weather WeatherFetcher
	geo     Geocoder
	videos  VideoSearcher
	history store.HistoryStore

	// allowPartial keeps the request alive when geocoding or video search
	// fails; the record then carries zero coordinates or no videos. Weather
	// failures always fail the request.
	allowPartial bool

	log *zap.Logger
}

func NewPipeline(w WeatherFetcher, g Geocoder, v VideoSearcher, h store.HistoryStore, allowPartial bool, log *zap.Logger) *Pipeline {
	return &Pipeline{weather: w, geo: g, videos: v, history: h, allowPartial: allowPartial, log: log}
}

// Handle resolves weather, coordinates, and related videos for a city,
// appends the assembled record to the caller's history, and returns it.
// Identical consecutive queries re-fetch everything and append a new record
// each time; there is no caching or dedup.
func (p *Pipeline) Handle(ctx context.Context, city, userID string) (models.SearchRecord, error) {
	if city == "" {
		return models.SearchRecord{}, fmt.Errorf("%w: empty city", errs.ErrInvalid)
	}

	var (
		wg      sync.WaitGroup
		weather providers.Weather
		loc     providers.Location
		videos  []models.RelatedVideo

		weatherErr, geoErr, videoErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		weather, weatherErr = p.weather.Current(ctx, city)
	}()
	go func() {
		defer wg.Done()
		loc, geoErr = p.geo.Locate(ctx, city)
	}()
	go func() {
		defer wg.Done()
		videos, videoErr = p.videos.Search(ctx, city)
	}()
	wg.Wait()

	return p.assemble(ctx, userID, weather, weatherErr, loc, geoErr, videos, videoErr)
}

// HandleCoords is Handle for a coordinate pair: the city name comes from
// reverse geocoding and the geocode step is already answered.
func (p *Pipeline) HandleCoords(ctx context.Context, lat, lon float64, userID string) (models.SearchRecord, error) {
	city, err := p.geo.Reverse(ctx, lat, lon)
	if err != nil {
		return models.SearchRecord{}, err
	}

	var (
		wg      sync.WaitGroup
		weather providers.Weather
		videos  []models.RelatedVideo

		weatherErr, videoErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		weather, weatherErr = p.weather.CurrentByCoords(ctx, lat, lon)
	}()
	go func() {
		defer wg.Done()
		videos, videoErr = p.videos.Search(ctx, city)
	}()
	wg.Wait()

	loc := providers.Location{Latitude: lat, Longitude: lon}
	return p.assemble(ctx, userID, weather, weatherErr, loc, nil, videos, videoErr)
}

func (p *Pipeline) assemble(ctx context.Context, userID string,
	weather providers.Weather, weatherErr error,
	loc providers.Location, geoErr error,
	videos []models.RelatedVideo, videoErr error,
) (models.SearchRecord, error) {
	if weatherErr != nil {
		return models.SearchRecord{}, weatherErr
	}

	if geoErr != nil || videoErr != nil {
		if !p.allowPartial {
			return models.SearchRecord{}, errors.Join(geoErr, videoErr)
		}
		// Degraded result: keep the weather, blank the failed enrichment.
		if geoErr != nil {
			p.log.Warn("geocoding unavailable, returning weather without coordinates",
				zap.String("city", weather.City), zap.Error(geoErr))
			loc = providers.Location{}
		}
		if videoErr != nil {
			p.log.Warn("video search unavailable, returning weather without videos",
				zap.String("city", weather.City), zap.Error(videoErr))
			videos = nil
		}
	}

	// A cancelled request must not leave a record behind.
	if err := ctx.Err(); err != nil {
		return models.SearchRecord{}, err
	}

	rec := models.SearchRecord{
		City:          weather.City,
		Temperature:   weather.Temperature,
		Weather:       weather.Description,
		Humidity:      weather.Humidity,
		WindSpeed:     weather.WindSpeed,
		Latitude:      loc.Latitude,
		Longitude:     loc.Longitude,
		RelatedVideos: videos,
		OwnerID:       userID,
		CreatedAt:     time.Now(),
	}

	if _, err := p.history.Append(ctx, userID, rec); err != nil {
		return models.SearchRecord{}, err
	}
	return rec, nil
}
