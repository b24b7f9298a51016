package enrich

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arsh246/weather-app/internal/errs"
	"github.com/arsh246/weather-app/internal/models"
	"github.com/arsh246/weather-app/internal/providers"
	"github.com/arsh246/weather-app/internal/store"
)

type fakeWeather struct {
	weather providers.Weather
	err     error
}

func (f *fakeWeather) Current(context.Context, string) (providers.Weather, error) {
	return f.weather, f.err
}

func (f *fakeWeather) CurrentByCoords(context.Context, float64, float64) (providers.Weather, error) {
	return f.weather, f.err
}

type fakeGeo struct {
	loc  providers.Location
	city string
	err  error
}

func (f *fakeGeo) Locate(context.Context, string) (providers.Location, error) {
	return f.loc, f.err
}

func (f *fakeGeo) Reverse(context.Context, float64, float64) (string, error) {
	return f.city, f.err
}

type fakeVideos struct {
	videos []models.RelatedVideo
	err    error
}

func (f *fakeVideos) Search(context.Context, string) ([]models.RelatedVideo, error) {
	return f.videos, f.err
}

func parisProviders() (*fakeWeather, *fakeGeo, *fakeVideos) {
	w := &fakeWeather{weather: providers.Weather{
		City: "Paris", Temperature: 15.0, Description: "clear sky", Humidity: 60, WindSpeed: 4.2,
	}}
	g := &fakeGeo{loc: providers.Location{Latitude: 48.8566, Longitude: 2.3522}, city: "Paris"}
	v := &fakeVideos{videos: []models.RelatedVideo{
		{Title: "Paris Tour", URL: "https://www.youtube.com/watch?v=a1", Description: "a tour"},
	}}
	return w, g, v
}

func newTestPipeline(w WeatherFetcher, g Geocoder, v VideoSearcher, h store.HistoryStore, allowPartial bool) *Pipeline {
	return NewPipeline(w, g, v, h, allowPartial, zap.NewNop())
}

func TestHandleEnrichesAndPersists(t *testing.T) {
	ctx := context.Background()
	w, g, v := parisProviders()
	history := store.NewMemoryStore()

	rec, err := newTestPipeline(w, g, v, history, false).Handle(ctx, "Paris", "u1")
	require.NoError(t, err)

	assert.Equal(t, "Paris", rec.City)
	assert.Equal(t, 15.0, rec.Temperature)
	assert.Equal(t, "clear sky", rec.Weather)
	assert.Equal(t, 48.8566, rec.Latitude)
	assert.Equal(t, 2.3522, rec.Longitude)
	require.Len(t, rec.RelatedVideos, 1)
	assert.Equal(t, "Paris Tour", rec.RelatedVideos[0].Title)
	assert.Equal(t, "u1", rec.OwnerID)

	stored, err := history.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Paris", stored[0].City)
}

func TestHandleOwnerComesFromVerifiedUser(t *testing.T) {
	// The owner id is whatever the caller was verified as; there is no way
	// to smuggle a different one through the request.
	w, g, v := parisProviders()
	history := store.NewMemoryStore()

	rec, err := newTestPipeline(w, g, v, history, false).Handle(context.Background(), "Paris", "verified-uid")
	require.NoError(t, err)
	assert.Equal(t, "verified-uid", rec.OwnerID)
}

func TestHandleUnknownCityAppendsNothing(t *testing.T) {
	ctx := context.Background()
	_, g, v := parisProviders()
	w := &fakeWeather{err: fmt.Errorf("%w: city unknown", errs.ErrNotFound)}
	history := store.NewMemoryStore()

	_, err := newTestPipeline(w, g, v, history, false).Handle(ctx, "Nowhereville", "u1")
	assert.ErrorIs(t, err, errs.ErrNotFound)

	stored, err := history.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestHandleAllOrNothingByDefault(t *testing.T) {
	ctx := context.Background()
	w, _, v := parisProviders()
	g := &fakeGeo{err: fmt.Errorf("%w: geocoder down", errs.ErrUpstream)}
	history := store.NewMemoryStore()

	_, err := newTestPipeline(w, g, v, history, false).Handle(ctx, "Paris", "u1")
	assert.ErrorIs(t, err, errs.ErrUpstream)

	stored, err := history.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, stored, "a failed enrichment must not be persisted")
}

func TestHandlePartialPolicyKeepsWeather(t *testing.T) {
	ctx := context.Background()
	w, _, _ := parisProviders()
	g := &fakeGeo{err: fmt.Errorf("%w: geocoder down", errs.ErrUpstream)}
	v := &fakeVideos{err: fmt.Errorf("%w: no videos", errs.ErrNotFound)}
	history := store.NewMemoryStore()

	rec, err := newTestPipeline(w, g, v, history, true).Handle(ctx, "Paris", "u1")
	require.NoError(t, err)

	assert.Equal(t, "clear sky", rec.Weather)
	assert.Zero(t, rec.Latitude)
	assert.Zero(t, rec.Longitude)
	assert.Empty(t, rec.RelatedVideos)

	stored, err := history.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestHandlePartialPolicyStillFailsOnWeather(t *testing.T) {
	_, g, v := parisProviders()
	w := &fakeWeather{err: fmt.Errorf("%w: city unknown", errs.ErrNotFound)}

	_, err := newTestPipeline(w, g, v, store.NewMemoryStore(), true).Handle(context.Background(), "Nowhereville", "u1")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestHandleNoDeduplication(t *testing.T) {
	ctx := context.Background()
	w, g, v := parisProviders()
	history := store.NewMemoryStore()
	p := newTestPipeline(w, g, v, history, false)

	_, err := p.Handle(ctx, "Paris", "u1")
	require.NoError(t, err)
	_, err = p.Handle(ctx, "Paris", "u1")
	require.NoError(t, err)

	stored, err := history.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, stored, 2, "identical queries create distinct records")
}

func TestHandleCancelledContextAppendsNothing(t *testing.T) {
	w, g, v := parisProviders()
	history := store.NewMemoryStore()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestPipeline(w, g, v, history, false).Handle(ctx, "Paris", "u1")
	assert.Error(t, err)

	stored, err := history.List(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestHandleStorageFailureSurfaces(t *testing.T) {
	w, g, v := parisProviders()

	_, err := newTestPipeline(w, g, v, &failingStore{}, false).Handle(context.Background(), "Paris", "u1")
	assert.ErrorIs(t, err, errs.ErrStorage)
}

func TestHandleCoords(t *testing.T) {
	ctx := context.Background()
	w, g, v := parisProviders()
	history := store.NewMemoryStore()

	rec, err := newTestPipeline(w, g, v, history, false).HandleCoords(ctx, 48.8566, 2.3522, "u1")
	require.NoError(t, err)

	assert.Equal(t, "Paris", rec.City)
	assert.Equal(t, 48.8566, rec.Latitude)
	assert.Equal(t, 2.3522, rec.Longitude)

	stored, err := history.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestHandleCoordsReverseFailure(t *testing.T) {
	w, _, v := parisProviders()
	g := &fakeGeo{err: fmt.Errorf("%w: nothing nearby", errs.ErrNotFound)}
	history := store.NewMemoryStore()

	_, err := newTestPipeline(w, g, v, history, false).HandleCoords(context.Background(), 0, 0, "u1")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

type failingStore struct{}

func (f *failingStore) Append(context.Context, string, models.SearchRecord) (string, error) {
	return "", fmt.Errorf("%w: insert failed", errs.ErrStorage)
}

func (f *failingStore) List(context.Context, string) ([]models.StoredSearch, error) {
	return nil, fmt.Errorf("%w: find failed", errs.ErrStorage)
}

func (f *failingStore) Update(context.Context, string, string, store.SearchUpdate) error {
	return fmt.Errorf("%w: update failed", errs.ErrStorage)
}

func (f *failingStore) Delete(context.Context, string, string) error {
	return fmt.Errorf("%w: delete failed", errs.ErrStorage)
}

func (f *failingStore) ExportAll(context.Context, string) ([]models.SearchRecord, error) {
	return nil, fmt.Errorf("%w: find failed", errs.ErrStorage)
}
