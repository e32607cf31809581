package countries

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/joefazee/atlas/internal/cache"
	"github.com/joefazee/atlas/internal/sanitizer"
	"github.com/joefazee/atlas/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const testSessionID = "5f0c6c1e-8b7a-4a52-9d43-0c1f4e2a9b11"

type brokenSessionStore struct{}

func (brokenSessionStore) Load(context.Context, string) (models.SearchState, error) {
	return models.SearchState{}, errors.New("connection refused")
}

func (brokenSessionStore) Save(context.Context, string, models.SearchState) error {
	return errors.New("connection refused")
}

type ServiceTestSuite struct {
	suite.Suite
	repo     *MockRepository
	loader   *Loader
	sessions SessionStore
	store    *cache.MemoryCache[models.SearchState]
	registry *prometheus.Registry
	service  Service
	ctx      context.Context
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = new(MockRepository)
	s.store = cache.NewMemoryCache[models.SearchState]()
	s.sessions = NewSessionStore(s.store, time.Hour)
	s.registry = prometheus.NewRegistry()

	cfg := GetDefaultConfig()
	metrics := NewMetrics(s.registry)
	s.loader = NewLoader(s.repo, cfg, nil, metrics)
	s.service = NewService(s.loader, s.sessions, sanitizer.NewHTMLStripper(), cfg, metrics, nil)
}

func (s *ServiceTestSuite) TearDownTest() {
	_ = s.store.Close()
}

func (s *ServiceTestSuite) load(records []models.Country, err error) {
	s.repo.On("FetchAll", mock.Anything).Return(records, err).Once()
	s.loader.Reload(s.ctx)

	ctx, cancel := context.WithTimeout(s.ctx, 2*time.Second)
	defer cancel()
	_, waitErr := s.loader.Wait(ctx)
	s.Require().NoError(waitErr)
}

func (s *ServiceTestSuite) TestView_Loading() {
	view, err := s.service.View(s.ctx, testSessionID)

	s.Nil(view)
	s.ErrorIs(err, models.ErrCollectionLoading)
	s.Equal("loading", s.service.Status(s.ctx).State)
}

func (s *ServiceTestSuite) TestView_LoadError() {
	s.load(nil, &StatusError{StatusCode: 404, StatusText: "Not Found"})

	view, err := s.service.View(s.ctx, testSessionID)
	s.Nil(view)

	var loadErr *LoadError
	s.Require().True(errors.As(err, &loadErr))
	s.Equal("Failed to fetch data. Status: 404 Not Found", loadErr.Error())

	var statusErr *StatusError
	s.True(errors.As(err, &statusErr))

	status := s.service.Status(s.ctx)
	s.Equal("error", status.State)
	s.Equal("Failed to fetch data. Status: 404 Not Found", status.Error)
	s.Nil(status.LoadedAt)
}

func (s *ServiceTestSuite) TestView_InitialPage() {
	s.load(makeCountries(45), nil)

	view, err := s.service.View(s.ctx, testSessionID)
	s.Require().NoError(err)
	s.Equal(1, view.CurrentPage)
	s.Equal(3, view.TotalPages)
	s.Len(view.Countries, 20)
	s.Equal("Country 001", view.Countries[0].Name)
	s.Equal("1,000", view.Countries[0].PopulationDisplay)

	status := s.service.Status(s.ctx)
	s.Equal("ready", status.State)
	s.Equal(45, status.Records)
	s.NotNil(status.LoadedAt)
}

func (s *ServiceTestSuite) TestSetQuery_PersistsPerSession() {
	s.load(sampleCountries(), nil)

	view, err := s.service.SetQuery(s.ctx, testSessionID, "united")
	s.Require().NoError(err)
	s.Equal("united", view.Query)
	s.Equal(2, view.MatchCount)

	view, err = s.service.View(s.ctx, testSessionID)
	s.Require().NoError(err)
	s.Equal("united", view.Query)
	s.Len(view.Countries, 2)

	other, err := s.service.View(s.ctx, "another-session-id")
	s.Require().NoError(err)
	s.Equal("", other.Query)
	s.Len(other.Countries, len(sampleCountries()))

	s.Equal(1.0, metricValue(s.T(), s.registry, "atlas_countries_searches_total", map[string]string{"outcome": "matched"}))
}

func (s *ServiceTestSuite) TestSetQuery_StripsMarkup() {
	s.load(sampleCountries(), nil)

	view, err := s.service.SetQuery(s.ctx, testSessionID, "<b>Nig</b><script>alert(1)</script>")
	s.Require().NoError(err)
	s.Equal("Nig", view.Query)
	s.Equal(2, view.MatchCount)
}

func (s *ServiceTestSuite) TestSetQuery_TooLong() {
	s.load(sampleCountries(), nil)

	view, err := s.service.SetQuery(s.ctx, testSessionID, strings.Repeat("a", 101))
	s.Nil(view)
	s.ErrorIs(err, models.ErrQueryTooLong)
}

func (s *ServiceTestSuite) TestSetQuery_NoResults() {
	s.load(sampleCountries(), nil)

	view, err := s.service.SetQuery(s.ctx, testSessionID, "atlantis")
	s.Require().NoError(err)
	s.True(view.NoResults)
	s.Empty(view.Countries)
	s.Equal(1.0, metricValue(s.T(), s.registry, "atlas_countries_searches_total", map[string]string{"outcome": "no_results"}))
}

func (s *ServiceTestSuite) TestGoToPage() {
	s.load(makeCountries(45), nil)

	view, err := s.service.GoToPage(s.ctx, testSessionID, DirectionNext)
	s.Require().NoError(err)
	s.Equal(2, view.CurrentPage)
	s.Equal("Country 021", view.Countries[0].Name)

	view, err = s.service.GoToPage(s.ctx, testSessionID, DirectionNext)
	s.Require().NoError(err)
	s.Equal(3, view.CurrentPage)

	view, err = s.service.GoToPage(s.ctx, testSessionID, DirectionNext)
	s.Require().NoError(err)
	s.Equal(3, view.CurrentPage)

	view, err = s.service.SetQuery(s.ctx, testSessionID, "country")
	s.Require().NoError(err)
	s.Equal(1, view.CurrentPage)

	s.Equal(3.0, metricValue(s.T(), s.registry, "atlas_countries_page_navigations_total", map[string]string{"direction": "next"}))
}

func (s *ServiceTestSuite) TestGoToPage_InvalidDirection() {
	s.load(makeCountries(45), nil)

	view, err := s.service.GoToPage(s.ctx, testSessionID, Direction("up"))
	s.Nil(view)
	s.ErrorIs(err, models.ErrInvalidDirection)
}

func (s *ServiceTestSuite) TestInvalidSessionKey() {
	s.load(sampleCountries(), nil)

	_, err := s.service.View(s.ctx, "short")
	s.ErrorIs(err, models.ErrInvalidSessionKey)
}

func (s *ServiceTestSuite) TestView_ClampsAfterCollectionShrinks() {
	s.load(makeCountries(45), nil)
	_, err := s.service.GoToPage(s.ctx, testSessionID, DirectionNext)
	s.Require().NoError(err)
	_, err = s.service.GoToPage(s.ctx, testSessionID, DirectionNext)
	s.Require().NoError(err)

	s.load(makeCountries(5), nil)

	view, err := s.service.View(s.ctx, testSessionID)
	s.Require().NoError(err)
	s.Equal(1, view.CurrentPage)
	s.Len(view.Countries, 5)

	saved, err := s.sessions.Load(s.ctx, testSessionID)
	s.Require().NoError(err)
	s.Equal(1, saved.CurrentPage)
}

func (s *ServiceTestSuite) TestReload() {
	s.load(nil, errors.New("dial tcp: connection refused"))
	s.Equal("error", s.service.Status(s.ctx).State)

	release := make(chan time.Time)
	s.repo.On("FetchAll", mock.Anything).Return(sampleCountries(), nil).Once().WaitUntil(release)
	status := s.service.Reload(s.ctx)
	s.Equal("loading", status.State)
	close(release)

	ctx, cancel := context.WithTimeout(s.ctx, 2*time.Second)
	defer cancel()
	snap, err := s.loader.Wait(ctx)
	s.Require().NoError(err)
	s.Equal(StateReady, snap.State)
	s.repo.AssertNumberOfCalls(s.T(), "FetchAll", 2)
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func TestService_BrokenSessionStoreStartsFresh(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FetchAll", mock.Anything).Return(makeCountries(45), nil)

	cfg := GetDefaultConfig()
	loader := NewLoader(repo, cfg, nil, nil)
	loader.Reload(context.Background())
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := loader.Wait(ctx)
	require.NoError(t, err)

	svc := NewService(loader, brokenSessionStore{}, nil, cfg, nil, nil)

	view, err := svc.GoToPage(context.Background(), testSessionID, DirectionNext)
	require.NoError(t, err)
	assert.Equal(t, 2, view.CurrentPage)

	view, err = svc.View(context.Background(), testSessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.CurrentPage)
}

func TestNewService_FallbackLocale(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FetchAll", mock.Anything).Return([]models.Country{
		{CommonName: "India", Population: 1380004385, Code: "IND", AlphaTwo: "IN"},
	}, nil)

	cfg := GetDefaultConfig()
	cfg.Locale = "not a locale!"
	loader := NewLoader(repo, cfg, nil, nil)
	loader.Reload(context.Background())
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := loader.Wait(ctx)
	require.NoError(t, err)

	svc := NewService(loader, NewSessionStore(cache.NewMemoryCache[models.SearchState](), time.Hour), nil, cfg, nil, nil)
	view, err := svc.View(context.Background(), testSessionID)
	require.NoError(t, err)
	require.Len(t, view.Countries, 1)
	assert.Equal(t, "1,380,004,385", view.Countries[0].PopulationDisplay)
	assert.Equal(t, "+91", view.Countries[0].DialingCode)
}
