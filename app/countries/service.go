package countries

import (
	"context"
	"errors"

	"github.com/joefazee/atlas/internal/logger"
	"github.com/joefazee/atlas/internal/sanitizer"
	"github.com/joefazee/atlas/internal/validator"
	"github.com/joefazee/atlas/models"
	"golang.org/x/text/language"
)

// LoadError carries the failure of the last collection load. Its message is
// the raw failure message shown to the user.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string { return e.Err.Error() }

func (e *LoadError) Unwrap() error { return e.Err }

type service struct {
	loader    *Loader
	sessions  SessionStore
	sanitizer sanitizer.HTMLStripperer
	config    *Config
	locale    language.Tag
	metrics   *Metrics
	log       logger.Logger
}

// NewService creates a new country browsing service
func NewService(loader *Loader,
	sessions SessionStore,
	stripper sanitizer.HTMLStripperer,
	config *Config,
	metrics *Metrics,
	log logger.Logger) Service {
	if log == nil {
		log = logger.NewNullLogger()
	}
	locale, err := language.Parse(config.Locale)
	if err != nil {
		locale = language.AmericanEnglish
	}
	return &service{
		loader:    loader,
		sessions:  sessions,
		sanitizer: stripper,
		config:    config,
		locale:    locale,
		metrics:   metrics,
		log:       log,
	}
}

func (s *service) Status(_ context.Context) StatusResponse {
	snap := s.loader.Snapshot()
	return ToStatusResponse(&snap)
}

func (s *service) Reload(ctx context.Context) StatusResponse {
	s.loader.Reload(ctx)
	return s.Status(ctx)
}

func (s *service) View(ctx context.Context, sessionID string) (*ViewResponse, error) {
	ctrl, before, err := s.restore(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	// the collection may have shrunk since the state was saved
	if ctrl.State() != before {
		s.save(ctx, sessionID, ctrl)
	}
	view := ctrl.View()
	return ToViewResponse(&view, s.locale), nil
}

func (s *service) SetQuery(ctx context.Context, sessionID, query string) (*ViewResponse, error) {
	query, err := s.cleanQuery(query)
	if err != nil {
		return nil, err
	}

	ctrl, _, err := s.restore(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	ctrl.SetQuery(query)
	s.save(ctx, sessionID, ctrl)

	view := ctrl.View()
	s.metrics.IncSearch(view.NoResults)
	return ToViewResponse(&view, s.locale), nil
}

func (s *service) GoToPage(ctx context.Context, sessionID string, dir Direction) (*ViewResponse, error) {
	if dir != DirectionPrevious && dir != DirectionNext {
		return nil, models.ErrInvalidDirection
	}

	ctrl, _, err := s.restore(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := ctrl.GoToPage(dir); err != nil {
		return nil, err
	}
	s.save(ctx, sessionID, ctrl)
	s.metrics.IncNavigation(dir)

	view := ctrl.View()
	return ToViewResponse(&view, s.locale), nil
}

// restore builds the session's controller over the ready collection.
func (s *service) restore(ctx context.Context, sessionID string) (*Controller, models.SearchState, error) {
	records, err := s.readyRecords()
	if err != nil {
		return nil, models.SearchState{}, err
	}

	state, err := s.sessions.Load(ctx, sessionID)
	if errors.Is(err, models.ErrInvalidSessionKey) {
		return nil, models.SearchState{}, err
	}
	if err != nil {
		// an unreachable store degrades to a fresh session
		s.log.Warn("session load failed, starting fresh", map[string]interface{}{
			"error": err.Error(),
		})
		state = models.NewSearchState()
	}

	return RestoreController(records, s.config.PageSize, state), state, nil
}

func (s *service) save(ctx context.Context, sessionID string, ctrl *Controller) {
	if err := s.sessions.Save(ctx, sessionID, ctrl.State()); err != nil {
		s.log.Warn("session save failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *service) readyRecords() ([]models.Country, error) {
	snap := s.loader.Snapshot()
	switch snap.State {
	case StateReady:
		return snap.Records, nil
	case StateError:
		return nil, &LoadError{Err: snap.Err}
	default:
		return nil, models.ErrCollectionLoading
	}
}

func (s *service) cleanQuery(query string) (string, error) {
	if s.sanitizer != nil {
		query = s.sanitizer.StripHTML(query)
	}
	if !validator.MaxRunes(query, s.config.MaxQueryRunes) {
		return "", models.ErrQueryTooLong
	}
	return query, nil
}
