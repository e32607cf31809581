package countries

import (
	"context"

	"github.com/joefazee/atlas/models"
)

// Repository supplies the full country collection in one call
type Repository interface {
	FetchAll(ctx context.Context) ([]models.Country, error)
}

// SourceResetter is implemented by repositories that guard the upstream
// with a circuit breaker. A retry after a failed load resets it.
type SourceResetter interface {
	ResetSource()
}

// SessionStore keeps the search state of each browser session between requests
type SessionStore interface {
	Load(ctx context.Context, sessionID string) (models.SearchState, error)
	Save(ctx context.Context, sessionID string, state models.SearchState) error
}

// Service defines the interface for the country browsing logic
type Service interface {
	Status(ctx context.Context) StatusResponse
	View(ctx context.Context, sessionID string) (*ViewResponse, error)
	SetQuery(ctx context.Context, sessionID, query string) (*ViewResponse, error)
	GoToPage(ctx context.Context, sessionID string, dir Direction) (*ViewResponse, error)
	Reload(ctx context.Context) StatusResponse
}
