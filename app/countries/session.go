package countries

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joefazee/atlas/internal/cache"
	"github.com/joefazee/atlas/internal/logger"
	"github.com/joefazee/atlas/internal/security"
	"github.com/joefazee/atlas/models"
)

const (
	SessionCookieName   = "atlas_session"
	SessionTokenHeader  = "X-Session-Token"
	sessionContextKey   = "countries_session_id"
	sessionKeyPrefix    = "countries:session:"
	minSessionKeyLength = 8
)

type sessionStore struct {
	cache cache.Cache[models.SearchState]
	ttl   time.Duration
}

// NewSessionStore keeps search states in c for ttl after their last save.
func NewSessionStore(c cache.Cache[models.SearchState], ttl time.Duration) SessionStore {
	return &sessionStore{cache: c, ttl: ttl}
}

// Load returns the saved state, or the initial state for an unknown session.
func (s *sessionStore) Load(ctx context.Context, sessionID string) (models.SearchState, error) {
	if len(sessionID) < minSessionKeyLength {
		return models.NewSearchState(), models.ErrInvalidSessionKey
	}
	state, err := s.cache.Get(ctx, sessionKeyPrefix+sessionID)
	if errors.Is(err, cache.ErrCacheMiss) {
		return models.NewSearchState(), nil
	}
	if err != nil {
		return models.NewSearchState(), err
	}
	return state.Normalize(), nil
}

func (s *sessionStore) Save(ctx context.Context, sessionID string, state models.SearchState) error {
	if len(sessionID) < minSessionKeyLength {
		return models.ErrInvalidSessionKey
	}
	return s.cache.Set(ctx, sessionKeyPrefix+sessionID, state.Normalize(), s.ttl)
}

// SessionMiddleware resolves the caller's session from the cookie or the
// X-Session-Token header, issuing a fresh one when missing or invalid.
func SessionMiddleware(maker security.Maker, ttl time.Duration, secure bool, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, ok := sessionFromRequest(c, maker); ok {
			c.Set(sessionContextKey, id)
			c.Next()
			return
		}

		sessionID := uuid.New()
		token, _, err := maker.CreateToken(sessionID, ttl)
		if err != nil {
			log.Error(err, map[string]interface{}{"op": "create_session_token"})
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookieName, token, int(ttl.Seconds()), "/", "", secure, true)
		c.Header(SessionTokenHeader, token)
		c.Set(sessionContextKey, sessionID.String())
		c.Next()
	}
}

func sessionFromRequest(c *gin.Context, maker security.Maker) (string, bool) {
	token := strings.TrimSpace(c.GetHeader(SessionTokenHeader))
	if token == "" {
		token, _ = c.Cookie(SessionCookieName)
	}
	if token == "" {
		return "", false
	}
	payload, err := maker.VerifyToken(token)
	if err != nil {
		return "", false
	}
	return payload.SessionID.String(), true
}

// SessionID returns the id set by SessionMiddleware.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionContextKey)
}
