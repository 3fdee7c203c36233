package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/sutram/service-registry/internal/core/domain"
)

const (
	// SessionCookie carries the signed session token.
	SessionCookie = "sutram_session"
	// LoginPath is where anonymous requests to protected routes are sent.
	LoginPath = "/login"

	ctxUserID   = "user_id"
	ctxUsername = "username"
)

type SessionConfig struct {
	Secret string
	// TTL bounds a session that was not remembered. The cookie itself ends
	// with the browser session.
	TTL time.Duration
	// RememberMe is the lifetime of a remembered session and its cookie.
	RememberMe time.Duration
	Secure     bool
}

// Identity is the authenticated user attached to a request.
type Identity struct {
	UserID   int64
	Username string
}

type sessionClaims struct {
	UserID   int64  `json:"uid"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Sessions issues and verifies HS256 session tokens kept in an HttpOnly
// cookie.
type Sessions struct {
	cfg SessionConfig
	now func() time.Time
}

func NewSessions(cfg SessionConfig) *Sessions {
	return &Sessions{cfg: cfg, now: time.Now}
}

// Issue replaces any previous session with one for user.
func (s *Sessions) Issue(c echo.Context, user *domain.User, remember bool) error {
	now := s.now()
	ttl := s.cfg.TTL
	if remember {
		ttl = s.cfg.RememberMe
	}

	claims := sessionClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return err
	}

	cookie := s.cookie(signed)
	if remember {
		cookie.MaxAge = int(ttl.Seconds())
		cookie.Expires = now.Add(ttl)
	}
	c.SetCookie(cookie)
	return nil
}

// Clear expires the session cookie.
func (s *Sessions) Clear(c echo.Context) {
	cookie := s.cookie("")
	cookie.MaxAge = -1
	cookie.Expires = time.Unix(0, 0)
	c.SetCookie(cookie)
}

// Read returns the identity of a valid session cookie, if any.
func (s *Sessions) Read(c echo.Context) (Identity, bool) {
	cookie, err := c.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return Identity{}, false
	}

	claims := &sessionClaims{}
	tkn, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !tkn.Valid || claims.UserID == 0 {
		return Identity{}, false
	}
	return Identity{UserID: claims.UserID, Username: claims.Username}, true
}

// Require lets authenticated requests through with their identity in the
// context and redirects everyone else to the login page.
func (s *Sessions) Require() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := s.Read(c)
			if !ok {
				return c.Redirect(http.StatusFound, LoginPath)
			}
			c.Set(ctxUserID, id.UserID)
			c.Set(ctxUsername, id.Username)
			return next(c)
		}
	}
}

// CurrentIdentity returns the identity Require attached to c.
func CurrentIdentity(c echo.Context) (Identity, error) {
	id, _ := c.Get(ctxUserID).(int64)
	name, _ := c.Get(ctxUsername).(string)
	if id == 0 {
		return Identity{}, errors.New("no session identity in context")
	}
	return Identity{UserID: id, Username: name}, nil
}

func (s *Sessions) cookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
