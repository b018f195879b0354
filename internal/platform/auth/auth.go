// Package auth gates the admin surface. The admin dashboard exchanges the
// configured passkey for a short-lived HMAC-signed JWT, which RequireAdmin
// checks on every protected route.
package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// DefaultTokenTTL is how long an admin session token stays valid.
const DefaultTokenTTL = time.Hour

type adminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueAdminToken signs a fresh admin token with the shared secret.
func IssueAdminToken(secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := adminClaims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "carepulse",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func parseAdminToken(secret, tokenString string) error {
	claims := &adminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return err
	}
	if !token.Valid || claims.Role != "admin" {
		return jwt.ErrTokenInvalidClaims
	}
	return nil
}

// RequireAdmin rejects requests without a valid Bearer admin token.
func RequireAdmin(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenString == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}
			if err := parseAdminToken(secret, tokenString); err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			return next(c)
		}
	}
}

// DevBypass grants admin access to every request. Development only.
func DevBypass() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return next(c)
		}
	}
}

// Handler exposes the passkey login endpoint.
type Handler struct {
	passkey string
	secret  string
	ttl     time.Duration
}

func NewHandler(passkey, secret string) *Handler {
	return &Handler{passkey: passkey, secret: secret, ttl: DefaultTokenTTL}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/admin/login", h.Login)
}

type loginRequest struct {
	Passkey string `json:"passkey"`
}

// Login handles POST /admin/login.
func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if subtle.ConstantTimeCompare([]byte(req.Passkey), []byte(h.passkey)) != 1 {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid passkey")
	}
	token, err := IssueAdminToken(h.secret, h.ttl)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not issue token")
	}
	return c.JSON(http.StatusOK, map[string]string{"token": token})
}
