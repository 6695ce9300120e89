package auth

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	XUserRoleHeader = "x-user-role"
	XUserIDHeader   = "x-user-id"

	AuthorizationHeader = "Authorization"
	bearer              = "Bearer "

	RoleAdmin = "admin"
	RoleUser  = "user"
)

var (
	ErrNoIdentity = errors.New("no identity")
	ErrBadToken   = errors.New("invalid token")
)

type Config struct {
	Secret string        `yaml:"secret" envconfig:"JWT_SECRET" default:"library-system-secret"`
	TTL    time.Duration `yaml:"ttl" envconfig:"JWT_TTL" default:"24h"`
}

type Claims struct {
	Profile struct {
		UserID int    `json:"userId"`
		Role   string `json:"role"`
	} `json:"profile"`
	jwt.RegisteredClaims
}

// Identity is the resolved caller: either verified token claims or
// the legacy capability headers.
type Identity struct {
	UserID int
	Role   string
}

type ctxKey int

const identityKey ctxKey = iota + 1

func SetAuthContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// NewToken issues an HS256 token carrying userID and role.
func NewToken(cfg Config, userID int, role string) (string, time.Time, error) {
	expiresAt := time.Now().Add(cfg.TTL)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	claims.Profile.UserID = userID
	claims.Profile.Role = role

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "token.SignedString")
	}
	return signed, expiresAt, nil
}

func ParseToken(cfg Config, tokenStr string) (Identity, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrBadToken
	}
	return Identity{UserID: claims.Profile.UserID, Role: claims.Profile.Role}, nil
}

// Resolve extracts the caller identity. A valid Bearer token wins;
// otherwise the caller-asserted x-user-role/x-user-id headers apply.
// The headers carry no verification: kept for API compatibility only.
func Resolve(cfg Config, c echo.Context) (Identity, error) {
	req := c.Request()
	if authorization := req.Header.Get(AuthorizationHeader); authorization != "" {
		if !strings.HasPrefix(authorization, bearer) {
			return Identity{}, ErrBadToken
		}
		return ParseToken(cfg, strings.TrimPrefix(authorization, bearer))
	}

	role := req.Header.Get(XUserRoleHeader)
	if role == "" {
		return Identity{}, ErrNoIdentity
	}
	id := Identity{Role: role}
	if rawID := req.Header.Get(XUserIDHeader); rawID != "" {
		userID, err := strconv.Atoi(rawID)
		if err != nil || userID <= 0 {
			return Identity{}, ErrNoIdentity
		}
		id.UserID = userID
	}
	return id, nil
}

// Middleware gates a route on an admin caller.
func IsAdmin(cfg Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := Resolve(cfg, c)
			if err != nil || id.Role != RoleAdmin {
				return forbidden(c, "Access denied. Admin only.")
			}
			setRequestIdentity(c, id)
			return next(c)
		}
	}
}

// IsUser gates a route on an authenticated user with a numeric identity.
func IsUser(cfg Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := Resolve(cfg, c)
			if err != nil || id.Role != RoleUser || id.UserID <= 0 {
				return forbidden(c, "Access denied. User authentication required.")
			}
			setRequestIdentity(c, id)
			return next(c)
		}
	}
}

func setRequestIdentity(c echo.Context, id Identity) {
	req := c.Request()
	c.SetRequest(req.WithContext(SetAuthContext(req.Context(), id)))
}

func forbidden(c echo.Context, msg string) error {
	return c.JSON(http.StatusForbidden, struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}{Success: false, Error: msg})
}
