package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"tsmit_os/internal/domain/entities"
	"tsmit_os/internal/usecase"
	"tsmit_os/pkg"
)

const actorKey = "actor"

var (
	errMissingToken = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Missing bearer token", http.StatusUnauthorized)
	errInvalidToken = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Invalid or expired token", http.StatusUnauthorized)
	errUnknownUser  = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Unknown user", http.StatusUnauthorized)
)

var errNoSubject = errors.New("token has no subject")

// UserLookup resolves the token subject to a user.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (entities.User, error)
}

// Authenticator validates HS256 bearer tokens issued by the identity
// provider. The sub claim is the user id.
type Authenticator struct {
	secret []byte
	issuer string
	users  UserLookup
}

func NewAuthenticator(secret, issuer string, users UserLookup) *Authenticator {
	return &Authenticator{secret: []byte(secret), issuer: strings.TrimSpace(issuer), users: users}
}

// RequireAuth rejects the request with 401 unless it carries a valid token
// for a known user, and stores that user as the acting user.
func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abort(c, errMissingToken)
			return
		}

		subject, err := a.Subject(raw)
		if err != nil {
			logrus.WithField("component", "auth").WithError(err).Debug("token rejected")
			abort(c, errInvalidToken)
			return
		}

		user, err := a.users.GetByID(c.Request.Context(), subject)
		switch {
		case errors.Is(err, usecase.ErrUserNotFound), errors.Is(err, usecase.ErrInvalidID), err == nil && user.ID == "":
			abort(c, errUnknownUser)
			return
		case err != nil:
			logrus.WithField("component", "auth").WithError(err).Error("load acting user")
			abort(c, pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError))
			return
		}

		SetActor(c, user)
		c.Next()
	}
}

// Subject validates raw and returns its sub claim.
func (a *Authenticator) Subject(raw string) (string, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	var claims jwt.RegisteredClaims
	if _, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, opts...); err != nil {
		return "", err
	}
	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return "", errNoSubject
	}
	return subject, nil
}

func SetActor(c *gin.Context, user entities.User) {
	c.Set(actorKey, user)
}

// Actor returns the acting user stored by RequireAuth.
func Actor(c *gin.Context) (entities.User, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return entities.User{}, false
	}
	user, ok := v.(entities.User)
	return user, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func abort(c *gin.Context, appErr *pkg.AppError) {
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
