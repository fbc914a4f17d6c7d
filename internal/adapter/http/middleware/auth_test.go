package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/mock/gomock"

	"tsmit_os/internal/adapter/http/handlers/mocks"
	"tsmit_os/internal/domain/entities"
	"tsmit_os/internal/usecase"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims jwt.RegisteredClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return raw
}

func validClaims(sub string) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Subject:   sub,
		Issuer:    "tsmit-idp",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
}

func newAuthRouter(a *Authenticator) *gin.Engine {
	r := gin.New()
	r.GET("/v1/auth/me", a.RequireAuth(), func(c *gin.Context) {
		actor, ok := Actor(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.String(http.StatusOK, actor.ID)
	})
	return r
}

func doGet(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticator_RequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("valid token sets actor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := mocks.NewMockIUserUseCase(ctrl)
		users.EXPECT().GetByID(gomock.Any(), "u1").Return(entities.User{ID: "u1", Name: "Ana", RoleID: "analyst"}, nil)

		r := newAuthRouter(NewAuthenticator(testSecret, "tsmit-idp", users))
		w := doGet(r, "Bearer "+signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims("u1")))

		if w.Code != http.StatusOK || w.Body.String() != "u1" {
			t.Fatalf("expected 200 u1, got %d %s", w.Code, w.Body.String())
		}
	})

	rejected := []struct {
		name   string
		header func(t *testing.T) string
	}{
		{"missing header", func(*testing.T) string { return "" }},
		{"wrong scheme", func(t *testing.T) string {
			return "Basic " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims("u1"))
		}},
		{"wrong secret", func(t *testing.T) string {
			return "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte("other"), validClaims("u1"))
		}},
		{"expired", func(t *testing.T) string {
			c := validClaims("u1")
			c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
			return "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), c)
		}},
		{"wrong issuer", func(t *testing.T) string {
			c := validClaims("u1")
			c.Issuer = "someone-else"
			return "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), c)
		}},
		{"wrong algorithm", func(t *testing.T) string {
			return "Bearer " + signToken(t, jwt.SigningMethodHS512, []byte(testSecret), validClaims("u1"))
		}},
		{"no subject", func(t *testing.T) string {
			return "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims(""))
		}},
	}
	for _, tc := range rejected {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			users := mocks.NewMockIUserUseCase(ctrl)

			r := newAuthRouter(NewAuthenticator(testSecret, "tsmit-idp", users))
			w := doGet(r, tc.header(t))

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", w.Code)
			}
		})
	}

	t.Run("unknown user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := mocks.NewMockIUserUseCase(ctrl)
		users.EXPECT().GetByID(gomock.Any(), "ghost").Return(entities.User{}, usecase.ErrUserNotFound)

		r := newAuthRouter(NewAuthenticator(testSecret, "", users))
		w := doGet(r, "Bearer "+signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims("ghost")))

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("user store failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := mocks.NewMockIUserUseCase(ctrl)
		users.EXPECT().GetByID(gomock.Any(), "u1").Return(entities.User{}, errors.New("dynamodb down"))

		r := newAuthRouter(NewAuthenticator(testSecret, "", users))
		w := doGet(r, "Bearer "+signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims("u1")))

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}

func TestBearerToken(t *testing.T) {
	cases := map[string]string{
		"Bearer abc":   "abc",
		"bearer  abc ": "abc",
		"Bearer":       "",
		"Bearer   ":    "",
		"Token abc":    "",
	}
	for header, want := range cases {
		got, ok := bearerToken(header)
		if got != want || ok != (want != "") {
			t.Fatalf("bearerToken(%q) = %q, %v", header, got, ok)
		}
	}
}
