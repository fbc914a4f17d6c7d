package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"go.uber.org/mock/gomock"

	"tsmit_os/internal/adapter/http/dto/response"
	"tsmit_os/internal/adapter/http/handlers/mocks"
	"tsmit_os/internal/domain/dashboard"
	"tsmit_os/internal/domain/entities"
	"tsmit_os/internal/usecase"
)

func TestDashboardHandler_Stats(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIDashboardUseCase(ctrl)
		h := NewDashboardHandler(uc)
		r := newRouter(&analyst)
		r.GET("/v1/dashboard", h.Stats)

		uc.EXPECT().Stats(gomock.Any(), analyst).Return(dashboard.Stats{
			TotalCount:  3,
			ActiveCount: 2,
			FinalCount:  1,
			PerStatus:   []dashboard.StatusCount{{Status: entities.Status{ID: "open", Name: "Aberta"}, Count: 2}},
		}, nil)

		w := doJSON(r, http.MethodGet, "/v1/dashboard", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var res response.DashboardResponse
		if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if res.TotalCount != 3 || res.ActiveCount+res.FinalCount+res.UnknownCount != res.TotalCount {
			t.Fatalf("unexpected counts: %+v", res)
		}
	})

	t.Run("forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIDashboardUseCase(ctrl)
		h := NewDashboardHandler(uc)
		r := newRouter(&analyst)
		r.GET("/v1/dashboard", h.Stats)

		uc.EXPECT().Stats(gomock.Any(), gomock.Any()).Return(dashboard.Stats{}, usecase.ErrForbidden)

		w := doJSON(r, http.MethodGet, "/v1/dashboard", "")
		if w.Code != http.StatusForbidden || errorCode(t, w) != "FORBIDDEN" {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})
}

func TestMeAndPing(t *testing.T) {
	r := newRouter(&analyst)
	r.GET("/v1/auth/me", Me)
	r.GET("/v1/ping", Ping)

	w := doJSON(r, http.MethodGet, "/v1/auth/me", "")
	var me response.UserResponse
	if err := json.Unmarshal(w.Body.Bytes(), &me); err != nil || me.ID != "u1" || me.RoleID != "analyst" {
		t.Fatalf("unexpected me body %s (%v)", w.Body.String(), err)
	}

	if w := doJSON(r, http.MethodGet, "/v1/ping", ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	anon := newRouter(nil)
	anon.GET("/v1/auth/me", Me)
	if w := doJSON(anon, http.MethodGet, "/v1/auth/me", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
