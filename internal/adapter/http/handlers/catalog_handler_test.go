package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"

	"tsmit_os/internal/adapter/http/dto/response"
	"tsmit_os/internal/adapter/http/handlers/mocks"
	"tsmit_os/internal/domain/entities"
	"tsmit_os/internal/usecase"
)

func mountCatalog(r *gin.Engine, path string, list, get, create, update, del gin.HandlerFunc) {
	g := r.Group(path)
	g.GET("", list)
	g.GET("/:id", get)
	g.POST("", create)
	g.PUT("/:id", update)
	g.DELETE("/:id", del)
}

func TestStatusHandler(t *testing.T) {
	open := entities.Status{ID: "open", Name: "Aberta", Position: 1}

	setup := func(t *testing.T) (*mocks.MockIStatusUseCase, *gin.Engine) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIStatusUseCase(ctrl)
		h := NewStatusHandler(uc)
		r := newRouter(&analyst)
		mountCatalog(r, "/v1/statuses", h.List, h.GetByID, h.Create, h.Update, h.Delete)
		return uc, r
	}

	t.Run("list", func(t *testing.T) {
		uc, r := setup(t)
		uc.EXPECT().List(gomock.Any()).Return([]entities.Status{open}, nil)

		w := doJSON(r, http.MethodGet, "/v1/statuses", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var res []response.StatusResponse
		if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil || len(res) != 1 || res[0].Name != "Aberta" {
			t.Fatalf("unexpected body %s (%v)", w.Body.String(), err)
		}
	})

	t.Run("create", func(t *testing.T) {
		uc, r := setup(t)
		uc.EXPECT().Create(gomock.Any(), analyst, usecase.StatusInput{Name: "Pronta", IsPickupStatus: true, Position: 3}).
			Return(entities.Status{ID: "ready", Name: "Pronta", IsPickupStatus: true, Position: 3}, nil)

		w := doJSON(r, http.MethodPost, "/v1/statuses", `{"name":"Pronta","isPickupStatus":true,"position":3}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("name taken", func(t *testing.T) {
		uc, r := setup(t)
		uc.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(entities.Status{}, usecase.ErrStatusNameTaken)

		w := doJSON(r, http.MethodPost, "/v1/statuses", `{"name":"aberta"}`)
		if w.Code != http.StatusConflict || errorCode(t, w) != "STATUS_NAME_TAKEN" {
			t.Fatalf("expected 409, got %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("update forbidden", func(t *testing.T) {
		uc, r := setup(t)
		uc.EXPECT().Update(gomock.Any(), analyst, "open", gomock.Any()).Return(entities.Status{}, usecase.ErrForbidden)

		w := doJSON(r, http.MethodPut, "/v1/statuses/open", `{"name":"Aberta"}`)
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("get missing", func(t *testing.T) {
		uc, r := setup(t)
		uc.EXPECT().GetByID(gomock.Any(), "ghost").Return(entities.Status{}, usecase.ErrStatusNotFound)

		w := doJSON(r, http.MethodGet, "/v1/statuses/ghost", "")
		if w.Code != http.StatusNotFound || errorCode(t, w) != "STATUS_NOT_FOUND" {
			t.Fatalf("expected 404, got %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("delete", func(t *testing.T) {
		uc, r := setup(t)
		uc.EXPECT().Delete(gomock.Any(), analyst, "open").Return(nil)

		w := doJSON(r, http.MethodDelete, "/v1/statuses/open", "")
		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		_, r := setup(t)
		w := doJSON(r, http.MethodPost, "/v1/statuses", `{"name":`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestRoleHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIRoleUseCase(ctrl)
	h := NewRoleHandler(uc)
	r := newRouter(&analyst)
	mountCatalog(r, "/v1/roles", h.List, h.GetByID, h.Create, h.Update, h.Delete)

	perms := map[string][]string{"service-orders": {"read", "update-status"}}
	uc.EXPECT().GetByID(gomock.Any(), "analyst").Return(entities.Role{ID: "analyst", Name: "Analista", Permissions: perms}, nil)
	uc.EXPECT().Create(gomock.Any(), analyst, usecase.RoleInput{Name: "Leitura", Permissions: map[string][]string{"dashboard": {"read"}}}).
		Return(entities.Role{ID: "r2", Name: "Leitura"}, nil)
	uc.EXPECT().Delete(gomock.Any(), analyst, "ghost").Return(usecase.ErrRoleNotFound)

	w := doJSON(r, http.MethodGet, "/v1/roles/analyst", "")
	var res response.RoleResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil || len(res.Permissions["service-orders"]) != 2 {
		t.Fatalf("unexpected role body %s (%v)", w.Body.String(), err)
	}

	if w := doJSON(r, http.MethodPost, "/v1/roles", `{"name":"Leitura","permissions":{"dashboard":["read"]}}`); w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodDelete, "/v1/roles/ghost", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestUserHandler_RoleNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIUserUseCase(ctrl)
	h := NewUserHandler(uc)
	r := newRouter(&analyst)
	mountCatalog(r, "/v1/users", h.List, h.GetByID, h.Create, h.Update, h.Delete)

	uc.EXPECT().Create(gomock.Any(), analyst, usecase.UserInput{Name: "Bia", Email: "bia@tsmit.com.br", RoleID: "nope"}).
		Return(entities.User{}, usecase.ErrRoleNotFound)
	uc.EXPECT().Update(gomock.Any(), analyst, "u9", gomock.Any()).Return(entities.User{}, usecase.ErrInvalidEmail)

	w := doJSON(r, http.MethodPost, "/v1/users", `{"name":"Bia","email":"bia@tsmit.com.br","roleId":"nope"}`)
	if w.Code != http.StatusUnprocessableEntity || errorCode(t, w) != "ROLE_NOT_FOUND" {
		t.Fatalf("expected 422 ROLE_NOT_FOUND, got %d %s", w.Code, w.Body.String())
	}
	if w := doJSON(r, http.MethodPut, "/v1/users/u9", `{"name":"Bia","email":"x"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestClientAndServiceHandlers(t *testing.T) {
	ctrl := gomock.NewController(t)
	clients := mocks.NewMockIClientUseCase(ctrl)
	services := mocks.NewMockIServiceUseCase(ctrl)
	ch := NewClientHandler(clients)
	sh := NewServiceHandler(services)
	r := newRouter(&analyst)
	mountCatalog(r, "/v1/clients", ch.List, ch.GetByID, ch.Create, ch.Update, ch.Delete)
	mountCatalog(r, "/v1/services", sh.List, sh.GetByID, sh.Create, sh.Update, sh.Delete)

	clients.EXPECT().Update(gomock.Any(), analyst, "c1", usecase.ClientInput{Name: "ACME", CNPJ: "00.000.000/0001-00"}).
		Return(entities.Client{ID: "c1", Name: "ACME", CNPJ: "00.000.000/0001-00"}, nil)
	clients.EXPECT().GetByID(gomock.Any(), "ghost").Return(entities.Client{}, usecase.ErrClientNotFound)
	services.EXPECT().List(gomock.Any()).Return(nil, nil)
	services.EXPECT().Create(gomock.Any(), analyst, gomock.Any()).Return(entities.Service{}, usecase.ErrInvalidName)

	if w := doJSON(r, http.MethodPut, "/v1/clients/c1", `{"name":"ACME","cnpj":"00.000.000/0001-00"}`); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodGet, "/v1/clients/ghost", ""); w.Code != http.StatusNotFound || errorCode(t, w) != "CLIENT_NOT_FOUND" {
		t.Fatalf("expected 404 CLIENT_NOT_FOUND, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodGet, "/v1/services", ""); w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Fatalf("expected 200 [], got %d %s", w.Code, w.Body.String())
	}
	if w := doJSON(r, http.MethodPost, "/v1/services", `{"name":" "}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCatalogHandler_WritesRequireActor(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewClientHandler(mocks.NewMockIClientUseCase(ctrl))
	r := newRouter(nil)
	mountCatalog(r, "/v1/clients", h.List, h.GetByID, h.Create, h.Update, h.Delete)

	for _, m := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		path := "/v1/clients"
		if m != http.MethodPost {
			path += "/c1"
		}
		if w := doJSON(r, m, path, `{}`); w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", m, w.Code)
		}
	}
}

func TestClientHandler_ServiceIDs(t *testing.T) {
	ctrl := gomock.NewController(t)
	clients := mocks.NewMockIClientUseCase(ctrl)
	h := NewClientHandler(clients)
	r := newRouter(&analyst)
	mountCatalog(r, "/v1/clients", h.List, h.GetByID, h.Create, h.Update, h.Delete)

	clients.EXPECT().Create(gomock.Any(), analyst, usecase.ClientInput{Name: "ACME", ServiceIDs: []string{"svc-1"}}).
		Return(entities.Client{ID: "c1", Name: "ACME", ServiceIDs: []string{"svc-1"}}, nil)
	clients.EXPECT().Create(gomock.Any(), analyst, usecase.ClientInput{Name: "ACME", ServiceIDs: []string{"svc-x"}}).
		Return(entities.Client{}, usecase.ErrServiceNotFound)
	clients.EXPECT().GetByID(gomock.Any(), "c2").Return(entities.Client{ID: "c2", Name: "Beta"}, nil)

	w := doJSON(r, http.MethodPost, "/v1/clients", `{"name":"ACME","serviceIds":["svc-1"]}`)
	if w.Code != http.StatusCreated || !strings.Contains(w.Body.String(), `"serviceIds":["svc-1"]`) {
		t.Fatalf("expected 201 with service ids, got %d %s", w.Code, w.Body.String())
	}
	w = doJSON(r, http.MethodPost, "/v1/clients", `{"name":"ACME","serviceIds":["svc-x"]}`)
	if w.Code != http.StatusUnprocessableEntity || errorCode(t, w) != "SERVICE_NOT_FOUND" {
		t.Fatalf("expected 422 SERVICE_NOT_FOUND, got %d", w.Code)
	}
	w = doJSON(r, http.MethodGet, "/v1/clients/c2", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"serviceIds":[]`) {
		t.Fatalf("expected empty service ids, got %d %s", w.Code, w.Body.String())
	}
}
