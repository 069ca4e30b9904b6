package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	menu "canteenWeb/internal/modules/menu/domain"
	"canteenWeb/internal/modules/stands/application/usecase"
	"canteenWeb/internal/modules/stands/domain"
	"canteenWeb/internal/shared/apierr"
	"canteenWeb/internal/shared/httputil"
)

type fakeStandsAPI struct {
	mine *domain.Stand
}

func (f *fakeStandsAPI) MyStand(ctx context.Context, token string) (domain.Stand, error) {
	if f.mine == nil {
		return domain.Stand{}, apierr.New(http.StatusNotFound, "Stand not found")
	}
	return *f.mine, nil
}

func (f *fakeStandsAPI) ListStands(ctx context.Context, token string) ([]domain.Stand, error) {
	return []domain.Stand{{ID: 1, StandName: "Bakso"}}, nil
}

func (f *fakeStandsAPI) StandMenu(ctx context.Context, token string, standID int) ([]menu.MenuItem, error) {
	return []menu.MenuItem{{ID: 5, StandID: standID}}, nil
}

func (f *fakeStandsAPI) CreateStand(ctx context.Context, token string, profile domain.Profile) (domain.Stand, error) {
	stand := domain.Stand{ID: 1, StandName: profile.StandName}
	f.mine = &stand
	return stand, nil
}

func (f *fakeStandsAPI) UpdateStand(ctx context.Context, token string, profile domain.Profile) (domain.Stand, error) {
	return domain.Stand{ID: f.mine.ID, StandName: profile.StandName}, nil
}

func (f *fakeStandsAPI) StandStats(ctx context.Context, token string) (domain.Stats, error) {
	return domain.Stats{TotalOrders: 3}, nil
}

func newTestServer(api *fakeStandsAPI) *echo.Echo {
	e := echo.New()
	h := NewHandler(usecase.NewStandsUseCase(api))
	h.RegisterStand(e.Group("/stand"))
	h.RegisterStudent(e.Group("/student"))
	return e
}

func decodePage(t *testing.T, rec *httptest.ResponseRecorder) httputil.Page {
	t.Helper()
	var page httputil.Page
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return page
}

func TestDashboardWithoutStandRedirectsToProfile(t *testing.T) {
	t.Parallel()

	e := newTestServer(&fakeStandsAPI{})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stand", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	page := decodePage(t, rec)
	if page.Redirect != ProfilePath || page.Toast.Messages[0] != "You don't have a stand." {
		t.Fatalf("unexpected page: %#v", page)
	}
}

func TestSaveProfileCreatesStand(t *testing.T) {
	t.Parallel()

	api := &fakeStandsAPI{}
	e := newTestServer(api)
	req := httptest.NewRequest(http.MethodPost, "/stand/profile", strings.NewReader("standName=Bakso&ownerName=Kumis&phone=0812"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if page := decodePage(t, rec); page.Toast.Messages[0] != "Data berhasil disimpan" {
		t.Fatalf("unexpected toast: %#v", page.Toast)
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stand", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected dashboard after profile, got %d", rec.Code)
	}
}

func TestStandMenuRejectsBadID(t *testing.T) {
	t.Parallel()

	e := newTestServer(&fakeStandsAPI{})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/student/stands/abc/menu", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/student/stands/1/menu", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
