package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"canteenWeb/internal/modules/cart/application/usecase"
	"canteenWeb/internal/modules/cart/infrastructure"
	guard "canteenWeb/internal/modules/guard/interface"
	menu "canteenWeb/internal/modules/menu/domain"
	orders "canteenWeb/internal/modules/orders/domain"
	session "canteenWeb/internal/modules/session/domain"
	stands "canteenWeb/internal/modules/stands/domain"
	"canteenWeb/internal/shared/httputil"
)

type fakeCatalog struct{}

func (fakeCatalog) ListStands(ctx context.Context, token string) ([]stands.Stand, error) {
	return []stands.Stand{{ID: 1, StandName: "Bakso"}, {ID: 2, StandName: "Es Teh"}}, nil
}

func (fakeCatalog) StandMenu(ctx context.Context, token string, standID int) ([]menu.MenuItem, error) {
	return []menu.MenuItem{{ID: standID * 10, Name: "Item", Price: 10000, StandID: standID}}, nil
}

type fakePlacer struct {
	placed []orders.PlaceRequest
}

func (f *fakePlacer) PlaceOrder(ctx context.Context, token string, req orders.PlaceRequest) (orders.Order, error) {
	f.placed = append(f.placed, req)
	return orders.Order{ID: 99, StandID: req.StandID, Status: orders.StatusPending}, nil
}

func newCartServer(placer *fakePlacer, signedIn bool) *echo.Echo {
	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if signedIn {
				guard.SetSession(c, "tok", &session.User{ID: "u-1", Role: session.RoleStudent})
			}
			return next(c)
		}
	})
	uc := usecase.NewCartUseCase(infrastructure.NewMemoryStore(), fakeCatalog{}, placer, nil)
	NewHandler(uc).Register(e.Group("/student"))
	return e
}

func do(t *testing.T, e *echo.Echo, method, path, body string) (*httptest.ResponseRecorder, httputil.Page) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	var page httputil.Page
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	}
	return rec, page
}

func TestAddFromAnotherStandAsksToReplace(t *testing.T) {
	t.Parallel()

	e := newCartServer(&fakePlacer{}, true)

	rec, _ := do(t, e, http.MethodPost, "/student/cart/items", `{"standId":1,"menuId":10}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, page := do(t, e, http.MethodPost, "/student/cart/items", `{"standId":2,"menuId":20}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, page.Toast)
	require.Equal(t, []string{ReplacePrompt}, page.Toast.Messages)

	rec, _ = do(t, e, http.MethodPost, "/student/cart/items", `{"standId":2,"menuId":20,"replace":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, page = do(t, e, http.MethodGet, "/student/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	view := page.Data.(map[string]any)
	require.EqualValues(t, 2, view["standId"])
	require.EqualValues(t, 1, view["count"])
}

func TestRemoveUnknownItemIsRejected(t *testing.T) {
	t.Parallel()

	e := newCartServer(&fakePlacer{}, true)
	rec, page := do(t, e, http.MethodDelete, "/student/cart/items/10", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, []string{"Invalid item"}, page.Toast.Messages)
}

func TestCheckoutPlacesOrderAndEmptiesCart(t *testing.T) {
	t.Parallel()

	placer := &fakePlacer{}
	e := newCartServer(placer, true)

	rec, page := do(t, e, http.MethodPost, "/student/cart/checkout", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, []string{"Cart is empty."}, page.Toast.Messages)

	do(t, e, http.MethodPost, "/student/cart/items", `{"standId":1,"menuId":10}`)
	do(t, e, http.MethodPost, "/student/cart/items", `{"standId":1,"menuId":10}`)

	rec, page = do(t, e, http.MethodPost, "/student/cart/checkout", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, []string{"Order placed successfully!"}, page.Toast.Messages)
	require.Len(t, placer.placed, 1)
	require.Equal(t, 1, placer.placed[0].StandID)
	require.Equal(t, 2, placer.placed[0].Items[0].Quantity)

	_, page = do(t, e, http.MethodGet, "/student/cart", "")
	require.EqualValues(t, 0, page.Data.(map[string]any)["count"])
}

func TestCartRequiresSignedInUser(t *testing.T) {
	t.Parallel()

	e := newCartServer(&fakePlacer{}, false)
	rec, _ := do(t, e, http.MethodGet, "/student/cart", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
