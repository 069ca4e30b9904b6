package transport

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"canteenWeb/internal/modules/cart/application/port"
	"canteenWeb/internal/modules/cart/application/usecase"
	"canteenWeb/internal/modules/cart/domain"
	guard "canteenWeb/internal/modules/guard/interface"
	"canteenWeb/internal/shared/apierr"
	"canteenWeb/internal/shared/httputil"
)

// ReplacePrompt is shown when the item comes from another stand than the cart.
const ReplacePrompt = "You're adding an item from a different stand. Would you like to clear your current cart and add this item?"

var errNoUser = errors.New("no signed-in user")

type addRequest struct {
	StandID int  `json:"standId" form:"standId"`
	MenuID  int  `json:"menuId" form:"menuId"`
	Replace bool `json:"replace" form:"replace"`
}

func cartMapper(fallback string) *httputil.ErrorMapper {
	return httputil.NewErrorMapper().
		WithMapping(errNoUser, http.StatusUnauthorized, "Please sign in again.").
		WithMapping(domain.ErrDifferentStand, http.StatusConflict, ReplacePrompt).
		WithMapping(domain.ErrItemNotInCart, http.StatusNotFound, "Invalid item").
		WithMapping(domain.ErrEmptyCart, http.StatusBadRequest, "Cart is empty.").
		WithMapping(usecase.ErrMenuNotFound, http.StatusNotFound, "Menu item not found").
		WithMapping(usecase.ErrStandNotFound, http.StatusNotFound, "Stand not found").
		WithMapping(port.ErrStoreConflict, http.StatusConflict, "Your cart changed, please try again.").
		WithDefault(http.StatusInternalServerError, fallback)
}

type Handler struct {
	Cart *usecase.CartUseCase
}

func NewHandler(cart *usecase.CartUseCase) *Handler {
	return &Handler{Cart: cart}
}

func (h *Handler) Register(g *echo.Group) {
	g.GET("/cart", h.View)
	g.POST("/cart/items", h.Add)
	g.POST("/cart/items/:id/decrement", h.Decrement)
	g.DELETE("/cart/items/:id", h.Remove)
	g.DELETE("/cart", h.Clear)
	g.POST("/cart/checkout", h.Checkout)
}

func userID(c echo.Context) (string, error) {
	user, ok := guard.UserFrom(c)
	if !ok || user.ID == "" {
		return "", errNoUser
	}
	return user.ID, nil
}

func (h *Handler) View(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return httputil.Fail(c, cartMapper(""), err)
	}
	view, err := h.Cart.View(c.Request().Context(), id)
	if err != nil {
		return httputil.Fail(c, cartMapper("Failed to load cart"), err)
	}
	return httputil.OK(c, view, nil)
}

func (h *Handler) Add(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return httputil.Fail(c, cartMapper(""), err)
	}
	var req addRequest
	if err := httputil.FormOrJSON(c, &req); err != nil {
		return httputil.Fail(c, nil, err)
	}
	if req.StandID <= 0 || req.MenuID <= 0 {
		return httputil.Fail(c, nil, apierr.NewValidation("Invalid item"))
	}
	view, err := h.Cart.Add(c.Request().Context(), guard.TokenFrom(c), id, usecase.AddInput(req))
	if err != nil {
		return httputil.Fail(c, cartMapper("Failed to add item"), err)
	}
	return httputil.OK(c, view, httputil.Success("Item added to cart"))
}

func (h *Handler) Decrement(c echo.Context) error {
	return h.itemAction(c, h.Cart.Decrement, "")
}

func (h *Handler) Remove(c echo.Context) error {
	return h.itemAction(c, h.Cart.Remove, "Item removed from cart")
}

func (h *Handler) itemAction(c echo.Context, action func(ctx context.Context, userID string, menuID int) (domain.View, error), message string) error {
	id, err := userID(c)
	if err != nil {
		return httputil.Fail(c, cartMapper(""), err)
	}
	menuID, err := httputil.ParamID(c, "id")
	if err != nil {
		return httputil.Fail(c, nil, err)
	}
	view, err := action(c.Request().Context(), id, menuID)
	if err != nil {
		return httputil.Fail(c, cartMapper("Failed to update cart"), err)
	}
	var toast *httputil.Toast
	if message != "" {
		toast = httputil.Success(message)
	}
	return httputil.OK(c, view, toast)
}

func (h *Handler) Clear(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return httputil.Fail(c, cartMapper(""), err)
	}
	view, err := h.Cart.Clear(c.Request().Context(), id)
	if err != nil {
		return httputil.Fail(c, cartMapper("Failed to clear cart"), err)
	}
	return httputil.OK(c, view, nil)
}

func (h *Handler) Checkout(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return httputil.Fail(c, cartMapper(""), err)
	}
	order, err := h.Cart.PlaceOrder(c.Request().Context(), guard.TokenFrom(c), id)
	if err != nil {
		return httputil.Fail(c, cartMapper("Failed to place order."), err)
	}
	return httputil.Render(c, http.StatusCreated, httputil.Page{
		Data:     order,
		Toast:    httputil.Success("Order placed successfully!"),
		Redirect: "/student/orders",
	})
}
