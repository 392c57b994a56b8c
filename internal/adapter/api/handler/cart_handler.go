package handler

import (
	"strconv"

	"neohand/internal/domain/entity"
	"neohand/internal/usecase"
	"neohand/pkg/errors"
	"neohand/pkg/response"

	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	cartUseCase *usecase.CartUseCase
}

func NewCartHandler(cartUseCase *usecase.CartUseCase) *CartHandler {
	return &CartHandler{
		cartUseCase: cartUseCase,
	}
}

type cartItemRequest struct {
	ID            int64   `json:"id" validate:"required"`
	Name          string  `json:"name" validate:"required"`
	Price         float64 `json:"price" validate:"required,gt=0"`
	OriginalPrice float64 `json:"original_price"`
	Image         string  `json:"image"`
	Quantity      int     `json:"quantity"`
}

func clientID(c echo.Context) string {
	id, _ := c.Get("client_id").(string)
	return id
}

func itemIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil {
		return 0, errors.BadRequest("Invalid item id", err)
	}
	return id, nil
}

func (h *CartHandler) GetCart(c echo.Context) error {
	items, err := h.cartUseCase.LoadCart(c.Request().Context(), clientID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, items)
}

func (h *CartHandler) AddItem(c echo.Context) error {
	var req cartItemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	items, err := h.cartUseCase.AddItem(c.Request().Context(), clientID(c), entity.CartItem{
		ID:            req.ID,
		Name:          req.Name,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Image:         req.Image,
		Quantity:      req.Quantity,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, items)
}

func (h *CartHandler) IncrementItem(c echo.Context) error {
	id, err := itemIDParam(c)
	if err != nil {
		return response.Error(c, err)
	}
	items, err := h.cartUseCase.IncrementQuantity(c.Request().Context(), clientID(c), id)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, items)
}

func (h *CartHandler) DecrementItem(c echo.Context) error {
	id, err := itemIDParam(c)
	if err != nil {
		return response.Error(c, err)
	}
	items, err := h.cartUseCase.DecrementQuantity(c.Request().Context(), clientID(c), id)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, items)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	id, err := itemIDParam(c)
	if err != nil {
		return response.Error(c, err)
	}
	items, err := h.cartUseCase.RemoveItem(c.Request().Context(), clientID(c), id)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, items)
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	if err := h.cartUseCase.ClearCart(c.Request().Context(), clientID(c)); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Cart cleared"})
}

func (h *CartHandler) ListFavorites(c echo.Context) error {
	items, err := h.cartUseCase.ListFavorites(c.Request().Context(), clientID(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, items)
}

func (h *CartHandler) AddFavorite(c echo.Context) error {
	var req cartItemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	items, err := h.cartUseCase.AddFavorite(c.Request().Context(), clientID(c), entity.FavoriteItem{
		ID:            req.ID,
		Name:          req.Name,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Image:         req.Image,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, items)
}

func (h *CartHandler) RemoveFavorite(c echo.Context) error {
	id, err := itemIDParam(c)
	if err != nil {
		return response.Error(c, err)
	}
	items, err := h.cartUseCase.RemoveFavorite(c.Request().Context(), clientID(c), id)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, items)
}
