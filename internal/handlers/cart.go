package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/marketplace/internal/logging"
	auth "github.com/Skotchmaster/marketplace/internal/middleware/auth"
	"github.com/Skotchmaster/marketplace/internal/mykafka"
	"github.com/Skotchmaster/marketplace/internal/repo"
)

type CartHandler struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
}

func (h *CartHandler) publish(c echo.Context, key string, event map[string]interface{}) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "cart_events", key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

// AddToCart takes the product id as the raw request body. A JSON
// client may send the id as a quoted string, so surrounding quotes are
// stripped before parsing.
func (h *CartHandler) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	userID, err := auth.UserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, "User is not logged in.")
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		l.Error("add_to_cart_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	raw := strings.TrimSpace(string(body))
	raw = strings.Trim(raw, `"`)
	if raw == "" {
		return c.JSON(http.StatusBadRequest, "Product ID is required.")
	}

	productID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		l.Warn("add_to_cart_bad_id", "status", 400, "raw", raw)
		return c.JSON(http.StatusBadRequest, "Invalid product ID.")
	}

	if _, err := h.Repo.ProductByID(ctx, uint(productID)); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return c.JSON(http.StatusBadRequest, "Product not found.")
		}
		l.Error("add_to_cart_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	if err := h.Repo.AddCartItem(ctx, userID, uint(productID)); err != nil {
		l.Error("add_to_cart_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, fmt.Sprint(userID), map[string]interface{}{
		"type":      "cart_item_added",
		"userID":    userID,
		"productID": productID,
	})

	l.Info("item added to cart", "userID", userID, "productID", productID)
	return c.JSON(http.StatusOK, "Product added to cart successfully.")
}

func (h *CartHandler) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	userID, err := auth.UserID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, "User is not logged in.")
	}

	items, err := h.Repo.CartItems(ctx, userID)
	if err != nil {
		l.Error("get_cart_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, items)
}
