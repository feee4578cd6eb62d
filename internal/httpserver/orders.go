package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"nearmart/internal/domain"
	ordersvc "nearmart/internal/service/order"
)

// getOrderHandler returns the order aggregate by id, or by order code when
// the path segment looks like a human-readable code rather than a UUID.
func getOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.Param("id"))
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "order id required"})
			return
		}

		var (
			order *domain.CustomerOrder
			err   error
		)
		if strings.Contains(id, "-") {
			order, err = svc.Get(c.Request.Context(), id)
		} else {
			order, err = svc.GetByCode(c.Request.Context(), id)
		}
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func placeOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in ordersvc.PlaceInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		order, err := svc.Place(c.Request.Context(), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

// writeError maps the placement error taxonomy onto HTTP statuses. Every
// branch returns a human-readable reason; ItemsUnavailableError also names
// the products the client should remove or substitute.
func writeError(c *gin.Context, err error) {
	var (
		ve  *domain.ValidationError
		are *domain.AddressResolutionError
		nse *domain.NoStoresAvailableError
		iue *domain.ItemsUnavailableError
		pna *domain.ProductNotAvailableError
	)
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message})
	case errors.As(err, &are):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "delivery address could not be resolved"})
	case errors.As(err, &nse):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no stores deliver to this address"})
	case errors.As(err, &iue):
		c.JSON(http.StatusConflict, gin.H{
			"error":            "some items are not available nearby",
			"unavailableItems": iue.Names,
		})
	case errors.As(err, &pna):
		c.JSON(http.StatusConflict, gin.H{"error": pna.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
