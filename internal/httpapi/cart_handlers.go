package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	cartdomain "storefront/internal/cart/domain"
	checkoutapp "storefront/internal/checkout/app"
	checkoutdomain "storefront/internal/checkout/domain"
)

type cartItemResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

type cartResponse struct {
	ID     string                `json:"id"`
	UserID string                `json:"user_id"`
	Items  []cartItemResponse    `json:"items"`
	Quote  *checkoutdomain.Quote `json:"quote,omitempty"`
}

func (s *Server) toCartResponse(c *gin.Context, cart cartdomain.Cart) cartResponse {
	items := make([]cartItemResponse, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, cartItemResponse{ID: it.ID, ProductID: it.ProductID, Quantity: it.Quantity})
	}

	resp := cartResponse{ID: cart.ID, UserID: cart.UserID, Items: items}
	if len(cart.Items) > 0 {
		quote, err := s.checkout.Quote(c.Request.Context(), cart.UserID)
		if err == nil {
			resp.Quote = &quote
		} else if !errors.Is(err, checkoutapp.ErrEmptyCart) {
			s.log.Warn("cart quote failed", "user_id", cart.UserID, "err", err)
		}
	}
	return resp
}

func (s *Server) getCart(c *gin.Context) {
	cart, err := s.carts.GetOrCreate(c.Request.Context(), currentUser(c))
	if err != nil {
		status, msg := mapError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, s.toCartResponse(c, cart))
}

type addCartItemReq struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

func (s *Server) addCartItem(c *gin.Context) {
	var req addCartItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	cart, err := s.carts.AddItem(c.Request.Context(), currentUser(c), req.ProductID, req.Quantity)
	if err != nil {
		status, msg := mapError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, s.toCartResponse(c, cart))
}

func (s *Server) removeCartItem(c *gin.Context) {
	err := s.carts.RemoveItem(c.Request.Context(), currentUser(c), c.Param("product_id"))
	if err != nil {
		status, msg := mapError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "Item removed"})
}

type updateQuantityReq struct {
	ItemID   string `json:"item_id"`
	Quantity int64  `json:"quantity"`
}

// updateCartItemQuantity only ever reports success or a 400 envelope; the
// line is looked up within the caller's own cart, so another user's item id
// is just "not found" here too.
func (s *Server) updateCartItemQuantity(c *gin.Context) {
	var req updateQuantityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid json"})
		return
	}

	if err := s.carts.SetItemQuantity(c.Request.Context(), currentUser(c), req.ItemID, req.Quantity); err != nil {
		_, msg := mapError(err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
