package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	orderdomain "storefront/internal/order/domain"
)

type orderItemResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	Price     moneyJSON `json:"price"`
	Total     moneyJSON `json:"total"`
}

type orderResponse struct {
	ID        string              `json:"id"`
	UserID    string              `json:"user_id"`
	Status    string              `json:"status"`
	Items     []orderItemResponse `json:"items"`
	Total     moneyJSON           `json:"total"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func toOrderResponse(o orderdomain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     moneyJSON{Currency: o.Currency, Amount: it.UnitAmount},
			Total:     moneyJSON{Currency: o.Currency, Amount: it.LineTotal()},
		})
	}
	return orderResponse{
		ID:        o.ID,
		UserID:    o.UserID,
		Status:    string(o.Status),
		Items:     items,
		Total:     moneyJSON{Currency: o.Currency, Amount: o.TotalAmount()},
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func (s *Server) listOrders(c *gin.Context) {
	orders, err := s.orders.ListByUser(c.Request.Context(), currentUser(c))
	if err != nil {
		status, msg := mapError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, gin.H{"orders": out})
}

func (s *Server) getOrder(c *gin.Context) {
	o, err := s.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		status, msg := mapError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	// orders are visible to their owner only
	if o.UserID != currentUser(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(o))
}

type setStatusReq struct {
	Status string `json:"status"`
}

// setOrderStatus is the administrative transition endpoint; the checkout
// engine never moves an order out of Pending itself.
func (s *Server) setOrderStatus(c *gin.Context) {
	var req setStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	o, err := s.orders.SetStatus(c.Request.Context(), c.Param("id"), orderdomain.Status(req.Status))
	if err != nil {
		status, msg := mapError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(o))
}

func (s *Server) checkoutAPI(c *gin.Context) {
	orderID, err := s.checkout.Checkout(c.Request.Context(), currentUser(c))
	if err != nil {
		status, msg := checkoutError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	o, err := s.orders.Get(c.Request.Context(), orderID)
	if err != nil {
		status, msg := mapError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(o))
}

func (s *Server) checkoutForm(c *gin.Context) {
	_, err := s.checkout.Checkout(c.Request.Context(), currentUser(c))
	if err != nil {
		status, msg := checkoutError(err)
		c.JSON(status, gin.H{"success": false, "error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Checkout completed successfully!"})
}
