package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	catalogapp "storefront/internal/catalog/app"
	catalogdomain "storefront/internal/catalog/domain"
)

type moneyJSON struct {
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
}

type productResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Brand       string    `json:"brand,omitempty"`
	Price       moneyJSON `json:"price"`
	Stock       int64     `json:"stock"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toProductResponse(p catalogdomain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Brand:       p.Brand,
		Price:       moneyJSON{Currency: p.Price.Currency, Amount: p.Price.Amount},
		Stock:       p.Stock,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type createProductReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Brand       string `json:"brand"`
	Currency    string `json:"currency"`
	Amount      int64  `json:"amount"`
	Stock       int64  `json:"stock"`
}

func (s *Server) createProduct(c *gin.Context) {
	var req createProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	p, err := s.products.CreateProduct(c.Request.Context(), catalogapp.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Brand:       req.Brand,
		Currency:    req.Currency,
		Amount:      req.Amount,
		Stock:       req.Stock,
	})
	if err != nil {
		status, msg := mapError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusCreated, toProductResponse(p))
}

func (s *Server) getProduct(c *gin.Context) {
	p, err := s.products.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		status, msg := mapError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, toProductResponse(p))
}

type updateProductReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Brand       string `json:"brand"`
	Currency    string `json:"currency"`
	Amount      int64  `json:"amount"`
	Stock       int64  `json:"stock"`
	Active      *bool  `json:"active"`
}

func (s *Server) updateProduct(c *gin.Context) {
	var req updateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	p, err := s.products.UpdateProduct(c.Request.Context(), catalogdomain.Product{
		ID:          c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
		Brand:       req.Brand,
		Price:       catalogdomain.Money{Currency: req.Currency, Amount: req.Amount},
		Stock:       req.Stock,
		Active:      active,
	})
	if err != nil {
		status, msg := mapError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, toProductResponse(p))
}

// deleteProduct deactivates rather than removes, so placed orders keep a
// valid product reference.
func (s *Server) deleteProduct(c *gin.Context) {
	p, err := s.products.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		status, msg := mapError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	p.Active = false
	if _, err := s.products.UpdateProduct(c.Request.Context(), p); err != nil {
		status, msg := mapError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "Product deactivated"})
}

func (s *Server) listProducts(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	products, nextCursor, err := s.products.ListProducts(c.Request.Context(), c.Query("q"), limit, c.Query("cursor"))
	if err != nil {
		status, msg := mapError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	c.JSON(http.StatusOK, gin.H{"products": out, "next_cursor": nextCursor})
}
