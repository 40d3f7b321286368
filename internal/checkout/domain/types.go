package domain

type Money struct {
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
}

type QuoteLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	UnitPrice Money  `json:"unit_price"`
	LineTotal Money  `json:"line_total"`
}

// Quote is a non-binding price preview of the cart's current contents.
type Quote struct {
	Lines    []QuoteLine `json:"lines"`
	Subtotal Money       `json:"subtotal"`
	Tax      Money       `json:"tax"`
	Shipping Money       `json:"shipping"`
	Total    Money       `json:"total"`
}
