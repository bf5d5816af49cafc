package domain

// CartItem is a single line in the shopper's cart. The product-browsing UI
// writes these; the checkout flow only reads and clears them.
type CartItem struct {
	ID       string  `json:"id" bson:"id"`
	Name     string  `json:"name" bson:"name"`
	Price    float64 `json:"price" bson:"price"`
	Quantity int     `json:"quantity" bson:"quantity"`
}

// Subtotal returns the pre-shipping, pre-tax sum over all lines.
func Subtotal(items []CartItem) float64 {
	var sum float64
	for _, item := range items {
		sum += item.Price * float64(item.Quantity)
	}
	return sum
}
