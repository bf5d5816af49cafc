package notifier

import (
	"encoding/json"
	"fmt"
)

// EmailPayload is the one canonical projection of an order used for
// confirmation rendering. Everything that reaches a template goes through
// this struct; the alias soup older clients send is resolved in ParsePayload.
type EmailPayload struct {
	OrderID  string
	Customer Customer
	Shipping Address
	Items    []Item
	Totals   Totals
}

type Customer struct {
	Name  string
	Email string
	Phone string
}

type Address struct {
	Address string
	City    string
	Country string
	Zip     string
}

type Item struct {
	Name     string
	Price    float64
	Quantity int
}

type Totals struct {
	Subtotal   float64
	Shipping   float64
	Taxes      float64
	GrandTotal float64
}

// rawAddress accepts both zip spellings clients have used.
type rawAddress struct {
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
	Zip     string `json:"zip"`
	ZipCode string `json:"zipCode"`
}

type rawItem struct {
	Name     string   `json:"name"`
	Price    *float64 `json:"price"`
	Quantity *int     `json:"quantity"`
}

// rawPayload is the superset of every shape the two historical senders
// accepted. "shipping" is kept raw because clients have sent it both as a
// numeric shipping cost and as an address object.
type rawPayload struct {
	Email           string          `json:"email"`
	Name            string          `json:"name"`
	Phone           string          `json:"phone"`
	Shipping        json.RawMessage `json:"shipping"`
	ShippingAddress *rawAddress     `json:"shippingAddress"`
	ShippingDetails *rawAddress     `json:"shippingDetails"`
	ShippingCost    *float64        `json:"shippingCost"`
	Items           []rawItem       `json:"items"`
	Subtotal        *float64        `json:"subtotal"`
	Taxes           *float64        `json:"taxes"`
	Total           *float64        `json:"total"`
	OrderID         string          `json:"orderId"`
}

// ParsePayload normalizes an incoming notification body into the canonical
// payload. Alias resolution:
//   - shipping cost: an explicit numeric "shippingCost" wins; otherwise a
//     numeric "shipping" is used; an object-shaped "shipping" is never read
//     as a cost.
//   - shipping address: object-shaped "shipping", "shippingAddress" and
//     "shippingDetails" merge last-non-empty-wins per sub-field, in that
//     order; within one object "zipCode" wins over "zip".
//
// Missing numerics become 0, missing strings become "". Item quantity
// defaults to 1 when absent.
func ParsePayload(raw []byte) (EmailPayload, error) {
	var rp rawPayload
	if err := json.Unmarshal(raw, &rp); err != nil {
		return EmailPayload{}, fmt.Errorf("invalid notification payload: %w", err)
	}

	p := EmailPayload{
		OrderID: rp.OrderID,
		Customer: Customer{
			Name:  rp.Name,
			Email: rp.Email,
			Phone: rp.Phone,
		},
	}

	shippingNum, shippingAddr := splitShippingField(rp.Shipping)

	for _, alias := range []*rawAddress{shippingAddr, rp.ShippingAddress, rp.ShippingDetails} {
		if alias == nil {
			continue
		}
		mergeAddress(&p.Shipping, alias)
	}

	p.Items = make([]Item, 0, len(rp.Items))
	for _, it := range rp.Items {
		quantity := 1
		if it.Quantity != nil {
			quantity = *it.Quantity
		}
		p.Items = append(p.Items, Item{
			Name:     it.Name,
			Price:    numOrZero(it.Price),
			Quantity: quantity,
		})
	}

	p.Totals = Totals{
		Subtotal:   numOrZero(rp.Subtotal),
		Taxes:      numOrZero(rp.Taxes),
		GrandTotal: numOrZero(rp.Total),
	}
	switch {
	case rp.ShippingCost != nil:
		p.Totals.Shipping = *rp.ShippingCost
	case shippingNum != nil:
		p.Totals.Shipping = *shippingNum
	}

	return p, nil
}

// splitShippingField decides whether a raw "shipping" value is a shipping
// cost or an address object. Anything else (null, string, array) is dropped.
func splitShippingField(raw json.RawMessage) (*float64, *rawAddress) {
	if len(raw) == 0 {
		return nil, nil
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return &num, nil
	}

	var addr rawAddress
	if err := json.Unmarshal(raw, &addr); err == nil {
		return nil, &addr
	}

	return nil, nil
}

func mergeAddress(dst *Address, src *rawAddress) {
	if src.Address != "" {
		dst.Address = src.Address
	}
	if src.City != "" {
		dst.City = src.City
	}
	if src.Country != "" {
		dst.Country = src.Country
	}
	zip := src.ZipCode
	if zip == "" {
		zip = src.Zip
	}
	if zip != "" {
		dst.Zip = zip
	}
}

func numOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
