package http

import (
	"encoding/json"
	"fmt"
	"time"

	domain "github.com/dzmitrysafronau/shop-project/internal/entity"
)

// priceValue accepts a JSON number or a decimal string ("999.00").
type priceValue string

func (p *priceValue) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = priceValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("price must be a number or numeric string")
	}
	*p = priceValue(n.String())
	return nil
}

type productResp struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       string  `json:"price"`
	Image       *string `json:"image"`
	ImageURL    *string `json:"image_url"`
}

func toProductResp(p domain.Product, mediaBaseURL string) productResp {
	r := productResp{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price.StringFixed(2),
	}
	if p.Description != "" {
		r.Description = &p.Description
	}
	if p.Image != "" {
		r.Image = &p.Image
		u := mediaBaseURL + p.Image
		r.ImageURL = &u
	}
	return r
}

type cartLineResp struct {
	ID       int64       `json:"id"`
	Product  productResp `json:"product"`
	Quantity int64       `json:"quantity"`
}

func toCartLineResp(cl domain.CartLine, mediaBaseURL string) cartLineResp {
	return cartLineResp{
		ID:       cl.ID,
		Product:  toProductResp(*cl.Product, mediaBaseURL),
		Quantity: cl.Quantity,
	}
}

type orderLineResp struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Price       string `json:"price"`
	Quantity    int64  `json:"quantity"`
}

type orderResp struct {
	ID        int64           `json:"id"`
	CreatedAt string          `json:"created_at"`
	Total     string          `json:"total"`
	Items     []orderLineResp `json:"items"`
}

func toOrderResp(o domain.Order) orderResp {
	items := make([]orderLineResp, 0, len(o.Lines))
	for _, l := range o.Lines {
		items = append(items, orderLineResp{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Price:       l.Price.StringFixed(2),
			Quantity:    l.Quantity,
		})
	}
	return orderResp{
		ID:        o.ID,
		CreatedAt: o.CreatedAt.Format(time.RFC3339),
		Total:     o.Total.StringFixed(2),
		Items:     items,
	}
}
