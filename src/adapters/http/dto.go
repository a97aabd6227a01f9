package http

import (
	"historyatlas/src/domain/entities"
)

type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	City     string `json:"city"`
	Country  string `json:"country"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LineItemRequest struct {
	ID       string  `json:"id" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"gt=0"`
	Image    string  `json:"image"`
	Category string  `json:"category"`
}

type CreateOrderRequest struct {
	Items []LineItemRequest `json:"items" validate:"required,min=1,dive"`
	Total *float64          `json:"total" validate:"required,gte=0"`
}

func (r CreateOrderRequest) LineItems() []entities.LineItem {
	items := make([]entities.LineItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = entities.LineItem{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
			Image:    item.Image,
			Category: item.Category,
		}
	}
	return items
}
