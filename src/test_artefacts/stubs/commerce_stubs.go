package stubs

import (
	"time"

	"historyatlas/src/domain/entities"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

type ProductStub struct {
	product entities.Product
}

func NewProductStub() ProductStub {
	return ProductStub{product: entities.Product{
		ID:          gofakeit.UUID(),
		Name:        gofakeit.ProductName(),
		Description: gofakeit.ProductDescription(),
		Price:       gofakeit.Price(5, 120),
		Image:       gofakeit.URL(),
		Category:    gofakeit.RandomString([]string{"shirts", "hoodie", "posters", "mugs"}),
	}}
}

func (ps ProductStub) WithID(id string) ProductStub {
	ps.product.ID = id
	return ps
}

func (ps ProductStub) WithName(name string) ProductStub {
	ps.product.Name = name
	return ps
}

func (ps ProductStub) WithDescription(description string) ProductStub {
	ps.product.Description = description
	return ps
}

func (ps ProductStub) WithPrice(price float64) ProductStub {
	ps.product.Price = price
	return ps
}

func (ps ProductStub) WithCategory(category string) ProductStub {
	ps.product.Category = category
	return ps
}

func (ps ProductStub) Get() entities.Product {
	return ps.product
}

type UserStub struct {
	user entities.User
}

func NewUserStub() UserStub {
	now := time.Now().UTC()

	return UserStub{user: entities.User{
		ID:    uuid.New(),
		Name:  gofakeit.Name(),
		Email: gofakeit.Email(),
		Location: entities.UserLocation{
			City:    gofakeit.City(),
			Country: gofakeit.Country(),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}}
}

func (us UserStub) WithEmail(email string) UserStub {
	us.user.Email = email
	return us
}

func (us UserStub) WithPasswordHash(hash string) UserStub {
	us.user.PasswordHash = hash
	return us
}

func (us UserStub) WithLocation(city, country string) UserStub {
	us.user.Location = entities.UserLocation{City: city, Country: country}
	return us
}

func (us UserStub) Get() entities.User {
	return us.user
}

type LineItemStub struct {
	item entities.LineItem
}

func NewLineItemStub() LineItemStub {
	product := NewProductStub().Get()

	return LineItemStub{item: entities.LineItem{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		Quantity: gofakeit.IntRange(1, 4),
		Image:    product.Image,
		Category: product.Category,
	}}
}

func (ls LineItemStub) WithPrice(price float64) LineItemStub {
	ls.item.Price = price
	return ls
}

func (ls LineItemStub) WithQuantity(quantity int) LineItemStub {
	ls.item.Quantity = quantity
	return ls
}

func (ls LineItemStub) Get() entities.LineItem {
	return ls.item
}

type OrderStub struct {
	order entities.Order
}

func NewOrderStub() OrderStub {
	now := time.Now().UTC()
	items := []entities.LineItem{NewLineItemStub().Get(), NewLineItemStub().Get()}

	return OrderStub{order: entities.Order{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Items:     items,
		Total:     entities.Subtotal(items),
		Status:    entities.OrderStatusCompleted,
		CreatedAt: now,
		UpdatedAt: now,
	}}
}

func (ords OrderStub) WithUserID(userID uuid.UUID) OrderStub {
	ords.order.UserID = userID
	return ords
}

func (ords OrderStub) WithCreatedAt(createdAt time.Time) OrderStub {
	ords.order.CreatedAt = createdAt
	ords.order.UpdatedAt = createdAt
	return ords
}

func (ords OrderStub) Get() entities.Order {
	return ords.order
}
