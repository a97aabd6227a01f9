package catalog

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"historyatlas/src/domain/entities"
)

const CategoryAll = "all"

type ProductFilter struct {
	Category string
	Search   string
}

// Apply devolve um novo slice. Categoria vazia equivale a "all".
func (f ProductFilter) Apply(products []entities.Product) []entities.Product {
	term := strings.ToLower(strings.TrimSpace(f.Search))

	result := make([]entities.Product, 0, len(products))
	for _, product := range products {
		if f.Category != "" && f.Category != CategoryAll && product.Category != f.Category {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(product.Name), term) &&
			!strings.Contains(strings.ToLower(product.Description), term) {
			continue
		}
		result = append(result, product)
	}
	return result
}

func CategoryLabel(category string) string {
	switch category {
	case "":
		return "Product"
	case "shirts":
		return "Shirt"
	case "hoodie":
		return "Hoodie"
	}

	first, size := utf8.DecodeRuneInString(category)
	return string(unicode.ToUpper(first)) + category[size:]
}

// FormatPrice usa a moeda da loja.
func FormatPrice(price float64) string {
	return fmt.Sprintf("ETB %.2f", price)
}

type ProductCard struct {
	ID          string
	Name        string
	Label       string
	Price       string
	Description string
	Image       string
}

func NewProductCard(product entities.Product) ProductCard {
	description := product.Description
	if utf8.RuneCountInString(description) > 60 {
		description = string([]rune(description)[:60]) + "..."
	}

	return ProductCard{
		ID:          product.ID,
		Name:        product.Name,
		Label:       CategoryLabel(product.Category),
		Price:       FormatPrice(product.Price),
		Description: description,
		Image:       product.Image,
	}
}

func ProductCards(products []entities.Product) []ProductCard {
	cards := make([]ProductCard, len(products))
	for i, product := range products {
		cards[i] = NewProductCard(product)
	}
	return cards
}

// Featured são os primeiros produtos do catálogo, na ordem do servidor.
func Featured(products []entities.Product, limit int) []entities.Product {
	return products[:min(max(limit, 0), len(products))]
}
