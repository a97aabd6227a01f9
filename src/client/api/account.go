package api

import (
	"context"
	"net/http"

	"historyatlas/src/domain/entities"
)

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	City     string `json:"city,omitempty"`
	Country  string `json:"country,omitempty"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionResponse struct {
	Token string         `json:"token"`
	User  *entities.User `json:"user"`
}

type CreateOrderRequest struct {
	Items []entities.LineItem `json:"items"`
	Total float64             `json:"total"`
}

func (c *Client) Signup(ctx context.Context, request SignupRequest) (SessionResponse, error) {
	var session SessionResponse
	err := c.Do(ctx, Request{Method: http.MethodPost, Path: "/auth/signup", Body: request}, &session)
	return session, err
}

func (c *Client) Login(ctx context.Context, credentials Credentials) (SessionResponse, error) {
	var session SessionResponse
	err := c.Do(ctx, Request{Method: http.MethodPost, Path: "/auth/login", Body: credentials}, &session)
	return session, err
}

func (c *Client) Me(ctx context.Context, token string) (entities.User, error) {
	var user entities.User
	err := c.Do(ctx, Request{Path: "/auth/me", Token: token}, &user)
	return user, err
}

func (c *Client) CreateOrder(ctx context.Context, token string, request CreateOrderRequest) (entities.Order, error) {
	var order entities.Order
	err := c.Do(ctx, Request{Method: http.MethodPost, Path: "/orders", Token: token, Body: request}, &order)
	return order, err
}

func (c *Client) Orders(ctx context.Context, token string) ([]entities.Order, error) {
	var orders []entities.Order
	if err := c.Do(ctx, Request{Path: "/orders", Token: token}, &orders); err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []entities.Order{}
	}
	return orders, nil
}
