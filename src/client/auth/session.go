package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"historyatlas/src/client/api"
	"historyatlas/src/client/storage"
	"historyatlas/src/domain/entities"
)

var ErrNotAuthenticated = errors.New("not authenticated")

type Session struct {
	client *api.Client
	store  storage.KeyValueStore

	mu    sync.RWMutex
	token string
	user  *entities.User
}

// LoadSession lê token e usuário uma única vez. Chaves ausentes deixam a sessão deslogada.
func LoadSession(client *api.Client, store storage.KeyValueStore) (*Session, error) {
	session := &Session{client: client, store: store}

	token, _, err := store.Get(storage.KeyToken)
	if err != nil {
		return nil, fmt.Errorf("Session.Load - failed to read token: %w", err)
	}

	var user entities.User
	found, err := storage.GetJSON(store, storage.KeyUser, &user)
	if err != nil {
		return nil, fmt.Errorf("Session.Load - failed to read user: %w", err)
	}

	session.token = token
	if found {
		session.user = &user
	}
	return session, nil
}

func (s *Session) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token != "" && s.user != nil
}

func (s *Session) User() (entities.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return entities.User{}, false
	}
	return *s.user, true
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

func (s *Session) Login(ctx context.Context, email, password string) (entities.User, error) {
	response, err := s.client.Login(ctx, api.Credentials{Email: email, Password: password})
	if err != nil {
		return entities.User{}, err
	}
	return s.establish(response)
}

func (s *Session) Signup(ctx context.Context, request api.SignupRequest) (entities.User, error) {
	response, err := s.client.Signup(ctx, request)
	if err != nil {
		return entities.User{}, err
	}
	return s.establish(response)
}

// establish grava usuário e token numa única escrita e só então troca o par em memória.
func (s *Session) establish(response api.SessionResponse) (entities.User, error) {
	if response.Token == "" || response.User == nil {
		return entities.User{}, errors.New("Session - server returned an incomplete session")
	}

	userJSON, err := storage.EncodeJSON(storage.KeyUser, response.User)
	if err != nil {
		return entities.User{}, fmt.Errorf("Session - failed to encode user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.store.SetMany(map[string]string{
		storage.KeyUser:  userJSON,
		storage.KeyToken: response.Token,
	})
	if err != nil {
		return entities.User{}, fmt.Errorf("Session - failed to persist session: %w", err)
	}

	user := *response.User
	s.token = response.Token
	s.user = &user
	return user, nil
}

func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.user = nil
	return s.store.Delete(storage.KeyToken, storage.KeyUser)
}

func (s *Session) authorizedToken() (string, error) {
	if !s.LoggedIn() {
		return "", ErrNotAuthenticated
	}
	return s.Token(), nil
}

func (s *Session) Me(ctx context.Context) (entities.User, error) {
	token, err := s.authorizedToken()
	if err != nil {
		return entities.User{}, err
	}
	return s.client.Me(ctx, token)
}

func (s *Session) CreateOrder(ctx context.Context, items []entities.LineItem, total float64) (entities.Order, error) {
	token, err := s.authorizedToken()
	if err != nil {
		return entities.Order{}, err
	}
	return s.client.CreateOrder(ctx, token, api.CreateOrderRequest{Items: items, Total: total})
}

func (s *Session) Orders(ctx context.Context) ([]entities.Order, error) {
	token, err := s.authorizedToken()
	if err != nil {
		return nil, err
	}
	return s.client.Orders(ctx, token)
}
