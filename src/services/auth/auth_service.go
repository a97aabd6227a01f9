package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"historyatlas/src/domain"
	"historyatlas/src/domain/entities"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	Create(ctx context.Context, user entities.User) (entities.User, error)
	FindByEmail(ctx context.Context, email string) (entities.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (entities.User, error)
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
	City     string
	Country  string
}

type AuthService struct {
	logger         *slog.Logger
	userRepository UserRepository
	tokenManager   *TokenManager
	bcryptCost     int
}

func NewAuthService(logger *slog.Logger, userRepository UserRepository, tokenManager *TokenManager, bcryptCost int) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}

	return &AuthService{
		logger:         logger,
		userRepository: userRepository,
		tokenManager:   tokenManager,
		bcryptCost:     bcryptCost,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup cria o usuário e já devolve uma sessão autenticada.
func (as *AuthService) Signup(ctx context.Context, input SignupInput) (domain.Session, error) {
	email := normalizeEmail(input.Email)

	_, err := as.userRepository.FindByEmail(ctx, email)
	if err == nil {
		return domain.Session{}, domain.ErrUserAlreadyExists
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return domain.Session{}, fmt.Errorf("AuthService.Signup - failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), as.bcryptCost)
	if err != nil {
		return domain.Session{}, fmt.Errorf("AuthService.Signup - failed to hash password: %w", err)
	}

	user, err := as.userRepository.Create(ctx, entities.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: string(hash),
		Location: entities.UserLocation{
			City:    strings.TrimSpace(input.City),
			Country: strings.TrimSpace(input.Country),
		},
	})
	if err != nil {
		// A checagem acima não impede a corrida entre dois signups; o índice único decide.
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return domain.Session{}, err
		}
		return domain.Session{}, fmt.Errorf("AuthService.Signup - failed to create user: %w", err)
	}

	as.logger.Info("user signed up", "user_id", user.ID)

	return as.session(user)
}

// Login não diferencia email inexistente de senha errada.
func (as *AuthService) Login(ctx context.Context, email string, password string) (domain.Session, error) {
	user, err := as.userRepository.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Session{}, domain.ErrInvalidCredentials
		}
		return domain.Session{}, fmt.Errorf("AuthService.Login - failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.Session{}, domain.ErrInvalidCredentials
	}

	return as.session(user)
}

// Me devolve o perfil do dono do token.
func (as *AuthService) Me(ctx context.Context, userID uuid.UUID) (entities.User, error) {
	user, err := as.userRepository.FindByID(ctx, userID)
	if err != nil {
		return entities.User{}, fmt.Errorf("AuthService.Me - failed to find user %s: %w", userID, err)
	}

	return user, nil
}

// Authenticate valida o bearer token.
func (as *AuthService) Authenticate(token string) (domain.Principal, error) {
	return as.tokenManager.Validate(token)
}

func (as *AuthService) session(user entities.User) (domain.Session, error) {
	token, err := as.tokenManager.Generate(user)
	if err != nil {
		return domain.Session{}, fmt.Errorf("AuthService - failed to issue token: %w", err)
	}

	return domain.Session{Token: token, User: &user}, nil
}
