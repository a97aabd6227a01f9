package repositories

import (
	"context"
	"fmt"

	"historyatlas/src/domain"
	"historyatlas/src/domain/entities"
	"historyatlas/src/infra/postgres"

	"github.com/google/uuid"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, name, email, password_hash, city, country, created_at, updated_at`

// Create insere o usuário e devolve os timestamps gerados pelo banco.
// Email repetido vira domain.ErrUserAlreadyExists.
func (r *UserRepository) Create(ctx context.Context, user entities.User) (entities.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	query := `
		INSERT INTO users (id, name, email, password_hash, city, country)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		postgres.NewNullString(user.Location.City),
		postgres.NewNullString(user.Location.Country),
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return entities.User{}, domain.ErrUserAlreadyExists
		}
		return entities.User{}, fmt.Errorf("failed to insert user: %w", err)
	}

	return user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)
	return r.findOne(ctx, query, email)
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	return r.findOne(ctx, query, id)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (entities.User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if postgres.IsNoRows(err) {
			return entities.User{}, domain.ErrUserNotFound
		}
		return entities.User{}, fmt.Errorf("failed to query user: %w", err)
	}

	return user, nil
}

func scanUser(row pgx.Row) (entities.User, error) {
	var (
		user    entities.User
		city    pgtype.Text
		country pgtype.Text
	)

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&city,
		&country,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return entities.User{}, err
	}

	user.Location = entities.UserLocation{
		City:    postgres.StringOrEmpty(city),
		Country: postgres.StringOrEmpty(country),
	}

	return user, nil
}
