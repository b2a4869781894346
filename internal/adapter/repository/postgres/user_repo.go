package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vincent/forexledger/internal/domain"
)

const pgErrUniqueViolation = "23505"

// UserRepository implements usecase.UserRepository.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create creates a new user.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, email, hashed_password, created_at)
		VALUES ($1, $2, $3, $4)`,
		user.ID,
		user.Email,
		user.HashedPassword,
		timeToPgTimestamptz(user.CreatedAt),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			return domain.ErrEmailAlreadyTaken
		}

		return err
	}

	return nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT id, email, hashed_password, created_at
		FROM users
		WHERE id = $1`,
		id,
	))
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT id, email, hashed_password, created_at
		FROM users
		WHERE email = $1`,
		email,
	))
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		user      domain.User
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(&user.ID, &user.Email, &user.HashedPassword, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}

		return nil, err
	}

	user.CreatedAt = createdAt.Time

	return &user, nil
}
