package user

import (
	"context"
	"errors"
	c "remindme/internal/core/domain/common"
	e "remindme/internal/core/domain/errors"
	"remindme/internal/core/domain/user"
	"remindme/internal/db/sqlcgen"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

const PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"
const EMAIL_CONSTRAINT_NAME = "user_email_idx"

type PgxUserRepository struct {
	queries *sqlcgen.Queries
}

func NewPgxRepository(db sqlcgen.DBTX) *PgxUserRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxUserRepository{queries: sqlcgen.New(db)}
}

func (r *PgxUserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	dbuser, err := r.queries.CreateUser(ctx, sqlcgen.CreateUserParams{
		Email:        string(input.Email),
		Name:         encodeName(input.Name),
		PasswordHash: string(input.PasswordHash),
		CreatedAt:    input.CreatedAt,
	})

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) &&
		pgErr.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE &&
		pgErr.ConstraintName == EMAIL_CONSTRAINT_NAME {
		return u, user.ErrEmailAlreadyExists
	}
	if err != nil {
		return u, err
	}
	u = decodeUser(dbuser)
	return u, u.Validate()
}

func (r *PgxUserRepository) GetByID(ctx context.Context, id user.ID) (u user.User, err error) {
	dbuser, err := r.queries.GetUserByID(ctx, int64(id))
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	u = decodeUser(dbuser)
	return u, u.Validate()
}

func (r *PgxUserRepository) GetByEmail(ctx context.Context, email c.Email) (u user.User, err error) {
	dbuser, err := r.queries.GetUserByEmail(ctx, string(email))
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	u = decodeUser(dbuser)
	return u, u.Validate()
}

func (r *PgxUserRepository) SetPassword(ctx context.Context, id user.ID, password user.PasswordHash) error {
	updated, err := r.queries.SetUserPassword(ctx, sqlcgen.SetUserPasswordParams{
		ID:           int64(id),
		PasswordHash: string(password),
	})
	if err != nil {
		return err
	}
	if updated == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func encodeName(name c.Optional[string]) pgtype.Text {
	if !name.IsPresent {
		return pgtype.Text{Status: pgtype.Null}
	}
	return pgtype.Text{String: name.Value, Status: pgtype.Present}
}

func decodeUser(u sqlcgen.User) user.User {
	return user.User{
		ID:           user.ID(u.ID),
		Email:        c.Email(u.Email),
		Name:         c.NewOptional(u.Name.String, u.Name.Status == pgtype.Present),
		PasswordHash: user.PasswordHash(u.PasswordHash),
		CreatedAt:    u.CreatedAt,
	}
}
