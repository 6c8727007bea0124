package user

import (
	"context"
	"errors"
	c "remindme/internal/core/domain/common"
	e "remindme/internal/core/domain/errors"
	"remindme/internal/core/domain/user"
	"remindme/internal/db/sqlcgen"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
)

type PgxPasswordResetTokenRepository struct {
	queries *sqlcgen.Queries
}

func NewPgxPasswordResetTokenRepository(db sqlcgen.DBTX) *PgxPasswordResetTokenRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxPasswordResetTokenRepository{queries: sqlcgen.New(db)}
}

func (r *PgxPasswordResetTokenRepository) Create(
	ctx context.Context,
	input user.CreatePasswordResetTokenInput,
) (record user.PasswordResetTokenRecord, err error) {
	dbtoken, err := r.queries.CreatePasswordResetToken(ctx, sqlcgen.CreatePasswordResetTokenParams{
		Email:     string(input.Email),
		Token:     string(input.Token),
		ExpiresAt: input.ExpiresAt,
	})
	if err != nil {
		return record, err
	}
	return decodePasswordResetToken(dbtoken), nil
}

func (r *PgxPasswordResetTokenRepository) GetByToken(
	ctx context.Context,
	token user.PasswordResetToken,
) (record user.PasswordResetTokenRecord, err error) {
	dbtoken, err := r.queries.GetPasswordResetToken(ctx, string(token))
	if errors.Is(err, pgx.ErrNoRows) {
		return record, user.ErrPasswordResetTokenDoesNotExist
	}
	if err != nil {
		return record, err
	}
	return decodePasswordResetToken(dbtoken), nil
}

// GetByTokenForUpdate locks the row until the surrounding transaction ends.
func (r *PgxPasswordResetTokenRepository) GetByTokenForUpdate(
	ctx context.Context,
	token user.PasswordResetToken,
) (record user.PasswordResetTokenRecord, err error) {
	dbtoken, err := r.queries.GetPasswordResetTokenForUpdate(ctx, string(token))
	if errors.Is(err, pgx.ErrNoRows) {
		return record, user.ErrPasswordResetTokenDoesNotExist
	}
	if err != nil {
		return record, err
	}
	return decodePasswordResetToken(dbtoken), nil
}

func (r *PgxPasswordResetTokenRepository) DeleteByID(ctx context.Context, id user.PasswordResetTokenID) error {
	rawID, err := uuid.Parse(string(id))
	if err != nil {
		return user.ErrPasswordResetTokenDoesNotExist
	}
	deleted, err := r.queries.DeletePasswordResetTokenByID(ctx, rawID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return user.ErrPasswordResetTokenDoesNotExist
	}
	return nil
}

func (r *PgxPasswordResetTokenRepository) DeleteByEmail(ctx context.Context, email c.Email) (int64, error) {
	return r.queries.DeletePasswordResetTokensByEmail(ctx, string(email))
}

func decodePasswordResetToken(t sqlcgen.PasswordResetToken) user.PasswordResetTokenRecord {
	return user.PasswordResetTokenRecord{
		ID:        user.PasswordResetTokenID(t.ID.String()),
		Email:     c.Email(t.Email),
		Token:     user.PasswordResetToken(t.Token),
		ExpiresAt: t.ExpiresAt,
	}
}
