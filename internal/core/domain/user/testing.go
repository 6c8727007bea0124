package user

import (
	"context"
	"crypto/md5"
	"fmt"
	c "remindme/internal/core/domain/common"
	"sync"
)

type FakePasswordHasher struct{}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	return PasswordHash(fmt.Sprintf("%x", md5.Sum([]byte(password)))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}

type FakeSessionTokenGenerator struct {
	Token string
}

func NewFakeSessionTokenGenerator(token string) *FakeSessionTokenGenerator {
	return &FakeSessionTokenGenerator{Token: token}
}

func (g *FakeSessionTokenGenerator) GenerateToken() SessionToken {
	return SessionToken(g.Token)
}

type FakeUserRepository struct {
	Users            []User
	ReturnError      bool
	SetPasswordError error
	lock             sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{Users: make([]User, 0, 10)}
}

func (r *FakeUserRepository) Create(ctx context.Context, input CreateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not create user %v", input.Email)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, u := range r.Users {
		if u.Email == input.Email {
			return u, ErrEmailAlreadyExists
		}
		if u.ID > maxID {
			maxID = u.ID
		}
	}
	u = User{
		ID:           maxID + 1,
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: input.PasswordHash,
		CreatedAt:    input.CreatedAt,
	}
	r.Users = append(r.Users, u)
	return u, nil
}

func (r *FakeUserRepository) GetByID(ctx context.Context, id ID) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email c.Email) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user %v", email)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) SetPassword(ctx context.Context, id ID, password PasswordHash) error {
	if r.SetPasswordError != nil {
		return r.SetPasswordError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users[ix].PasswordHash = password
			return nil
		}
	}
	return ErrUserDoesNotExist
}

type FakeSessionRepository struct {
	UserIdByToken  map[SessionToken]ID
	UserRepository UserRepository
	ReturnError    bool
	lock           sync.Mutex
}

func NewFakeSessionRepository(userRepository UserRepository) *FakeSessionRepository {
	return &FakeSessionRepository{
		UserIdByToken:  make(map[SessionToken]ID),
		UserRepository: userRepository,
	}
}

func (r *FakeSessionRepository) Create(ctx context.Context, input CreateSessionInput) error {
	if r.ReturnError {
		return fmt.Errorf("could not create session for user %d", input.UserID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.UserIdByToken[input.Token] = input.UserID
	return nil
}

func (r *FakeSessionRepository) GetUserByToken(ctx context.Context, token SessionToken) (u User, err error) {
	r.lock.Lock()
	userId, ok := r.UserIdByToken[token]
	r.lock.Unlock()
	if !ok {
		return u, ErrUserDoesNotExist
	}
	return r.UserRepository.GetByID(ctx, userId)
}

func (r *FakeSessionRepository) Delete(ctx context.Context, token SessionToken) (ID, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	userID, ok := r.UserIdByToken[token]
	if !ok {
		return ID(0), ErrSessionDoesNotExist
	}
	delete(r.UserIdByToken, token)
	return userID, nil
}

type FakePasswordResetTokenGenerator struct {
	Tokens      []PasswordResetToken
	ReturnError bool
	generated   int
	lock        sync.Mutex
}

// NewFakePasswordResetTokenGenerator returns the given tokens in order,
// repeating the last one when they run out.
func NewFakePasswordResetTokenGenerator(tokens ...string) *FakePasswordResetTokenGenerator {
	g := &FakePasswordResetTokenGenerator{}
	for _, t := range tokens {
		g.Tokens = append(g.Tokens, PasswordResetToken(t))
	}
	return g
}

func (g *FakePasswordResetTokenGenerator) GeneratePasswordResetToken() (PasswordResetToken, error) {
	if g.ReturnError {
		return "", fmt.Errorf("could not generate password reset token")
	}
	g.lock.Lock()
	defer g.lock.Unlock()
	ix := g.generated
	if ix >= len(g.Tokens) {
		ix = len(g.Tokens) - 1
	}
	g.generated++
	return g.Tokens[ix], nil
}

type FakePasswordResetTokenRepository struct {
	Records             []PasswordResetTokenRecord
	CreateError         error
	DeleteByEmailError  error
	DeleteByIDCallCount int
	lock                sync.Mutex
	lastID              int
}

func NewFakePasswordResetTokenRepository() *FakePasswordResetTokenRepository {
	return &FakePasswordResetTokenRepository{}
}

func (r *FakePasswordResetTokenRepository) Create(
	ctx context.Context,
	input CreatePasswordResetTokenInput,
) (record PasswordResetTokenRecord, err error) {
	if r.CreateError != nil {
		return record, r.CreateError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.lastID++
	record = PasswordResetTokenRecord{
		ID:        PasswordResetTokenID(fmt.Sprintf("token-%d", r.lastID)),
		Email:     input.Email,
		Token:     input.Token,
		ExpiresAt: input.ExpiresAt,
	}
	r.Records = append(r.Records, record)
	return record, nil
}

func (r *FakePasswordResetTokenRepository) GetByToken(
	ctx context.Context,
	token PasswordResetToken,
) (record PasswordResetTokenRecord, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, record := range r.Records {
		if record.Token == token {
			return record, nil
		}
	}
	return record, ErrPasswordResetTokenDoesNotExist
}

func (r *FakePasswordResetTokenRepository) GetByTokenForUpdate(
	ctx context.Context,
	token PasswordResetToken,
) (PasswordResetTokenRecord, error) {
	return r.GetByToken(ctx, token)
}

func (r *FakePasswordResetTokenRepository) DeleteByID(ctx context.Context, id PasswordResetTokenID) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.DeleteByIDCallCount++
	for ix, record := range r.Records {
		if record.ID == id {
			r.Records = append(r.Records[:ix], r.Records[ix+1:]...)
			return nil
		}
	}
	return ErrPasswordResetTokenDoesNotExist
}

func (r *FakePasswordResetTokenRepository) DeleteByEmail(ctx context.Context, email c.Email) (int64, error) {
	if r.DeleteByEmailError != nil {
		return 0, r.DeleteByEmailError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	kept := make([]PasswordResetTokenRecord, 0, len(r.Records))
	for _, record := range r.Records {
		if record.Email != email {
			kept = append(kept, record)
		}
	}
	deleted := int64(len(r.Records) - len(kept))
	r.Records = kept
	return deleted, nil
}

func (r *FakePasswordResetTokenRepository) CountByEmail(email c.Email) int {
	r.lock.Lock()
	defer r.lock.Unlock()
	count := 0
	for _, record := range r.Records {
		if record.Email == email {
			count++
		}
	}
	return count
}
