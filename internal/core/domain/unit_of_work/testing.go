package uow

import (
	"context"
	"remindme/internal/core/domain/user"
	"sync"
)

// FakeUnitOfWorkContext holds the unit of work lock from Begin until the first
// Commit or Rollback, which serializes concurrent units of work the way row
// locks do in the database.
type FakeUnitOfWorkContext struct {
	UserRepository               *user.FakeUserRepository
	SessionRepository            *user.FakeSessionRepository
	PasswordResetTokenRepository *user.FakePasswordResetTokenRepository
	WasRollbackCalled            bool
	WasCommitCalled              bool
	release                      func()
}

func (c *FakeUnitOfWorkContext) Rollback(ctx context.Context) error {
	if !c.WasCommitCalled {
		c.WasRollbackCalled = true
	}
	c.release()
	return nil
}

func (c *FakeUnitOfWorkContext) Commit(ctx context.Context) error {
	c.WasCommitCalled = true
	c.release()
	return nil
}

func (c *FakeUnitOfWorkContext) Users() user.UserRepository {
	return c.UserRepository
}

func (c *FakeUnitOfWorkContext) Sessions() user.SessionRepository {
	return c.SessionRepository
}

func (c *FakeUnitOfWorkContext) PasswordResetTokens() user.PasswordResetTokenRepository {
	return c.PasswordResetTokenRepository
}

type FakeUnitOfWork struct {
	UserRepository               *user.FakeUserRepository
	SessionRepository            *user.FakeSessionRepository
	PasswordResetTokenRepository *user.FakePasswordResetTokenRepository
	Contexts                     []*FakeUnitOfWorkContext
	ReturnError                  error
	lock                         sync.Mutex
	contextsLock                 sync.Mutex
}

func NewFakeUnitOfWork() *FakeUnitOfWork {
	userRepository := user.NewFakeUserRepository()
	return &FakeUnitOfWork{
		UserRepository:               userRepository,
		SessionRepository:            user.NewFakeSessionRepository(userRepository),
		PasswordResetTokenRepository: user.NewFakePasswordResetTokenRepository(),
	}
}

func (u *FakeUnitOfWork) Begin(ctx context.Context) (Context, error) {
	if u.ReturnError != nil {
		return nil, u.ReturnError
	}
	u.lock.Lock()
	var once sync.Once
	c := &FakeUnitOfWorkContext{
		UserRepository:               u.UserRepository,
		SessionRepository:            u.SessionRepository,
		PasswordResetTokenRepository: u.PasswordResetTokenRepository,
		release:                      func() { once.Do(u.lock.Unlock) },
	}
	u.contextsLock.Lock()
	u.Contexts = append(u.Contexts, c)
	u.contextsLock.Unlock()
	return c, nil
}

func (u *FakeUnitOfWork) LastContext() *FakeUnitOfWorkContext {
	u.contextsLock.Lock()
	defer u.contextsLock.Unlock()
	l := len(u.Contexts)
	if l == 0 {
		panic("unit of work has not been started")
	}
	return u.Contexts[l-1]
}
