package service_test

import (
	"context"

	"sitehost/internal/user/domain"
	userrepo "sitehost/internal/user/repository"
)

type mockUserRepo struct {
	loadAllFunc     func(ctx context.Context) ([]domain.User, error)
	saveAllFunc     func(ctx context.Context, users []domain.User) error
	createFunc      func(ctx context.Context, user domain.User) error
	findByEmailFunc func(ctx context.Context, email string) (domain.User, error)
	findByIDFunc    func(ctx context.Context, id domain.ID) (domain.User, error)
}

func (m *mockUserRepo) LoadAll(ctx context.Context) ([]domain.User, error) {
	if m.loadAllFunc != nil {
		return m.loadAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockUserRepo) SaveAll(ctx context.Context, users []domain.User) error {
	if m.saveAllFunc != nil {
		return m.saveAllFunc(ctx, users)
	}
	return nil
}

func (m *mockUserRepo) Create(ctx context.Context, user domain.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return domain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return domain.User{}, userrepo.ErrUserNotFound
}

type mockHasher struct {
	hashFunc    func(password string) (string, error)
	compareFunc func(hash, password string) error
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed:" + password, nil
}

func (m *mockHasher) Compare(hash, password string) error {
	if m.compareFunc != nil {
		return m.compareFunc(hash, password)
	}
	return nil
}

type mockIDGenerator struct {
	newIDFunc func() (string, error)
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.newIDFunc != nil {
		return m.newIDFunc()
	}
	return "id-1", nil
}
