package http_test

import (
	"context"

	"wellness-admin/internal/auth/domain/model"
	"wellness-admin/internal/auth/domain/repository"

	"github.com/stretchr/testify/mock"
)

// mockAuthUsecase mocks usecase.AuthUsecaseInterface for handler and
// middleware tests.
type mockAuthUsecase struct {
	mock.Mock
}

func (m *mockAuthUsecase) Login(ctx context.Context, creds model.Credentials) (*model.Identity, string, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*model.Identity), args.String(1), args.Error(2)
}

func (m *mockAuthUsecase) ValidateSession(ctx context.Context, tokenString string) (*repository.SessionClaims, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.SessionClaims), args.Error(1)
}

func (m *mockAuthUsecase) CurrentUser(ctx context.Context, accessToken string) (*model.Identity, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Identity), args.Error(1)
}

func (m *mockAuthUsecase) Logout(ctx context.Context, tokenString string) {
	m.Called(ctx, tokenString)
}
