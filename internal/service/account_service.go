package service

import (
	"context"
	"strings"

	"github.com/unclebandit/outreach-backend/internal/model"
	"github.com/unclebandit/outreach-backend/internal/repository"
)

type AccountService struct {
	AccountRepo repository.AccountRepositoryInterface
}

type CreateAccountInput struct {
	DisplayName string  `json:"displayName" validate:"required,min=1,max=120"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Type        string  `json:"type" validate:"omitempty,oneof=linkedin"`
}

func (s *AccountService) ListAccounts(ctx context.Context, userID string) ([]model.Account, error) {
	return s.AccountRepo.ListByUser(ctx, userID)
}

func (s *AccountService) CreateAccount(ctx context.Context, userID string, in CreateAccountInput) (*model.Account, error) {
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	in.Email = trimPtr(in.Email)
	if in.Email != nil && *in.Email == "" {
		in.Email = nil
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	a := &model.Account{
		UserID:      userID,
		Type:        in.Type,
		DisplayName: in.DisplayName,
		Email:       in.Email,
	}
	if err := s.AccountRepo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}
