package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/unclebandit/outreach-backend/internal/errors"
	"github.com/unclebandit/outreach-backend/internal/model"
	"github.com/unclebandit/outreach-backend/internal/service"
)

func TestCreateAccount(t *testing.T) {
	repo := &MockAccountRepo{}
	svc := &service.AccountService{AccountRepo: repo}

	acc, err := svc.CreateAccount(context.Background(), ownerID, service.CreateAccountInput{
		DisplayName: "  Outreach Bot ",
		Email:       strPtr("  "),
	})
	require.NoError(t, err)

	assert.Equal(t, "Outreach Bot", acc.DisplayName)
	assert.Nil(t, acc.Email)
	assert.Equal(t, "linkedin", acc.Type)
	assert.Equal(t, ownerID, acc.UserID)
	assert.NotEmpty(t, acc.ID)
}

func TestCreateAccount_Validation(t *testing.T) {
	svc := &service.AccountService{AccountRepo: &MockAccountRepo{}}

	_, err := svc.CreateAccount(context.Background(), ownerID, service.CreateAccountInput{
		DisplayName: "Bot",
		Email:       strPtr("not-an-email"),
		Type:        "twitter",
	})
	require.Error(t, err)

	var ve *appErrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "email")
	assert.Contains(t, ve.Fields, "type")
}

func TestListAccounts_OnlyOwn(t *testing.T) {
	repo := &MockAccountRepo{Accounts: []model.Account{
		{ID: "a", UserID: ownerID, DisplayName: "Mine"},
		{ID: "b", UserID: "someone-else", DisplayName: "Theirs"},
	}}
	svc := &service.AccountService{AccountRepo: repo}

	got, err := svc.ListAccounts(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Mine", got[0].DisplayName)
}
