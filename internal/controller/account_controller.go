package controller

import (
	"net/http"

	"github.com/unclebandit/outreach-backend/internal/auth"
	"github.com/unclebandit/outreach-backend/internal/handler"
	"github.com/unclebandit/outreach-backend/internal/service"
)

type AccountController struct {
	AccountService *service.AccountService
}

func (c *AccountController) ListAccounts(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}

	accounts, err := c.AccountService.ListAccounts(r.Context(), userID)
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, map[string]any{"items": accounts})
}

func (c *AccountController) CreateAccount(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}

	var body service.CreateAccountInput
	if err := handler.DecodeJSON(w, r, &body); err != nil {
		handler.WriteError(w, r, err)
		return
	}

	account, err := c.AccountService.CreateAccount(r.Context(), userID, body)
	if err != nil {
		handler.WriteError(w, r, err)
		return
	}
	handler.WriteJSON(w, http.StatusCreated, account)
}
