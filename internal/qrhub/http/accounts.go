package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/qrhub/internal/qrhub/domain"
	"github.com/aussiebroadwan/qrhub/internal/qrhub/service"
	"github.com/aussiebroadwan/qrhub/pkg/httpx"
	"github.com/aussiebroadwan/qrhub/pkg/qrsdk"
	"github.com/aussiebroadwan/qrhub/pkg/slogx"
)

// AccountsHandler serves registration, verification, login and profile
// endpoints.
type AccountsHandler struct {
	AccountService *service.AccountService
}

// HandleRegister handles POST /api/register
//
//	@Summary		Register
//	@Description	Creates an unverified account and mails a six digit verification code.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		qrsdk.RegisterRequest	true	"Account details"
//	@Success		201		{object}	qrsdk.RegisterResponse
//	@Failure		400		{object}	qrsdk.ErrorResponse
//	@Failure		409		{object}	qrsdk.ErrorResponse	"User already exists"
//	@Failure		500		{object}	qrsdk.ErrorResponse	"Mail delivery failed; the account is kept"
//	@Router			/api/register [post].
func (h *AccountsHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, false)
}

// HandleRegister2 handles POST /api/register2
//
//	@Summary		Register and return the user
//	@Tags			Sessions
//	@Accept			json
//	@Produce		json
//	@Param			request	body		qrsdk.RegisterRequest	true	"Account details"
//	@Success		201		{object}	qrsdk.RegisterResponse
//	@Failure		400		{object}	qrsdk.ErrorResponse
//	@Failure		409		{object}	qrsdk.ErrorResponse
//	@Failure		500		{object}	qrsdk.ErrorResponse
//	@Router			/api/register2 [post].
func (h *AccountsHandler) HandleRegister2(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, true)
}

func (h *AccountsHandler) register(w http.ResponseWriter, r *http.Request, withUser bool) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req qrsdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadJSON(w)
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeBadRequest(w, "Name, email and password are required.")
		return
	}

	acct, err := h.AccountService.Register(ctx, service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Birthday: req.Birthday,
	})
	switch {
	case err == nil:
	case errors.Is(err, service.ErrInvalidInput):
		writeBadRequest(w, "Name, email and password are required.")
		return
	case errors.Is(err, service.ErrAccountExists):
		writeError(w, http.StatusConflict, qrsdk.ErrorCodeConflict, "User already exists.")
		return
	case errors.Is(err, service.ErrMailDelivery):
		log.Error("verification mail failed after registration", "error", err)
		writeError(w, http.StatusInternalServerError, qrsdk.ErrorCodeServerError,
			"Account created but the verification email could not be sent. Request a new code.")
		return
	default:
		writeServerError(w, log, "failed to register account", err)
		return
	}

	resp := qrsdk.RegisterResponse{Message: "User registered. Check your email for the verification code."}
	if withUser {
		u := userView(acct)
		resp.User = &u
	}
	httpx.WriteJSON(w, http.StatusCreated, resp)
}

// HandleLogin handles POST /api/login
//
//	@Summary		Login
//	@Description	Checks credentials. No session is issued; use /api/login2 for a token.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		qrsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	qrsdk.LoginResponse
//	@Failure		400		{object}	qrsdk.ErrorResponse
//	@Failure		401		{object}	qrsdk.ErrorResponse	"Invalid credentials"
//	@Failure		403		{object}	qrsdk.ErrorResponse	"Email not verified"
//	@Router			/api/login [post].
func (h *AccountsHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, false)
}

// HandleLogin2 handles POST /api/login2
//
//	@Summary	Login and issue a session
//	@Tags		Sessions
//	@Accept		json
//	@Produce	json
//	@Param		request	body		qrsdk.LoginRequest	true	"Credentials"
//	@Success	200		{object}	qrsdk.LoginResponse	"message, token, user"
//	@Failure	400		{object}	qrsdk.ErrorResponse
//	@Failure	401		{object}	qrsdk.ErrorResponse
//	@Failure	403		{object}	qrsdk.ErrorResponse
//	@Router		/api/login2 [post].
func (h *AccountsHandler) HandleLogin2(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, true)
}

func (h *AccountsHandler) login(w http.ResponseWriter, r *http.Request, withToken bool) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req qrsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadJSON(w)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeBadRequest(w, "Email and password are required.")
		return
	}

	var (
		token string
		acct  domain.Account
		err   error
	)
	if withToken {
		token, acct, err = h.AccountService.Login(ctx, req.Email, req.Password)
	} else {
		acct, err = h.AccountService.Authenticate(ctx, req.Email, req.Password)
	}
	switch {
	case err == nil:
	case errors.Is(err, service.ErrInvalidInput):
		writeBadRequest(w, "Email and password are required.")
		return
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, qrsdk.ErrorCodeUnauthorized, "Invalid credentials.")
		return
	case errors.Is(err, service.ErrNotVerified):
		writeError(w, http.StatusForbidden, qrsdk.ErrorCodeNotVerified, "Please verify your email before logging in.")
		return
	default:
		writeServerError(w, log, "failed to log in", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, qrsdk.LoginResponse{
		Message: "Login successful.",
		Token:   token,
		User:    userView(acct),
	})
}

type verifyCodeBody struct {
	Email string     `json:"email"`
	Code  flexString `json:"code"`
}

// HandleVerifyCode handles POST /api/verify-code
//
//	@Summary		Verify email
//	@Description	Consumes the pending verification code. The code may be sent as a string or a number.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		qrsdk.VerifyCodeRequest	true	"Email and code"
//	@Success		200		{object}	qrsdk.MessageResponse	"Email verified, or already verified"
//	@Failure		400		{object}	qrsdk.ErrorResponse		"Missing fields, unknown user or bad code"
//	@Failure		409		{object}	qrsdk.ErrorResponse
//	@Router			/api/verify-code [post].
func (h *AccountsHandler) HandleVerifyCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req verifyCodeBody
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadJSON(w)
		return
	}
	code := strings.TrimSpace(string(req.Code))
	if strings.TrimSpace(req.Email) == "" || code == "" {
		writeBadRequest(w, "Email and code are required.")
		return
	}

	err := h.AccountService.VerifyEmail(ctx, req.Email, code)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, qrsdk.MessageResponse{Message: "Email verified."})
	case errors.Is(err, service.ErrAlreadyVerified):
		httpx.WriteJSON(w, http.StatusOK, qrsdk.MessageResponse{Message: "Already verified."})
	case errors.Is(err, service.ErrAccountNotFound):
		writeBadRequest(w, "User not found.")
	case errors.Is(err, service.ErrInvalidCode):
		writeBadRequest(w, "Invalid or expired verification code.")
	case errors.Is(err, service.ErrConflict):
		writeError(w, http.StatusConflict, qrsdk.ErrorCodeConflict, msgConflict)
	case errors.Is(err, service.ErrInvalidInput):
		writeBadRequest(w, "Email and code are required.")
	default:
		writeServerError(w, log, "failed to verify email", err)
	}
}

// HandleResendVerification handles POST /api/resend-verification
//
//	@Summary	Resend verification code
//	@Tags		Accounts
//	@Accept		json
//	@Produce	json
//	@Param		request	body		qrsdk.EmailRequest	true	"Email"
//	@Success	200		{object}	qrsdk.MessageResponse
//	@Failure	400		{object}	qrsdk.ErrorResponse
//	@Failure	404		{object}	qrsdk.ErrorResponse
//	@Failure	500		{object}	qrsdk.ErrorResponse
//	@Router		/api/resend-verification [post].
func (h *AccountsHandler) HandleResendVerification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	email, ok := decodeEmail(w, r)
	if !ok {
		return
	}

	err := h.AccountService.ResendVerification(ctx, email)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, qrsdk.MessageResponse{Message: "Verification code resent."})
	case errors.Is(err, service.ErrAlreadyVerified):
		httpx.WriteJSON(w, http.StatusOK, qrsdk.MessageResponse{Message: "Already verified."})
	case errors.Is(err, service.ErrAccountNotFound):
		writeError(w, http.StatusNotFound, qrsdk.ErrorCodeNotFound, "User not found.")
	case errors.Is(err, service.ErrConflict):
		writeError(w, http.StatusConflict, qrsdk.ErrorCodeConflict, msgConflict)
	default:
		writeServerError(w, log, "failed to resend verification", err)
	}
}

// HandleForgotPassword handles POST /api/forgot-password
//
//	@Summary	Request a password reset code
//	@Tags		Accounts
//	@Accept		json
//	@Produce	json
//	@Param		request	body		qrsdk.EmailRequest	true	"Email"
//	@Success	200		{object}	qrsdk.MessageResponse
//	@Failure	400		{object}	qrsdk.ErrorResponse
//	@Failure	404		{object}	qrsdk.ErrorResponse
//	@Failure	500		{object}	qrsdk.ErrorResponse
//	@Router		/api/forgot-password [post].
func (h *AccountsHandler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	email, ok := decodeEmail(w, r)
	if !ok {
		return
	}

	err := h.AccountService.ForgotPassword(ctx, email)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, qrsdk.MessageResponse{Message: "Reset code sent."})
	case errors.Is(err, service.ErrAccountNotFound):
		writeError(w, http.StatusNotFound, qrsdk.ErrorCodeNotFound, "User not found.")
	case errors.Is(err, service.ErrConflict):
		writeError(w, http.StatusConflict, qrsdk.ErrorCodeConflict, msgConflict)
	default:
		writeServerError(w, log, "failed to start password reset", err)
	}
}

// HandleResetPassword handles POST /api/reset-password
//
//	@Summary		Reset password
//	@Description	An unknown email, a missing, wrong or expired code all give the same 400.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		qrsdk.ResetPasswordRequest	true	"Email, code and new password"
//	@Success		200		{object}	qrsdk.MessageResponse
//	@Failure		400		{object}	qrsdk.ErrorResponse
//	@Failure		409		{object}	qrsdk.ErrorResponse
//	@Router			/api/reset-password [post].
func (h *AccountsHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req qrsdk.ResetPasswordRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadJSON(w)
		return
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Code) == "" || req.NewPassword == "" {
		writeBadRequest(w, "Email, code and new password are required.")
		return
	}

	err := h.AccountService.ResetPassword(ctx, req.Email, req.Code, req.NewPassword)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, qrsdk.MessageResponse{Message: "Password reset successful."})
	case errors.Is(err, service.ErrInvalidCode):
		writeBadRequest(w, "Invalid or expired reset code.")
	case errors.Is(err, service.ErrSamePassword):
		writeBadRequest(w, "New password must be different from the current password.")
	case errors.Is(err, service.ErrInvalidInput):
		writeBadRequest(w, "Email, code and new password are required.")
	case errors.Is(err, service.ErrConflict):
		writeError(w, http.StatusConflict, qrsdk.ErrorCodeConflict, msgConflict)
	default:
		writeServerError(w, log, "failed to reset password", err)
	}
}

// HandleUpdateUser handles PUT /api/update-user
//
//	@Summary		Update profile
//	@Description	Blank or absent fields are left unchanged.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		qrsdk.UpdateUserRequest	true	"Email and fields to change"
//	@Success		200		{object}	qrsdk.UserResponse
//	@Failure		400		{object}	qrsdk.ErrorResponse
//	@Failure		404		{object}	qrsdk.ErrorResponse
//	@Failure		409		{object}	qrsdk.ErrorResponse
//	@Router			/api/update-user [put].
func (h *AccountsHandler) HandleUpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req qrsdk.UpdateUserRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadJSON(w)
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		writeBadRequest(w, "Email is required.")
		return
	}

	acct, err := h.AccountService.UpdateProfile(ctx, req.Email, domain.AccountPatch{
		Name:     req.Name,
		Phone:    req.Phone,
		Birthday: req.Birthday,
	})
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, qrsdk.UserResponse{Message: "User updated.", User: userView(acct)})
	case errors.Is(err, service.ErrAccountNotFound):
		writeError(w, http.StatusNotFound, qrsdk.ErrorCodeNotFound, "User not found.")
	case errors.Is(err, service.ErrConflict):
		writeError(w, http.StatusConflict, qrsdk.ErrorCodeConflict, msgConflict)
	default:
		writeServerError(w, log, "failed to update user", err)
	}
}

// HandleDeleteAccount handles DELETE /api/delete-account
//
//	@Summary		Delete account by email
//	@Description	Legacy unauthenticated removal. Projects owned by the account are not touched.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		qrsdk.EmailRequest	true	"Email"
//	@Success		200		{object}	qrsdk.MessageResponse
//	@Failure		400		{object}	qrsdk.ErrorResponse
//	@Failure		404		{object}	qrsdk.ErrorResponse
//	@Router			/api/delete-account [delete].
func (h *AccountsHandler) HandleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	email, ok := decodeEmail(w, r)
	if !ok {
		return
	}

	err := h.AccountService.DeleteByEmail(ctx, email)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, qrsdk.MessageResponse{Message: "Account deleted."})
	case errors.Is(err, service.ErrAccountNotFound):
		writeError(w, http.StatusNotFound, qrsdk.ErrorCodeNotFound, "User not found.")
	default:
		writeServerError(w, log, "failed to delete account", err)
	}
}

// HandleDeleteMyAccount handles DELETE /api/user/account
//
//	@Summary		Delete the session's account
//	@Description	Deletes every project the caller owns, then the account.
//	@Tags			Sessions
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	qrsdk.DeleteAccountResponse
//	@Failure		401	{object}	qrsdk.ErrorResponse
//	@Failure		404	{object}	qrsdk.ErrorResponse
//	@Failure		500	{object}	qrsdk.ErrorResponse
//	@Router			/api/user/account [delete].
func (h *AccountsHandler) HandleDeleteMyAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	sub, ok := httpx.SubjectFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, qrsdk.ErrorCodeUnauthorized, "Authentication required.")
		return
	}

	n, err := h.AccountService.DeleteWithProjects(ctx, sub)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, qrsdk.DeleteAccountResponse{
			Message:         "Account deleted.",
			DeletedProjects: n,
		})
	case errors.Is(err, service.ErrAccountNotFound):
		writeError(w, http.StatusNotFound, qrsdk.ErrorCodeNotFound, "User not found.")
	default:
		writeServerError(w, log, "failed to delete account with projects", err)
	}
}

// decodeEmail reads an {email} body, answering 400 itself when it is bad.
func decodeEmail(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req qrsdk.EmailRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadJSON(w)
		return "", false
	}
	if strings.TrimSpace(req.Email) == "" {
		writeBadRequest(w, "Email is required.")
		return "", false
	}
	return req.Email, true
}
