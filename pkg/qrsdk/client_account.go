package qrsdk

import (
	"context"
	"net/http"
)

// Register creates an account. The verification code is mailed.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var out RegisterResponse
	if err := c.call(ctx, http.MethodPost, "/api/register", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register2 is Register returning the created user.
func (c *Client) Register2(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var out RegisterResponse
	if err := c.call(ctx, http.MethodPost, "/api/register2", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyCode confirms an email address.
func (c *Client) VerifyCode(ctx context.Context, email, code string) (*MessageResponse, error) {
	var out MessageResponse
	req := VerifyCodeRequest{Email: email, Code: code}
	if err := c.call(ctx, http.MethodPost, "/api/verify-code", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ResendVerification(ctx context.Context, email string) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.call(ctx, http.MethodPost, "/api/resend-verification", EmailRequest{Email: email}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login checks credentials without issuing a session.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.call(ctx, http.MethodPost, "/api/login", LoginRequest{Email: email, Password: password}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login2 returns a bearer session in LoginResponse.Token.
func (c *Client) Login2(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.call(ctx, http.MethodPost, "/api/login2", LoginRequest{Email: email, Password: password}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.call(ctx, http.MethodPost, "/api/forgot-password", EmailRequest{Email: email}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ResetPassword(ctx context.Context, req ResetPasswordRequest) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.call(ctx, http.MethodPost, "/api/reset-password", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, req UpdateUserRequest) (*UserResponse, error) {
	var out UserResponse
	if err := c.call(ctx, http.MethodPut, "/api/update-user", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAccount removes an account by email without a session.
func (c *Client) DeleteAccount(ctx context.Context, email string) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.call(ctx, http.MethodDelete, "/api/delete-account", EmailRequest{Email: email}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteMyAccount removes the session's account and every project it owns.
func (c *Client) DeleteMyAccount(ctx context.Context) (*DeleteAccountResponse, error) {
	var out DeleteAccountResponse
	if err := c.call(ctx, http.MethodDelete, "/api/user/account", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
