package qrsdk

import (
	"encoding/json"
	"time"
)

// ============================================================================
// Common
// ============================================================================

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	// Error is a short machine readable code (e.g. "invalid_request")
	Error string `json:"error"`

	// Message is a human readable explanation
	Message string `json:"message"`
}

// MessageResponse carries a confirmation message only.
type MessageResponse struct {
	Message string `json:"message"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Store string `json:"store"`
}

// APIHealthResponse is returned by /api/health.
type APIHealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ============================================================================
// Accounts
// ============================================================================

// User is the public view of an account. Credentials and pending codes are
// never included.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Birthday  string    `json:"birthday,omitempty"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
	Birthday string `json:"birthday,omitempty"`
}

// RegisterResponse carries User only on /api/register2.
type RegisterResponse struct {
	Message string `json:"message"`
	User    *User  `json:"user,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries Token only on /api/login2.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
	User    User   `json:"user"`
}

type VerifyCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// EmailRequest is the body of resend-verification, forgot-password and
// delete-account.
type EmailRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

// UpdateUserRequest leaves nil or blank fields unchanged.
type UpdateUserRequest struct {
	Email    string  `json:"email"`
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Birthday *string `json:"birthday,omitempty"`
}

type UserResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

type DeleteAccountResponse struct {
	Message         string `json:"message"`
	DeletedProjects int    `json:"deletedProjects"`
}

// ============================================================================
// Projects
// ============================================================================

type Location struct {
	City    string  `json:"city,omitempty"`
	Region  string  `json:"region,omitempty"`
	Country string  `json:"country,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

type ScanEvent struct {
	Timestamp time.Time `json:"timestamp"`
	UserAgent string    `json:"userAgent"`
	Browser   string    `json:"browser"`
	OS        string    `json:"os"`
	Device    string    `json:"device"`
	IP        string    `json:"ip"`
	Location  *Location `json:"location,omitempty"`
}

type Project struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Text       string      `json:"text"`
	QRImage    string      `json:"qrImage,omitempty"`
	FgColor    string      `json:"fgColor"`
	BgColor    string      `json:"bgColor"`
	ScanCount  int64       `json:"scanCount"`
	ScanEvents []ScanEvent `json:"scanEvents"`
	UserID     string      `json:"userId,omitempty"`
	CreatedAt  time.Time   `json:"createdAt,omitzero"`
	UpdatedAt  time.Time   `json:"updatedAt,omitzero"`
}

// SaveProjectRequest renders a QR image server side when QRImage is empty.
type SaveProjectRequest struct {
	Name    string `json:"name"`
	Text    string `json:"text"`
	QRImage string `json:"qrImage,omitempty"`
	FgColor string `json:"fgColor,omitempty"`
	BgColor string `json:"bgColor,omitempty"`
}

// UpdateProjectRequest leaves nil or blank fields unchanged. The colour
// endpoint ignores Name and Text.
type UpdateProjectRequest struct {
	Name    *string `json:"name,omitempty"`
	Text    *string `json:"text,omitempty"`
	QRImage *string `json:"qrImage,omitempty"`
	FgColor *string `json:"fgColor,omitempty"`
	BgColor *string `json:"bgColor,omitempty"`
}

type ProjectResponse struct {
	Message string  `json:"message,omitempty"`
	Project Project `json:"project"`
}

type ProjectsResponse struct {
	Projects []Project `json:"projects"`
}

type ScanCountResponse struct {
	ScanCount int64 `json:"scanCount"`
}

type ScanAnalyticsResponse struct {
	ScanCount  int64       `json:"scanCount"`
	ScanEvents []ScanEvent `json:"scanEvents"`
}

// ============================================================================
// Integrations
// ============================================================================

type CustomDataRequest struct {
	Endpoint    string `json:"endpoint"`
	Key         string `json:"key"`
	DatabaseID  string `json:"databaseId"`
	ContainerID string `json:"containerId"`
}

type CustomDataResponse struct {
	Data []json.RawMessage `json:"data"`
}

type CaptionResponse struct {
	Caption string `json:"caption"`
}
