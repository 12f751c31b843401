// Package qrhub registers the swagger document served under /swagger/. It
// is kept in step with the swag annotations on the HTTP handlers by hand.
package qrhub

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"contact": {
			"name": "AussieBroadWAN Team",
			"url": "https://github.com/aussiebroadwan/qrhub"
		},
		"license": {
			"name": "MIT",
			"url": "https://opensource.org/licenses/MIT"
		},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/api/test": {
			"get": {
				"tags": [
					"Health"
				],
				"summary": "Smoke test",
				"produces": [
					"text/plain"
				],
				"responses": {
					"200": {
						"description": "Server is working!",
						"schema": {
							"type": "string"
						}
					}
				}
			}
		},
		"/api/health": {
			"get": {
				"tags": [
					"Health"
				],
				"summary": "API health",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.APIHealthResponse"
						}
					}
				}
			}
		},
		"/livez": {
			"get": {
				"tags": [
					"Health"
				],
				"summary": "Health Check Endpoint",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.HealthResponse"
						}
					}
				}
			}
		},
		"/readyz": {
			"get": {
				"tags": [
					"Health"
				],
				"summary": "Readiness Check Endpoint",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.HealthResponse"
						}
					},
					"503": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.HealthResponse"
						}
					}
				}
			}
		},
		"/api/register": {
			"post": {
				"tags": [
					"Accounts"
				],
				"summary": "Register",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/qrsdk.RegisterRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.RegisterResponse"
						}
					},
					"400": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					},
					"409": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					},
					"500": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/register2": {
			"post": {
				"tags": [
					"Sessions"
				],
				"summary": "Register and return the user",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/qrsdk.RegisterRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.RegisterResponse"
						}
					},
					"400": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					},
					"409": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					},
					"500": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/login": {
			"post": {
				"tags": [
					"Accounts"
				],
				"summary": "Login",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/qrsdk.LoginRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.LoginResponse"
						}
					},
					"400": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					},
					"401": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					},
					"403": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/login2": {
			"post": {
				"tags": [
					"Sessions"
				],
				"summary": "Login and issue a session",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/qrsdk.LoginRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.LoginResponse"
						}
					},
					"400": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					},
					"401": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					},
					"403": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/verify-code": {
			"post": {
				"tags": [
					"Accounts"
				],
				"summary": "Verify email",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/qrsdk.VerifyCodeRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.MessageResponse"
						}
					},
					"400": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					},
					"409": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/resend-verification": {
			"post": {
				"tags": [
					"Accounts"
				],
				"summary": "Resend verification code",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/qrsdk.EmailRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.MessageResponse"
						}
					},
					"400": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					},
					"404": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					},
					"500": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/forgot-password": {
			"post": {
				"tags": [
					"Accounts"
				],
				"summary": "Request a password reset code",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/qrsdk.EmailRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.MessageResponse"
						}
					},
					"400": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					},
					"404": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					},
					"500": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/reset-password": {
			"post": {
				"tags": [
					"Accounts"
				],
				"summary": "Reset password",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/qrsdk.ResetPasswordRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.MessageResponse"
						}
					},
					"400": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					},
					"409": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/update-user": {
			"put": {
				"tags": [
					"Accounts"
				],
				"summary": "Update profile",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/qrsdk.UpdateUserRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.UserResponse"
						}
					},
					"400": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					},
					"404": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					},
					"409": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/delete-account": {
			"delete": {
				"tags": [
					"Accounts"
				],
				"summary": "Delete account by email",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/qrsdk.EmailRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.MessageResponse"
						}
					},
					"400": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					},
					"404": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/user/account": {
			"delete": {
				"tags": [
					"Sessions"
				],
				"summary": "Delete the session's account",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.DeleteAccountResponse"
						}
					},
					"401": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					},
					"404": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					},
					"500": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/save-project": {
			"post": {
				"tags": [
					"Projects"
				],
				"summary": "Save project",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/qrsdk.SaveProjectRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"201": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ProjectResponse"
						}
					},
					"400": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					},
					"401": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					},
					"500": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/get-projects": {
			"get": {
				"tags": [
					"Projects"
				],
				"summary": "List own projects",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ProjectsResponse"
						}
					},
					"401": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					},
					"500": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/get-project/{id}": {
			"get": {
				"tags": [
					"Projects"
				],
				"summary": "Get project",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Project id",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ProjectResponse"
						}
					},
					"401": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					},
					"403": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					},
					"404": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/update-project/{id}": {
			"put": {
				"tags": [
					"Projects"
				],
				"summary": "Update project",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Project id",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/qrsdk.UpdateProjectRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ProjectResponse"
						}
					},
					"400": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					},
					"403": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					},
					"404": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					},
					"409": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/update-color/{id}": {
			"put": {
				"tags": [
					"Projects"
				],
				"summary": "Update project colours",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Project id",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/qrsdk.UpdateProjectRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ProjectResponse"
						}
					},
					"400": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					},
					"403": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					},
					"404": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					},
					"409": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/delete-project/{id}": {
			"delete": {
				"tags": [
					"Projects"
				],
				"summary": "Delete project",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Project id",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.MessageResponse"
						}
					},
					"403": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					},
					"404": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					}
				}
			}
		},
		"/track/{id}": {
			"get": {
				"tags": [
					"Tracking"
				],
				"summary": "Record a scan",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Project id",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"302": {
						"description": "Redirect to the payload"
					},
					"404": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					},
					"409": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					},
					"500": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/get-scan-count/{id}": {
			"get": {
				"tags": [
					"Tracking"
				],
				"summary": "Scan count",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Project id",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ScanCountResponse"
						}
					},
					"404": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/get-scan-analytics/{id}": {
			"get": {
				"tags": [
					"Tracking"
				],
				"summary": "Scan analytics",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Project id",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ScanAnalyticsResponse"
						}
					},
					"404": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/custom-data": {
			"post": {
				"tags": [
					"Integrations"
				],
				"summary": "Read a caller owned Cosmos container",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/qrsdk.CustomDataRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.CustomDataResponse"
						}
					},
					"400": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					},
					"500": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					}
				}
			}
		},
		"/api/caption-image": {
			"post": {
				"tags": [
					"Integrations"
				],
				"summary": "Caption an image",
				"produces": [
					"application/json"
				],
				"consumes": [
					"multipart/form-data"
				],
				"parameters": [
					{
						"type": "file",
						"description": "Image, at most 10 MiB",
						"name": "image",
						"in": "formData",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.CaptionResponse"
						}
					},
					"400": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					},
					"502": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					},
					"503": {
						"description": "",
						"schema": {
							"$ref": "#/definitions/qrsdk.ErrorResponse"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"qrsdk.APIHealthResponse": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string"
				},
				"timestamp": {
					"type": "string"
				}
			}
		},
		"qrsdk.CaptionResponse": {
			"type": "object",
			"properties": {
				"caption": {
					"type": "string"
				}
			}
		},
		"qrsdk.CustomDataRequest": {
			"type": "object",
			"properties": {
				"endpoint": {
					"type": "string"
				},
				"key": {
					"type": "string"
				},
				"databaseId": {
					"type": "string"
				},
				"containerId": {
					"type": "string"
				}
			}
		},
		"qrsdk.CustomDataResponse": {
			"type": "object",
			"properties": {
				"data": {
					"type": "array",
					"items": {
						"type": "object"
					}
				}
			}
		},
		"qrsdk.DeleteAccountResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				},
				"deletedProjects": {
					"type": "integer"
				}
			}
		},
		"qrsdk.EmailRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				}
			}
		},
		"qrsdk.ErrorResponse": {
			"type": "object",
			"properties": {
				"error": {
					"type": "string"
				},
				"message": {
					"type": "string"
				}
			}
		},
		"qrsdk.HealthChecks": {
			"type": "object",
			"properties": {
				"store": {
					"type": "string"
				}
			}
		},
		"qrsdk.HealthResponse": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string"
				},
				"uptime": {
					"type": "string"
				},
				"version": {
					"type": "string"
				},
				"checks": {
					"$ref": "#/definitions/qrsdk.HealthChecks"
				}
			}
		},
		"qrsdk.Location": {
			"type": "object",
			"properties": {
				"city": {
					"type": "string"
				},
				"region": {
					"type": "string"
				},
				"country": {
					"type": "string"
				},
				"lat": {
					"type": "number"
				},
				"lon": {
					"type": "number"
				}
			}
		},
		"qrsdk.LoginRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				}
			}
		},
		"qrsdk.LoginResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				},
				"token": {
					"type": "string"
				},
				"user": {
					"$ref": "#/definitions/qrsdk.User"
				}
			}
		},
		"qrsdk.MessageResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				}
			}
		},
		"qrsdk.Project": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"text": {
					"type": "string"
				},
				"qrImage": {
					"type": "string"
				},
				"fgColor": {
					"type": "string"
				},
				"bgColor": {
					"type": "string"
				},
				"scanCount": {
					"type": "integer"
				},
				"scanEvents": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/qrsdk.ScanEvent"
					}
				},
				"userId": {
					"type": "string"
				},
				"createdAt": {
					"type": "string"
				},
				"updatedAt": {
					"type": "string"
				}
			}
		},
		"qrsdk.ProjectResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				},
				"project": {
					"$ref": "#/definitions/qrsdk.Project"
				}
			}
		},
		"qrsdk.ProjectsResponse": {
			"type": "object",
			"properties": {
				"projects": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/qrsdk.Project"
					}
				}
			}
		},
		"qrsdk.RegisterRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				},
				"phone": {
					"type": "string"
				},
				"birthday": {
					"type": "string"
				}
			}
		},
		"qrsdk.RegisterResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				},
				"user": {
					"$ref": "#/definitions/qrsdk.User"
				}
			}
		},
		"qrsdk.ResetPasswordRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"code": {
					"type": "string"
				},
				"newPassword": {
					"type": "string"
				}
			}
		},
		"qrsdk.SaveProjectRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"text": {
					"type": "string"
				},
				"qrImage": {
					"type": "string"
				},
				"fgColor": {
					"type": "string"
				},
				"bgColor": {
					"type": "string"
				}
			}
		},
		"qrsdk.ScanAnalyticsResponse": {
			"type": "object",
			"properties": {
				"scanCount": {
					"type": "integer"
				},
				"scanEvents": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/qrsdk.ScanEvent"
					}
				}
			}
		},
		"qrsdk.ScanCountResponse": {
			"type": "object",
			"properties": {
				"scanCount": {
					"type": "integer"
				}
			}
		},
		"qrsdk.ScanEvent": {
			"type": "object",
			"properties": {
				"timestamp": {
					"type": "string"
				},
				"userAgent": {
					"type": "string"
				},
				"browser": {
					"type": "string"
				},
				"os": {
					"type": "string"
				},
				"device": {
					"type": "string"
				},
				"ip": {
					"type": "string"
				},
				"location": {
					"$ref": "#/definitions/qrsdk.Location"
				}
			}
		},
		"qrsdk.UpdateProjectRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"text": {
					"type": "string"
				},
				"qrImage": {
					"type": "string"
				},
				"fgColor": {
					"type": "string"
				},
				"bgColor": {
					"type": "string"
				}
			}
		},
		"qrsdk.UpdateUserRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"phone": {
					"type": "string"
				},
				"birthday": {
					"type": "string"
				}
			}
		},
		"qrsdk.User": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"phone": {
					"type": "string"
				},
				"birthday": {
					"type": "string"
				},
				"verified": {
					"type": "boolean"
				},
				"createdAt": {
					"type": "string"
				},
				"updatedAt": {
					"type": "string"
				}
			}
		},
		"qrsdk.UserResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				},
				"user": {
					"$ref": "#/definitions/qrsdk.User"
				}
			}
		},
		"qrsdk.VerifyCodeRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"code": {
					"type": "string"
				}
			}
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"description": "Session token. Format: \"Bearer {token}\".",
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:3001",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "qrhub API",
	Description:      "Accounts, QR code projects and scan analytics.\n\nSessions are HS256 JWTs issued by /api/login2.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
