package qrhub_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"github.com/aussiebroadwan/qrhub/api/qrhub"
)

func TestSwaggerDocRenders(t *testing.T) {
	raw, err := swag.ReadDoc(qrhub.SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Swagger string                    `json:"swagger"`
		Info    struct{ Title string }    `json:"info"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	require.Equal(t, "2.0", doc.Swagger)
	require.Equal(t, "qrhub API", doc.Info.Title)

	routes := map[string]string{
		"/api/test":                    "get",
		"/api/health":                  "get",
		"/livez":                       "get",
		"/readyz":                      "get",
		"/api/register":                "post",
		"/api/register2":               "post",
		"/api/login":                   "post",
		"/api/login2":                  "post",
		"/api/verify-code":             "post",
		"/api/resend-verification":     "post",
		"/api/forgot-password":         "post",
		"/api/reset-password":          "post",
		"/api/update-user":             "put",
		"/api/delete-account":          "delete",
		"/api/user/account":            "delete",
		"/api/save-project":            "post",
		"/api/get-projects":            "get",
		"/api/get-project/{id}":        "get",
		"/api/update-project/{id}":     "put",
		"/api/update-color/{id}":       "put",
		"/api/delete-project/{id}":     "delete",
		"/track/{id}":                  "get",
		"/api/get-scan-count/{id}":     "get",
		"/api/get-scan-analytics/{id}": "get",
		"/api/custom-data":             "post",
		"/api/caption-image":           "post",
	}
	for path, method := range routes {
		ops, ok := doc.Paths[path]
		require.True(t, ok, "missing path %s", path)
		require.Contains(t, ops, method, "path %s", path)
	}
}
