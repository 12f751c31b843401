package observability

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExporterOptions(t *testing.T) {
	opts, err := exporterOptions("http://collector:4318/v1/traces")
	require.NoError(t, err)
	require.Len(t, opts, 3)

	opts, err = exporterOptions("https://collector.example.com")
	require.NoError(t, err)
	require.Len(t, opts, 1)

	opts, err = exporterOptions("collector:4318")
	require.NoError(t, err)
	require.Len(t, opts, 2)

	_, err = exporterOptions("http://")
	require.Error(t, err)
}
