package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, data []byte, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(data, v))
}
