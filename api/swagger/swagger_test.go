package swagger

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestDocListsComplaintEndpoints(t *testing.T) {
	raw, err := swag.ReadDoc()
	require.NoError(t, err)

	var doc struct {
		Paths map[string]interface{} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	for _, path := range []string{"/health", "/ready", "/api/complaints/mine", "/api/complaints/all", "/api/complaints/pending"} {
		assert.Contains(t, doc.Paths, path)
	}
}
