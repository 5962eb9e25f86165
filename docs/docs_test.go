package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDoc(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		BasePath    string                     `json:"basePath"`
		Paths       map[string]json.RawMessage `json:"paths"`
		Definitions map[string]json.RawMessage `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.Equal(t, "User Admin Console", doc.Info.Title)
	assert.Equal(t, "/", doc.BasePath)
	for _, p := range []string{"/state", "/health", "/live", "/ready"} {
		assert.Contains(t, doc.Paths, p)
	}
	assert.Contains(t, doc.Definitions, "service.View")
	assert.NotContains(t, string(doc.Definitions["service.CreateForm"]), "password")
}
