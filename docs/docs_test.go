package docs_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"github.com/LuizZonetti1/cafeterias-api/docs"
)

func TestSwaggerRegistrado(t *testing.T) {
	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Info  struct{ Title string }
		Paths map[string]json.RawMessage
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc), "el documento generado debe ser JSON válido")
	assert.Equal(t, "Cafeterías API", doc.Info.Title)
	assert.Contains(t, doc.Paths, "/api/orders/{id}/complete")
	assert.Contains(t, doc.Paths, "/api/production")
}
