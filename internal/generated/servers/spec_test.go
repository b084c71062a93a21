package servers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logistics/internal/generated/servers"
)

func TestGetSwagger(t *testing.T) {
	swagger, err := servers.GetSwagger()
	require.NoError(t, err)

	assert.Equal(t, "Shipment Lifecycle API", swagger.Info.Title)
	for _, path := range []string{
		"/api/v1/carriers",
		"/api/v1/carriers/{carrierId}/active-count",
		"/api/v1/carriers/{carrierId}/shipments/active",
		"/api/v1/carriers/{carrierId}/capacity",
		"/api/v1/carriers/{carrierId}/drivers",
		"/api/v1/carriers/{carrierId}/vehicles",
		"/api/v1/shipments",
		"/api/v1/shipments/{shipmentId}",
		"/api/v1/shipments/{shipmentId}/events",
	} {
		assert.NotNil(t, swagger.Paths.Find(path), path)
	}

	status := swagger.Components.Schemas["ShipmentStatus"].Value
	assert.Len(t, status.Enum, 5)

	address := swagger.Components.Schemas["Address"].Value
	assert.ElementsMatch(t, []string{"line1", "city", "state", "postalCode"}, address.Required)
}
