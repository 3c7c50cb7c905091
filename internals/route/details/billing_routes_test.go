package route

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func registeredRoutes(t *testing.T) map[string]bool {
	t.Helper()
	app := fiber.New()
	BillingRoutes(app, nil, nil)

	got := map[string]bool{}
	for _, r := range app.GetRoutes() {
		got[r.Method+" "+r.Path] = true
	}
	return got
}

func TestBillingRoutes_Registered(t *testing.T) {
	got := registeredRoutes(t)

	for _, want := range []string{
		"GET /api/payment-details",
		"POST /api/checks/",
		"GET /api/checks/",
		"GET /api/checks/:id",
		"GET /api/checks/:id/file",
		"PATCH /api/checks/:id",
		"GET /api/requisites",
		"GET /api/finance/",
		"GET /api/finance/export",
		"POST /api/admin/payment-details",
		"PATCH /api/admin/payment-details/:id",
		"DELETE /api/admin/payment-details",
		"POST /api/admin/billing/rollover",
		"DELETE /api/admin/checks/:id",
		"POST /api/admin/requisites",
		"PATCH /api/admin/requisites/:id",
		"PUT /api/admin/requisites/:id/qr",
		"DELETE /api/admin/requisites/:id",
	} {
		assert.True(t, got[want], "missing route %s", want)
	}
}

// Export sits next to the finance view, reachable by teachers; it is not an
// admin-only surface.
func TestBillingRoutes_ExportUnderFinance(t *testing.T) {
	got := registeredRoutes(t)

	assert.True(t, got["GET /api/finance/export"])
	assert.False(t, got["GET /api/admin/finance/export"])
}
