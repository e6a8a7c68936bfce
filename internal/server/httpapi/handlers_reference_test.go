package httpapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListBanks_PaginationEchoesAppliedBounds(t *testing.T) {
	t.Parallel()

	f := newFixture(t, seedUser(t, "u1", "admin@proyection.com"))
	token, _ := f.login(t, "admin@proyection.com", testPassword)

	// No page/limit given: the response reports the defaults the store uses.
	rec, body := f.do(t, http.MethodGet, "/api/utilities/banks", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	pagination := body["data"].(map[string]any)["pagination"].(map[string]any)
	assert.Equal(t, float64(1), pagination["page"])
	assert.Equal(t, float64(50), pagination["limit"])

	// Out-of-range limit: the echoed limit is the clamp, not the raw input.
	rec, body = f.do(t, http.MethodGet, "/api/utilities/banks?page=2&limit=500", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	pagination = body["data"].(map[string]any)["pagination"].(map[string]any)
	assert.Equal(t, float64(2), pagination["page"])
	assert.Equal(t, float64(100), pagination["limit"])
}

func TestGetCountry_NotFound(t *testing.T) {
	t.Parallel()

	f := newFixture(t, seedUser(t, "u1", "admin@proyection.com"))
	token, _ := f.login(t, "admin@proyection.com", testPassword)

	rec, body := f.do(t, http.MethodGet, "/api/utilities/countries/ZZ", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, CodeNotFound, errorCode(t, body))
}
