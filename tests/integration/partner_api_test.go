package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartnerLifecycle(t *testing.T) {
	a := newApp(t)

	entityID := a.mustCreate(t, "/api/v1/partner/entities", map[string]any{
		"name":        "Halco China",
		"code":        "HALCO-CN",
		"entity_type": "halco_buyer",
	})

	partnerID := a.mustCreate(t, "/api/v1/partner/partners", map[string]any{
		"name":              "Chalco Trading",
		"code":              "CHALCO",
		"entity_id":         entityID,
		"minimum_volume_mt": 250000.0,
	})

	t.Run("partner resolves its entity name", func(t *testing.T) {
		w := a.do(t, http.MethodGet, "/api/v1/partner/partners/"+partnerID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Halco China", dataField(t, w, "entity_name"))
		assert.Equal(t, true, dataField(t, w, "is_active"))
	})

	t.Run("entity lookup by code", func(t *testing.T) {
		w := a.do(t, http.MethodGet, "/api/v1/partner/entities/code/HALCO-CN", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Halco China", dataField(t, w, "name"))
	})

	t.Run("deactivated partner drops off the active listing", func(t *testing.T) {
		w := a.do(t, http.MethodPost, "/api/v1/partner/partners/"+partnerID+"/deactivate", nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = a.do(t, http.MethodGet, "/api/v1/partner/partners/active", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "Chalco Trading")
	})

	t.Run("toggle brings it back", func(t *testing.T) {
		w := a.do(t, http.MethodPost, "/api/v1/partner/partners/"+partnerID+"/toggle", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Partner activated", decode(t, w).Message)

		w = a.do(t, http.MethodGet, "/api/v1/partner/partners/active", nil)
		assert.Contains(t, w.Body.String(), "Chalco Trading")
	})

	t.Run("entity with active partners cannot be deleted", func(t *testing.T) {
		w := a.do(t, http.MethodDelete, "/api/v1/partner/entities/"+entityID, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "INTEGRITY_VIOLATION", decode(t, w).ErrorCode)
	})

	t.Run("partner under an unknown entity is rejected by name", func(t *testing.T) {
		missing := "71b2dc2f-5b11-41b5-8b12-d6a7ff8f6f3e"
		w := a.do(t, http.MethodPost, "/api/v1/partner/partners", map[string]any{
			"name":      "Ghost",
			"code":      "GHOST",
			"entity_id": missing,
		})
		require.Equal(t, http.StatusBadRequest, w.Code)
		e := decode(t, w)
		require.Len(t, e.Errors, 1)
		assert.Contains(t, e.Errors[0], missing)
	})

	t.Run("listing by entity type", func(t *testing.T) {
		a.mustCreate(t, "/api/v1/partner/entities", map[string]any{
			"name":        "EGA",
			"code":        "EGA",
			"entity_type": "offtaker",
		})

		w := a.do(t, http.MethodGet, "/api/v1/partner/entities/type/offtaker", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "EGA")
		assert.NotContains(t, w.Body.String(), "Halco China")
	})
}
