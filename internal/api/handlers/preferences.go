package handlers

import (
	"log/slog"
	"net/http"

	"github.com/hoanghai1803/newslens/internal/storage"
)

// Preference keys understood by the feed endpoints.
const (
	prefDefaultRegion   = "defaultRegion"
	prefDefaultCategory = "defaultCategory"
)

// preferencesRequest lists the preferences a client may set. Omitted fields
// are left unchanged.
type preferencesRequest struct {
	DefaultRegion      *string   `json:"defaultRegion" validate:"omitnil,oneof=in us"`
	DefaultCategory    *string   `json:"defaultCategory" validate:"omitnil,oneof=general business sports technology entertainment health"`
	FavoriteCategories *[]string `json:"favoriteCategories" validate:"omitnil,dive,oneof=general business sports technology entertainment health"`
	FavoriteRegions    *[]string `json:"favoriteRegions" validate:"omitnil,dive,oneof=in us"`
	Theme              *string   `json:"theme" validate:"omitnil,oneof=light dark system"`
}

func (p preferencesRequest) values() map[string]any {
	values := make(map[string]any)
	if p.DefaultRegion != nil {
		values[prefDefaultRegion] = *p.DefaultRegion
	}
	if p.DefaultCategory != nil {
		values[prefDefaultCategory] = *p.DefaultCategory
	}
	if p.FavoriteCategories != nil {
		values["favoriteCategories"] = *p.FavoriteCategories
	}
	if p.FavoriteRegions != nil {
		values["favoriteRegions"] = *p.FavoriteRegions
	}
	if p.Theme != nil {
		values["theme"] = *p.Theme
	}
	return values
}

// GetPreferences handles GET /api/preferences. It returns all user
// preferences as a JSON object.
func GetPreferences(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prefs, err := store.GetAllPreferences(r.Context())
		if err != nil {
			slog.Error("failed to get preferences", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to get preferences")
			return
		}

		writeJSON(w, http.StatusOK, prefs)
	}
}

// UpdatePreferences handles PUT /api/preferences. Known fields are validated
// and saved together; the full preference set is returned.
func UpdatePreferences(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req preferencesRequest
		if err := decodeAndValidate(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		values := req.values()
		if len(values) == 0 {
			writeError(w, http.StatusBadRequest, "No preferences to update")
			return
		}

		if err := store.SetPreferences(ctx, values); err != nil {
			slog.Error("failed to save preferences", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to save preferences")
			return
		}

		prefs, err := store.GetAllPreferences(ctx)
		if err != nil {
			slog.Error("failed to get preferences after save", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to get preferences")
			return
		}

		writeJSON(w, http.StatusOK, prefs)
	}
}
