package controllers

import (
	"net/http"

	"github.com/cafev2/storefront-backend/api/responses"
	"github.com/cafev2/storefront-backend/api/validators"
	settingssvc "github.com/cafev2/storefront-backend/internal/settings"
	"github.com/cafev2/storefront-backend/pkg/logger"
)

type settingsResponse struct {
	ManualOpen bool   `json:"is_manual_open"`
	OpenTime   string `json:"open_time"`
	CloseTime  string `json:"close_time"`
	Message    string `json:"message,omitempty"`
}

// AdminSettingsGet returns the stored settings document.
func AdminSettingsGet(svc settingssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := svc.Get(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newSettingsResponse(settings))
	}
}

type updateSettingsRequest struct {
	ManualOpen *bool   `json:"is_manual_open"`
	OpenTime   *string `json:"open_time" validate:"omitempty,max=20"`
	CloseTime  *string `json:"close_time" validate:"omitempty,max=20"`
	Message    *string `json:"message" validate:"omitempty,max=300"`
}

// AdminSettingsUpdate merges a partial settings mutation; absent fields
// keep their stored values.
func AdminSettingsUpdate(svc settingssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload updateSettingsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		settings, err := svc.Update(r.Context(), settingssvc.UpdateInput{
			ManualOpen: payload.ManualOpen,
			OpenTime:   payload.OpenTime,
			CloseTime:  payload.CloseTime,
			Message:    payload.Message,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newSettingsResponse(settings))
	}
}

func newSettingsResponse(s settingssvc.Settings) settingsResponse {
	return settingsResponse{
		ManualOpen: s.ManualOpen,
		OpenTime:   s.OpenTime,
		CloseTime:  s.CloseTime,
		Message:    s.Message,
	}
}
