package controllers

import (
	"net/http"

	"github.com/cafev2/storefront-backend/api/responses"
	"github.com/cafev2/storefront-backend/api/validators"
	"github.com/cafev2/storefront-backend/internal/adminauth"
	"github.com/cafev2/storefront-backend/pkg/logger"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email,max=120"`
	Password string `json:"password" validate:"required,max=200"`
}

// AdminLogin exchanges credentials for a session token.
func AdminLogin(svc adminauth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.Login(r.Context(), payload.Email, payload.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, session)
	}
}
