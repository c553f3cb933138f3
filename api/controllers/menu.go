package controllers

import (
	"net/http"

	"github.com/cafev2/storefront-backend/api/responses"
	menusvc "github.com/cafev2/storefront-backend/internal/menu"
	"github.com/cafev2/storefront-backend/pkg/db/models"
	"github.com/cafev2/storefront-backend/pkg/logger"
	"github.com/cafev2/storefront-backend/pkg/types"
)

const menuThumbnailWidth = 400

type menuItemResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Category     string          `json:"category"`
	Price        types.Amount    `json:"price"`
	IsVeg        bool            `json:"is_veg"`
	Media        types.MediaList `json:"media"`
	ThumbnailURL string          `json:"thumbnail_url,omitempty"`
}

// MenuList serves the public catalog.
func MenuList(svc menusvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]menuItemResponse, 0, len(items))
		for _, item := range items {
			out = append(out, newMenuItemResponse(item))
		}
		responses.WriteSuccess(w, out)
	}
}

func newMenuItemResponse(item models.MenuItem) menuItemResponse {
	resp := menuItemResponse{
		ID:          item.ID.String(),
		Name:        item.Name,
		Description: item.Description,
		Category:    item.Category,
		Price:       types.NewAmount(item.Price),
		IsVeg:       item.IsVeg,
		Media:       item.Media,
	}
	if url := menusvc.FirstImageURL(item); url != "" {
		resp.ThumbnailURL = menusvc.OptimizedImageURL(url, menuThumbnailWidth)
	}
	if resp.Media == nil {
		resp.Media = types.MediaList{}
	}
	return resp
}
