package menu

import (
	"strings"

	"github.com/cafev2/storefront-backend/pkg/security"
	"github.com/cafev2/storefront-backend/pkg/types"
)

const (
	defaultCategory = "Snacks"
	defaultYPos     = 50
)

// MediaInput is one loosely validated gallery entry from a client or a
// legacy document.
type MediaInput struct {
	URL   string `json:"url"`
	Type  string `json:"type"`
	YPos  *int   `json:"y_pos,omitempty"`
	Muted *bool  `json:"muted,omitempty"`
}

// ItemInput is the admin-facing write shape. Price tolerates string or
// number JSON; Image carries the legacy single-image field still present
// in older documents and spreadsheet rows.
type ItemInput struct {
	Name        string       `json:"name" validate:"required,max=100"`
	Price       types.Amount `json:"price"`
	Category    string       `json:"category" validate:"max=50"`
	Description string       `json:"description" validate:"max=500"`
	IsVeg       bool         `json:"is_veg"`
	Image       string       `json:"image,omitempty"`
	Media       []MediaInput `json:"media,omitempty"`
}

// normalizedItem is the canonical shape everything downstream consumes.
// Normalization happens once at the write boundary so internal logic
// never sees a legacy document shape.
type normalizedItem struct {
	Name        string
	Price       types.Amount
	Category    string
	Description string
	IsVeg       bool
	Media       types.MediaList
}

func normalizeItem(input ItemInput) normalizedItem {
	category := security.SanitizeText(input.Category)
	if category == "" {
		category = defaultCategory
	}

	price := input.Price
	if price.IsNegative() {
		price = types.Amount{}
	}

	return normalizedItem{
		Name:        security.SanitizeText(input.Name),
		Price:       price,
		Category:    category,
		Description: security.SanitizeText(input.Description),
		IsVeg:       input.IsVeg,
		Media:       normalizeMedia(input.Media, input.Image),
	}
}

// normalizeMedia converts any accepted gallery shape into the canonical
// list: the legacy single-image field becomes the first entry, entries
// with a blank URL or unknown type are dropped, the crop offset clamps
// to 0..100, and videos default to muted.
func normalizeMedia(inputs []MediaInput, legacyImage string) types.MediaList {
	var out types.MediaList

	if legacy := strings.TrimSpace(legacyImage); legacy != "" && len(inputs) == 0 {
		inputs = []MediaInput{{URL: legacy, Type: string(types.MediaTypeImage)}}
	}

	for _, in := range inputs {
		url := strings.TrimSpace(in.URL)
		if url == "" {
			continue
		}
		kind := types.MediaType(strings.ToLower(strings.TrimSpace(in.Type)))
		if kind == "" {
			kind = types.MediaTypeImage
		}
		if !kind.IsValid() {
			continue
		}

		media := types.Media{URL: url, Type: kind}
		if in.YPos != nil {
			pos := *in.YPos
			if pos < 0 {
				pos = 0
			}
			if pos > 100 {
				pos = 100
			}
			media.YPos = &pos
		} else {
			pos := defaultYPos
			media.YPos = &pos
		}

		if kind == types.MediaTypeVideo {
			muted := true
			if in.Muted != nil {
				muted = *in.Muted
			}
			media.Muted = &muted
		}

		out = append(out, media)
	}
	return out
}
