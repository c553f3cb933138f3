package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cafev2/storefront-backend/api/responses"
	"github.com/cafev2/storefront-backend/api/validators"
	cartsvc "github.com/cafev2/storefront-backend/internal/cart"
	"github.com/cafev2/storefront-backend/pkg/logger"
	"github.com/cafev2/storefront-backend/pkg/types"
)

// CartCreate mints a fresh cart ID. The ledger itself materializes on
// the first mutation; the client holds the ID for the session.
func CartCreate(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{
			"cart_id": uuid.NewString(),
		})
	}
}

// CartGet returns the cart snapshot with recomputed aggregates.
func CartGet(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := svc.Get(r.Context(), cartIDParam(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(snap))
	}
}

type addItemRequest struct {
	ProductID types.FlexID `json:"product_id" validate:"required"`
	Name      string       `json:"name" validate:"required,max=100"`
	Price     types.Amount `json:"price"`
	Quantity  int          `json:"quantity" validate:"min=0,max=99"`
}

// CartAddItem appends a line or merges into an existing one.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap, err := svc.Add(r.Context(), cartIDParam(r), cartsvc.Line{
			ProductID: payload.ProductID.String(),
			Name:      payload.Name,
			Price:     payload.Price.Decimal,
			Quantity:  payload.Quantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(snap))
	}
}

type updateQuantityRequest struct {
	Delta int `json:"delta" validate:"required,min=-99,max=99"`
}

// CartUpdateItem shifts a line's quantity; a line driven to zero leaves
// the cart.
func CartUpdateItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload updateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap, err := svc.UpdateQuantity(r.Context(), cartIDParam(r), chi.URLParam(r, "productID"), payload.Delta)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(snap))
	}
}

// CartRemoveItem drops a line outright.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := svc.Remove(r.Context(), cartIDParam(r), chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(snap))
	}
}

// CartClear empties the cart.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Clear(r.Context(), cartIDParam(r)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}

func cartIDParam(r *http.Request) string {
	return chi.URLParam(r, "cartID")
}

type cartLineResponse struct {
	ProductID string       `json:"product_id"`
	Name      string       `json:"name"`
	Price     types.Amount `json:"price"`
	Quantity  int          `json:"quantity"`
	LineTotal types.Amount `json:"line_total"`
}

type cartResponse struct {
	ID    string             `json:"id"`
	Items []cartLineResponse `json:"items"`
	Count int                `json:"count"`
	Total types.Amount       `json:"total"`
}

func newCartResponse(snap cartsvc.Snapshot) cartResponse {
	items := make([]cartLineResponse, 0, len(snap.Lines))
	for _, line := range snap.Lines {
		items = append(items, cartLineResponse{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     types.NewAmount(line.Price),
			Quantity:  line.Quantity,
			LineTotal: types.NewAmount(line.Price.Mul(decimalFromInt(line.Quantity))),
		})
	}
	return cartResponse{
		ID:    snap.ID,
		Items: items,
		Count: snap.Count,
		Total: types.NewAmount(snap.Total),
	}
}

func decimalFromInt(v int) decimal.Decimal {
	return decimal.NewFromInt(int64(v))
}
