package controllers

import (
	"net/http"
	"time"

	"github.com/prismqdev/foodler-backend/api/responses"
	"github.com/prismqdev/foodler-backend/api/validators"
	"github.com/prismqdev/foodler-backend/internal/fridge"
	pkgerrors "github.com/prismqdev/foodler-backend/pkg/errors"
	"github.com/prismqdev/foodler-backend/pkg/logger"
)

type addItemRequest struct {
	Name       string     `json:"name" validate:"required"`
	Quantity   float64    `json:"quantity" validate:"gte=0"`
	Unit       string     `json:"unit"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
	Calories   *float64   `json:"calories,omitempty"`
	Protein    *float64   `json:"protein,omitempty"`
	Carbs      *float64   `json:"carbs,omitempty"`
	Fats       *float64   `json:"fats,omitempty"`
}

type updateQuantityRequest struct {
	Quantity float64 `json:"quantity" validate:"gte=0"`
}

type advanceRotationRequest struct {
	ExcludeIDs []uint `json:"exclude_ids"`
}

// FridgeAddItem handles adding an item to the fridge.
func FridgeAddItem(svc fridge.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "fridge service unavailable"))
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.AddItem(r.Context(), fridge.AddItemInput{
			Name:       payload.Name,
			Quantity:   payload.Quantity,
			Unit:       payload.Unit,
			ExpiryDate: payload.ExpiryDate,
			Calories:   payload.Calories,
			Protein:    payload.Protein,
			Carbs:      payload.Carbs,
			Fats:       payload.Fats,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// FridgeListItems lists all items, optionally filtered by name substring.
func FridgeListItems(svc fridge.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListItems(r.Context(), r.URL.Query().Get("name"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// FridgeUpdateQuantity sets a new quantity for one item.
func FridgeUpdateQuantity(svc fridge.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.UpdateQuantity(r.Context(), id, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// FridgeDeleteItem removes an item.
func FridgeDeleteItem(svc fridge.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteItem(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

// FridgeRotation lists items in use-next priority order.
func FridgeRotation(svc fridge.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, 1000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.ItemsToUse(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// FridgeMarkUsed records the item as cooked.
func FridgeMarkUsed(svc fridge.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.MarkAsUsed(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// FridgeAdvanceRotation counts a prepared meal against every item not used
// in it.
func FridgeAdvanceRotation(svc fridge.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload advanceRotationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.AdvanceRotation(r.Context(), payload.ExcludeIDs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int64{"updated": updated})
	}
}

// FridgeExpiring lists items expiring within the given day window.
func FridgeExpiring(svc fridge.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days, err := validators.ParseQueryInt(r, "days", 7, 0, 365)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.ExpiringSoon(r.Context(), days)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}
