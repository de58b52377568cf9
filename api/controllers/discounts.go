package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/prismqdev/foodler-backend/api/responses"
	"github.com/prismqdev/foodler-backend/api/validators"
	"github.com/prismqdev/foodler-backend/internal/discounts"
	pkgerrors "github.com/prismqdev/foodler-backend/pkg/errors"
	"github.com/prismqdev/foodler-backend/pkg/logger"
)

// DiscountsList lists offers in a category.
func DiscountsList(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.GetDiscounts(r.Context(), r.URL.Query().Get("category"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// DiscountsByShop lists offers for one shop.
func DiscountsByShop(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shop := chi.URLParam(r, "shop")
		if shop == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "shop is required"))
			return
		}

		items, err := svc.GetDiscountsByShop(r.Context(), shop)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// DiscountsSearch lists offers matching a product name.
func DiscountsSearch(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, err := validators.RequireQuery(r, "q")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.SearchProduct(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// DiscountsBest lists the top offers by discount percentage.
func DiscountsBest(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 10, 1, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.GetBestDeals(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}
