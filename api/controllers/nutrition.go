package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/prismqdev/foodler-backend/api/responses"
	"github.com/prismqdev/foodler-backend/api/validators"
	"github.com/prismqdev/foodler-backend/internal/nutrition"
	pkgerrors "github.com/prismqdev/foodler-backend/pkg/errors"
	"github.com/prismqdev/foodler-backend/pkg/logger"
)

// NutritionLookup resolves per-100g nutrition for a food name.
func NutritionLookup(agg *nutrition.Aggregator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, err := validators.RequireQuery(r, "name")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := agg.GetNutritionInfo(r.Context(), name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

// NutritionDetailed resolves the full nutrient breakdown for a food name.
func NutritionDetailed(agg *nutrition.Aggregator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, err := validators.RequireQuery(r, "name")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := agg.GetDetailedInfo(r.Context(), name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

// NutritionSearch lists matching foods across providers.
func NutritionSearch(agg *nutrition.Aggregator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, err := validators.RequireQuery(r, "q")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 20, 1, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, err := agg.SearchFoods(r.Context(), query, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}

// NutritionBarcode resolves a product by barcode.
func NutritionBarcode(agg *nutrition.Aggregator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")
		if code == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "barcode is required"))
			return
		}

		record, err := agg.GetProductByBarcode(r.Context(), code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}
