package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/javiortega/techdepot-backend/api/middleware"
	"github.com/javiortega/techdepot-backend/api/responses"
	"github.com/javiortega/techdepot-backend/api/validators"
	"github.com/javiortega/techdepot-backend/internal/cards"
	pkgerrors "github.com/javiortega/techdepot-backend/pkg/errors"
	"github.com/javiortega/techdepot-backend/pkg/logger"
)

// CardList returns the customer's wallet with masked card numbers.
func CardList(svc cards.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cards service unavailable"))
			return
		}

		customerID, err := middleware.CustomerUUIDFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"cards": list})
	}
}

// CardSave validates and stores a card in the customer's wallet.
func CardSave(svc cards.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cards service unavailable"))
			return
		}

		customerID, err := middleware.CustomerUUIDFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body cards.NewCardInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		card, err := svc.Save(r.Context(), customerID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, card)
	}
}

// CardDelete removes a card from the wallet.
func CardDelete(svc cards.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cards service unavailable"))
			return
		}

		customerID, err := middleware.CustomerUUIDFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cardID, err := validators.ParsePathUUID(chi.URLParam(r, "cardId"), "cardId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), customerID, cardID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
