package controllers

import (
	"net/http"

	"github.com/javiortega/techdepot-backend/api/middleware"
	"github.com/javiortega/techdepot-backend/api/responses"
	"github.com/javiortega/techdepot-backend/api/validators"
	checkoutsvc "github.com/javiortega/techdepot-backend/internal/checkout"
	pkgerrors "github.com/javiortega/techdepot-backend/pkg/errors"
	"github.com/javiortega/techdepot-backend/pkg/logger"
)

// Checkout converts the customer's open basket into an order. The whole
// submission commits or rolls back as one unit; on success the response
// is the receipt.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		customerID, err := middleware.CustomerUUIDFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutsvc.Input
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		receipt, err := svc.Execute(r.Context(), customerID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, receipt)
	}
}
