package handlers

import (
	"errors"
	"net/http"

	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog/log"

	"orderbook/services"
)

// respondError reports err to the user as a toast with a matching status:
// 422 for input problems, 404 for missing orders and 500 for everything else.
// Boundary failures are shown verbatim.
func respondError(e *core.RequestEvent, op string, err error) error {
	var ve *services.ValidationError
	var nf *services.NotFoundError
	switch {
	case errors.As(err, &ve):
		log.Debug().Str("op", op).Str("field", ve.Field).Msg(ve.Message)
		return WarningToast(e, http.StatusUnprocessableEntity, ve.Message)
	case errors.As(err, &nf):
		log.Warn().Str("op", op).Str("order_no", nf.OrderNo).Msg("order not found")
		return ErrorToast(e, http.StatusNotFound, nf.Error())
	default:
		log.Error().Err(err).Str("op", op).Msg("request failed")
		return ErrorToast(e, http.StatusInternalServerError, err.Error())
	}
}

func isHTMX(e *core.RequestEvent) bool {
	return e.Request.Header.Get("HX-Request") == "true"
}

// redirect sends the browser to url: HX-Redirect for HTMX requests, a 303
// otherwise.
func redirect(e *core.RequestEvent, url string) error {
	if isHTMX(e) {
		e.Response.Header().Set("HX-Redirect", url)
		return e.NoContent(http.StatusOK)
	}
	return e.Redirect(http.StatusSeeOther, url)
}
