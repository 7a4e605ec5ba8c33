package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog/log"
)

// Toast kinds understood by the layout script.
const (
	ToastSuccess = "success"
	ToastWarning = "warning"
	ToastError   = "error"
)

// SetToast sets the HX-Trigger response header to show a toast notification
// on the client via HTMX. An existing HX-Trigger JSON object is kept and the
// toast merged into it.
// A short-lived flash cookie carries the same toast across plain redirects.
func SetToast(e *core.RequestEvent, toastType string, message string) {
	payload := map[string]string{"message": message, "type": toastType}

	trigger := map[string]any{}
	if existing := e.Response.Header().Get("HX-Trigger"); existing != "" {
		if err := json.Unmarshal([]byte(existing), &trigger); err != nil {
			log.Warn().Err(err).Str("header", existing).Msg("toast: existing HX-Trigger is not JSON, overwriting")
			trigger = map[string]any{}
		}
	}
	trigger["showToast"] = payload

	data, err := json.Marshal(trigger)
	if err != nil {
		log.Error().Err(err).Msg("toast: could not encode HX-Trigger")
		return
	}
	e.Response.Header().Set("HX-Trigger", string(data))

	cookieVal, err := json.Marshal(payload)
	if err != nil {
		return
	}
	http.SetCookie(e.Response, &http.Cookie{
		Name:     "flash_toast",
		Value:    url.QueryEscape(string(cookieVal)),
		Path:     "/",
		MaxAge:   10,
		HttpOnly: false,
		SameSite: http.SameSiteLaxMode,
	})
}

// ErrorToast sets an error toast and stops HTMX from swapping the error
// text into the page.
func ErrorToast(e *core.RequestEvent, statusCode int, message string) error {
	SetToast(e, ToastError, message)
	e.Response.Header().Set("HX-Reswap", "none")
	return e.String(statusCode, message)
}

// WarningToast is ErrorToast for problems the user can fix.
func WarningToast(e *core.RequestEvent, statusCode int, message string) error {
	SetToast(e, ToastWarning, message)
	e.Response.Header().Set("HX-Reswap", "none")
	return e.String(statusCode, message)
}
