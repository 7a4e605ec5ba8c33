package handlers

import (
	"errors"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"

	"orderbook/services"
	"orderbook/templates"
)

func formData(f services.OrderForm, token string) templates.OrderFormData {
	return templates.OrderFormData{
		Form:        f,
		Totals:      f.Totals(),
		ItemsJSON:   encodeItems(f.Editor.Items),
		SubmitToken: token,
		Errors:      map[string]string{},
		IsEdit:      f.CreatedDate != "",
	}
}

func withError(data templates.OrderFormData, err error) templates.OrderFormData {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		field := ve.Field
		if field == "" {
			field = "form"
		}
		data.Errors[field] = ve.Message
		return data
	}
	data.Errors["form"] = err.Error()
	return data
}

// renderForm writes the whole page for plain requests and only the form for
// HTMX swaps.
func renderForm(e *core.RequestEvent, data templates.OrderFormData) error {
	if isHTMX(e) {
		return templates.OrderFormContent(data).Render(e.Request.Context(), e.Response)
	}
	return templates.OrderFormPage(data, GetHeaderData(e.Request)).Render(e.Request.Context(), e.Response)
}

// HandleOrderNew returns a handler that renders a cleared order form.
func HandleOrderNew(app *pocketbase.PocketBase, opts Options) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		f := services.NewOrderForm(opts.now())
		f.GSTPercent = opts.GSTPercent
		return renderForm(e, formData(f, opts.Guard.NewToken()))
	}
}

// HandleOrderEdit returns a handler that loads a stored order into the form.
func HandleOrderEdit(app *pocketbase.PocketBase, opts Options) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		orderNo := e.Request.PathValue("orderNo")
		if orderNo == "" {
			return e.String(http.StatusBadRequest, "Missing order number")
		}

		order, err := opts.orders(app).FindByNumber(e.Request.Context(), orderNo)
		if err != nil {
			return respondError(e, "load order", err)
		}
		return renderForm(e, formData(services.FormFromOrder(order), opts.Guard.NewToken()))
	}
}

// HandleOrderFormItems returns a handler for the line-item editor buttons.
// The posted form state is rebuilt, the action applied and the form sent
// back. A rejected action leaves the items as they were.
func HandleOrderFormItems(app *pocketbase.PocketBase, opts Options) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		f, parseErr := parseOrderForm(e.Request)
		token := e.Request.FormValue("submit_token")
		index := cast.ToInt(e.Request.FormValue("index"))

		var err error
		switch action := e.Request.FormValue("action"); action {
		case "add":
			err = f.Editor.AddOrUpdate(f.Editor.Draft)
		case "edit":
			err = f.Editor.BeginEdit(index)
		case "cancel":
			f.Editor.CancelEdit()
		case "remove":
			err = f.Editor.Remove(index)
		default:
			return e.String(http.StatusBadRequest, "Unknown item action")
		}

		data := formData(f, token)
		if parseErr != nil {
			data = withError(data, parseErr)
		}
		if err != nil {
			data = withError(data, err)
		}
		return renderForm(e, data)
	}
}

// HandleOrderSave returns a handler that submits the order form.
//
// A number that already belongs to another order needs confirm=true; until
// then the form comes back with an overwrite prompt. A token that already
// saved an order is not saved again.
func HandleOrderSave(app *pocketbase.PocketBase, opts Options) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			log.Warn().Err(err).Msg("order_save: could not parse form")
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		f, err := parseOrderForm(e.Request)
		token := e.Request.FormValue("submit_token")
		if err != nil {
			return renderForm(e, withError(formData(f, token), err))
		}

		if !opts.Guard.Claim(token) {
			log.Info().Str("token", token).Msg("order_save: duplicate submit ignored")
			return redirect(e, "/orders")
		}

		confirmed := cast.ToBool(e.Request.FormValue("confirm"))
		order, err := f.Submit(e.Request.Context(), opts.orders(app), opts.now(), confirmed)
		if err != nil {
			opts.Guard.Release(token)

			var confirm *services.ConfirmationRequiredError
			var ve *services.ValidationError
			switch {
			case errors.As(err, &confirm):
				data := formData(f, token)
				data.ConfirmOverwrite = true
				return renderForm(e, data)
			case errors.As(err, &ve):
				SetToast(e, ToastWarning, ve.Message)
				return renderForm(e, withError(formData(f, token), err))
			default:
				return respondError(e, "save order", err)
			}
		}

		log.Info().Str("order_no", order.OrderNo).Int("items", len(order.Items)).Float64("total", order.Total).Msg("order saved")
		SetToast(e, ToastSuccess, "Order "+order.OrderNo+" saved")
		return redirect(e, "/orders")
	}
}
