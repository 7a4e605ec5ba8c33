// Package templates renders the order book pages as templ components.
//
//go:generate templ generate
package templates

import (
	"bytes"
	"context"
	"strconv"

	"github.com/a-h/templ"
)

// StatusCount is one entry of the header's status summary.
type StatusCount struct {
	Label  string
	Count  int
	Href   string
	Active bool
}

// HeaderData is what every full page shows above its content.
type HeaderData struct {
	CompanyName string
	Counts      []StatusCount
	ActiveNav   string
}

// RenderString renders c to a string, for saving a page to disk.
func RenderString(ctx context.Context, c templ.Component) (string, error) {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func pageTitle(title, company string) string {
	if company == "" {
		return title
	}
	return title + " · " + company
}

func countLabel(c StatusCount) string {
	return c.Label + " (" + strconv.Itoa(c.Count) + ")"
}
