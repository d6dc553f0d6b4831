package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	xhttp "AvoDash/pkg/http"

	"github.com/labstack/echo/v4"
)

//go:embed assets/index.html assets/static/*
var assets embed.FS

// Handler serves the single dashboard page and its static assets.
type Handler struct {
	page []byte
}

var _ xhttp.Handler = (*Handler)(nil)

// New renders the page once with the document title.
func New(title string) (*Handler, error) {
	tmpl, err := template.ParseFS(assets, "assets/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse index: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Title string }{Title: title}); err != nil {
		return nil, fmt.Errorf("render index: %w", err)
	}
	return &Handler{page: buf.Bytes()}, nil
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Index)
	e.StaticFS("/static", echo.MustSubFS(assets, "assets/static"))
}

func (h *Handler) Index(c echo.Context) error {
	return c.HTMLBlob(http.StatusOK, h.page)
}
