// Package web holds the portal's server-rendered pages.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"strings"

	"github.com/noah-isme/phlebotomy-portal/internal/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed assets/*
var assetsFS embed.FS

const (
	dateLayout     = "Jan 2, 2006"
	dateTimeLayout = "Jan 2, 2006 15:04"
)

// Templates parses every page with the portal helpers. assetBase prefixes image
// paths returned by the API.
func Templates(assetBase string) (*template.Template, error) {
	return template.New("").Funcs(Funcs(assetBase)).ParseFS(templatesFS, "templates/*.html")
}

// Assets returns the static stylesheet tree served under /assets.
func Assets() fs.FS {
	sub, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}

// Funcs returns the template helpers.
func Funcs(assetBase string) template.FuncMap {
	base := strings.TrimRight(assetBase, "/")
	return template.FuncMap{
		"asset": func(path string) string {
			if path == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") || base == "" {
				return path
			}
			return base + "/" + strings.TrimLeft(path, "/")
		},
		"date": func(t models.Timestamp) string {
			return t.Format(dateLayout)
		},
		"datetime": func(t models.Timestamp) string {
			return t.Format(dateTimeLayout)
		},
		"statusClass": func(status string) string {
			return "status-" + strings.ToLower(status)
		},
		"money": func(v models.LooseString) string {
			if v == "" {
				return "0"
			}
			return string(v)
		},
		"percent": func(part, whole int) int {
			if whole <= 0 {
				return 0
			}
			return part * 100 / whole
		},
	}
}
