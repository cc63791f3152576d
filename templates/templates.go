// Package templates holds the storefront's server-rendered HTML pages.
package templates

import (
	"embed"
	"html/template"
	"io"

	"vitrina/pricing"
	"vitrina/utils"
)

//go:embed *.html
var files embed.FS

var funcs = template.FuncMap{
	"money":    utils.FormatMoney,
	"discount": pricing.Discount,
	"hasRange": pricing.HasRange,
	"width":    utils.ImageURLWithWidth,
	"proxied":  utils.ProxiedImageURL,
	"add":      func(a, b int) int { return a + b },
	"safeHTML": func(s string) template.HTML { return template.HTML(s) },
}

var pages = template.Must(template.New("").Funcs(funcs).ParseFS(files, "*.html"))

// Render executes the named page template into w
func Render(w io.Writer, name string, data any) error {
	return pages.ExecuteTemplate(w, name, data)
}
