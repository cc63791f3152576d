package templates

import (
	"bytes"
	"html/template"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrina/models"
)

func render(t *testing.T, name string, data any) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, name, data))
	return buf.String()
}

func layout() map[string]any {
	return map[string]any{
		"Title": "Dogs",
		"Menu":  []models.MenuItem{{Title: "Coats", URL: "/collections/coats"}},
		"Query": "",
	}
}

func TestRender_Collection(t *testing.T) {
	data := layout()
	data["Collection"] = &models.Collection{Title: "Dogs"}
	data["Items"] = []models.ProductCard{{Handle: "coat", Title: "Warm coat",
		FeaturedImage: &models.Image{URL: "https://cdn.example/c.jpg"},
		PriceRange:    models.PriceRange{MinVariantPrice: models.Money{Amount: "20", CurrencyCode: "USD"}}}}
	data["Pages"] = []map[string]any{{"Number": 1, "URL": "/collections/dogs?page=1", "Current": true}, {"Number": 2, "URL": "/collections/dogs?page=2", "Current": false}}
	data["NextURL"] = "/collections/dogs?page=2"
	data["PreviousURL"] = ""
	data["PDFURL"] = "/collections/dogs/catalog.pdf"

	out := render(t, "collection.html", data)
	assert.Contains(t, out, "Warm coat")
	assert.Contains(t, out, "$20.00")
	assert.Contains(t, out, "https://cdn.example/c.jpg?width=400")
	assert.Contains(t, out, `rel="next"`)
	assert.NotContains(t, out, `rel="prev"`)
	assert.Contains(t, out, `<a href="/collections/coats">Coats</a>`)
}

func TestRender_ProductEscapesTitleButNotDescription(t *testing.T) {
	data := layout()
	data["Product"] = &models.Product{Title: "<b>Coat</b>", DescriptionHTML: "<p>Soft</p>"}
	data["Variant"] = nil
	data["ActiveImage"] = nil
	data["Thumbnails"] = nil
	data["Options"] = nil
	data["Recommendations"] = nil
	data["GalleryURL"] = "/products/coat/gallery"

	out := render(t, "product.html", data)
	assert.Contains(t, out, "&lt;b&gt;Coat&lt;/b&gt;")
	assert.Contains(t, out, "<p>Soft</p>")
	assert.Contains(t, out, "not available")
}

func TestRender_CatalogKeepsDataURIs(t *testing.T) {
	out := render(t, "catalog.html", map[string]any{
		"Title":      "Dogs",
		"TotalPages": 1,
		"Sheets": [][]map[string]any{{
			{"Title": "Coat", "Price": "$10.00", "ImageData": template.URL("data:image/jpeg;base64,AAAA")},
		}},
	})
	assert.Contains(t, out, `src="data:image/jpeg;base64,AAAA"`)
	assert.Contains(t, out, "1 / 1")
}

func TestRender_CartEmpty(t *testing.T) {
	data := layout()
	data["Cart"] = &models.Cart{}
	out := render(t, "cart.html", data)
	assert.True(t, strings.Contains(out, "Your cart is empty."))
}

func TestRender_UnknownTemplate(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Render(&buf, "missing.html", nil))
}

func TestRender_ProductShowsMarkdown(t *testing.T) {
	data := layout()
	compare := models.Money{Amount: "40.0", CurrencyCode: "USD"}
	data["Product"] = &models.Product{Title: "Coat"}
	data["Variant"] = &models.Variant{ID: "v1", AvailableForSale: true,
		Price: models.Money{Amount: "30.0", CurrencyCode: "USD"}, CompareAtPrice: &compare}
	data["ActiveImage"] = nil
	data["Thumbnails"] = nil
	data["Options"] = nil
	data["Recommendations"] = nil
	data["GalleryURL"] = "/products/coat/gallery"

	out := render(t, "product.html", data)
	assert.Contains(t, out, "<s>$40.00</s>")
	assert.Contains(t, out, "-25%")
}
