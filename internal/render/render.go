// Package render turns page views and a metadata bundle into complete HTML
// documents. Nothing here fetches data; output depends only on the inputs.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"

	"goflare.io/kalori/internal/seo"
)

// View names the body template for a page shape.
type View string

const (
	ViewHome        View = "home"
	ViewFood        View = "food"
	ViewList        View = "list"
	ViewCalculators View = "calculators"
	ViewCalculator  View = "calculator"
	ViewLegal       View = "legal"
	ViewMessage     View = "message"
)

var (
	documentTmpl = template.Must(template.New("document").Parse(documentTemplate))
	pageTmpl     = template.Must(template.New("pages").Parse(pageTemplates))
)

type documentData struct {
	Meta    seo.MetaTags
	JSONLD  []template.JS
	Body    template.HTML
	Scripts []string
}

// Body renders the markup of view with data.
func Body(view View, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := pageTmpl.ExecuteTemplate(&buf, string(view), data); err != nil {
		return "", fmt.Errorf("render %s: %w", view, err)
	}
	return template.HTML(buf.String()), nil
}

// Document wraps body in a full HTML document with the bundle's head metadata
// and one JSON-LD script per structured-data document.
func Document(body template.HTML, bundle seo.Bundle) (string, error) {
	return document(body, bundle, nil)
}

// Shell is a client-rendered document: full metadata, an empty mount point and
// the client entry script.
func Shell(bundle seo.Bundle, entry string) (string, error) {
	return document(template.HTML(`<div id="root"></div>`), bundle, []string{entry})
}

// Page renders view and wraps it with Document.
func Page(view View, data any, bundle seo.Bundle) (string, error) {
	body, err := Body(view, data)
	if err != nil {
		return "", err
	}
	return Document(body, bundle)
}

func document(body template.HTML, bundle seo.Bundle, scripts []string) (string, error) {
	data := documentData{
		Meta:    bundle.Meta,
		Body:    body,
		Scripts: scripts,
	}
	for _, sd := range bundle.Data {
		raw, err := json.Marshal(sd)
		if err != nil {
			return "", fmt.Errorf("encode %s structured data: %w", sd.Type, err)
		}
		data.JSONLD = append(data.JSONLD, template.JS(raw))
	}

	var buf bytes.Buffer
	if err := documentTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render document: %w", err)
	}
	return buf.String(), nil
}
