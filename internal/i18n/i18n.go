// Package i18n provides the dashboard's string lookup. Messages missing
// from the catalog, or unknown languages, fall through to the key itself,
// so an empty catalog behaves as plain English.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var translations = func() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for _, m := range []struct{ key, es string }{
		{"Toy Store Sales Dashboard", "Panel de Ventas de Juguetería"},
		{"KPI Metrics", "Métricas KPI"},
		{"Total Sales", "Ventas Totales"},
		{"Total Orders", "Pedidos Totales"},
		{"Average Sales per Order", "Ventas Promedio por Pedido"},
		{"Unique Customers", "Clientes Únicos"},
		{"Filters", "Filtros"},
		{"Export Data", "Exportar Datos"},
		{"Your Feedback", "Sus Comentarios"},
		{"Thank you for your feedback!", "¡Gracias por sus comentarios!"},
	} {
		b.SetString(language.Spanish, m.key, m.es)
	}
	return b
}()

// Translator resolves UI strings for one language.
type Translator struct {
	printer *message.Printer
	tag     language.Tag
}

// New parses lang (e.g. "en", "es"); unparseable values fall back to English.
func New(lang string) *Translator {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return &Translator{
		printer: message.NewPrinter(tag, message.Catalog(translations)),
		tag:     tag,
	}
}

// T translates key, formatting any arguments. Untranslated keys pass
// through unchanged.
func (t *Translator) T(key string, args ...any) string {
	return t.printer.Sprintf(key, args...)
}

// Language reports the resolved language tag.
func (t *Translator) Language() string {
	return t.tag.String()
}
