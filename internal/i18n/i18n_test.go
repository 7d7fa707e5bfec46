package i18n

import "testing"

func TestNew_LanguageResolution(t *testing.T) {
	cases := []struct {
		lang string
		want string
	}{
		{"en", "en"},
		{"es", "es"},
		{"not-a-language!!", "en"},
		{"", "en"},
	}
	for _, tc := range cases {
		if got := New(tc.lang).Language(); got != tc.want {
			t.Errorf("New(%q).Language() = %q, want %q", tc.lang, got, tc.want)
		}
	}
}

func TestT_Spanish(t *testing.T) {
	tr := New("es")

	cases := []struct {
		key  string
		want string
	}{
		{"Total Sales", "Ventas Totales"},
		{"Unique Customers", "Clientes Únicos"},
		{"Thank you for your feedback!", "¡Gracias por sus comentarios!"},
	}
	for _, tc := range cases {
		if got := tr.T(tc.key); got != tc.want {
			t.Errorf("T(%q) = %q, want %q", tc.key, got, tc.want)
		}
	}
}

func TestT_EnglishIdentity(t *testing.T) {
	tr := New("en")
	if got := tr.T("Total Sales"); got != "Total Sales" {
		t.Errorf("T() = %q, want key unchanged", got)
	}
}

func TestT_MissingKeyFallsThrough(t *testing.T) {
	// A key absent from the catalog renders as itself, in any language.
	tr := New("es")
	if got := tr.T("Completely unknown label"); got != "Completely unknown label" {
		t.Errorf("T() = %q, want key unchanged", got)
	}
}
