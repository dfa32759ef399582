package language

import "testing"

func TestToISO1(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"eng", "en"},
		{"en", "en"},
		{"fra", "fr"},
		{"fre", "fr"}, // bibliographic variant
		{"ger", "de"},
		{"deu", "de"},
		{"dut", "nl"},
		{"jpn", "ja"},
		{"zho", "zh"},
		{"chi", "zh"},
		{"und", "un"},
		{"UND", "un"},
		{"", ""},
		{"zz", ""},
		{"notalang", ""},
	}
	for _, tc := range tests {
		if got := ToISO1(tc.in); got != tc.want {
			t.Errorf("ToISO1(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTesseract(t *testing.T) {
	if got := Tesseract("en"); got != "eng" {
		t.Fatalf("Tesseract(en) = %q", got)
	}
	if got := Tesseract("zh"); got != "chi_sim" {
		t.Fatalf("Tesseract(zh) = %q", got)
	}
	if Tesseract("xx") != "" {
		t.Fatal("expected empty for unknown language")
	}
	if !Known("fr") || Known("xx") {
		t.Fatal("Known mismatch")
	}
}
