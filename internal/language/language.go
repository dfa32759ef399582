package language

import (
	"strings"

	"golang.org/x/text/language"
)

// Bibliographic ISO 639-2/B codes that x/text does not accept; mapped to
// their terminological equivalents before parsing.
var bibliographic = map[string]string{
	"fre": "fra",
	"ger": "deu",
	"dut": "nld",
	"chi": "zho",
	"cze": "ces",
	"gre": "ell",
	"ice": "isl",
	"may": "msa",
	"rum": "ron",
	"slo": "slk",
	"baq": "eus",
	"wel": "cym",
	"iri": "gle",
}

// Tesseract training-data names keyed by ISO 639-1 code. Languages missing
// here cannot be OCRed and fall back to English.
var tesseract = map[string]string{
	"en": "eng", "es": "spa", "fr": "fra", "de": "deu", "it": "ita",
	"pt": "por", "ja": "jpn", "zh": "chi_sim", "ko": "kor", "ru": "rus",
	"ar": "ara", "nl": "nld", "sv": "swe", "da": "dan", "no": "nor",
	"fi": "fin", "pl": "pol", "tr": "tur", "th": "tha", "vi": "vie",
	"hu": "hun", "cs": "ces", "el": "ell", "he": "heb", "hi": "hin",
	"id": "ind", "ms": "msa", "ro": "ron", "uk": "ukr", "bg": "bul",
	"hr": "hrv", "sk": "slk", "sl": "slv", "sr": "srp", "ca": "cat",
	"eu": "eus", "gl": "glg", "lt": "lit", "lv": "lav", "et": "est",
	"is": "isl", "mt": "mlt", "cy": "cym", "ga": "gle",
}

// ToISO1 converts any recognized language tag to its ISO 639-1 (2-letter)
// form. The undetermined tag "und" maps to "un". Returns empty string for
// unrecognized input.
func ToISO1(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	if code == "und" || code == "un" {
		return "un"
	}
	if mapped, ok := bibliographic[code]; ok {
		code = mapped
	}
	tag, err := language.Parse(code)
	if err != nil {
		return ""
	}
	base, confidence := tag.Base()
	if confidence == language.No {
		return ""
	}
	iso1 := base.String()
	if len(iso1) != 2 {
		return ""
	}
	return iso1
}

// Tesseract returns the tesseract training-data name for an ISO 639-1 code,
// or empty string when the language has no known training data.
func Tesseract(iso1 string) string {
	return tesseract[strings.ToLower(strings.TrimSpace(iso1))]
}

// Known reports whether tesseract training data exists for the ISO 639-1 code.
func Known(iso1 string) bool {
	return Tesseract(iso1) != ""
}
