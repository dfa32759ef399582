// Package language normalizes subtitle language tags.
//
// Container metadata carries a mix of ISO 639-1, ISO 639-2/T, and the
// bibliographic ISO 639-2/B variants (fre, ger, dut, ...). Sidecar naming
// needs the 2-letter form and the OCR tool needs tesseract's 3-letter
// training-data names, so both conversions live here.
package language
