package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPDFEscape(t *testing.T) {
	assert.Equal(t, `PF \(12%\)`, pdfEscape("PF (12%)"))
	assert.Equal(t, `a\\b`, pdfEscape(`a\b`))
	assert.Equal(t, "? 100", pdfEscape("₹ 100"))
}

func TestWritePDF_EmptyInput(t *testing.T) {
	out := writePDF(nil)
	assert.Contains(t, string(out), "(Payslip) Tj")
}
