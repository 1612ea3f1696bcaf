package booking

import (
	"bytes"
	"fmt"
	"os"

	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// InvoicePDF renders the invoice as a single-page PDF with a QR code of the
// booking reference. The PDF is an on-demand export; the invoice itself is
// never stored by the app.
func InvoicePDF(inv Invoice, currency string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Booking Invoice")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Name: %s", inv.CustomerName))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Email: %s", inv.CustomerEmail))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Phone: %s", inv.CustomerPhone))
	pdf.Ln(12)

	pdf.Cell(0, 10, fmt.Sprintf("Package: %s", inv.PackageTitle))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Price per person: %s%.2f", currency, inv.UnitPrice))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Travelers: %d", inv.Travelers))
	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Total: %s%.2f", currency, inv.TotalPrice))
	pdf.Ln(12)

	if inv.Reference != "" {
		pdf.SetFont("Arial", "", 10)
		pdf.Cell(0, 10, fmt.Sprintf("Reference: %s", inv.Reference))

		qrPNG, err := qrcode.Encode(inv.Reference, qrcode.Medium, 256)
		if err != nil {
			return nil, fmt.Errorf("generate qr code: %w", err)
		}
		imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
		pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportInvoice writes the invoice PDF next to the current working directory
// and returns the file name.
func ExportInvoice(inv Invoice, currency string) (string, error) {
	data, err := InvoicePDF(inv, currency)
	if err != nil {
		return "", err
	}
	name := "invoice"
	if inv.Reference != "" {
		ref := inv.Reference
		if len(ref) > 8 {
			ref = ref[:8]
		}
		name = "invoice-" + ref
	}
	name += ".pdf"
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return name, nil
}
