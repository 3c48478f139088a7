package infra

// pdf.go — order receipt generation using go-pdf/fpdf.
// Receipts are rendered from the order item snapshots (name, SKU, unit price),
// never from the live product rows, so a receipt regenerated later is
// identical to the original.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AbyssT34/Ecommerce-Shop/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateOrderReceiptPDF writes a PDF receipt for an order into storagePath
// (created if needed) and returns the absolute path of the generated file.
func GenerateOrderReceiptPDF(order *model.Order, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("order_%s.pdf", order.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "GrocerShop", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Order Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	// ── Order info ───────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Order %s", order.ID), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 4, order.CreatedAt.Format("02 Jan 2006  15:04"), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4, "Status: "+order.Status, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(2)

	// ── Items ────────────────────────────────────────────────────────────────
	col1 := contentW * 0.46 // product
	col2 := contentW * 0.14 // qty
	col3 := contentW * 0.20 // unit price
	col4 := contentW * 0.20 // subtotal

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1, 5, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Unit", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 5, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, item := range order.Items {
		name := item.ProductName
		if len(name) > 28 {
			name = name[:27] + "…"
		}
		pdf.CellFormat(col1, 5, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", item.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "$"+item.UnitPrice.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 5, "$"+item.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(2)

	// ── Total ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1+col2+col3, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col4, 6, "$"+order.TotalAmount.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Shipping ─────────────────────────────────────────────────────────────
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "", 8)
	pdf.MultiCell(contentW, 4, "Ship to: "+order.ShippingAddress, "", "L", false)
	pdf.CellFormat(contentW, 4, "Phone: "+order.PhoneNumber, "", 1, "L", false, 0, "")

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 4, "Thank you for shopping with us!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
