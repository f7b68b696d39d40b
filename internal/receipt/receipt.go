// Package receipt renders the point-of-sale receipt handed to a guest when
// payment is collected immediately (cash, check, or folio).
package receipt

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
)

// Data is everything printed on a receipt. Amounts are integer cents.
type Data struct {
	ReservationID     string
	CampgroundName    string
	GuestName         string
	SiteName          string
	ArrivalDate       string
	DepartureDate     string
	Nights            int
	PaymentMethod     string
	AmountCents       int64
	CashReceivedCents int64
	ChangeDueCents    int64
	CollectedBy       string
	CollectedAt       time.Time
}

// Render produces the receipt PDF and a filename safe for download headers.
func Render(d Data) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payment Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "PAYMENT RECEIPT")
	pdf.Ln(12)

	collectedAt := d.CollectedAt
	if collectedAt.IsZero() {
		collectedAt = time.Now()
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Receipt No   : RCPT-%s", safe(d.ReservationID, "-")),
		fmt.Sprintf("Campground   : %s", safe(d.CampgroundName, "-")),
		fmt.Sprintf("Guest        : %s", safe(d.GuestName, "-")),
		fmt.Sprintf("Site         : %s", safe(d.SiteName, "-")),
		fmt.Sprintf("Stay         : %s to %s (%d nights)", safe(d.ArrivalDate, "-"), safe(d.DepartureDate, "-"), d.Nights),
		fmt.Sprintf("Method       : %s", safe(strings.ToUpper(d.PaymentMethod), "-")),
		fmt.Sprintf("Amount Paid  : %s", FormatCents(d.AmountCents)),
	}
	if strings.EqualFold(d.PaymentMethod, "cash") {
		lines = append(lines,
			fmt.Sprintf("Cash Received: %s", FormatCents(d.CashReceivedCents)),
			fmt.Sprintf("Change Due   : %s", FormatCents(d.ChangeDueCents)),
		)
	}
	lines = append(lines,
		fmt.Sprintf("Collected By : %s", safe(d.CollectedBy, "-")),
		fmt.Sprintf("Collected At : %s", collectedAt.Format("2006-01-02 15:04")),
	)
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Thank you for your stay. Keep this receipt for your records.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("RECEIPT_%s.pdf", safeFilenamePart(d.ReservationID))
	return buf.Bytes(), filename, nil
}

// FormatCents renders integer cents as a dollar string, e.g. 10450 -> "$104.50".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func safeFilenamePart(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "receipt"
	}
	return b.String()
}
