package flows

// Flow names accepted by the flow executor endpoint.
const (
	FlowSubmitReservation = "submit-reservation"
	FlowPlaceHold         = "place-hold"
)

// Output keys written by flow steps and returned to the caller.
const (
	OutputReservation     = "reservation"
	OutputPaymentIntent   = "payment_intent"
	OutputReceiptPDF      = "receipt_pdf_base64"
	OutputReceiptFilename = "receipt_filename"
	OutputChangeDueCents  = "change_due_cents"
	OutputNotice          = "notice"
	OutputHold            = "hold"
	OutputBreakdown       = "breakdown"
)

// NoticeInvoiceSent is returned when no payment is collected at the desk and
// the balance is invoiced instead.
const NoticeInvoiceSent = "invoice-sent"
