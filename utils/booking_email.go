package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"

	"hotel-booking-backend/models"
)

// Booking confirmation mail, guest and admin variants. When SMTP env is
// not configured the send degrades to a mock log line so development
// setups work without a relay.

type smtpConfig struct {
	host, port, user, pass, fromName string
}

func loadSMTPConfig() (smtpConfig, bool) {
	cfg := smtpConfig{
		host:     os.Getenv("SMTP_HOST"),
		port:     os.Getenv("SMTP_PORT"),
		user:     os.Getenv("SMTP_USERNAME"),
		pass:     os.Getenv("SMTP_PASSWORD"),
		fromName: os.Getenv("SMTP_FROM_NAME"),
	}
	ok := cfg.host != "" && cfg.port != "" && cfg.user != "" && cfg.pass != ""
	return cfg, ok
}

func safeHeader(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\r\n", " ")
}

func bookingTableHTML(b models.Booking) string {
	row := func(label, value string) string {
		return fmt.Sprintf("<tr><th>%s</th><td>%s</td></tr>", label, value)
	}
	var sb strings.Builder
	sb.WriteString(`<table class="booking-table">`)
	sb.WriteString(row("Confirmation ID", b.ConfirmationID))
	sb.WriteString(row("Guest Name", b.Guest.FirstName+" "+b.Guest.LastName))
	sb.WriteString(row("Check-in Date", b.Stay.CheckIn.Format("2006-01-02")))
	sb.WriteString(row("Check-out Date", b.Stay.CheckOut.Format("2006-01-02")))
	sb.WriteString(row("Number of Rooms", fmt.Sprintf("%d", b.Stay.NumberOfRooms)))
	sb.WriteString(row("Guests", fmt.Sprintf("Adults: %d, Children: %d", b.Stay.NumberOfAdults, b.Stay.NumberOfChildren)))
	sb.WriteString(row("Total Amount", fmt.Sprintf("%s %.2f", b.Amount.Currency, b.Amount.GrandTotal)))
	sb.WriteString(row("Payment Status", b.Payment.PaymentStatus))
	sb.WriteString(`</table>`)
	return sb.String()
}

func bookingSummaryText(b models.Booking) string {
	return fmt.Sprintf(
		"Confirmation: %s\nGuest: %s %s\nCheck-in: %s\nCheck-out: %s\nRooms: %d\nTotal: %s %.2f\nPayment: %s\n",
		b.ConfirmationID,
		b.Guest.FirstName, b.Guest.LastName,
		b.Stay.CheckIn.Format("2006-01-02"),
		b.Stay.CheckOut.Format("2006-01-02"),
		b.Stay.NumberOfRooms,
		b.Amount.Currency, b.Amount.GrandTotal,
		b.Payment.PaymentStatus,
	)
}

const emailStyles = `<style>
.booking-table { width:100%; border-collapse:collapse; margin:20px 0; }
.booking-table th, .booking-table td { padding:12px; border:1px solid #ddd; }
.booking-table th { background-color:#f8f9fa; text-align:left; }
.email-container { font-family:Arial, sans-serif; max-width:600px; margin:0 auto; padding:20px; }
.header { background-color:#2c3e50; color:#fff; padding:20px; text-align:center; margin-bottom:30px; }
</style>`

func sendMultipart(cfg smtpConfig, recipient, subject, plainBody, htmlBody string) error {
	from := fmt.Sprintf("%s <%s>", cfg.fromName, cfg.user)
	auth := smtp.PlainAuth("", cfg.user, cfg.pass, cfg.host)
	addr := fmt.Sprintf("%s:%s", cfg.host, cfg.port)
	boundary := "----=_BOOKING_EMAIL_BOUNDARY"

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", recipient))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", safeHeader(subject)))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary))

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(plainBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	sb.WriteString(htmlBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	return smtp.SendMail(addr, auth, cfg.user, []string{recipient}, []byte(sb.String()))
}

// SendGuestConfirmationEmail mails the booking summary to the guest.
func SendGuestConfirmationEmail(b models.Booking) error {
	cfg, ok := loadSMTPConfig()
	if !ok {
		log.Printf("[MOCK EMAIL] guest confirmation to:%s booking:%s confirmation:%s",
			b.Guest.Email, b.BookingID, b.ConfirmationID)
		return nil
	}

	subject := fmt.Sprintf("Booking Confirmed - %s", b.ConfirmationID)
	plain := "Hi " + b.Guest.FirstName + ",\n\nYour booking is confirmed.\n\n" + bookingSummaryText(b)
	html := fmt.Sprintf(`<!doctype html><html><head><meta charset="utf-8">%s</head><body>
<div class="email-container">
  <div class="header"><h2>Booking Confirmed</h2></div>
  <p>Hi %s,</p>
  <p>Thank you for your booking. Your details are below.</p>
  %s
  <p>Please keep your confirmation ID for check-in.</p>
</div>
</body></html>`, emailStyles, safeHeader(b.Guest.FirstName), bookingTableHTML(b))

	if err := sendMultipart(cfg, b.Guest.Email, subject, plain, html); err != nil {
		log.Printf("Failed to send guest confirmation to %s: %v", b.Guest.Email, err)
		return err
	}
	log.Printf("Guest confirmation email sent to %s", b.Guest.Email)
	return nil
}

// SendAdminNotificationEmail alerts the hotel admin of a new booking.
func SendAdminNotificationEmail(b models.Booking, adminEmail string) error {
	cfg, ok := loadSMTPConfig()
	if !ok {
		log.Printf("[MOCK EMAIL] admin notification to:%s booking:%s", adminEmail, b.BookingID)
		return nil
	}

	subject := fmt.Sprintf("New Booking Received - %s", b.ConfirmationID)
	plain := "A new booking has been received.\n\n" + bookingSummaryText(b)
	html := fmt.Sprintf(`<!doctype html><html><head><meta charset="utf-8">%s</head><body>
<div class="email-container">
  <div class="header"><h2>New Booking</h2></div>
  <p>A new booking has been received for your hotel.</p>
  %s
  <p>Review the payment proof in the dashboard before confirming.</p>
</div>
</body></html>`, emailStyles, bookingTableHTML(b))

	if err := sendMultipart(cfg, adminEmail, subject, plain, html); err != nil {
		log.Printf("Failed to send admin notification to %s: %v", adminEmail, err)
		return err
	}
	log.Printf("Admin notification email sent to %s", adminEmail)
	return nil
}
