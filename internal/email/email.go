package email

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"log"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"

	"student-accommodation-portal/internal/config"
	"student-accommodation-portal/internal/models"
)

// Service sends proof-of-payment submissions to the portal admin.
// Sending is best-effort: every failure is logged and reported as a
// boolean, never propagated as a request error.
type Service struct {
	cfg config.EmailConfig
}

// NewService creates the submission mailer
func NewService(cfg config.EmailConfig) *Service {
	return &Service{cfg: cfg}
}

// SendPDFSubmission mails a landlord's PDF with a summary body to the
// admin address. Returns true only when the SMTP send succeeded.
func (s *Service) SendPDFSubmission(user *models.User, profile *models.LandlordProfile, filename string, pdf []byte, message string) bool {
	if !s.cfg.Configured() {
		log.Printf("[Email] configuration is missing, submission from %s not sent", user.Username)
		return false
	}

	subject := fmt.Sprintf("Proof of Payment - %s", user.Username)
	body := buildBody(user, profile, filename, len(pdf), message)

	raw, err := buildMessage(s.cfg.FromEmail, s.cfg.AdminEmail, subject, body, filename, pdf)
	if err != nil {
		log.Printf("[Email] failed to build submission message: %v", err)
		return false
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	authentication := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)
	if err := smtp.SendMail(addr, authentication, s.cfg.FromEmail, []string{s.cfg.AdminEmail}, raw); err != nil {
		log.Printf("[Email] failed to send submission for %s: %v", user.Username, err)
		return false
	}

	log.Printf("[Email] submission sent for user %s", user.Username)
	return true
}

func buildBody(user *models.User, profile *models.LandlordProfile, filename string, size int, message string) string {
	company := "Not provided"
	phone := "Not provided"
	if profile != nil {
		if profile.CompanyName != "" {
			company = profile.CompanyName
		}
		if profile.PhoneNumber != "" {
			phone = profile.PhoneNumber
		}
	}

	parts := []string{
		"New Proof of Payment Submission Received!",
		"",
		"Landlord Details:",
		fmt.Sprintf("- Username: %s", user.Username),
		fmt.Sprintf("- Full Name: %s", user.FullName()),
		fmt.Sprintf("- Email: %s", user.Email),
		fmt.Sprintf("- Company: %s", company),
		fmt.Sprintf("- Phone: %s", phone),
		"",
	}

	if message != "" {
		parts = append(parts, "Additional Message:", message, "")
	}

	parts = append(parts,
		fmt.Sprintf("File: %s", filename),
		fmt.Sprintf("Size: %.2f MB", float64(size)/(1024*1024)),
		"",
		"---",
		"This submission was sent from the landlord dashboard.",
	)

	return strings.Join(parts, "\n")
}

// buildMessage assembles the raw multipart MIME message with the PDF attached
func buildMessage(from, to, subject, body, filename string, pdf []byte) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", writer.Boundary())

	textHeader := textproto.MIMEHeader{}
	textHeader.Set("Content-Type", "text/plain; charset=utf-8")
	textPart, err := writer.CreatePart(textHeader)
	if err != nil {
		return nil, err
	}
	if _, err := textPart.Write([]byte(body)); err != nil {
		return nil, err
	}

	attachmentHeader := textproto.MIMEHeader{}
	attachmentHeader.Set("Content-Type", "application/pdf")
	attachmentHeader.Set("Content-Transfer-Encoding", "base64")
	attachmentHeader.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	attachmentPart, err := writer.CreatePart(attachmentHeader)
	if err != nil {
		return nil, err
	}

	encoded := make([]byte, base64.StdEncoding.EncodedLen(len(pdf)))
	base64.StdEncoding.Encode(encoded, pdf)
	if _, err := attachmentPart.Write(encoded); err != nil {
		return nil, err
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
