// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"net/http"
	"net/smtp"
	"net/url"
	"strings"
	"text/template"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/buyx/backend/internal/config"
	"github.com/buyx/backend/internal/models"
)

// NotificationService sends welcome and order emails plus order-status SMS.
// Every send is best-effort: failures are logged and reported as false,
// never raised into the calling workflow.
type NotificationService struct {
	config     *config.Config
	httpClient *http.Client
}

var welcomeEmailTemplate = template.Must(template.New("welcome").Parse(`Dear {{.Username}},

Thanks for choosing buyX. Let's start our journey together

Best regards,
buyX Team
`))

var orderConfirmationTemplate = template.Must(template.New("order_confirmation").Parse(`Dear {{.DeliveryName}},

Your order has been successfully confirmed. Track your order with the given order id: {{.OrderNumber}}

Order Details:
---------------
Order ID: {{.OrderNumber}}
{{- range .Items}}
- {{.ProductName}} x {{.Quantity}} (Rs.{{.ProductPrice}})
{{- end}}
Total Amount: Rs.{{.TotalAmount}}

Thank you for shopping with buyX!

Best regards,
buyX Team
`))

func NewNotificationService(config *config.Config) *NotificationService {
	return &NotificationService{
		config:     config,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *NotificationService) SendWelcomeEmail(user *models.User) bool {
	var body bytes.Buffer
	if err := welcomeEmailTemplate.Execute(&body, user); err != nil {
		logrus.WithError(err).Error("Failed to render welcome email")
		return false
	}

	subject := "Welcome to buyX - Let's Start Our Journey Together!"
	if err := s.sendEmail(user.Email, subject, body.String()); err != nil {
		logrus.WithError(err).WithField("email", user.Email).Error("Failed to send welcome email")
		return false
	}
	return true
}

func (s *NotificationService) SendOrderConfirmationEmail(order *models.Order) bool {
	var body bytes.Buffer
	if err := orderConfirmationTemplate.Execute(&body, order); err != nil {
		logrus.WithError(err).Error("Failed to render order confirmation email")
		return false
	}

	subject := "Order Confirmed - Your buyX Order"
	if err := s.sendEmail(order.DeliveryEmail, subject, body.String()); err != nil {
		logrus.WithError(err).WithField("order_number", order.OrderNumber).
			Error("Failed to send order confirmation email")
		return false
	}
	return true
}

// SendOrderStatusSMS posts the status text to the configured SMS gateway.
func (s *NotificationService) SendOrderStatusSMS(phone, orderNumber, status string) bool {
	if s.config.SMS.GatewayURL == "" {
		logrus.WithField("order_number", orderNumber).Debug("SMS gateway not configured, skipping")
		return false
	}

	message := fmt.Sprintf("buyX: Your order %s has been %s. Thank you for shopping with us!", orderNumber, status)

	form := url.Values{}
	form.Set("api_key", s.config.SMS.APIKey)
	form.Set("sender", s.config.SMS.SenderID)
	form.Set("to", "+91"+phone)
	form.Set("message", message)

	resp, err := s.httpClient.PostForm(s.config.SMS.GatewayURL, form)
	if err != nil {
		logrus.WithError(err).WithField("order_number", orderNumber).Error("Failed to send order SMS")
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		logrus.WithFields(logrus.Fields{
			"order_number": orderNumber,
			"status_code":  resp.StatusCode,
		}).Error("SMS gateway rejected the message")
		return false
	}

	return true
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.config.Email.SMTPHost == "" || s.config.Email.SMTPUsername == "" {
		return fmt.Errorf("SMTP not configured")
	}

	from := s.config.Email.FromEmail
	msg := strings.Join([]string{
		"From: " + s.config.Email.FromName + " <" + from + ">",
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)
	addr := s.config.Email.SMTPHost + ":" + s.config.Email.SMTPPort

	return smtp.SendMail(addr, auth, from, []string{to}, []byte(msg))
}
