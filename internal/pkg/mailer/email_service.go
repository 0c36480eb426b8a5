package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"storefront-be/internal/entity"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendOrderConfirmation(order *entity.Order) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string) IEmailService {
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

var orderConfirmationTmpl = template.Must(template.New("order_confirmation").Parse(`
<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
	<h2>Thank you for your order, {{.Name}}!</h2>
	<p>Order number: <strong>#{{.Number}}</strong></p>
	<table style="border-collapse: collapse;">
		{{range .Lines}}
		<tr><td style="padding: 4px 12px 4px 0;">{{.Name}} &times; {{.Quantity}}</td><td>${{.Amount}}</td></tr>
		{{end}}
	</table>
	<p><strong>Total: ${{.Total}}</strong></p>
	<p>Shipping to: {{.Address}}</p>
</div>
`))

type confirmationLine struct {
	Name     string
	Quantity int
	Amount   string
}

type confirmationView struct {
	Name    string
	Number  string
	Address string
	Total   string
	Lines   []confirmationLine
}

func renderOrderConfirmation(order *entity.Order) (string, error) {
	view := confirmationView{
		Name:    order.CustomerName,
		Number:  order.OrderNumber(),
		Address: order.CustomerAddress,
		Total:   order.TotalAmount.StringFixed(2),
	}
	for _, item := range order.Items {
		name := item.ProductId.String()
		if item.Product != nil {
			name = item.Product.Name
		}
		view.Lines = append(view.Lines, confirmationLine{
			Name:     name,
			Quantity: item.Quantity,
			Amount:   item.Price.StringFixed(2),
		})
	}

	var buf bytes.Buffer
	if err := orderConfirmationTmpl.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *emailService) SendOrderConfirmation(order *entity.Order) error {
	body, err := renderOrderConfirmation(order)
	if err != nil {
		return fmt.Errorf("render order confirmation: %w", err)
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", order.CustomerEmail)
	m.SetHeader("Subject", fmt.Sprintf("Order #%s confirmed", order.OrderNumber()))
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send order confirmation to %s: %w", order.CustomerEmail, err)
	}
	return nil
}

// noopEmailService is used when no SMTP host is configured.
type noopEmailService struct{}

func NewNoopEmailService() IEmailService {
	return noopEmailService{}
}

func (noopEmailService) SendOrderConfirmation(*entity.Order) error {
	return nil
}
