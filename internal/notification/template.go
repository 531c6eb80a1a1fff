package notification

import (
	"bytes"
	"fmt"
	"html/template"

	"bistro-boss/internal/models"
)

var confirmationHTML = template.Must(template.New("confirmation").Parse(`<div>
<h3>Thank you for your order.</h3>
<p>You have paid: <strong>{{printf "%.2f" .Amount}}</strong> successfully.</p>
<p>Transaction id: <strong>{{.TransactionID}}</strong></p>
<h3>We would like to get your feedback!</h3>
</div>`))

// RenderConfirmationHTML renders the HTML body of the confirmation email
func RenderConfirmationHTML(msg *models.PaymentConfirmation) (string, error) {
	var buf bytes.Buffer
	if err := confirmationHTML.Execute(&buf, msg); err != nil {
		return "", fmt.Errorf("render confirmation: %w", err)
	}
	return buf.String(), nil
}

// RenderConfirmationText is the plain-text alternative of the confirmation email
func RenderConfirmationText(msg *models.PaymentConfirmation) string {
	return fmt.Sprintf("Thank you for your order.\nYou have paid: %.2f successfully.\nTransaction id: %s\nWe would like to get your feedback!\n",
		msg.Amount, msg.TransactionID)
}

func renderAdminAlert(msg *models.PaymentConfirmation) string {
	return fmt.Sprintf("New payment %.2f from %s\nTransaction: %s\nPaid at: %s",
		msg.Amount, msg.Email, msg.TransactionID, msg.PaidAt.Format("2006-01-02 15:04:05"))
}
