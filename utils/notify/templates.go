package notify

import (
	"byway/models"
	"fmt"
	"html"
	"strings"
)

const (
	WelcomeSubject  = "🎉 Welcome to Byway Learning!"
	PurchaseSubject = "🎉 Purchase Confirmation - Byway Learning!"
)

// HTML wrapper shared by every message
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #1E293B; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1E293B; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #EEF2FF; padding: 15px; border-radius: 4px; border-left: 4px solid #3B82F6; margin: 20px 0; }
			table.items { width: 100%%; border-collapse: collapse; }
			table.items td { padding: 6px 0; border-bottom: 1px solid #E0E0E0; }
			td.amount { text-align: right; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>BYWAY LEARNING</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; Byway Learning. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// WelcomeEmail returns subject and body for a freshly registered user.
func WelcomeEmail(name string) (string, string) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>Byway Learning</strong>! Your account has been created.</p>
		<p>Browse the catalog, pick a course and start learning today.</p>
	`, html.EscapeString(name))
	return WelcomeSubject, getEmailTemplate("Welcome Onboard!", body)
}

// PurchaseEmail lists every purchased course with its price and the receipt totals.
func PurchaseEmail(name string, r *models.Receipt) (string, string) {
	var rows strings.Builder
	for _, item := range r.Items {
		fmt.Fprintf(&rows, `<tr><td>%s</td><td class="amount">$%.2f</td></tr>`, html.EscapeString(item.Course), item.Price)
	}
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Thank you for your purchase. The following courses are now available in your library:</p>
		<table class="items">%s</table>
		<div class="info-box">
			Subtotal: $%.2f<br>
			Tax: $%.2f<br>
			<strong>Total: $%.2f</strong><br>
			Receipt: %s
		</div>
	`, html.EscapeString(name), rows.String(), r.Subtotal, r.Tax, r.TotalPrice, r.Number)
	return PurchaseSubject, getEmailTemplate("Purchase Confirmed", body)
}

// DigestEmail summarises one day of sales for admins.
func DigestEmail(w models.SalesWindow) (string, string) {
	day := w.From.Format("2006-01-02")
	body := fmt.Sprintf(`
		<p>Sales summary for <strong>%s</strong>:</p>
		<div class="info-box">
			New enrollments: %d<br>
			Revenue: $%.2f
		</div>
	`, day, w.Enrollments, w.Revenue)
	return "Byway daily sales digest - " + day, getEmailTemplate("Daily Sales Digest", body)
}
