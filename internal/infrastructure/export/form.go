// Package export formats human-readable client forms from ledger documents.
package export

import (
	"fmt"
	"strings"

	"github.com/qrdocs/deposit-system/internal/core/domain"
)

const blankLine = "_______________________"

// RenderForm produces the printable client questionnaire. A nil document
// yields a blank template with empty lines for manual completion.
func RenderForm(doc *domain.Document) string {
	var b strings.Builder
	b.WriteString("CLIENT FORM\n\n")

	writeField(&b, "Last name", get(doc, func(d *domain.Document) string { return d.LastName }))
	writeField(&b, "First name", get(doc, func(d *domain.Document) string { return d.FirstName }))
	writeField(&b, "Middle name", get(doc, func(d *domain.Document) string { return d.MiddleName }))
	writeField(&b, "Phone", get(doc, func(d *domain.Document) string { return d.Phone }))
	writeField(&b, "Email", get(doc, func(d *domain.Document) string { return d.Email }))
	writeField(&b, "Item description", get(doc, func(d *domain.Document) string { return d.ItemDescription }))
	writeField(&b, "Deposit amount", amount(doc, func(d *domain.Document) float64 { return d.DepositAmount }))
	writeField(&b, "Pickup amount", amount(doc, func(d *domain.Document) float64 { return d.PickupAmount }))
	writeField(&b, "Pickup date", get(doc, func(d *domain.Document) string { return d.PickupDate }))

	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		value = blankLine
	}
	fmt.Fprintf(b, "%s:\n%s\n\n", label, value)
}

func get(doc *domain.Document, f func(*domain.Document) string) string {
	if doc == nil {
		return ""
	}
	return f(doc)
}

func amount(doc *domain.Document, f func(*domain.Document) float64) string {
	if doc == nil {
		return ""
	}
	v := f(doc)
	if v == 0 {
		return ""
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
