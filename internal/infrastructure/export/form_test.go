package export

import (
	"strings"
	"testing"

	"github.com/qrdocs/deposit-system/internal/core/domain"
)

func TestRenderForm_Blank(t *testing.T) {
	out := RenderForm(nil)

	if !strings.HasPrefix(out, "CLIENT FORM") {
		t.Fatalf("missing header:\n%s", out)
	}
	for _, label := range []string{"Last name", "First name", "Phone", "Deposit amount", "Pickup date"} {
		if !strings.Contains(out, label+":") {
			t.Errorf("missing label %q", label)
		}
	}
	if strings.Count(out, blankLine) != 9 {
		t.Fatalf("expected 9 blank lines, got %d", strings.Count(out, blankLine))
	}
}

func TestRenderForm_Prefilled(t *testing.T) {
	out := RenderForm(&domain.Document{
		LastName:      "Ivanova",
		FirstName:     "Anna",
		Phone:         "+7 900 000-00-00",
		DepositAmount: 150.50,
	})

	for _, want := range []string{"Ivanova", "Anna", "+7 900 000-00-00", "150.5"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing value %q in:\n%s", want, out)
		}
	}
	// Absent fields keep their blank lines.
	if !strings.Contains(out, blankLine) {
		t.Fatalf("expected blank lines for absent fields")
	}
}
