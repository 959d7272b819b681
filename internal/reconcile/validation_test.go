package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validItem() ItemForm {
	return ItemForm{ProductName: "Electric Scooter", UnitsPcs: "10", Packages: "2", UnitPrice: "299.99"}
}

func validForm() Form {
	return Form{
		ToCompany: "Bite of China Ltd",
		InvoiceNo: "GSAM240109001",
		Items:     []ItemForm{validItem()},
	}
}

func TestValidateItem(t *testing.T) {
	assert.NoError(t, ValidateItem(validItem()))

	tests := []struct {
		name   string
		mutate func(*ItemForm)
		field  string
	}{
		{"empty product name", func(f *ItemForm) { f.ProductName = "" }, "product_name"},
		{"whitespace product name", func(f *ItemForm) { f.ProductName = "   " }, "product_name"},
		{"zero units", func(f *ItemForm) { f.UnitsPcs = "0" }, "units_pcs"},
		{"negative units", func(f *ItemForm) { f.UnitsPcs = "-3" }, "units_pcs"},
		{"non-numeric units", func(f *ItemForm) { f.UnitsPcs = "ten" }, "units_pcs"},
		{"zero price", func(f *ItemForm) { f.UnitPrice = "0" }, "unit_price"},
		{"negative price", func(f *ItemForm) { f.UnitPrice = "-1" }, "unit_price"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := validItem()
			tt.mutate(&it)

			err := ValidateItem(it)
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestValidateForm(t *testing.T) {
	assert.NoError(t, ValidateForm(validForm()))

	tests := []struct {
		name   string
		mutate func(*Form)
		field  string
	}{
		{"empty consignee", func(f *Form) { f.ToCompany = "" }, "to_company"},
		{"whitespace consignee", func(f *Form) { f.ToCompany = "  " }, "to_company"},
		{"empty invoice no", func(f *Form) { f.InvoiceNo = "" }, "invoice_no"},
		{"no items", func(f *Form) { f.Items = nil }, "items"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			err := ValidateForm(form)
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestValidateFormOrder(t *testing.T) {
	// The consignee check wins even when every check would fail.
	err := ValidateForm(Form{})
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "to_company", verr.Field)
}

func TestValidateCredentials(t *testing.T) {
	assert.NoError(t, ValidateCredentials("test01", "secret"))

	err := ValidateCredentials("  ", "secret")
	require.Error(t, err)

	err = ValidateCredentials("test01", "")
	require.Error(t, err)

	// Username is checked first.
	var verr *ValidationError
	require.ErrorAs(t, ValidateCredentials("", ""), &verr)
	assert.Equal(t, "username", verr.Field)
}
