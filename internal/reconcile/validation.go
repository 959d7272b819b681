package reconcile

import "strings"

// ValidationError carries the first failing check of a form. Nothing is
// sent to the backend when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ValidateItem checks one line item. Checks run in order and the first
// failure wins: product name, then units, then unit price.
func ValidateItem(f ItemForm) error {
	if blank(f.ProductName) {
		return &ValidationError{Field: "product_name", Message: "product name is required"}
	}
	if Num(f.UnitsPcs) <= 0 {
		return &ValidationError{Field: "units_pcs", Message: "units (pcs) must be > 0"}
	}
	if Num(f.UnitPrice) <= 0 {
		return &ValidationError{Field: "unit_price", Message: "unit price must be > 0"}
	}
	return nil
}

// ValidateForm checks a document form before create or save. Order
// matters: consignee company, then invoice number, then the item list.
func ValidateForm(f Form) error {
	if blank(f.ToCompany) {
		return &ValidationError{Field: "to_company", Message: "consignee company (TO) is required"}
	}
	if blank(f.InvoiceNo) {
		return &ValidationError{Field: "invoice_no", Message: "invoice number is required"}
	}
	if len(f.Items) == 0 {
		return &ValidationError{Field: "items", Message: "please add at least one item"}
	}
	return nil
}

// ValidateCredentials checks the login inputs locally, before any network
// call.
func ValidateCredentials(username, password string) error {
	if blank(username) {
		return &ValidationError{Field: "username", Message: "username / customer code is required"}
	}
	if blank(password) {
		return &ValidationError{Field: "password", Message: "password is required"}
	}
	return nil
}
