package reconcile

import (
	"fmt"
	"strings"
)

// SetField assigns one document form field by its wire name. Used by the
// flag-driven editing surface.
func (f *Form) SetField(key, value string) error {
	switch key {
	case "seller_name", "exporter_name":
		f.Exporter.Name = value
	case "seller_address", "exporter_address":
		f.Exporter.Address = value
	case "to_company":
		f.ToCompany = value
	case "to_address":
		f.ToAddress = value
	case "to_tel":
		f.ToTel = value
	case "to_vat_no":
		f.ToVatNo = value
	case "eori_no":
		f.EoriNo = value
	case "invoice_no":
		f.InvoiceNo = value
	case "invoice_date":
		f.InvoiceDate = value
	case "trade_terms":
		f.TradeTerms = value
	case "currency":
		f.Currency = value
	case "logistics_from":
		f.LogisticsFrom = value
	case "logistics_to":
		f.LogisticsTo = value
	case "logistics_transport":
		f.LogisticsTransport = value
	default:
		return fmt.Errorf("unknown field %q", key)
	}
	return nil
}

// SetField assigns one item form field by its wire name.
func (f *ItemForm) SetField(key, value string) error {
	switch key {
	case "marks_nos":
		f.MarksNos = value
	case "tracking_no":
		f.TrackingNo = value
	case "product_name":
		f.ProductName = value
	case "material":
		f.Material = value
	case "hs_code":
		f.HSCode = value
	case "units_pcs":
		f.UnitsPcs = value
	case "packages":
		f.Packages = value
	case "unit_price":
		f.UnitPrice = value
	case "net_weight":
		f.NetWeight = value
	case "gross_weight":
		f.GrossWeight = value
	case "cbm":
		f.CBM = value
	case "barcode":
		f.Barcode = value
	default:
		return fmt.Errorf("unknown item field %q", key)
	}
	return nil
}

// ParseItemSpec builds an item form from a comma-separated key=value spec
// like "product_name=Electric Scooter,units_pcs=10,unit_price=299.99".
// Unset fields keep the sub-form defaults. A segment without "=" is
// treated as part of the preceding value, so commas inside marks or
// addresses survive; values that themselves contain "=" need the items
// file instead.
func ParseItemSpec(spec string) (ItemForm, error) {
	f := EmptyItemForm()
	if strings.TrimSpace(spec) == "" {
		return f, fmt.Errorf("empty item spec")
	}

	type assignment struct{ key, value string }
	var pairs []assignment
	for _, part := range strings.Split(spec, ",") {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			if len(pairs) == 0 {
				return f, fmt.Errorf("bad item field %q, want key=value", part)
			}
			pairs[len(pairs)-1].value += "," + part
			continue
		}
		pairs = append(pairs, assignment{strings.TrimSpace(key), strings.TrimSpace(value)})
	}

	for _, p := range pairs {
		if err := f.SetField(p.key, p.value); err != nil {
			return f, err
		}
	}
	return f, nil
}

// ParseAssignment splits one "key=value" pair.
func ParseAssignment(s string) (key, value string, err error) {
	key, value, ok := strings.Cut(s, "=")
	if !ok {
		return "", "", fmt.Errorf("bad assignment %q, want key=value", s)
	}
	return strings.TrimSpace(key), value, nil
}
