package reconcile

import "strconv"

// ItemForm holds one line item with every numeric field as text, the way
// it is edited. Parsing back to numbers happens only at payload build
// time.
type ItemForm struct {
	MarksNos    string `json:"marks_nos"`
	TrackingNo  string `json:"tracking_no"`
	ProductName string `json:"product_name"`
	Material    string `json:"material"`
	HSCode      string `json:"hs_code"`

	UnitsPcs  string `json:"units_pcs"`
	Packages  string `json:"packages"`
	UnitPrice string `json:"unit_price"`

	NetWeight   string `json:"net_weight"`
	GrossWeight string `json:"gross_weight"`
	CBM         string `json:"cbm"`
	Barcode     string `json:"barcode"`
}

// EmptyItemForm returns the blank item sub-form with its defaults.
func EmptyItemForm() ItemForm {
	return ItemForm{UnitsPcs: "1", Packages: "1", UnitPrice: "0"}
}

// Amount is the preview total for the form's current field values.
func (f ItemForm) Amount() float64 {
	return Num(f.UnitsPcs) * Num(f.UnitPrice)
}

// Item coerces the form into its wire representation. Blank optional
// measurements become null; a blank or zero package count defaults to 1.
func (f ItemForm) Item() Item {
	packages := Num(f.Packages)
	if packages == 0 {
		packages = 1
	}
	return Item{
		MarksNos:    f.MarksNos,
		TrackingNo:  f.TrackingNo,
		ProductName: f.ProductName,
		Material:    f.Material,
		HSCode:      f.HSCode,
		UnitsPcs:    Num(f.UnitsPcs),
		Packages:    packages,
		UnitPrice:   Num(f.UnitPrice),
		NetWeight:   OptNum(f.NetWeight),
		GrossWeight: OptNum(f.GrossWeight),
		CBM:         OptNum(f.CBM),
		Barcode:     f.Barcode,
	}
}

func numText(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func optText(n *float64) string {
	if n == nil {
		return ""
	}
	return numText(*n)
}

// ItemFormFrom stringifies a wire item for editing, mapping null optionals
// to empty strings.
func ItemFormFrom(it Item) ItemForm {
	return ItemForm{
		MarksNos:    it.MarksNos,
		TrackingNo:  it.TrackingNo,
		ProductName: it.ProductName,
		Material:    it.Material,
		HSCode:      it.HSCode,
		UnitsPcs:    numText(it.UnitsPcs),
		Packages:    numText(it.Packages),
		UnitPrice:   numText(it.UnitPrice),
		NetWeight:   optText(it.NetWeight),
		GrossWeight: optText(it.GrossWeight),
		CBM:         optText(it.CBM),
		Barcode:     it.Barcode,
	}
}

// Form is the mutable editing snapshot of a document. It never carries
// server-owned fields (id, aggregates, lock state); saving sends a full
// replacement payload and the server's response becomes the new source of
// truth.
type Form struct {
	Exporter Exporter `json:"exporter_jsonb"`

	ToCompany string `json:"to_company"`
	ToAddress string `json:"to_address"`
	ToTel     string `json:"to_tel"`
	ToVatNo   string `json:"to_vat_no"`
	EoriNo    string `json:"eori_no"`

	InvoiceNo   string `json:"invoice_no"`
	InvoiceDate string `json:"invoice_date"`
	TradeTerms  string `json:"trade_terms"`
	Currency    string `json:"currency"`

	LogisticsFrom      string `json:"logistics_from"`
	LogisticsTo        string `json:"logistics_to"`
	LogisticsTransport string `json:"logistics_transport"`

	Items []ItemForm `json:"items"`
}

// FormFrom builds the editing snapshot for an existing document.
func FormFrom(doc Document) Form {
	f := Form{
		Exporter:           doc.Exporter,
		ToCompany:          doc.ToCompany,
		ToAddress:          doc.ToAddress,
		ToTel:              doc.ToTel,
		ToVatNo:            doc.ToVatNo,
		EoriNo:             doc.EoriNo,
		InvoiceNo:          doc.InvoiceNo,
		InvoiceDate:        doc.InvoiceDate,
		TradeTerms:         doc.TradeTerms,
		Currency:           doc.Currency,
		LogisticsFrom:      doc.LogisticsFrom,
		LogisticsTo:        doc.LogisticsTo,
		LogisticsTransport: doc.LogisticsTransport,
	}
	if f.Currency == "" {
		f.Currency = "CNY"
	}
	for _, it := range doc.Items {
		f.Items = append(f.Items, ItemFormFrom(it))
	}
	return f
}

// Payload is the wire body sent on create and save: exactly the fields a
// user can edit. Server-owned fields (id, lock state, deletion flag,
// aggregates) have no place here; the lock in particular travels only via
// the admin-only partial update.
type Payload struct {
	Exporter Exporter `json:"exporter_jsonb"`

	ToCompany string `json:"to_company"`
	ToAddress string `json:"to_address"`
	ToTel     string `json:"to_tel"`
	ToVatNo   string `json:"to_vat_no"`
	EoriNo    string `json:"eori_no"`

	InvoiceNo   string `json:"invoice_no"`
	InvoiceDate string `json:"invoice_date"`
	TradeTerms  string `json:"trade_terms"`
	Currency    string `json:"currency"`

	LogisticsFrom      string `json:"logistics_from"`
	LogisticsTo        string `json:"logistics_to"`
	LogisticsTransport string `json:"logistics_transport"`

	Items []Item `json:"items"`
}

// Payload coerces the whole form back into the wire body sent on create
// and save.
func (f Form) Payload() Payload {
	p := Payload{
		Exporter:           f.Exporter,
		ToCompany:          f.ToCompany,
		ToAddress:          f.ToAddress,
		ToTel:              f.ToTel,
		ToVatNo:            f.ToVatNo,
		EoriNo:             f.EoriNo,
		InvoiceNo:          f.InvoiceNo,
		InvoiceDate:        f.InvoiceDate,
		TradeTerms:         f.TradeTerms,
		Currency:           f.Currency,
		LogisticsFrom:      f.LogisticsFrom,
		LogisticsTo:        f.LogisticsTo,
		LogisticsTransport: f.LogisticsTransport,
		Items:              make([]Item, 0, len(f.Items)),
	}
	for _, it := range f.Items {
		p.Items = append(p.Items, it.Item())
	}
	return p
}

// AddItem appends a line item.
func (f *Form) AddItem(it ItemForm) {
	f.Items = append(f.Items, it)
}

// SetItem replaces the line item at idx.
func (f *Form) SetItem(idx int, it ItemForm) bool {
	if idx < 0 || idx >= len(f.Items) {
		return false
	}
	f.Items[idx] = it
	return true
}

// DeleteItem removes the line item at idx, keeping the remaining order.
func (f *Form) DeleteItem(idx int) bool {
	if idx < 0 || idx >= len(f.Items) {
		return false
	}
	f.Items = append(f.Items[:idx], f.Items[idx+1:]...)
	return true
}
