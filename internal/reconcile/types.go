// Package reconcile holds the reconcile-document domain: wire types, form
// handling, validation, and the typed backend operations.
package reconcile

// Exporter is the seller block of a document.
type Exporter struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Item is one product line within a document. Quantities and prices are
// numeric on the wire; the optional measurements are null, never zero,
// when absent.
type Item struct {
	MarksNos    string `json:"marks_nos"`
	TrackingNo  string `json:"tracking_no"`
	ProductName string `json:"product_name"`
	Material    string `json:"material"`
	HSCode      string `json:"hs_code"`

	UnitsPcs  float64 `json:"units_pcs"`
	Packages  float64 `json:"packages"`
	UnitPrice float64 `json:"unit_price"`

	NetWeight   *float64 `json:"net_weight"`
	GrossWeight *float64 `json:"gross_weight"`
	CBM         *float64 `json:"cbm"`

	// Reserved for future scanning use.
	Barcode string `json:"barcode"`
}

// Amount is the preview total for the line. It is computed client-side for
// display only; the server keeps its own authoritative totals.
func (it Item) Amount() float64 {
	return it.UnitsPcs * it.UnitPrice
}

// Document is the full reconcile document as the backend represents it.
type Document struct {
	ID         string `json:"id,omitempty"`
	CustomerID string `json:"customer_id,omitempty"`

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

	Editable  bool `json:"editable"`
	IsDeleted bool `json:"is_deleted,omitempty"`

	// Server-computed aggregates, returned for display.
	TotalAmount float64 `json:"total_amount,omitempty"`
	ItemCount   int     `json:"item_count,omitempty"`

	UpdatedAt string `json:"updated_at,omitempty"`

	// Relative image paths, managed via the pics sub-endpoints.
	Pics []string `json:"pics,omitempty"`
}

// Summary is one row of the list endpoint.
type Summary struct {
	ID          string  `json:"id"`
	InvoiceNo   string  `json:"invoice_no"`
	InvoiceDate string  `json:"invoice_date"`
	Editable    bool    `json:"editable"`
	TotalAmount float64 `json:"total_amount"`
	ItemCount   int     `json:"item_count"`
	UpdatedAt   string  `json:"updated_at"`
}

// ListResult is the list endpoint's envelope.
type ListResult struct {
	Items []Summary `json:"items"`
}

// LoginResult is the auth endpoint's response.
type LoginResult struct {
	Token      string `json:"token"`
	Role       string `json:"role"`
	CustomerID string `json:"customer_id"`
}

// PicsResult is the envelope shared by the attachment endpoints.
type PicsResult struct {
	Pics []string `json:"pics"`
}

// TotalAmount sums the preview amounts over items.
func TotalAmount(items []Item) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Amount()
	}
	return sum
}
