package reconcile

import (
	"fmt"
	"strings"
)

// RenderSummary formats one list row as a card.
func RenderSummary(s Summary, currency string) string {
	var b strings.Builder

	lock := "Locked"
	if s.Editable {
		lock = "Editable"
	}

	fmt.Fprintf(&b, "%s  [%s] [%s]\n", OrDash(s.InvoiceNo), lock, currency)
	fmt.Fprintf(&b, "  Invoice Date  %s\n", OrDash(s.InvoiceDate))
	fmt.Fprintf(&b, "  Items         %d · Total %s %s\n", s.ItemCount, Money(s.TotalAmount), currency)
	fmt.Fprintf(&b, "  Updated       %s\n", FriendlyTime(s.UpdatedAt))
	fmt.Fprintf(&b, "  ID            %s\n", s.ID)
	return b.String()
}

// RenderDocument formats the read-only detail view, section by section.
func RenderDocument(doc *Document, admin bool) string {
	var b strings.Builder

	currency := doc.Currency
	if currency == "" {
		currency = "CNY"
	}

	role := "Customer"
	if admin {
		role = "Admin"
	}
	lock := "Locked"
	if doc.Editable {
		lock = "Editable"
	}

	fmt.Fprintf(&b, "%s  (ID: %s)\n", OrDash(doc.InvoiceNo), doc.ID)

	b.WriteString("\nMETA\n")
	tags := []string{lock, currency, role}
	if doc.IsDeleted {
		tags = append(tags, "Deleted")
	}
	fmt.Fprintf(&b, "  Tags          %s\n", strings.Join(tags, " · "))
	fmt.Fprintf(&b, "  Invoice Date  %s\n", OrDash(doc.InvoiceDate))
	fmt.Fprintf(&b, "  Trade Terms   %s\n", OrDash(doc.TradeTerms))
	fmt.Fprintf(&b, "  Items         %d · Total %s %s\n", doc.ItemCount, Money(doc.TotalAmount), currency)
	fmt.Fprintf(&b, "  Updated       %s\n", FriendlyTime(doc.UpdatedAt))

	b.WriteString("\nSELLER / EXPORTER\n")
	fmt.Fprintf(&b, "  Company       %s\n", OrDash(doc.Exporter.Name))
	fmt.Fprintf(&b, "  Address       %s\n", OrDash(doc.Exporter.Address))

	b.WriteString("\nTO (CONSIGNEE)\n")
	fmt.Fprintf(&b, "  Company       %s\n", OrDash(doc.ToCompany))
	fmt.Fprintf(&b, "  Address       %s\n", OrDash(doc.ToAddress))
	fmt.Fprintf(&b, "  Tel           %s\n", OrDash(doc.ToTel))
	fmt.Fprintf(&b, "  VAT No.       %s\n", OrDash(doc.ToVatNo))
	fmt.Fprintf(&b, "  EORI No.      %s\n", OrDash(doc.EoriNo))

	b.WriteString("\nLOGISTICS\n")
	fmt.Fprintf(&b, "  From          %s\n", OrDash(doc.LogisticsFrom))
	fmt.Fprintf(&b, "  To            %s\n", OrDash(doc.LogisticsTo))
	fmt.Fprintf(&b, "  Transport     %s\n", OrDash(doc.LogisticsTransport))

	b.WriteString("\nITEMS\n")
	if len(doc.Items) == 0 {
		b.WriteString("  (no items)\n")
	} else {
		for i, it := range doc.Items {
			b.WriteString(renderItem(i, it, currency))
		}
	}

	if len(doc.Pics) > 0 {
		b.WriteString("\nPICS\n")
		for _, p := range doc.Pics {
			fmt.Fprintf(&b, "  %s\n", p)
		}
	}

	return b.String()
}

func renderItem(idx int, it Item, currency string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "  %d. %s [%s]\n", idx+1, OrDash(it.ProductName), currency)
	fmt.Fprintf(&b, "     HS: %s · Material: %s\n", OrDash(it.HSCode), OrDash(it.Material))
	fmt.Fprintf(&b, "     Marks: %s · Tracking: %s\n", OrDash(it.MarksNos), OrDash(it.TrackingNo))
	fmt.Fprintf(&b, "     Units: %g · Packages: %g\n", it.UnitsPcs, it.Packages)
	fmt.Fprintf(&b, "     Unit Price: %s · Total: %s\n", Money(it.UnitPrice), Money(it.Amount()))
	fmt.Fprintf(&b, "     Net/Gross: %s / %s · CBM: %s\n",
		optDisplay(it.NetWeight), optDisplay(it.GrossWeight), optDisplay(it.CBM))
	if it.Barcode != "" {
		fmt.Fprintf(&b, "     Barcode: %s\n", it.Barcode)
	}
	return b.String()
}

func optDisplay(n *float64) string {
	if n == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *n)
}

// RenderForm formats an editing snapshot, including the locally computed
// preview total. The preview is display-only; totals sent nowhere.
func RenderForm(f Form) string {
	p := f.Payload()
	doc := Document{
		Exporter:           p.Exporter,
		ToCompany:          p.ToCompany,
		ToAddress:          p.ToAddress,
		ToTel:              p.ToTel,
		ToVatNo:            p.ToVatNo,
		EoriNo:             p.EoriNo,
		InvoiceNo:          p.InvoiceNo,
		InvoiceDate:        p.InvoiceDate,
		TradeTerms:         p.TradeTerms,
		Currency:           p.Currency,
		LogisticsFrom:      p.LogisticsFrom,
		LogisticsTo:        p.LogisticsTo,
		LogisticsTransport: p.LogisticsTransport,
		Items:              p.Items,
		Editable:           true,
		TotalAmount:        TotalAmount(p.Items),
		ItemCount:          len(p.Items),
	}
	return RenderDocument(&doc, false)
}

// PicURL resolves a relative attachment path against the static file base.
func PicURL(staticBase, relPath string) string {
	return strings.TrimRight(staticBase, "/") + "/" + strings.TrimLeft(relPath, "/")
}
