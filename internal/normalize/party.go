package normalize

import (
	"strings"

	"github.com/shirakawa-dev/denpyo/constants"
	"github.com/shirakawa-dev/denpyo/internal/entity"
	"github.com/shirakawa-dev/denpyo/internal/ocr"
)

// reconcileParties resolves vendor vs. customer identity from the raw fields
// map. The engine swaps the two often; whichever field carries the honorific
// marker names the customer, and precedence runs vendor field, customer
// field, address-recipient field, then positional page fallback.
func (o *Orchestrator) reconcileParties(res ocr.Result) (vendor, customer entity.Party) {
	f := res.Fields
	rawVendor := f.First("vendorName", "supplierName")
	rawCustomer := f.First("customerName", "clientName")
	recipient := f.First("addressRecipient", "addressee")

	switch {
	case strings.Contains(rawVendor, o.vocab.Honorific):
		// Field mapping is inverted: the "vendor" field is the addressee.
		customer.Name = rawVendor
		vendor.Name = firstNonEmpty(rawCustomer, recipient)
		o.logger.Debug("reconcile.inverted", "customer", customer.Name, "vendor", vendor.Name)
	case strings.Contains(rawCustomer, o.vocab.Honorific):
		customer.Name = rawCustomer
		vendor.Name = firstNonEmpty(rawVendor, recipient)
	case recipient != "" && strings.Contains(recipient, o.vocab.Honorific):
		customer.Name = recipient
		vendor.Name = firstNonEmpty(rawVendor, rawCustomer)
	default:
		// No field carries the marker; trust the engine's assignment.
		vendor.Name = rawVendor
		customer.Name = rawCustomer
	}

	if vendor.Name == "" {
		vendor.Name = o.vendorFromPages(res)
	}
	if vendor.Name == "" {
		vendor.Name = constants.UnknownPartyName
	}
	if customer.Name == "" {
		customer.Name = constants.UnknownPartyName
	}

	vendor.Address = f.First("vendorAddress", "supplierAddress")
	vendor.Phone = f.First("vendorPhone", "supplierPhone")
	customer.Address = f.Get("customerAddress")
	if vendor.Address == "" || vendor.Phone == "" {
		o.fillVendorContact(res, &vendor)
	}

	o.logger.Info("reconcile.ok", "vendor", vendor.Name, "customer", customer.Name)
	return vendor, customer
}

// vendorFromPages scans detected company names when no field resolved the
// vendor. Japanese quotes/invoices place the issuer's company block on the
// upper right, so a right-side company name (left edge past half the page
// width) wins; otherwise the first company name anywhere is used.
func (o *Orchestrator) vendorFromPages(res ocr.Result) string {
	first := ""
	for _, page := range res.Pages {
		for _, line := range page.Lines {
			content := strings.TrimSpace(line.Content)
			if content == "" || !o.vocab.IsCompanyName(content) {
				continue
			}
			if first == "" {
				first = content
			}
			if page.Width > 0 && line.X() > page.Width/2 {
				o.logger.Debug("reconcile.vendor_from_page", "name", content, "x", line.X(), "page_width", page.Width)
				return content
			}
		}
	}
	return first
}

// fillVendorContact backfills vendor address/phone from page lines when the
// fields section did not carry them.
func (o *Orchestrator) fillVendorContact(res ocr.Result, vendor *entity.Party) {
	for _, page := range res.Pages {
		for _, line := range page.Lines {
			content := strings.TrimSpace(line.Content)
			if content == "" {
				continue
			}
			if vendor.Address == "" && o.vocab.IsAddressText(content) {
				vendor.Address = content
			}
			if vendor.Phone == "" && o.vocab.IsPhoneNumber(content) {
				vendor.Phone = o.vocab.FindPhoneNumber(content)
			}
			if vendor.Address != "" && vendor.Phone != "" {
				return
			}
		}
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
