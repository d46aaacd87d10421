// Package bank provides the simulated bank collaborators: an authenticator
// with injectable latency and failure probability, and a record fetcher that
// stands in for a statement download.
package bank

// Institution identifies a supported bank source.
type Institution struct {
	ID   string
	Name string
}

// SupportedInstitutions returns the fixed source directory users can connect.
func SupportedInstitutions() []Institution {
	return []Institution{
		{ID: "chase", Name: "Chase Bank"},
		{ID: "bofa", Name: "Bank of America"},
		{ID: "wellsfargo", Name: "Wells Fargo"},
		{ID: "citi", Name: "Citibank"},
		{ID: "pnc", Name: "PNC Bank"},
		{ID: "usbank", Name: "U.S. Bank"},
	}
}

// LookupInstitution finds an institution by its source ID.
func LookupInstitution(sourceID string) (Institution, bool) {
	for _, inst := range SupportedInstitutions() {
		if inst.ID == sourceID {
			return inst, true
		}
	}
	return Institution{}, false
}
