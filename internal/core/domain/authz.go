package domain

// AdminCapability is the proof of authorization for privileged operations
// (cancel, reopen, cash-book reversal, auto-debit runs). It is issued only by
// the authorization service after verifying the administrative secret, and is
// passed explicitly into the operations that need it so the business logic
// never inspects credentials itself.
type AdminCapability struct {
	grantedTo string
}

// NewAdminCapability is intended to be called by the authorization service
// only.
func NewAdminCapability(actorID string) AdminCapability {
	return AdminCapability{grantedTo: actorID}
}

// Valid reports whether the capability was actually issued (the zero value is
// not a grant).
func (c AdminCapability) Valid() bool {
	return c.grantedTo != ""
}

// GrantedTo returns the acting user the capability was issued to.
func (c AdminCapability) GrantedTo() string {
	return c.grantedTo
}
