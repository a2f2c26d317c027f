package entities

// IdentityClaims are the raw identity facts extracted from an inbound
// request before any lookup happens. SubjectID is the stable external
// subject identifier; TenantID is the isolation boundary the request is
// scoped to.
type IdentityClaims struct {
	SubjectID string
	TenantID  string
}
