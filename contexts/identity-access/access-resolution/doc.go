// Package accessresolution implements the authorization resolution engine
// inside gatehouse: per request it extracts identity claims from a bearer
// token, canonicalizes the request path into an ACL domain pattern, and
// resolves tenant -> sponsor -> user -> license -> entitlement lookups into
// an AuthorizationContext or a structured denial.
//
// Layering:
// - domain: entities, denial errors, the path normalizer
// - application: claim extraction strategies and the resolve use case
// - ports: read-only Data Access Gateway boundary
// - adapters: postgres, memory, and HTTP middleware implementations
// - transport: module-private DTOs for the denial envelope
//
// Boundary notes:
// - The resolver is stateless; nothing is cached across requests.
// - Tenant isolation is the primary invariant: every lookup is scoped by
//   the request's tenant id and no query may cross it.
// - Token trust (verify vs trust-upstream) and the sponsor-override policy
//   are explicit configuration, never silent behavior.
package accessresolution
