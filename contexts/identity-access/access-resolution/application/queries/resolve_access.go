package queries

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "gatehouse/contexts/identity-access/access-resolution/application"
	"gatehouse/contexts/identity-access/access-resolution/domain/entities"
	domainerrors "gatehouse/contexts/identity-access/access-resolution/domain/errors"
	"gatehouse/contexts/identity-access/access-resolution/domain/services"
	"gatehouse/contexts/identity-access/access-resolution/ports"
)

// SponsorOverridePolicy names how a caller-supplied sponsor header is
// treated. The trusted policy reproduces the historical behavior: the
// override replaces the membership sponsor with no re-check, extending the
// authenticated caller's membership context. The revalidated policy
// requires an accepted membership for the override sponsor.
type SponsorOverridePolicy string

const (
	SponsorOverrideTrusted     SponsorOverridePolicy = "trusted"
	SponsorOverrideRevalidated SponsorOverridePolicy = "revalidated"
)

// ResolveAccessQuery is the request model for one authorization decision.
type ResolveAccessQuery struct {
	Identity        entities.IdentityClaims
	Path            string
	Method          string
	SponsorOverride string
}

// ResolveAccessUseCase chains the tenant/sponsor/user, ACL+license, and
// entitlement lookups into a single decision. It is stateless: every
// resolution is independent and nothing is cached across requests.
type ResolveAccessUseCase struct {
	Gateway        ports.Gateway
	Clock          ports.Clock
	OverridePolicy SponsorOverridePolicy
	VersionPrefix  string
	Logger         *slog.Logger
}

// Execute runs the resolution chain. Every failure is a sentinel denial
// from domain/errors; any other error is a lookup failure the transport
// must report as an internal error, never as a denial.
func (u ResolveAccessUseCase) Execute(ctx context.Context, query ResolveAccessQuery) (entities.AuthorizationContext, error) {
	logger := application.ResolveLogger(u.Logger)
	subjectID := query.Identity.SubjectID
	tenantID := query.Identity.TenantID

	membership, found, err := u.Gateway.AcceptedMembership(ctx, subjectID, tenantID)
	if err != nil {
		logger.Error("membership lookup failed",
			"event", "access_membership_lookup_failed",
			"module", "identity-access/access-resolution",
			"layer", "application",
			"subject_id", subjectID,
			"tenant_id", tenantID,
			"error", err.Error(),
		)
		return entities.AuthorizationContext{}, err
	}
	if !found {
		logger.Warn("access denied",
			"event", "access_denied",
			"module", "identity-access/access-resolution",
			"layer", "application",
			"code", "membership_unknown",
			"subject_id", subjectID,
			"tenant_id", tenantID,
		)
		return entities.AuthorizationContext{}, domainerrors.ErrUnknownMembership
	}

	sponsorID, err := u.effectiveSponsor(ctx, logger, subjectID, tenantID, membership.SponsorID, query.SponsorOverride)
	if err != nil {
		return entities.AuthorizationContext{}, err
	}

	domain := services.NormalizeDomainPath(services.StripVersionPrefix(query.Path, u.VersionPrefix))

	grants, err := u.Gateway.LicensedDomainGrants(ctx, tenantID, sponsorID, domain, query.Method)
	if err != nil {
		logger.Error("domain access lookup failed",
			"event", "access_domain_lookup_failed",
			"module", "identity-access/access-resolution",
			"layer", "application",
			"tenant_id", tenantID,
			"sponsor_id", sponsorID,
			"domain", domain,
			"method", query.Method,
			"error", err.Error(),
		)
		return entities.AuthorizationContext{}, err
	}
	if len(grants) == 0 {
		logger.Warn("access denied",
			"event", "access_denied",
			"module", "identity-access/access-resolution",
			"layer", "application",
			"code", "domain_access_denied",
			"tenant_id", tenantID,
			"sponsor_id", sponsorID,
			"domain", domain,
			"method", query.Method,
		)
		return entities.AuthorizationContext{}, domainerrors.ErrDomainAccessDenied
	}

	// Union of every matching rule, not just the first.
	licenseModelIDs := make([]string, 0, len(grants))
	for _, grant := range grants {
		licenseModelIDs = append(licenseModelIDs, grant.LicenseModelID)
	}

	campaignIDs, err := u.Gateway.EntitledCampaignIDs(ctx, membership.UserID, sponsorID, tenantID)
	if err != nil {
		logger.Error("entitlement lookup failed",
			"event", "access_entitlement_lookup_failed",
			"module", "identity-access/access-resolution",
			"layer", "application",
			"user_id", membership.UserID,
			"tenant_id", tenantID,
			"sponsor_id", sponsorID,
			"error", err.Error(),
		)
		return entities.AuthorizationContext{}, err
	}
	if len(campaignIDs) == 0 {
		logger.Warn("access denied",
			"event", "access_denied",
			"module", "identity-access/access-resolution",
			"layer", "application",
			"code", "no_campaigns_accessible",
			"user_id", membership.UserID,
			"tenant_id", tenantID,
			"sponsor_id", sponsorID,
		)
		return entities.AuthorizationContext{}, domainerrors.ErrNoCampaignsAccessible
	}

	logger.Debug("access granted",
		"event", "access_granted",
		"module", "identity-access/access-resolution",
		"layer", "application",
		"user_id", membership.UserID,
		"tenant_id", tenantID,
		"sponsor_id", sponsorID,
		"domain", domain,
		"method", query.Method,
		"campaign_count", len(campaignIDs),
		"license_model_ids", licenseModelIDs,
	)

	return entities.AuthorizationContext{
		UserID:          membership.UserID,
		SubjectID:       subjectID,
		TenantID:        tenantID,
		SponsorID:       sponsorID,
		AccessLevel:     membership.AccessLevel,
		FirstName:       membership.FirstName,
		LastName:        membership.LastName,
		CampaignIDs:     campaignIDs,
		LicenseModelIDs: licenseModelIDs,
		ResolvedAt:      u.now(),
	}, nil
}

// effectiveSponsor applies the caller-supplied override according to the
// configured policy. Every override is logged with both sponsor ids so the
// trust extension stays auditable.
func (u ResolveAccessUseCase) effectiveSponsor(
	ctx context.Context,
	logger *slog.Logger,
	subjectID string,
	tenantID string,
	membershipSponsorID string,
	override string,
) (string, error) {
	override = strings.TrimSpace(override)
	if override == "" || override == membershipSponsorID {
		return membershipSponsorID, nil
	}

	logger.Info("sponsor override requested",
		"event", "access_sponsor_override",
		"module", "identity-access/access-resolution",
		"layer", "application",
		"policy", string(u.policy()),
		"subject_id", subjectID,
		"tenant_id", tenantID,
		"membership_sponsor_id", membershipSponsorID,
		"override_sponsor_id", override,
	)

	if u.policy() == SponsorOverrideTrusted {
		return override, nil
	}

	exists, err := u.Gateway.SponsorMembershipExists(ctx, subjectID, tenantID, override)
	if err != nil {
		logger.Error("sponsor override lookup failed",
			"event", "access_sponsor_override_lookup_failed",
			"module", "identity-access/access-resolution",
			"layer", "application",
			"subject_id", subjectID,
			"tenant_id", tenantID,
			"override_sponsor_id", override,
			"error", err.Error(),
		)
		return "", err
	}
	if !exists {
		logger.Warn("access denied",
			"event", "access_denied",
			"module", "identity-access/access-resolution",
			"layer", "application",
			"code", "sponsor_override_rejected",
			"subject_id", subjectID,
			"tenant_id", tenantID,
			"override_sponsor_id", override,
		)
		return "", domainerrors.ErrSponsorOverrideRejected
	}
	return override, nil
}

func (u ResolveAccessUseCase) policy() SponsorOverridePolicy {
	if u.OverridePolicy == "" {
		return SponsorOverrideTrusted
	}
	return u.OverridePolicy
}

func (u ResolveAccessUseCase) now() time.Time {
	if u.Clock != nil {
		return u.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
