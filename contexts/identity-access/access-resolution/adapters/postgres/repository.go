package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gatehouse/contexts/identity-access/access-resolution/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Repository is the read-only postgres Data Access Gateway. Every method is
// one round trip; the session is scoped to the request context and no
// query writes.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) AcceptedMembership(ctx context.Context, subjectID string, tenantID string) (ports.MembershipRecord, bool, error) {
	var row struct {
		UserID      int64
		SponsorID   string
		AccessLevel string
		FirstName   string
		LastName    string
	}
	err := r.db.WithContext(ctx).
		Table("tenant_sponsor_users").
		Select("users.id AS user_id, tenant_sponsor_users.sponsor_id, tenant_sponsor_users.access_level, users.first_name, users.last_name").
		Joins("JOIN users ON users.id = tenant_sponsor_users.user_id").
		Where("users.subject_id = ? AND tenant_sponsor_users.status = ? AND tenant_sponsor_users.tenant_id = ?",
			strings.TrimSpace(subjectID), "accepted", strings.TrimSpace(tenantID)).
		Take(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.MembershipRecord{}, false, nil
		}
		return ports.MembershipRecord{}, false, r.classify("membership", err)
	}
	return ports.MembershipRecord{
		UserID:      row.UserID,
		SponsorID:   row.SponsorID,
		AccessLevel: row.AccessLevel,
		FirstName:   row.FirstName,
		LastName:    row.LastName,
	}, true, nil
}

func (r *Repository) SponsorMembershipExists(ctx context.Context, subjectID string, tenantID string, sponsorID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("tenant_sponsor_users").
		Joins("JOIN users ON users.id = tenant_sponsor_users.user_id").
		Where("users.subject_id = ? AND tenant_sponsor_users.status = ? AND tenant_sponsor_users.tenant_id = ? AND tenant_sponsor_users.sponsor_id = ?",
			strings.TrimSpace(subjectID), "accepted", strings.TrimSpace(tenantID), strings.TrimSpace(sponsorID)).
		Count(&count).
		Error
	if err != nil {
		return false, r.classify("sponsor_membership", err)
	}
	return count > 0, nil
}

func (r *Repository) LicensedDomainGrants(ctx context.Context, tenantID string, sponsorID string, domain string, method string) ([]ports.DomainGrant, error) {
	var rows []struct {
		Domain         string
		LicenseModelID string
	}
	err := r.db.WithContext(ctx).
		Table("application_feature_domains").
		Select("application_feature_domains.domain, licenses.license_model_id").
		Joins("JOIN licenses ON licenses.license_model_id = application_feature_domains.license_model_id"+
			" AND licenses.application_id = application_feature_domains.application_id"+
			" AND licenses.tenant_id = application_feature_domains.tenant_id").
		Where("application_feature_domains.method = ? AND application_feature_domains.domain = ? AND application_feature_domains.tenant_id = ?",
			method, domain, strings.TrimSpace(tenantID)).
		Where("licenses.sponsor_id = ? AND licenses.status = ? AND licenses.deleted_on IS NULL",
			strings.TrimSpace(sponsorID), "active").
		Scan(&rows).
		Error
	if err != nil {
		return nil, r.classify("domain_grants", err)
	}

	grants := make([]ports.DomainGrant, 0, len(rows))
	for _, row := range rows {
		grants = append(grants, ports.DomainGrant{
			Domain:         row.Domain,
			LicenseModelID: row.LicenseModelID,
		})
	}
	return grants, nil
}

func (r *Repository) EntitledCampaignIDs(ctx context.Context, userID int64, sponsorID string, tenantID string) ([]string, error) {
	var campaignIDs []string
	err := r.db.WithContext(ctx).
		Model(&customerEntitlementModel{}).
		Distinct("campaign_id").
		Where("user_id = ? AND sponsor_id = ? AND tenant_id = ? AND status = ? AND deleted_on IS NULL",
			userID, strings.TrimSpace(sponsorID), strings.TrimSpace(tenantID), "active").
		Pluck("campaign_id", &campaignIDs).
		Error
	if err != nil {
		return nil, r.classify("entitlements", err)
	}
	return campaignIDs, nil
}

func (r *Repository) ClientScopes(ctx context.Context, userID int64, tenantID string) ([]ports.ClientScope, error) {
	var rows []clientEntitlementModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND tenant_id = ? AND deleted_on IS NULL", userID, strings.TrimSpace(tenantID)).
		Find(&rows).
		Error
	if err != nil {
		return nil, r.classify("client_scopes", err)
	}

	scopes := make([]ports.ClientScope, 0, len(rows))
	for _, row := range rows {
		scopes = append(scopes, ports.ClientScope{
			Division: row.Division,
			Family:   row.Family,
			Brand:    row.Brand,
		})
	}
	return scopes, nil
}

// classify logs the failing lookup with a connectivity flag so operators
// can separate unreachable-store incidents from query defects. The error
// itself passes through untouched; the resolver reports it as an internal
// failure, never a denial.
func (r *Repository) classify(lookup string, err error) error {
	r.logger.Error("gateway lookup failed",
		"event", "access_gateway_lookup_failed",
		"module", "identity-access/access-resolution",
		"layer", "adapter",
		"lookup", lookup,
		"connectivity", isConnectivityError(err),
		"error", err.Error(),
	)
	return err
}

// SQLSTATE class 08 covers connection exceptions.
func isConnectivityError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "08")
	}
	return false
}

type customerEntitlementModel struct {
	ID             int64      `gorm:"column:id;primaryKey"`
	UserID         int64      `gorm:"column:user_id"`
	SponsorID      string     `gorm:"column:sponsor_id"`
	TenantID       string     `gorm:"column:tenant_id"`
	ApplicationID  int64      `gorm:"column:application_id"`
	LicenseModelID string     `gorm:"column:license_model_id"`
	CampaignID     string     `gorm:"column:campaign_id"`
	Status         string     `gorm:"column:status"`
	DeletedOn      *time.Time `gorm:"column:deleted_on"`
}

func (customerEntitlementModel) TableName() string {
	return "customer_entitlements"
}

type clientEntitlementModel struct {
	ID        int64      `gorm:"column:id;primaryKey"`
	UserID    int64      `gorm:"column:user_id"`
	TenantID  string     `gorm:"column:tenant_id"`
	Division  string     `gorm:"column:division"`
	Family    string     `gorm:"column:family"`
	Brand     string     `gorm:"column:brand"`
	DeletedOn *time.Time `gorm:"column:deleted_on"`
}

func (clientEntitlementModel) TableName() string {
	return "client_entitlements"
}
