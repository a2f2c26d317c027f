package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"gatehouse/contexts/campaign-editorial/attendee-service/domain/entities"
	"gatehouse/contexts/campaign-editorial/attendee-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Repository reads campaign attendee rows. All methods are single queries
// scoped to the request context.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

var _ ports.Repository = (*Repository)(nil)

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) ListByCampaign(ctx context.Context, campaignID string, offset int, limit int) ([]entities.Attendee, error) {
	var rows []campaignAttendeeModel
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, r.classify("list_attendees", err)
	}

	attendees := make([]entities.Attendee, 0, len(rows))
	for _, row := range rows {
		attendees = append(attendees, row.toEntity())
	}
	return attendees, nil
}

func (r *Repository) CountByCampaign(ctx context.Context, campaignID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&campaignAttendeeModel{}).
		Where("campaign_id = ?", campaignID).
		Count(&count).
		Error
	if err != nil {
		return 0, r.classify("count_attendees", err)
	}
	return count, nil
}

func (r *Repository) FindByEmail(ctx context.Context, campaignID string, email string) (entities.Attendee, bool, error) {
	var row campaignAttendeeModel
	err := r.db.WithContext(ctx).
		Where("campaign_id = ? AND email = ?", campaignID, email).
		Take(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Attendee{}, false, nil
		}
		return entities.Attendee{}, false, r.classify("find_attendee", err)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) DistinctCompanyCount(ctx context.Context, campaignID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&campaignAttendeeModel{}).
		Distinct("company_id").
		Where("campaign_id = ? AND company_id IS NOT NULL", campaignID).
		Count(&count).
		Error
	if err != nil {
		return 0, r.classify("distinct_companies", err)
	}
	return count, nil
}

func (r *Repository) classify(query string, err error) error {
	r.logger.Error("attendee query failed",
		"event", "attendee_query_failed",
		"module", "campaign-editorial/attendee-service",
		"layer", "adapter",
		"query", query,
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

type campaignAttendeeModel struct {
	ID             int64    `gorm:"column:id;primaryKey"`
	CampaignID     string   `gorm:"column:campaign_id"`
	Email          string   `gorm:"column:email"`
	FirstName      string   `gorm:"column:first_name"`
	LastName       string   `gorm:"column:last_name"`
	CompanyName    string   `gorm:"column:company_name"`
	CompanyID      *int64   `gorm:"column:company_id"`
	JobTitle       string   `gorm:"column:job_title"`
	Industry       string   `gorm:"column:industry"`
	CompanyRevenue *float64 `gorm:"column:company_revenue"`
	CompanySize    *int     `gorm:"column:company_size"`
	Country        string   `gorm:"column:country"`
	City           string   `gorm:"column:city"`
	State          string   `gorm:"column:state"`
}

func (campaignAttendeeModel) TableName() string {
	return "campaign_attendees"
}

func (m campaignAttendeeModel) toEntity() entities.Attendee {
	return entities.Attendee{
		ID:             m.ID,
		CampaignID:     m.CampaignID,
		Email:          m.Email,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		CompanyName:    m.CompanyName,
		CompanyID:      m.CompanyID,
		JobTitle:       m.JobTitle,
		Industry:       m.Industry,
		CompanyRevenue: m.CompanyRevenue,
		CompanySize:    m.CompanySize,
		Country:        m.Country,
		City:           m.City,
		State:          m.State,
	}
}
