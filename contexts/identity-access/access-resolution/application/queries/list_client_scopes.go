package queries

import (
	"context"
	"log/slog"

	application "gatehouse/contexts/identity-access/access-resolution/application"
	"gatehouse/contexts/identity-access/access-resolution/ports"
)

// ListClientScopesUseCase reads the per-user division/family/brand filter
// rows. The resolver never consults these; they are surfaced for protected
// handlers that filter result sets by classification.
type ListClientScopesUseCase struct {
	Gateway ports.Gateway
	Logger  *slog.Logger
}

func (u ListClientScopesUseCase) Execute(ctx context.Context, userID int64, tenantID string) ([]ports.ClientScope, error) {
	scopes, err := u.Gateway.ClientScopes(ctx, userID, tenantID)
	if err != nil {
		application.ResolveLogger(u.Logger).Error("client scope lookup failed",
			"event", "access_client_scope_lookup_failed",
			"module", "identity-access/access-resolution",
			"layer", "application",
			"user_id", userID,
			"tenant_id", tenantID,
			"error", err.Error(),
		)
		return nil, err
	}
	return scopes, nil
}
