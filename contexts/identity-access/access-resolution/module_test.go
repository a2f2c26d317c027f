package accessresolution

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	httpadapter "gatehouse/contexts/identity-access/access-resolution/adapters/http"

	"github.com/golang-jwt/jwt/v5"
)

func bearerFor(t *testing.T, subjectID string, tenantID string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username":  subjectID,
		"tenant_id": tenantID,
	}).SignedString([]byte("test"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + token
}

func TestDefaultSkipList(t *testing.T) {
	skip := DefaultSkipList()
	for _, path := range []string{"/docs", "/redoc", "/openapi.json", "/api/v1/health", "/health", "/static/app.css", "/swagger/index.html"} {
		if !skip.Skips(path) {
			t.Fatalf("expected %q to bypass authorization", path)
		}
	}
	for _, path := range []string{"/api/v1/campaigns", "/docs/extra", "/healthz"} {
		if skip.Skips(path) {
			t.Fatalf("expected %q to require authorization", path)
		}
	}
}

func TestInMemoryModuleGrantsSeededAdmin(t *testing.T) {
	module := NewInMemoryModule(nil)

	handler := module.Middleware.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth, ok := httpadapter.AuthorizationFrom(r.Context())
		if !ok {
			t.Fatal("expected authorization context")
		}
		if !auth.CanSeeCampaign("campaign_001") {
			t.Fatal("seeded admin must see campaign_001")
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/campaigns/campaign_001/attendees", nil)
	req.Header.Set("Authorization", bearerFor(t, "user_subject_001", "tenant_001"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body %s", rec.Code, rec.Body.String())
	}
}

func TestInMemoryModuleHonorsSponsorOverrideHeader(t *testing.T) {
	module := NewInMemoryModule(nil)

	// The default trusted policy swaps the sponsor without re-checking
	// membership; the override sponsor holds no license, so the request is
	// denied at the ACL step.
	handler := module.Middleware.Wrap(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("protected handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/campaigns/campaign_001/attendees", nil)
	req.Header.Set("Authorization", bearerFor(t, "user_subject_001", "tenant_001"))
	req.Header.Set("sponsor_id", "sponsor_unlicensed")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestInMemoryModuleExposesClientScopes(t *testing.T) {
	module := NewInMemoryModule(nil)

	scopes, err := module.ClientScopes.Execute(context.Background(), 1, "tenant_001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scopes) != 1 || scopes[0].Division != "division_001" {
		t.Fatalf("unexpected scopes: %+v", scopes)
	}
}
