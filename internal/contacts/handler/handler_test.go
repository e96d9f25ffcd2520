package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"referral_portal_backend/internal/contacts/domain"
	"referral_portal_backend/internal/contacts/service"
	"referral_portal_backend/internal/contacts/transport"
	"referral_portal_backend/platform/logger"
	"referral_portal_backend/platform/phone"
	"referral_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	reconciler := domain.NewReconciler(phone.DefaultSanitizer, phone.DefaultClassifier)
	h := New(service.New(reconciler, validator.New(), logger.Discard(), 2))

	engine := gin.New()
	engine.POST("/contacts/reconcile", h.Reconcile)
	engine.POST("/contacts/reconcile/batch", h.ReconcileBatch)
	return engine
}

func post(engine *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestReconcileEndpointReturnsNullsForMissingNumbers(t *testing.T) {
	rec := post(newTestEngine(), "/contacts/reconcile", `{"mobile":"notanumber","telephone":"07911 123456"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var raw map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if raw["mobile"] != "07911123456" {
		t.Fatalf("expected mobile 07911123456, got %v", raw["mobile"])
	}
	if value, ok := raw["telephone"]; !ok || value != nil {
		t.Fatalf("expected telephone to be present as null, got %v (present=%v)", value, ok)
	}
	if raw["isMobileValid"] != true || raw["isTelephoneValid"] != false {
		t.Fatalf("unexpected flags: %v", raw)
	}
	if raw["outcome"] != string(domain.OutcomeMovedToMobile) {
		t.Fatalf("expected outcome %q, got %v", domain.OutcomeMovedToMobile, raw["outcome"])
	}
}

func TestReconcileEndpointRejectsMalformedJSON(t *testing.T) {
	rec := post(newTestEngine(), "/contacts/reconcile", `{"mobile":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestReconcileEndpointRejectsControlCharacters(t *testing.T) {
	rec := post(newTestEngine(), "/contacts/reconcile", `{"mobile":"07911\u0000123456"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestReconcileBatchEndpoint(t *testing.T) {
	body := `{"items":[
		{"mobile":"01632960001","telephone":"01632960001"},
		{"mobile":"abc","telephone":"xyz"}
	]}`
	rec := post(newTestEngine(), "/contacts/reconcile/batch", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp transport.BatchReconcileResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(resp.Items))
	}
	first := resp.Items[0]
	if first.Mobile != nil || first.Telephone == nil || *first.Telephone != "01632960001" || !first.IsTelephoneValid {
		t.Fatalf("expected landline duplicate to be dropped from mobile, got %+v", first)
	}
	second := resp.Items[1]
	if second.Mobile == nil || *second.Mobile != "abc" || second.Telephone == nil || *second.Telephone != "xyz" {
		t.Fatalf("expected unclassifiable values to be kept, got %+v", second)
	}
	if resp.Summary[string(domain.OutcomeDuplicateDropped)] != 1 || resp.Summary[string(domain.OutcomeUnchanged)] != 1 {
		t.Fatalf("unexpected summary: %v", resp.Summary)
	}
}

func TestReconcileBatchEndpointRejectsEmptyBatch(t *testing.T) {
	rec := post(newTestEngine(), "/contacts/reconcile/batch", `{"items":[]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
