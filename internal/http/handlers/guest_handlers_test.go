package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/planejacasar/wedding-backend/internal/domain"
)

// stubGuestService records calls and returns canned values.
type stubGuestService struct {
	createReq  *domain.CreateGuestRequest
	listEvent  string
	listFilter domain.GuestFilters
	err        error
}

func (s *stubGuestService) Create(_ context.Context, _ string, req *domain.CreateGuestRequest) (*domain.Guest, error) {
	s.createReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Guest{ID: "guest-1", EventID: req.EventID, Name: req.Name}, nil
}

func (s *stubGuestService) List(_ context.Context, _ string, eventID string, filters domain.GuestFilters) ([]domain.Guest, error) {
	s.listEvent = eventID
	s.listFilter = filters
	if s.err != nil {
		return nil, s.err
	}
	return []domain.Guest{}, nil
}

func (s *stubGuestService) Update(_ context.Context, _ string, guestID string, _ domain.GuestPatch) (*domain.Guest, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Guest{ID: guestID}, nil
}

func (s *stubGuestService) Delete(_ context.Context, _ string, _ string) error {
	return s.err
}

func (s *stubGuestService) Stats(_ context.Context, _ string, _ string) (*domain.GuestStats, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.GuestStats{Total: 2, Confirmed: 1, Pending: 1}, nil
}

func decodeEnvelope(t *testing.T, body []byte) (bool, string) {
	t.Helper()
	var envelope struct {
		Success bool `json:"success"`
		Error   *struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	code := ""
	if envelope.Error != nil {
		code = envelope.Error.Code
	}
	return envelope.Success, code
}

func TestGuestCreate(t *testing.T) {
	stub := &stubGuestService{}
	router := NewGuestHandler(stub).Routes()

	body := `{"eventId":"ev1","name":"Maria","side":"bride"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if success, _ := decodeEnvelope(t, rec.Body.Bytes()); !success {
		t.Error("success = false on create")
	}
	if stub.createReq == nil || stub.createReq.Side != domain.SideBride {
		t.Errorf("service saw %+v, want side=bride", stub.createReq)
	}
}

func TestGuestCreateBadJSON(t *testing.T) {
	router := NewGuestHandler(&stubGuestService{}).Routes()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{nope"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if _, code := decodeEnvelope(t, rec.Body.Bytes()); code != "VALIDATION_ERROR" {
		t.Errorf("code = %q, want VALIDATION_ERROR", code)
	}
}

func TestGuestListRequiresEventID(t *testing.T) {
	router := NewGuestHandler(&stubGuestService{}).Routes()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 without eventId", rec.Code)
	}
}

func TestGuestListFilters(t *testing.T) {
	stub := &stubGuestService{}
	router := NewGuestHandler(stub).Routes()

	req := httptest.NewRequest(http.MethodGet, "/?eventId=ev1&status=confirmed&side=not-a-side", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if stub.listEvent != "ev1" {
		t.Errorf("eventID = %q, want ev1", stub.listEvent)
	}
	if stub.listFilter.Status == nil || *stub.listFilter.Status != domain.GuestConfirmed {
		t.Errorf("status filter = %v, want confirmed", stub.listFilter.Status)
	}
	// Unparseable values are dropped rather than rejected.
	if stub.listFilter.Side != nil {
		t.Errorf("side filter = %v, want nil for an unknown side", stub.listFilter.Side)
	}
}

func TestGuestListForbidden(t *testing.T) {
	stub := &stubGuestService{err: domain.ErrForbidden}
	router := NewGuestHandler(stub).Routes()

	req := httptest.NewRequest(http.MethodGet, "/?eventId=ev1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if _, code := decodeEnvelope(t, rec.Body.Bytes()); code != "FORBIDDEN" {
		t.Errorf("code = %q, want FORBIDDEN", code)
	}
}

func TestGuestDeleteNotFound(t *testing.T) {
	stub := &stubGuestService{err: domain.ErrGuestNotFound}
	router := NewGuestHandler(stub).Routes()

	req := httptest.NewRequest(http.MethodDelete, "/guest-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if _, code := decodeEnvelope(t, rec.Body.Bytes()); code != "NOT_FOUND" {
		t.Errorf("code = %q, want NOT_FOUND", code)
	}
}
