package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SaimonXX/qr-event-manager/internal/domain"
)

func TestHandleGenerateTickets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		body           string
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "success",
			body:           `{"event_id":"e1","quantity":50}`,
			expectedStatus: http.StatusCreated,
			expectedSubstr: `"count":50`,
		},
		{
			name:           "invalid json",
			body:           `{"event_id":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid quantity",
			body:           `{"event_id":"e1","quantity":0}`,
			serviceErr:     domain.ErrInvalidQuantity,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing event",
			body:           `{"event_id":"e9","quantity":50}`,
			serviceErr:     domain.ErrEventNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "internal error",
			body:           `{"event_id":"e1","quantity":50}`,
			serviceErr:     errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubTicketAdminService{count: 50, err: tt.serviceErr}
			req := httptest.NewRequest(http.MethodPost, "/api/tickets/generate", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			handler := HandleGenerateTickets(svc)
			handler.ServeHTTP(rec, req)

			res := rec.Result()
			if res.StatusCode != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, res.StatusCode)
			}
			if tt.expectedSubstr != "" {
				body := rec.Body.String()
				if !strings.Contains(body, tt.expectedSubstr) {
					t.Fatalf("expected response to contain %q, got %q", tt.expectedSubstr, body)
				}
			}
		})
	}
}

func TestHandleListTickets(t *testing.T) {
	t.Parallel()

	t.Run("lists event tickets", func(t *testing.T) {
		t.Parallel()
		svc := &stubTicketAdminService{
			tickets: []domain.Ticket{
				{ID: "t1", EventID: "e1", Status: domain.TicketStatusValid, GuestName: "Ana"},
				{ID: "t2", EventID: "e1", Status: domain.TicketStatusValid},
			},
		}
		req := httptest.NewRequest(http.MethodGet, "/api/tickets/e1", nil)
		rec := httptest.NewRecorder()

		HandleListTickets(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"id":"t1"`) {
			t.Fatalf("unexpected body %q", rec.Body.String())
		}
	})

	t.Run("missing event", func(t *testing.T) {
		t.Parallel()
		svc := &stubTicketAdminService{err: domain.ErrEventNotFound}
		req := httptest.NewRequest(http.MethodGet, "/api/tickets/e9", nil)
		rec := httptest.NewRecorder()

		HandleListTickets(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status %d, got %d", http.StatusNotFound, rec.Code)
		}
	})

	t.Run("empty event id path", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/api/tickets/", nil)
		rec := httptest.NewRecorder()

		HandleListTickets(&stubTicketAdminService{}).ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status %d, got %d", http.StatusNotFound, rec.Code)
		}
	})
}

func TestHandleDeleteTicket(t *testing.T) {
	t.Parallel()

	t.Run("deletes", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodDelete, "/api/tickets/single/t1", nil)
		rec := httptest.NewRecorder()

		HandleDeleteTicket(&stubTicketAdminService{}).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"success":true`) {
			t.Fatalf("unexpected body %q", rec.Body.String())
		}
	})

	t.Run("missing ticket", func(t *testing.T) {
		t.Parallel()
		svc := &stubTicketAdminService{err: domain.ErrTicketNotFound}
		req := httptest.NewRequest(http.MethodDelete, "/api/tickets/single/t9", nil)
		rec := httptest.NewRecorder()

		HandleDeleteTicket(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status %d, got %d", http.StatusNotFound, rec.Code)
		}
	})

	t.Run("rejects non-DELETE", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/api/tickets/single/t1", nil)
		rec := httptest.NewRecorder()

		HandleDeleteTicket(&stubTicketAdminService{}).ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
		}
	})
}

type stubTicketAdminService struct {
	count   int
	tickets []domain.Ticket
	err     error
}

func (s *stubTicketAdminService) GenerateTickets(_ context.Context, _ string, _ int) (int, error) {
	return s.count, s.err
}

func (s *stubTicketAdminService) ListTickets(_ context.Context, _ string) ([]domain.Ticket, error) {
	return s.tickets, s.err
}

func (s *stubTicketAdminService) DeleteTicket(_ context.Context, _ string) error {
	return s.err
}
