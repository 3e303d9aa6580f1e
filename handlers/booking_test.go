package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"studiofit/models"
	"studiofit/services/scheduling"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// fixedEngine returns canned results so the handler's HTTP mapping can be
// exercised without a store. The embedded interface panics on anything the
// test does not stub.
type fixedEngine struct {
	scheduling.BookingEngine
	created   *scheduling.BookingResult
	createErr error
}

func (e *fixedEngine) CreateBooking(context.Context, scheduling.CreateBookingRequest) (*scheduling.BookingResult, error) {
	return e.created, e.createErr
}

func newStubRouter(engine scheduling.BookingEngine) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewBookingHandler(engine, zap.NewNop())
	r.POST("/bookings", h.CreateBooking)
	return r
}

func postBooking(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestCreateBookingStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", scheduling.NewValidationError("validation", "bad input"), http.StatusBadRequest},
		{"not found", scheduling.NewNotFoundError("validation", "missing"), http.StatusNotFound},
		{"capacity", scheduling.NewCapacityError("quota", "full"), http.StatusConflict},
		{"concurrency", scheduling.NewConcurrencyError("persist", "contended"), http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newStubRouter(&fixedEngine{createErr: tc.err})
			w := postBooking(router, `{"type":"member"}`)
			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tc.wantStatus)
			}
		})
	}
}

func TestCreateBookingSuccessReturns201(t *testing.T) {
	engine := &fixedEngine{created: &scheduling.BookingResult{
		Session: &models.Session{ID: "s1", Status: models.SessionScheduled},
	}}
	w := postBooking(newStubRouter(engine), `{"type":"member","machineId":"machine-1"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"s1"`) {
		t.Fatalf("body = %s, want session payload", w.Body.String())
	}
}

func TestCreateBookingRejectsMalformedJSON(t *testing.T) {
	w := postBooking(newStubRouter(&fixedEngine{}), `{"type":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
