package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/F3-Nation/slack-reminders/internal/service"
)

type fakeJob struct {
	ran chan struct{}
}

func newFakeJob() *fakeJob {
	return &fakeJob{ran: make(chan struct{}, 1)}
}

func (j *fakeJob) Run(context.Context, time.Time) (service.RunSummary, error) {
	j.ran <- struct{}{}
	return service.RunSummary{}, nil
}

func TestTriggerBackblasts_AcceptsAndDetaches(t *testing.T) {
	gin.SetMode(gin.TestMode)

	backblasts := newFakeJob()
	contacts := newFakeJob()
	h := NewJobHandler(backblasts, contacts, slog.New(slog.NewTextHandler(io.Discard, nil)))

	r := gin.New()
	r.POST("/api/jobs/backblasts", h.TriggerBackblasts)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/jobs/backblasts", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusAccepted)
	}
	if !strings.Contains(w.Body.String(), `"accepted"`) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}

	select {
	case <-backblasts.ran:
	case <-time.After(time.Second):
		t.Fatalf("backblast job never started")
	}

	select {
	case <-contacts.ran:
		t.Fatalf("contact job must not run from the backblast trigger")
	default:
	}
}

func TestTriggerEmergencyContacts_RoutesToContactJob(t *testing.T) {
	gin.SetMode(gin.TestMode)

	backblasts := newFakeJob()
	contacts := newFakeJob()
	h := NewJobHandler(backblasts, contacts, slog.New(slog.NewTextHandler(io.Discard, nil)))

	r := gin.New()
	r.POST("/api/jobs/emergency-contacts", h.TriggerEmergencyContacts)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/jobs/emergency-contacts", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusAccepted)
	}

	select {
	case <-contacts.ran:
	case <-time.After(time.Second):
		t.Fatalf("contact job never started")
	}
}
