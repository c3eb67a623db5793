package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/F3-Nation/slack-reminders/internal/service"
)

// JobRunner is a reminder job the HTTP trigger can launch.
type JobRunner interface {
	Run(ctx context.Context, now time.Time) (service.RunSummary, error)
}

type JobHandler struct {
	backblasts JobRunner
	contacts   JobRunner
	logger     *slog.Logger
}

func NewJobHandler(backblasts, contacts JobRunner, logger *slog.Logger) *JobHandler {
	return &JobHandler{
		backblasts: backblasts,
		contacts:   contacts,
		logger:     logger,
	}
}

// TriggerBackblasts godoc
// @Summary Trigger the missing backblast job
// @Description Launches the job in the background and returns immediately. Completion and per-region failures show up in process logs only.
// @Tags jobs
// @Produce json
// @Success 202 {object} JobAcceptedResponse
// @Router /api/jobs/backblasts [post]
func (h *JobHandler) TriggerBackblasts(c *gin.Context) {
	h.trigger(c, "backblasts", h.backblasts)
}

// TriggerEmergencyContacts godoc
// @Summary Trigger the emergency contact job
// @Description Launches the job in the background and returns immediately. Completion and per-region failures show up in process logs only.
// @Tags jobs
// @Produce json
// @Success 202 {object} JobAcceptedResponse
// @Router /api/jobs/emergency-contacts [post]
func (h *JobHandler) TriggerEmergencyContacts(c *gin.Context) {
	h.trigger(c, "emergency_contacts", h.contacts)
}

// trigger is fire-and-forget: the run detaches onto a background
// context so it survives the request, and the response never reflects
// the job's result.
func (h *JobHandler) trigger(c *gin.Context, name string, job JobRunner) {
	go func() {
		summary, err := job.Run(context.Background(), time.Now().UTC())
		if err != nil {
			h.logger.Error("triggered job failed", slog.String("job", name), slog.String("error", err.Error()))
			return
		}

		h.logger.Info("triggered job finished",
			slog.String("job", name),
			slog.Int("tenants", summary.Tenants),
			slog.Int("failures", summary.Failures),
		)
	}()

	c.JSON(http.StatusAccepted, JobAcceptedResponse{Status: "accepted", Job: name})
}
