package http

import (
	"github.com/gin-gonic/gin"

	"dinner-scheduler/internal/ingestion"
	"dinner-scheduler/pkg/response"
)

// Cron godoc
// @Summary     Run one scheduled ingestion cycle
// @Description Notifies missionaries about bookings that started after now minus the scheduler interval.
// @Tags        Ingestion
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} cronResp
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     500 {object} response.Resp "Server configuration error"
// @Router      /api/cron [GET]
func (h *handler) Cron(c *gin.Context) {
	ctx := c.Request.Context()

	checkTime := h.now()
	since := checkTime.Add(-h.lookback)

	output, err := h.uc.ProcessSince(ctx, ingestion.ProcessSinceInput{Since: since})
	if err != nil {
		h.l.Errorf(ctx, "ingestion.http.Cron: %v", err)
	}

	response.OK(c, newCronResp(output, checkTime, since))
}

// CheckAppointments godoc
// @Summary     Run one checkpointed ingestion cycle
// @Description Notifies missionaries about bookings since the last check and advances the checkpoint.
// @Tags        Ingestion
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} checkResp
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     500 {object} response.Resp "Server configuration error"
// @Router      /api/check-appointments [GET]
func (h *handler) CheckAppointments(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.ProcessCheckpoint(ctx)
	if err != nil {
		h.l.Errorf(ctx, "ingestion.http.CheckAppointments: %v", err)
	}

	response.OK(c, newCheckResp(output))
}
