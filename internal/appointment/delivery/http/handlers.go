package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dinner-scheduler/internal/appointment"
	"dinner-scheduler/internal/middleware"
	"dinner-scheduler/pkg/response"
)

// Verify godoc
// @Summary     Verify the missionary access code
// @Description Exchanges the shared access code for a session token.
// @Tags        Missionary
// @Accept      json
// @Produce     json
// @Param       body body verifyReq true "Access code"
// @Success     200 {object} verifyResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     429 {object} response.Resp "Too many requests"
// @Failure     500 {object} response.Resp "Server configuration error"
// @Router      /api/missionary/verify [POST]
func (h *handler) Verify(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processVerifyReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Verify(ctx, req.toInput())
	if err != nil {
		if h.mapError(err) == http.StatusUnauthorized {
			response.Unauthorized(c, "")
			return
		}
		response.InternalError(c, err)
		return
	}

	response.OK(c, newVerifyResp(output))
}

// List godoc
// @Summary     List upcoming appointments
// @Description Returns bookings for the next 30 days, earliest first.
// @Tags        Missionary
// @Produce     json
// @Param       X-Session-Token header string false "Session token"
// @Success     200 {object} listResp
// @Failure     401 {object} response.Resp "Session expired. Please log in again."
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/missionary/appointments [GET]
func (h *handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.List(ctx, appointment.ListInput{})
	if err != nil {
		h.l.Errorf(ctx, "appointment.http.List: %v", err)
		response.InternalError(c, err)
		return
	}

	response.OK(c, h.newListResp(output))
}

// Calendar godoc
// @Summary     Upcoming appointments as iCalendar
// @Tags        Missionary
// @Produce     text/calendar
// @Param       session_token query string false "Session token"
// @Success     200 {string} string "VCALENDAR"
// @Failure     401 {object} response.Resp "Session expired. Please log in again."
// @Router      /api/missionary/appointments.ics [GET]
func (h *handler) Calendar(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.List(ctx, appointment.ListInput{})
	if err != nil {
		h.l.Errorf(ctx, "appointment.http.Calendar: %v", err)
		response.InternalError(c, err)
		return
	}

	body, err := h.encodeCalendar(output.Appointments, time.Now())
	if err != nil {
		h.l.Errorf(ctx, "appointment.http.Calendar: %v", err)
		response.InternalError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="appointments.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", body)
}

// Hide godoc
// @Summary     Hide an appointment
// @Description Removes an appointment from the missionary list. The booking itself is untouched.
// @Tags        Missionary
// @Accept      json
// @Produce     json
// @Param       body body hideReq true "Event to hide"
// @Success     200 {object} response.Resp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     401 {object} response.Resp "Session expired. Please log in again."
// @Router      /api/missionary/appointments/delete [POST]
func (h *handler) Hide(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processHideReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	if err := h.uc.Hide(ctx, req.toInput()); err != nil {
		if h.mapError(err) == http.StatusBadRequest {
			response.Error(c, err, nil)
			return
		}
		response.InternalError(c, err)
		return
	}

	response.OK(c, gin.H{"success": true})
}

// Logout godoc
// @Summary     Revoke the current session
// @Tags        Missionary
// @Produce     json
// @Success     200 {object} response.Resp
// @Router      /api/missionary/logout [POST]
func (h *handler) Logout(c *gin.Context) {
	if token := middleware.ExtractSessionToken(c); token != "" {
		h.uc.Logout(c.Request.Context(), token)
	}
	response.OK(c, gin.H{"success": true})
}

// TestEnv godoc
// @Summary     Report whether the access code is configured
// @Tags        Missionary
// @Produce     json
// @Success     200 {object} testEnvResp
// @Router      /api/missionary/test-env [GET]
func (h *handler) TestEnv(c *gin.Context) {
	response.OK(c, testEnvResp{HasPassword: h.uc.HasAccessCode(), EnvVarsLoaded: true})
}
