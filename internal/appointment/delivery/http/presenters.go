package http

import (
	"dinner-scheduler/internal/appointment"
)

// --- Request DTOs ---

type verifyReq struct {
	Password string `json:"password" binding:"required"`
}

func (r verifyReq) toInput() appointment.VerifyInput {
	return appointment.VerifyInput{Password: r.Password}
}

type hideReq struct {
	EventID string `json:"eventId" binding:"required"`
}

func (r hideReq) toInput() appointment.HideInput {
	return appointment.HideInput{EventID: r.EventID}
}

// --- Response DTOs ---

type verifyResp struct {
	Success      bool   `json:"success"`
	SessionToken string `json:"sessionToken"`
	ExpiresIn    int    `json:"expiresIn"`
}

func newVerifyResp(o appointment.VerifyOutput) verifyResp {
	return verifyResp{
		Success:      true,
		SessionToken: o.SessionToken,
		ExpiresIn:    int(o.ExpiresIn.Seconds()),
	}
}

type appointmentResp struct {
	appointment.Appointment
	DisplayTime string `json:"displayTime"`
}

type listResp struct {
	Appointments []appointmentResp `json:"appointments"`
}

func (h *handler) newListResp(o appointment.ListOutput) listResp {
	items := make([]appointmentResp, 0, len(o.Appointments))
	for _, a := range o.Appointments {
		items = append(items, appointmentResp{Appointment: a, DisplayTime: h.formatter.Format(a.StartTime)})
	}
	return listResp{Appointments: items}
}

type testEnvResp struct {
	HasPassword   bool `json:"hasPassword"`
	EnvVarsLoaded bool `json:"envVarsLoaded"`
}
