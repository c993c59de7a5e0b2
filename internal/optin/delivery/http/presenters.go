package http

import "dinner-scheduler/internal/optin"

type optInReq struct {
	PhoneNumber string `json:"phoneNumber" binding:"required,us_e164"`
	Type        string `json:"type"        binding:"required"`
	IPAddress   string `json:"-"`
}

func (r optInReq) toInput() optin.OptInInput {
	return optin.OptInInput{
		PhoneNumber: r.PhoneNumber,
		Type:        r.Type,
		IPAddress:   r.IPAddress,
	}
}

type optInResp struct {
	Success          bool `json:"success"`
	ConfirmationSent bool `json:"confirmationSent"`
}

func newOptInResp(o optin.OptInOutput) optInResp {
	return optInResp{Success: true, ConfirmationSent: o.ConfirmationSent}
}

type inboundReq struct {
	From string `form:"From"`
	Body string `form:"Body"`
}

func (r inboundReq) toInput() optin.KeywordInput {
	return optin.KeywordInput{From: r.From, Body: r.Body}
}
