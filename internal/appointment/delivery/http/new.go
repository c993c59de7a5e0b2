package http

import (
	"dinner-scheduler/internal/appointment"
	"dinner-scheduler/pkg/localtime"
	"dinner-scheduler/pkg/log"
)

type handler struct {
	l         log.Logger
	uc        appointment.UseCase
	formatter *localtime.Formatter
}

// New creates a new HTTP handler for the missionary pages.
func New(l log.Logger, uc appointment.UseCase, formatter *localtime.Formatter) *handler {
	return &handler{
		l:         l,
		uc:        uc,
		formatter: formatter,
	}
}
