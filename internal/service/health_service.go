package service

import (
	"github.com/fuzumoe/crawltorch-api/internal/ratelimit"
)

// RateStatus reports the shared limiter's current headroom.
type RateStatus struct {
	Limit         int     `json:"limit"`
	WindowSeconds float64 `json:"window_seconds"`
	Remaining     int     `json:"remaining"`
}

// HealthService reports the state of the shared rate limiter.
type HealthService interface {
	Limits() *RateStatus
}

type healthService struct {
	limiter *ratelimit.Limiter
}

func NewHealthService(l *ratelimit.Limiter) HealthService {
	return &healthService{limiter: l}
}

func (h *healthService) Limits() *RateStatus {
	return &RateStatus{
		Limit:         h.limiter.Limit(),
		WindowSeconds: h.limiter.Window().Seconds(),
		Remaining:     h.limiter.Remaining(),
	}
}
