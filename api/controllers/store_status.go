package controllers

import (
	"net/http"

	"github.com/cafev2/storefront-backend/api/responses"
	"github.com/cafev2/storefront-backend/internal/availability"
	"github.com/cafev2/storefront-backend/internal/schedule"
)

type storeStatusResponse struct {
	IsOpen           bool   `json:"is_open"`
	ScheduleOpen     bool   `json:"schedule_open"`
	ManualOpen       bool   `json:"is_manual_open"`
	Message          string `json:"message,omitempty"`
	OpenTime         string `json:"open_time"`
	CloseTime        string `json:"close_time"`
	OpenTimeDisplay  string `json:"open_time_display"`
	CloseTimeDisplay string `json:"close_time_display"`
	Loading          bool   `json:"loading"`
}

// StoreStatus reports the live open/closed badge plus the display-ready
// 12-hour schedule window.
func StoreStatus(svc *availability.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := svc.Status()
		responses.WriteSuccess(w, storeStatusResponse{
			IsOpen:           status.IsOpen,
			ScheduleOpen:     status.ScheduleOpen,
			ManualOpen:       status.ManualOpen,
			Message:          status.Message,
			OpenTime:         status.OpenTime,
			CloseTime:        status.CloseTime,
			OpenTimeDisplay:  schedule.FormatClock12(status.OpenTime),
			CloseTimeDisplay: schedule.FormatClock12(status.CloseTime),
			Loading:          svc.Loading(),
		})
	}
}
