package worker

import (
	"github.com/duel-labs/roadmap-service/internal/service"
)

// StartAlarmWorker registers alarm event handlers.
func StartAlarmWorker(alarmService *service.AlarmService) {
	if alarmService == nil {
		return
	}
	alarmService.RegisterHandlers()
}
