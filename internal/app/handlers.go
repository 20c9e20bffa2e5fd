package app

import (
	"productive-lock/internal/logger"
	"productive-lock/internal/telemetry"
)

type Handlers struct {
	logger  logger.Logger
	tracker *telemetry.Tracker
}

func NewHandlers(log logger.Logger, tracker *telemetry.Tracker) *Handlers {
	return &Handlers{
		logger:  log,
		tracker: tracker,
	}
}

// TelemetryLogger writes every hold event to the log; activations also carry
// the running average hold time.
func (h *Handlers) TelemetryLogger() telemetry.EventHandler {
	return telemetry.HandlerFunc("telemetry-log", h.handleHoldEvent)
}

func (h *Handlers) handleHoldEvent(event telemetry.Event) {
	fields := make(map[string]interface{}, len(event.Data)+2)
	for k, v := range event.Data {
		fields[k] = v
	}

	switch event.Type {
	case telemetry.EventHoldStarted:
		h.logger.Debug("Telemetry", event.Type, fields)
	case telemetry.EventHoldCancelled:
		h.logger.Info("Telemetry", event.Type, fields)
	case telemetry.EventHoldActivated:
		stats := h.tracker.Stats(telemetry.OutcomeActivated)
		fields["activations"] = stats.Count
		fields["average_ms"] = stats.Average.Milliseconds()
		h.logger.Info("Telemetry", event.Type, fields)
	default:
		h.logger.Warning("Telemetry", "unknown event", map[string]interface{}{
			"type": event.Type,
		})
	}
}
