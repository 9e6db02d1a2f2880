// FilePath: internal/monitoring/monitoring.go
package monitoring

import (
	"time"

	nuts "github.com/vaudience/go-nuts"
)

// Service records operational events from the ingestion job and the query
// path. Events currently go to the structured log; the emitter keeps the
// hook points in place for a metrics backend.
type Service struct {
	events *nuts.EventEmitter
}

// NewService creates a new monitoring service
func NewService() *Service {
	return &Service{
		events: nuts.NewEventEmitter(),
	}
}

// RecordEvent records a monitored event with labels
func (s *Service) RecordEvent(eventName string, labels map[string]string) {
	ts := time.Now()
	nuts.L.Infof("[Monitoring] Event %s recorded at %v with labels: %v", eventName, ts, labels)
	s.events.Emit(eventName, labels)
}

// OnEvent registers a handler for a monitored event
func (s *Service) OnEvent(eventName string, handler func(labels map[string]string)) {
	s.events.On(eventName, "monitoring_handler", func(args ...interface{}) {
		if len(args) > 0 {
			if labels, ok := args[0].(map[string]string); ok {
				handler(labels)
			}
		}
	})
}
