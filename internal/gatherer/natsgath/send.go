package natsgath

import (
	"encoding/json"
	"log/slog"
)

func (s *natsGatherer) send(msg interface{}) {
	b, err := json.Marshal(msg)
	if err != nil {
		slog.Error("failed to marshal scoring message", "error", err)
		return
	}

	if err := s.nc.Publish(s.inbox, b); err != nil {
		slog.Error("failed to publish scoring message to NATS", "error", err)
	}
}
