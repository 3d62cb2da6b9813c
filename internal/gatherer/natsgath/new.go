package natsgath

import (
	"github.com/nats-io/nats.go"
)

// New creates a NATS gatherer that publishes scoring messages to the given
// inbox subject.
func New(nc *nats.Conn, groupUuid string, inbox string) *natsGatherer {
	return &natsGatherer{
		nc:        nc,
		inbox:     inbox,
		groupUuid: groupUuid,
	}
}
