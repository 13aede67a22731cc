package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/qrdocs/deposit-system/internal/core/domain"
	"github.com/qrdocs/deposit-system/internal/core/ports"
)

// Announcer performs out-of-band playback of short cues. This implementation
// writes to the log; a failure to announce is never anyone's problem but ours.
type Announcer struct {
	log zerolog.Logger
}

func NewAnnouncer(log zerolog.Logger) *Announcer {
	return &Announcer{log: log}
}

func (a *Announcer) Announce(cue string) {
	a.log.Info().Str("cue", cue).Msg("announcement")
}

// HandleEvent announces issued documents by code so the client at the
// counter hears which number is ready.
func (a *Announcer) HandleEvent(_ context.Context, event domain.LedgerEvent) {
	if event.Type != domain.EventDocumentIssued {
		return
	}
	a.Announce("number " + event.Code)
}

var _ ports.Announcer = (*Announcer)(nil)
