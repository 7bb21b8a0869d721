package participantRepo

import (
	"context"

	"panelwise/models"
)

// ParticipantRepository is the directory the scheduling core resolves
// panel members against.
type ParticipantRepository interface {
	// GetByID retrieves a participant by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Participant, error)
	// Lookup retrieves the participants for the given ids. The returned
	// slice preserves the order of ids; ids with no matching record are
	// simply absent, which callers detect by comparing lengths.
	Lookup(ctx context.Context, ids []string) ([]models.Participant, error)
}
