package service

import (
	"errors"

	"github.com/fleetnexa/fleetnexa-server/internal/apperr"
	"github.com/fleetnexa/fleetnexa-server/internal/repository"
)

// mapRepoErr translates repository sentinels into the shared taxonomy.
// Anything unexpected becomes Internal; callers log the cause and surface
// only a generic message.
func mapRepoErr(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return apperr.NotFound("%s", what)
	case errors.Is(err, repository.ErrPairedTransactionMissing):
		return apperr.NotFound("associated transaction not found")
	case errors.Is(err, repository.ErrDuplicate):
		return apperr.Conflict("%s already exists", what)
	default:
		return apperr.Internal(err)
	}
}
