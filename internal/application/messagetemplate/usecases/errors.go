package usecases

import (
	"github.com/locationgenius/dashboard/internal/shared/errors"
	"github.com/locationgenius/dashboard/internal/shared/logger"
)

const errMsgStoreUnavailable = "message templates are temporarily unavailable"

// storeUnavailable logs the store failure with its cause and hides it from
// the caller.
func storeUnavailable(log logger.Interface, op string, err error, keysAndValues ...any) error {
	log.Errorw("message template store failed", append([]any{"op", op, "error", err}, keysAndValues...)...)
	return errors.NewServiceUnavailableError(errMsgStoreUnavailable)
}

func templateNotFound(templateType string) error {
	return errors.NewNotFoundError("message template not found", templateType)
}
