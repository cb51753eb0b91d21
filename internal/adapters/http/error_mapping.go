package httpadapter

import (
	"net/http"

	"github.com/docuintel/docuintel/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrFileNotFound), domain.IsKind(err, domain.ErrFolderNotFound):
		return http.StatusNotFound
	case domain.IsKind(err, domain.ErrFolderExists):
		return http.StatusConflict
	case domain.IsKind(err, domain.ErrTemporary):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
