package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	pkgerrors "github.com/angelmondragon/orderdesk-backend/pkg/errors"
)

// ParseIDParam reads a positive numeric path parameter. Anything else is
// reported as notFound, since no row can carry such an id.
func ParseIDParam(r *http.Request, name, notFound string) (uint64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeNotFound, notFound)
	}
	return id, nil
}
