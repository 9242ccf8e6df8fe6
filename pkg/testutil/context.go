package testutil

import (
	"net/http"

	id "preservation/pkg/domain"
	"preservation/pkg/requestcontext"
)

// WithPerson sets the acting person the way the auth middleware does.
// Invalid IDs are ignored.
func WithPerson(req *http.Request, personID string) *http.Request {
	parsed, err := id.ParsePersonID(personID)
	if err != nil {
		return req
	}
	return req.WithContext(requestcontext.WithPersonID(req.Context(), parsed))
}
