package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"tezgah/internal/domain"
)

// CreateListing handles POST /v1/listing. Unknown body fields are rejected,
// the shape is validated up front and only then does the builder run.
func (a *App) CreateListing(w http.ResponseWriter, r *http.Request) {
	var req domain.ListingRequest

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		a.jsonError(w, r, domain.NewAppError("invalid request body: "+err.Error(), http.StatusBadRequest))
		return
	}

	if err := a.validate.Struct(req); err != nil {
		a.jsonError(w, r, domain.NewAppError(validationMessage(err), http.StatusBadRequest))
		return
	}

	result, err := a.Builder.Build(r.Context(), req)
	if err != nil {
		a.jsonError(w, r, err)
		return
	}

	a.json(w, http.StatusOK, result)
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return "invalid request body"
	}
	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, fmt.Sprintf("%s failed validation on '%s'", fe.Field(), fe.Tag()))
	}
	return strings.Join(messages, "; ")
}
