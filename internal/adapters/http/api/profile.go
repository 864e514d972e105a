package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/okian/gestura/internal/domain/profile"
)

// ProfileHandler reads and replaces the active profile.
type ProfileHandler struct {
	deps ProfileDependencies
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(deps ProfileDependencies) *ProfileHandler {
	return &ProfileHandler{deps: deps}
}

type profileDocument struct {
	Name     string                `json:"name"`
	Bindings []profile.BindingSpec `json:"bindings"`
	Warnings []string              `json:"warnings,omitempty"`
}

// HandleProfile handles GET and PUT /profile requests.
func (h *ProfileHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		p := h.deps.ActiveProfile()
		writeJSON(w, http.StatusOK, profileDocument{Name: p.Name(), Bindings: p.Specs()})
	case http.MethodPut:
		h.put(w, r)
	default:
		http.NotFound(w, r)
	}
}

// put builds the profile, skipping invalid bindings, and swaps it in.
// Skipped bindings come back as warnings.
func (h *ProfileHandler) put(w http.ResponseWriter, r *http.Request) {
	const op = "api.put_profile"
	var doc profileDocument
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(doc.Name) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, profile.ErrEmptyName))
		return
	}
	p, errs := profile.FromSpecs(doc.Name, doc.Bindings)
	if err := h.deps.LoadProfile(r.Context(), p); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	out := profileDocument{Name: p.Name(), Bindings: p.Specs()}
	for _, err := range errs {
		out.Warnings = append(out.Warnings, err.Error())
	}
	writeJSON(w, http.StatusOK, out)
}
