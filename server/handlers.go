package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/writewithwrabit/journal/models"
	"github.com/writewithwrabit/journal/resolvers"
)

// optional returns nil for an absent or empty query parameter.
func optional(r *http.Request, name string) *string {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	return &v
}

func intParam(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", resolvers.ErrBadInput, name)
	}
	return v, nil
}

func (s *server) createUser(w http.ResponseWriter, r *http.Request) {
	var input models.NewUser
	if err := decode(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := s.mutation.CreateUser(r.Context(), input)
	respond(w, r, user, err)
}

func (s *server) completeUserSignup(w http.ResponseWriter, r *http.Request) {
	var input models.SignedUpUser
	if err := decode(r, &input); err != nil {
		writeError(w, r, err)
		return
	}
	input.ID = chi.URLParam(r, "id")

	user, err := s.mutation.CompleteUserSignup(r.Context(), input)
	respond(w, r, user, err)
}

func (s *server) me(w http.ResponseWriter, r *http.Request) {
	user, err := s.query.Me(r.Context())
	respond(w, r, user, err)
}

func (s *server) updateUser(w http.ResponseWriter, r *http.Request) {
	var input models.UpdatedUser
	if err := decode(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := s.mutation.UpdateUser(r.Context(), input)
	respond(w, r, user, err)
}

func (s *server) entries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.query.Entries(r.Context(), optional(r, "start"), optional(r, "end"))
	respond(w, r, entries, err)
}

func (s *server) entriesByMonth(w http.ResponseWriter, r *http.Request) {
	year, err := intParam(r, "year")
	if err != nil {
		writeError(w, r, err)
		return
	}
	month, err := intParam(r, "month")
	if err != nil {
		writeError(w, r, err)
		return
	}

	entries, err := s.query.EntriesByMonth(r.Context(), year, month, optional(r, "tz"))
	respond(w, r, entries, err)
}

func (s *server) dailyEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := s.query.DailyEntry(r.Context(), r.URL.Query().Get("date"))
	respond(w, r, entry, err)
}

func (s *server) entry(w http.ResponseWriter, r *http.Request) {
	entry, err := s.query.Entry(r.Context(), chi.URLParam(r, "id"))
	respond(w, r, entry, err)
}

func (s *server) createEntry(w http.ResponseWriter, r *http.Request) {
	var input models.NewEntry
	if err := decode(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	entry, err := s.mutation.CreateEntry(r.Context(), input)
	respond(w, r, entry, err)
}

func (s *server) updateEntry(w http.ResponseWriter, r *http.Request) {
	var input models.ExistingEntry
	if err := decode(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	entry, err := s.mutation.UpdateEntry(r.Context(), chi.URLParam(r, "id"), input)
	respond(w, r, entry, err)
}

func (s *server) deleteEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := s.mutation.DeleteEntry(r.Context(), chi.URLParam(r, "id"))
	respond(w, r, entry, err)
}

func (s *server) insights(w http.ResponseWriter, r *http.Request) {
	insights, err := s.query.Insights(r.Context(), chi.URLParam(r, "id"))
	respond(w, r, insights, err)
}

func (s *server) analyzeEntry(w http.ResponseWriter, r *http.Request) {
	insight, err := s.mutation.AnalyzeEntry(r.Context(), chi.URLParam(r, "id"))
	respond(w, r, insight, err)
}

func (s *server) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.query.Stats(r.Context(), optional(r, "tz"))
	respond(w, r, stats, err)
}

func (s *server) wordGoal(w http.ResponseWriter, r *http.Request) {
	goal, err := s.query.WordGoal(r.Context(), optional(r, "tz"))
	respond(w, r, goal, err)
}

func (s *server) prompt(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Content string `json:"content"`
	}
	if err := decode(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	prompt, err := s.mutation.Prompt(r.Context(), input.Content)
	respond(w, r, prompt, err)
}

func (s *server) chat(w http.ResponseWriter, r *http.Request) {
	var input models.ChatRequest
	if err := decode(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	reply, err := s.mutation.Chat(r.Context(), input)
	respond(w, r, reply, err)
}
