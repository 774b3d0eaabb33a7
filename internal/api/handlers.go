package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/tracker"
	"github.com/julianstephens/habitual/internal/utils"
)

type dueResponse struct {
	Date     string           `json:"date"`
	Due      int              `json:"due"`
	Done     int              `json:"done"`
	Statuses []tracker.Status `json:"statuses"`
}

type statsResponse struct {
	Habit    string            `json:"habit"`
	From     string            `json:"from,omitempty"`
	To       string            `json:"to,omitempty"`
	Stats    models.HabitStats `json:"stats"`
	Progress *tracker.Progress `json:"progress,omitempty"`
}

type overallResponse struct {
	Date    string `json:"date"`
	Overall int    `json:"overall"`
}

type entryRequest struct {
	Date      string `json:"date"`
	Completed *bool  `json:"completed"`
	Note      string `json:"note"`
}

// day resolves a YYYY-MM-DD query parameter, defaulting to today in the
// configured timezone
func (s *Server) day(r *http.Request, param string) (time.Time, error) {
	return s.resolve(r.URL.Query().Get(param))
}

func (s *Server) resolve(v string) (time.Time, error) {
	d, err := utils.ResolveDate(v, s.opts.Timezone)
	if err != nil {
		if v != "" {
			return time.Time{}, apperrors.Invalidf("invalid date %q, expected YYYY-MM-DD", v)
		}
		return time.Time{}, err
	}
	return d, nil
}

func (s *Server) habit(r *http.Request) (models.Habit, error) {
	return s.svc.Resolve(chi.URLParam(r, "habit"))
}

func (s *Server) handleListHabits(w http.ResponseWriter, r *http.Request) {
	archived, _ := strconv.ParseBool(r.URL.Query().Get("archived"))
	habits, err := s.svc.Store().GetAllHabits(archived, false)
	if err != nil {
		writeError(w, err)
		return
	}
	if habits == nil {
		habits = []models.Habit{}
	}
	writeJSON(w, http.StatusOK, habits)
}

func (s *Server) handleGetHabit(w http.ResponseWriter, r *http.Request) {
	h, err := s.habit(r)
	if err != nil {
		writeError(w, err)
		return
	}
	day, err := s.day(r, "date")
	if err != nil {
		writeError(w, err)
		return
	}
	st, err := s.svc.Status(h.ID, day)
	if err != nil {
		writeError(w, err)
		return
	}
	s.metrics.observeDue(1)
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleHabitStats(w http.ResponseWriter, r *http.Request) {
	h, err := s.habit(r)
	if err != nil {
		writeError(w, err)
		return
	}
	today, err := s.day(r, "today")
	if err != nil {
		writeError(w, err)
		return
	}

	q := r.URL.Query()
	resp := statsResponse{Habit: h.Name}
	if q.Get("from") == "" && q.Get("to") == "" {
		resp.Stats, err = s.svc.Stats(h.ID, today)
	} else {
		from := h.StartDate
		if v := q.Get("from"); v != "" {
			if from, err = s.resolve(v); err != nil {
				writeError(w, err)
				return
			}
		}
		to := today
		if v := q.Get("to"); v != "" {
			if to, err = s.resolve(v); err != nil {
				writeError(w, err)
				return
			}
		}
		resp.From, resp.To = utils.FormatDate(from), utils.FormatDate(to)
		if resp.Stats, err = s.svc.StatsWindow(h.ID, from, to, today); err == nil {
			var p tracker.Progress
			p, err = s.svc.Progress(h.ID, from, to)
			resp.Progress = &p
		}
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	h, err := s.habit(r)
	if err != nil {
		writeError(w, err)
		return
	}
	to, err := s.day(r, "to")
	if err != nil {
		writeError(w, err)
		return
	}
	from := h.StartDate
	if v := r.URL.Query().Get("from"); v != "" {
		if from, err = s.resolve(v); err != nil {
			writeError(w, err)
			return
		}
	}

	entries, err := s.svc.History(h.ID, from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	if entries == nil {
		entries = []models.HabitEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleRecordEntry(w http.ResponseWriter, r *http.Request) {
	h, err := s.habit(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Invalidf("malformed request body: %v", err))
		return
	}
	day, err := s.resolve(req.Date)
	if err != nil {
		writeError(w, err)
		return
	}
	completed := true
	if req.Completed != nil {
		completed = *req.Completed
	}

	entry, err := s.svc.Mark(h.ID, day, completed, req.Note)
	if err != nil {
		writeError(w, err)
		return
	}
	s.metrics.observeMark(completed)
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	h, err := s.habit(r)
	if err != nil {
		writeError(w, err)
		return
	}
	day, err := s.resolve(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.svc.Unmark(h.ID, day); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDue(w http.ResponseWriter, r *http.Request) {
	day, err := s.day(r, "date")
	if err != nil {
		writeError(w, err)
		return
	}
	statuses, err := s.svc.Today(day)
	if err != nil {
		writeError(w, err)
		return
	}
	s.metrics.observeDue(len(statuses))

	resp := dueResponse{Date: utils.FormatDate(day), Statuses: statuses}
	if !allHabits(r) {
		resp.Statuses = make([]tracker.Status, 0, len(statuses))
		for _, st := range statuses {
			if st.Due {
				resp.Statuses = append(resp.Statuses, st)
			}
		}
	}
	for _, st := range statuses {
		if st.Due {
			resp.Due++
			if st.Done() {
				resp.Done++
			}
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func allHabits(r *http.Request) bool {
	all, _ := strconv.ParseBool(r.URL.Query().Get("all"))
	return all
}

func (s *Server) handleOverall(w http.ResponseWriter, r *http.Request) {
	day, err := s.day(r, "date")
	if err != nil {
		writeError(w, err)
		return
	}
	overall, err := s.svc.Overall(day)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overallResponse{Date: utils.FormatDate(day), Overall: overall})
}
