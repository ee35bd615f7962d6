package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	hclog "github.com/hashicorp/go-hclog"
	"github.com/rs/cors"

	activitydto "fitx/internal/modules/activity/dto"
	activityin "fitx/internal/modules/activity/port/in"
	progressdto "fitx/internal/modules/progress/dto"
	progressin "fitx/internal/modules/progress/port/in"
	apperrors "fitx/internal/platform/errors"
	"fitx/internal/platform/logging"
)

const (
	defaultWindowDays = 7
	maxBodyBytes      = 1 << 20
	shutdownTimeout   = 5 * time.Second
)

type Server struct {
	activity    activityin.Usecase
	progress    progressin.Usecase
	defaultUser string
	logger      hclog.Logger
}

func NewServer(activity activityin.Usecase, progress progressin.Usecase, defaultUser string, logger hclog.Logger) *Server {
	return &Server{activity: activity, progress: progress, defaultUser: defaultUser, logger: logging.OrDiscard(logger)}
}

func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.health).Methods(http.MethodGet)
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/workouts", s.logWorkout).Methods(http.MethodPost)
	api.HandleFunc("/meals", s.logMeal).Methods(http.MethodPost)
	api.HandleFunc("/history", s.history).Methods(http.MethodGet)
	api.HandleFunc("/summary", s.summary).Methods(http.MethodGet)
	api.HandleFunc("/report", s.report).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(s.loggingMiddleware(r))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapper, r)
		s.logger.Info("request", "method", r.Method, "path", r.URL.Path, "status", wrapper.statusCode, "duration", time.Since(start))
	})
}

type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

type workoutRequest struct {
	UserID          string `json:"user_id"`
	Exercise        string `json:"exercise"`
	DurationMinutes int    `json:"duration_minutes"`
	Intensity       string `json:"intensity"`
	Calories        int    `json:"calories"`
}

type mealRequest struct {
	UserID    string   `json:"user_id"`
	MealType  string   `json:"meal_type"`
	FoodItems []string `json:"food_items"`
	Calories  int      `json:"calories"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) logWorkout(w http.ResponseWriter, r *http.Request) {
	var req workoutRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	out, err := s.activity.LogWorkout(r.Context(), activitydto.LogWorkoutInput{
		UserID:          s.userOr(req.UserID),
		Exercise:        req.Exercise,
		DurationMinutes: req.DurationMinutes,
		Intensity:       req.Intensity,
		Calories:        req.Calories,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, out)
}

func (s *Server) logMeal(w http.ResponseWriter, r *http.Request) {
	var req mealRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	out, err := s.activity.LogMeal(r.Context(), activitydto.LogMealInput{
		UserID:    s.userOr(req.UserID),
		MealType:  req.MealType,
		FoodItems: req.FoodItems,
		Calories:  req.Calories,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, out)
}

func (s *Server) history(w http.ResponseWriter, r *http.Request) {
	days, err := windowDays(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	out, err := s.activity.Recent(r.Context(), activitydto.RecentInput{
		UserID:     s.userOr(r.URL.Query().Get("user_id")),
		WindowDays: days,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	days, err := windowDays(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	out, err := s.progress.Summarize(r.Context(), progressdto.SummaryInput{UserID: s.userOr(r.URL.Query().Get("user_id")), WindowDays: days})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) report(w http.ResponseWriter, r *http.Request) {
	days, err := windowDays(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	out, err := s.progress.Report(r.Context(), progressdto.SummaryInput{UserID: s.userOr(r.URL.Query().Get("user_id")), WindowDays: days})
	if err != nil {
		s.writeError(w, err)
		return
	}
	if r.URL.Query().Get("format") == "markdown" {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(out.Markdown))
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) userOr(userID string) string {
	if strings.TrimSpace(userID) == "" {
		return s.defaultUser
	}
	return userID
}

func windowDays(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("days"))
	if raw == "" {
		return defaultWindowDays, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: days must be an integer", apperrors.ErrInvalidArgument)
	}
	return days, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, target any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", apperrors.ErrInvalidArgument, err)
	}
	return nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "status", status, "error", err)
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Warn("encode response", "error", err)
	}
}
