package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/streamhub/rewards-service/internal/rewards"
	"github.com/streamhub/rewards-service/internal/session"
	"github.com/streamhub/rewards-service/pkg/auth"
)

const (
	serviceTimeout   = 8 * time.Second
	maxJSONBodyBytes = 16 * 1024 // challenge payloads are tiny
)

// RegisterRoutes registers all challenge and reward routes.
func RegisterRoutes(r chi.Router, service session.Service, logger *slog.Logger) {
	r.Route("/v1/challenges", func(r chi.Router) {
		r.Use(middleware.Recoverer)

		r.Get("/", listChallenges(service, logger))
		r.Get("/me", getOverview(service, logger))
		r.Post("/{id}/complete", completeChallenge(service, logger))
		r.Post("/refresh", refreshWeekly(service, logger))
	})

	r.Route("/v1/actions", func(r chi.Router) {
		r.Use(middleware.Recoverer)
		r.Post("/", trackAction(service, logger))
	})

	r.Route("/v1/rewards", func(r chi.Router) {
		r.Use(middleware.Recoverer)
		r.Post("/claim", claimReward(service, logger))
	})

	r.Route("/v1/period", func(r chi.Router) {
		r.Use(middleware.Recoverer)
		r.Post("/end", endPeriod(service, logger))
	})

	r.Route("/v1/progress", func(r chi.Router) {
		r.Use(middleware.Recoverer)
		r.Post("/reset", resetProgress(service, logger))
	})

	r.Route("/v1/trivia", func(r chi.Router) {
		r.Use(middleware.Recoverer)
		r.Get("/current", currentTrivia(service, logger))
	})
}

func listChallenges(service session.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		defs, err := service.ListChallenges(ctx)
		if err != nil {
			logRequestError(r.Context(), logger, "failed to list challenges", err, "")
			writeError(w, http.StatusInternalServerError, "failed to list challenges")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"challenges": defs})
	}
}

func getOverview(service session.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "missing user ID")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		resp, err := service.GetOverview(ctx, userID)
		if err != nil {
			logRequestError(r.Context(), logger, "failed to load overview", err, userID)
			writeError(w, http.StatusInternalServerError, "failed to load overview")
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func completeChallenge(service session.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "missing user ID")
			return
		}
		challengeID := chi.URLParam(r, "id")
		if strings.TrimSpace(challengeID) == "" {
			writeError(w, http.StatusBadRequest, "missing challenge id")
			return
		}

		points, err := decodeCompletePayload(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		result, err := service.CompleteChallenge(ctx, userID, challengeID, points)
		if err != nil {
			switch {
			case errors.Is(err, rewards.ErrUnknownChallenge):
				writeError(w, http.StatusNotFound, "unknown challenge")
			case errors.Is(err, rewards.ErrNegativePoints):
				writeError(w, http.StatusBadRequest, "points must not be negative")
			default:
				logRequestError(r.Context(), logger, "failed to complete challenge", err, userID)
				writeError(w, http.StatusInternalServerError, "failed to complete challenge")
			}
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func trackAction(service session.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "missing user ID")
			return
		}

		kind, contentID, err := decodeActionPayload(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		result, err := service.TrackAction(ctx, userID, kind, contentID)
		if err != nil {
			switch {
			case errors.Is(err, rewards.ErrUnknownAction), errors.Is(err, rewards.ErrMissingContentID):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				logRequestError(r.Context(), logger, "failed to track action", err, userID)
				writeError(w, http.StatusInternalServerError, "failed to track action")
			}
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func claimReward(service session.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "missing user ID")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		result, err := service.ClaimReward(ctx, userID)
		if err != nil {
			logRequestError(r.Context(), logger, "failed to claim reward", err, userID)
			writeError(w, http.StatusInternalServerError, "failed to claim reward")
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func endPeriod(service session.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "missing user ID")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		result, err := service.EndPeriod(ctx, userID)
		if err != nil {
			logRequestError(r.Context(), logger, "failed to end period", err, userID)
			writeError(w, http.StatusInternalServerError, "failed to end period")
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func resetProgress(service session.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "missing user ID")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		if err := service.ResetProgress(ctx, userID); err != nil {
			logRequestError(r.Context(), logger, "failed to reset progress", err, userID)
			writeError(w, http.StatusInternalServerError, "failed to reset progress")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
	}
}

func refreshWeekly(service session.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "missing user ID")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		resp, err := service.RefreshWeekly(ctx, userID)
		if err != nil {
			logRequestError(r.Context(), logger, "failed to refresh challenges", err, userID)
			writeError(w, http.StatusInternalServerError, "failed to refresh challenges")
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func currentTrivia(service session.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		question, err := service.CurrentTrivia(ctx)
		if err != nil {
			logRequestError(r.Context(), logger, "failed to load trivia question", err, "")
			writeError(w, http.StatusInternalServerError, "failed to load trivia question")
			return
		}
		writeJSON(w, http.StatusOK, question)
	}
}

var errInvalidPayload = errors.New("invalid request body")

func decodeCompletePayload(r *http.Request) (int, error) {
	var body struct {
		Points *int `json:"points"`
	}
	if err := decodeJSONBody(r, &body); err != nil {
		return 0, err
	}
	if body.Points == nil {
		return 0, errInvalidPayload
	}
	return *body.Points, nil
}

func decodeActionPayload(r *http.Request) (rewards.ActionKind, string, error) {
	var body struct {
		Kind      string `json:"kind"`
		ContentID string `json:"content_id"`
	}
	if err := decodeJSONBody(r, &body); err != nil {
		return "", "", err
	}
	if body.Kind == "" {
		return "", "", errInvalidPayload
	}
	return rewards.ActionKind(body.Kind), body.ContentID, nil
}

func decodeJSONBody(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxJSONBodyBytes)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return errInvalidPayload
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return errInvalidPayload
	}
	return nil
}

func requestUserID(r *http.Request) string {
	if user, ok := auth.UserFromContext(r.Context()); ok && user.UserID != "" {
		return user.UserID
	}
	if v := r.Header.Get("X-User-ID"); v != "" {
		return v
	}
	return r.Header.Get("x-user-id")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func logRequestError(ctx context.Context, logger *slog.Logger, message string, err error, userID string) {
	if logger == nil || err == nil {
		return
	}
	attrs := []any{
		slog.String("userId", userID),
		slog.Any("error", err),
	}
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		attrs = append(attrs, slog.String("requestId", reqID))
	}
	logger.Error(message, attrs...)
}
