package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"NewsAggregator/internal/domain"
)

const (
	defaultK = 10
	maxK     = 100
)

// IngestService is the ingestion use case.
type IngestService interface {
	IngestTopic(ctx context.Context, topic string) (int, error)
	IngestForInterests(ctx context.Context, interests []string) (domain.IngestResult, error)
	DailyUpdate(ctx context.Context) (domain.IngestResult, error)
}

// ProfileService is the profile use case.
type ProfileService interface {
	SetProfile(ctx context.Context, userID string, interests []string) error
	GetProfile(ctx context.Context, userID string) (domain.UserProfile, error)
}

// RecommendService is the recommendation use case.
type RecommendService interface {
	Recommend(ctx context.Context, userID string, k int) ([]domain.ArticleView, error)
}

type interestsRequest struct {
	Interests []string `json:"interests" validate:"max=50,dive,excludesall=0x2C"`
}

type profileRequest struct {
	UserID    string   `json:"user_id" validate:"required,max=128"`
	Interests []string `json:"interests" validate:"max=50,dive,excludesall=0x2C"`
}

type recommendationsQuery struct {
	UserID string `query:"user_id" validate:"required"`
	K      int    `query:"k" validate:"min=1"`
}

type handlers struct {
	deps   Deps
	logger *slog.Logger
}

func newHandlers(deps Deps, log *slog.Logger) *handlers {
	if deps.DefaultK <= 0 {
		deps.DefaultK = defaultK
	}
	if deps.MaxK <= 0 {
		deps.MaxK = maxK
	}
	return &handlers{deps: deps, logger: log}
}

func (h *handlers) ingest(c echo.Context) error {
	count, err := h.deps.Ingest.IngestTopic(c.Request().Context(), c.QueryParam("query"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, count)
}

func (h *handlers) ingestInterests(c echo.Context) error {
	var req interestsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.deps.Ingest.IngestForInterests(c.Request().Context(), req.Interests)
	if err != nil {
		return err
	}
	if result.Categories == nil {
		result.Categories = []string{}
	}
	return c.JSON(http.StatusOK, map[string]any{
		"ingested":   result.Ingested,
		"categories": result.Categories,
	})
}

func (h *handlers) dailyUpdate(c echo.Context) error {
	result, err := h.deps.Ingest.DailyUpdate(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]int{"ingested": result.Ingested})
}

func (h *handlers) setProfile(c echo.Context) error {
	var req profileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err := h.deps.Profiles.SetProfile(c.Request().Context(), req.UserID, req.Interests)
	if errors.Is(err, domain.ErrMissingUserID) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

func (h *handlers) getProfile(c echo.Context) error {
	profile, err := h.deps.Profiles.GetProfile(c.Request().Context(), c.Param("user_id"))
	if errors.Is(err, domain.ErrProfileNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	if err != nil {
		return err
	}
	if profile.Interests == nil {
		profile.Interests = []string{}
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *handlers) recommendations(c echo.Context) error {
	q := recommendationsQuery{K: h.deps.DefaultK}
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}
	if q.K > h.deps.MaxK {
		return &ValidationError{Errors: map[string]string{"k": "k must be at most " + strconv.Itoa(h.deps.MaxK)}}
	}

	views, err := h.deps.Recommend.Recommend(c.Request().Context(), q.UserID, q.K)
	if err != nil {
		return err
	}
	if views == nil {
		views = []domain.ArticleView{}
	}
	return c.JSON(http.StatusOK, views)
}

func (h *handlers) health(c echo.Context) error {
	if h.deps.Store != nil {
		if err := h.deps.Store.Ping(c.Request().Context()); err != nil {
			h.logger.Warn("health check failed", "error", err)
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func bindAndValidate(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			return echo.NewHTTPError(http.StatusBadRequest, "malformed request")
		}
		return err
	}
	return c.Validate(dst)
}
