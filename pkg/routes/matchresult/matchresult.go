package matchresult

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/cuvee/internal/repositories/matchresult"
	ctxkeys "github.com/Ramsey-B/cuvee/pkg/context"
	"github.com/Ramsey-B/cuvee/pkg/models"
	"github.com/Ramsey-B/cuvee/pkg/tracing"
)

// ApproveRequest optionally overrides the selected product when a reviewer
// approves a different candidate than the recorded one.
type ApproveRequest struct {
	SelectedGID string `json:"selected_gid"`
}

// Register registers match result review routes
func Register(g *echo.Group) {
	g.GET("", List)
	g.GET("/:id", Get)
	g.POST("/:id/approve", Approve)
	g.POST("/:id/reject", Reject)
}

// List returns match results, optionally filtered by status
func List(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "matchresult_handler.List")
	defer span.End()

	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	status := c.QueryParam("status")

	ctx, repo, err := ectoinject.GetContext[*matchresult.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get repository")
	}

	items, totalCount, err := repo.List(ctx, status, page, pageSize)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, models.MatchResultListResponse{
		Items:      items,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
	})
}

// Get returns a single match result by ID
func Get(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "matchresult_handler.Get")
	defer span.End()

	id := c.Param("id")

	ctx, repo, err := ectoinject.GetContext[*matchresult.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get repository")
	}

	result, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// Approve marks a pending match result as approved by the reviewer
func Approve(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "matchresult_handler.Approve")
	defer span.End()

	id := c.Param("id")

	var req ApproveRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	var selectedGID *string
	if req.SelectedGID != "" {
		selectedGID = &req.SelectedGID
	}

	ctx, repo, err := ectoinject.GetContext[*matchresult.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get repository")
	}

	resolvedBy := reviewer(ctx)
	if err := repo.Resolve(ctx, id, models.MatchStatusApproved, selectedGID, resolvedBy); err != nil {
		return err
	}

	result, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// Reject marks a pending match result as rejected; the selection reverts to
// the no-match sentinel
func Reject(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "matchresult_handler.Reject")
	defer span.End()

	id := c.Param("id")

	ctx, repo, err := ectoinject.GetContext[*matchresult.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get repository")
	}

	noMatch := models.NoMatchGID
	resolvedBy := reviewer(ctx)
	if err := repo.Resolve(ctx, id, models.MatchStatusRejected, &noMatch, resolvedBy); err != nil {
		return err
	}

	result, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func reviewer(ctx context.Context) *string {
	userID := ctxkeys.GetUserID(ctx)
	if userID == "" {
		return nil
	}
	return &userID
}
