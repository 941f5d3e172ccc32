package compare

import (
	"context"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/cuvee/internal/repositories/matchresult"
	"github.com/Ramsey-B/cuvee/pkg/events"
	"github.com/Ramsey-B/cuvee/pkg/matching"
	"github.com/Ramsey-B/cuvee/pkg/models"
	"github.com/Ramsey-B/cuvee/pkg/processor"
	"github.com/Ramsey-B/cuvee/pkg/tracing"
)

var validate = validator.New()

// Register registers comparison routes
func Register(g *echo.Group) {
	g.POST("", Compare)
	g.POST("/batch", CompareBatch)
}

// Compare matches a single scanned label against the catalog
func Compare(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "compare_handler.Compare")
	defer span.End()

	var req models.CompareRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, svc, err := ectoinject.GetContext[*matching.Service](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get matching service")
	}

	result, err := svc.Compare(ctx, req.Label)
	if err != nil {
		if httperror.IsHTTPError(err) {
			return err
		}
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to compare label")
	}

	if err := persist(ctx, result); err != nil {
		return err
	}
	if ctx, emitter, err := ectoinject.GetContext[*events.Emitter](ctx); err == nil {
		// emission is best-effort; the emitter logs its own failures
		_ = emitter.EmitMatchResult(ctx, result)
	}

	return c.JSON(http.StatusOK, result)
}

// CompareBatch matches multiple labels concurrently
func CompareBatch(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "compare_handler.CompareBatch")
	defer span.End()

	var req models.CompareBatchRequest
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx, proc, err := ectoinject.GetContext[*processor.Processor](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get batch processor")
	}

	results, err := proc.CompareBatch(ctx, req.Labels)
	if err != nil {
		if httperror.IsHTTPError(err) {
			return err
		}
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to compare labels")
	}

	for _, result := range results {
		if err := persist(ctx, result); err != nil {
			return err
		}
	}
	if ctx, emitter, err := ectoinject.GetContext[*events.Emitter](ctx); err == nil {
		// one publish for the whole batch
		_ = emitter.EmitMatchResults(ctx, results)
	}

	return c.JSON(http.StatusOK, models.CompareBatchResponse{Results: results})
}

// persist records the result for the review queue.
func persist(ctx context.Context, result *models.MatchResult) error {
	ctx, repo, err := ectoinject.GetContext[*matchresult.Repository](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get match result repository")
	}

	_, err = repo.Create(ctx, result)
	return err
}
