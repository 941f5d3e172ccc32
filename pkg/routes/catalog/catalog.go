package catalog

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectoinject"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/cuvee/pkg/catalog"
	"github.com/Ramsey-B/cuvee/pkg/tracing"
)

// Register registers catalog routes
func Register(g *echo.Group) {
	g.GET("", Info)
	g.POST("/refresh", Refresh)
}

// Info returns metadata about the loaded catalog snapshot
func Info(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "catalog_handler.Info")
	defer span.End()

	ctx, svc, err := ectoinject.GetContext[*catalog.Service](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get catalog service")
	}

	info, err := svc.Info(ctx)
	if err != nil {
		if httperror.IsHTTPError(err) {
			return err
		}
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to load catalog snapshot")
	}

	return c.JSON(http.StatusOK, info)
}

// Refresh refetches the catalog from the store and rebuilds the index
func Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "catalog_handler.Refresh")
	defer span.End()

	ctx, svc, err := ectoinject.GetContext[*catalog.Service](ctx)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to get catalog service")
	}

	info, err := svc.Refresh(ctx)
	if err != nil {
		if httperror.IsHTTPError(err) {
			return err
		}
		return httperror.NewHTTPError(http.StatusBadGateway, "failed to refresh catalog from store")
	}

	return c.JSON(http.StatusOK, info)
}
