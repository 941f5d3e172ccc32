package catalogproduct

import (
	"context"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/huandu/go-sqlbuilder"

	"github.com/Ramsey-B/cuvee/pkg/database"
	"github.com/Ramsey-B/cuvee/pkg/models"
	"github.com/Ramsey-B/cuvee/pkg/tracing"
)

// rows per INSERT when replacing the snapshot
const insertChunkSize = 500

// Repository caches catalog snapshots in Postgres
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new catalog product repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// ReplaceAll swaps the cached snapshot wholesale inside one transaction.
// The position column preserves catalog order for retrieval tie-breaks.
func (r *Repository) ReplaceAll(ctx context.Context, products []models.CatalogProduct) error {
	ctx, span := tracing.StartSpan(ctx, "catalogproduct.Repository.ReplaceAll")
	defer span.End()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to begin snapshot transaction")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to replace catalog snapshot")
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM catalog_products"); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to clear catalog snapshot")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to replace catalog snapshot")
	}

	now := time.Now().UTC()
	for offset := 0; offset < len(products); offset += insertChunkSize {
		end := offset + insertChunkSize
		if end > len(products) {
			end = len(products)
		}

		sb := sqlbuilder.PostgreSQL.NewInsertBuilder()
		sb.InsertInto("catalog_products")
		sb.Cols("gid", "title", "position", "refreshed_at")
		for i, p := range products[offset:end] {
			sb.Values(p.GID, p.Title, offset+i, now)
		}

		query, args := sb.Build()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			r.logger.WithContext(ctx).WithError(err).Error("Failed to insert catalog snapshot chunk")
			return httperror.NewHTTPError(http.StatusInternalServerError, "failed to replace catalog snapshot")
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to commit catalog snapshot")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to replace catalog snapshot")
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{"product_count": len(products)}).Debug("Replaced catalog snapshot")
	return nil
}

// ListAll returns the cached snapshot in catalog order.
func (r *Repository) ListAll(ctx context.Context) ([]models.CatalogProduct, error) {
	ctx, span := tracing.StartSpan(ctx, "catalogproduct.Repository.ListAll")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("gid", "title", "refreshed_at")
	sb.From("catalog_products")
	sb.OrderBy("position ASC")

	query, args := sb.Build()
	var products []models.CatalogProduct
	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list catalog snapshot")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list catalog products")
	}

	return products, nil
}
