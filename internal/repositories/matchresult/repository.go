package matchresult

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"
	"github.com/jmoiron/sqlx/types"

	"github.com/Ramsey-B/cuvee/pkg/database"
	"github.com/Ramsey-B/cuvee/pkg/models"
	"github.com/Ramsey-B/cuvee/pkg/tracing"
)

var columns = []string{"id", "query", "normalized_query", "selected_gid", "needs_human_review", "review_reason", "candidates", "status", "resolved_by", "resolved_at", "created_at", "updated_at"}

// Repository persists match results for the review queue
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new match result repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

type row struct {
	ID               string         `db:"id"`
	Query            string         `db:"query"`
	NormalizedQuery  string         `db:"normalized_query"`
	SelectedGID      string         `db:"selected_gid"`
	NeedsHumanReview bool           `db:"needs_human_review"`
	ReviewReason     string         `db:"review_reason"`
	Candidates       types.JSONText `db:"candidates"`
	Status           string         `db:"status"`
	ResolvedBy       *string        `db:"resolved_by"`
	ResolvedAt       *time.Time     `db:"resolved_at"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

func (r row) toModel() (*models.MatchResult, error) {
	result := &models.MatchResult{
		ID:               r.ID,
		Query:            r.Query,
		NormalizedQuery:  r.NormalizedQuery,
		SelectedGID:      r.SelectedGID,
		NeedsHumanReview: r.NeedsHumanReview,
		ReviewReason:     r.ReviewReason,
		Status:           r.Status,
		ResolvedBy:       r.ResolvedBy,
		ResolvedAt:       r.ResolvedAt,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
	if len(r.Candidates) > 0 {
		if err := json.Unmarshal(r.Candidates, &result.Candidates); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Create persists a new match result
func (r *Repository) Create(ctx context.Context, result *models.MatchResult) (*models.MatchResult, error) {
	ctx, span := tracing.StartSpan(ctx, "matchresult.Repository.Create")
	defer span.End()

	if result.ID == "" {
		result.ID = uuid.New().String()
	}
	result.CreatedAt = time.Now().UTC()
	result.UpdatedAt = result.CreatedAt

	candidates, err := json.Marshal(result.Candidates)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to marshal candidates")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create match result")
	}

	sb := sqlbuilder.PostgreSQL.NewInsertBuilder()
	sb.InsertInto("match_results")
	sb.Cols(columns...)
	sb.Values(result.ID, result.Query, result.NormalizedQuery, result.SelectedGID, result.NeedsHumanReview, result.ReviewReason, types.JSONText(candidates), result.Status, result.ResolvedBy, result.ResolvedAt, result.CreatedAt, result.UpdatedAt)

	query, args := sb.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"result_id": result.ID}).Error("Failed to create match result")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create match result")
	}

	return result, nil
}

// Get retrieves a match result by ID
func (r *Repository) Get(ctx context.Context, id string) (*models.MatchResult, error) {
	ctx, span := tracing.StartSpan(ctx, "matchresult.Repository.Get")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns...)
	sb.From("match_results")
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var record row
	if err := r.db.GetContext(ctx, &record, query, args...); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("match result %s not found", id))
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get match result")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get match result")
	}

	result, err := record.toModel()
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to unmarshal match result candidates")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get match result")
	}

	return result, nil
}

// List retrieves match results, optionally filtered by status, newest first
func (r *Repository) List(ctx context.Context, status string, page, pageSize int) ([]models.MatchResult, int, error) {
	ctx, span := tracing.StartSpan(ctx, "matchresult.Repository.List")
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 500 {
		pageSize = 20
	}

	countBuilder := sqlbuilder.PostgreSQL.NewSelectBuilder()
	countBuilder.Select("COUNT(*)")
	countBuilder.From("match_results")
	if status != "" {
		countBuilder.Where(countBuilder.Equal("status", status))
	}

	query, args := countBuilder.Build()
	var totalCount int
	if err := r.db.GetContext(ctx, &totalCount, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to count match results")
		return nil, 0, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list match results")
	}

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(columns...)
	sb.From("match_results")
	if status != "" {
		sb.Where(sb.Equal("status", status))
	}
	sb.OrderBy("created_at DESC")
	sb.Limit(pageSize)
	sb.Offset((page - 1) * pageSize)

	query, args = sb.Build()
	var records []row
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list match results")
		return nil, 0, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list match results")
	}

	results := make([]models.MatchResult, 0, len(records))
	for _, record := range records {
		result, err := record.toModel()
		if err != nil {
			r.logger.WithContext(ctx).WithError(err).Error("Failed to unmarshal match result candidates")
			return nil, 0, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list match results")
		}
		results = append(results, *result)
	}

	return results, totalCount, nil
}

// Resolve updates the review status of a match result. When selectedGID is
// non-nil the reviewer's product choice replaces the recorded selection.
func (r *Repository) Resolve(ctx context.Context, id string, status string, selectedGID *string, resolvedBy *string) error {
	ctx, span := tracing.StartSpan(ctx, "matchresult.Repository.Resolve")
	defer span.End()

	now := time.Now().UTC()
	sb := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	sb.Update("match_results")
	assignments := []string{
		sb.Assign("status", status),
		sb.Assign("resolved_at", now),
		sb.Assign("resolved_by", resolvedBy),
		sb.Assign("updated_at", now),
	}
	if selectedGID != nil {
		assignments = append(assignments, sb.Assign("selected_gid", *selectedGID))
	}
	sb.Set(assignments...)
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to resolve match result")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to resolve match result")
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("match result %s not found", id))
	}

	return nil
}
