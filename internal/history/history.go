// Package history records which images were processed and where the results
// live. It is optional: when no database is configured the rest of the
// service runs without it and stays fully stateless.
package history

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cutout/service/internal/response"
)

// defaultListLimit bounds the number of records returned by List.
const defaultListLimit = 50

// Record is one processed-image entry.
type Record struct {
	ID           string    `json:"id"`
	OriginalName string    `json:"originalName"`
	ResultURL    string    `json:"resultUrl"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Repository handles all history database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Record inserts one processed-image entry.
func (r *Repository) Record(ctx context.Context, originalName, resultURL string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO images (original_name, result_url) VALUES ($1, $2)`,
		originalName, resultURL,
	)
	if err != nil {
		return fmt.Errorf("insert image record: %w", err)
	}
	return nil
}

// List returns the most recent records, newest first.
func (r *Repository) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, original_name, result_url, created_at
		 FROM images ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list image records: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.OriginalName, &rec.ResultURL, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan image record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate image records: %w", err)
	}
	return records, nil
}

// Handler holds HTTP handlers for the history endpoints.
type Handler struct {
	repo *Repository
}

// NewHandler creates a new history Handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// List godoc
//
//	@Summary		List processed images
//	@Description	Returns recently processed images, newest first. Available
//	@Description	only when a history database is configured.
//	@Tags			history
//	@Produce		json
//	@Success		200	{array}		Record
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/images [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.repo.List(r.Context(), defaultListLimit)
	if err != nil {
		response.InternalError(w, "Could not list processed images.")
		return
	}
	response.JSON(w, http.StatusOK, records)
}
