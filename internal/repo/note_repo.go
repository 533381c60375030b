package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thechaoticengineer/CloudScribe/internal/domain"
)

var (
	// ErrNotFound is returned when no row matches the given id.
	ErrNotFound = errors.New("note not found")
	// ErrConflict is returned when an insert collides with an existing row.
	ErrConflict = errors.New("note already exists")
)

// NoteRepo is the storage contract for notes. GetByID intentionally does not
// filter by owner: the service checks existence before ownership and needs
// to see rows it may then refuse to return.
type NoteRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Note, error)
	ListPage(ctx context.Context, owner uuid.UUID, offset, limit int) ([]domain.Note, int, error)
	Insert(ctx context.Context, n domain.Note) error
	Update(ctx context.Context, n domain.Note) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PGNoteRepo struct {
	db *pgxpool.Pool
}

func NewPGNoteRepo(db *pgxpool.Pool) *PGNoteRepo {
	return &PGNoteRepo{db: db}
}

func (r *PGNoteRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Note, error) {
	query := `
		SELECT id, title, content, owner_id, created_utc, modified_utc
		FROM notes WHERE id = $1`
	var n domain.Note
	err := r.db.QueryRow(ctx, query, id).Scan(
		&n.ID, &n.Title, &n.Content, &n.OwnerID, &n.CreatedUtc, &n.ModifiedUtc,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Note{}, ErrNotFound
	}
	if err != nil {
		return domain.Note{}, fmt.Errorf("get note: %w", err)
	}
	return n, nil
}

// ListPage returns one page of the owner's notes, newest first, plus the
// owner's total note count.
func (r *PGNoteRepo) ListPage(ctx context.Context, owner uuid.UUID, offset, limit int) ([]domain.Note, int, error) {
	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM notes WHERE owner_id = $1`, owner,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count notes: %w", err)
	}

	query := `
		SELECT id, title, content, owner_id, created_utc, modified_utc
		FROM notes WHERE owner_id = $1
		ORDER BY created_utc DESC
		OFFSET $2 LIMIT $3`
	rows, err := r.db.Query(ctx, query, owner, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var list []domain.Note
	for rows.Next() {
		var n domain.Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.OwnerID, &n.CreatedUtc, &n.ModifiedUtc); err != nil {
			return nil, 0, fmt.Errorf("scan note: %w", err)
		}
		list = append(list, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate notes: %w", err)
	}
	return list, total, nil
}

func (r *PGNoteRepo) Insert(ctx context.Context, n domain.Note) error {
	query := `
		INSERT INTO notes (id, title, content, owner_id, created_utc, modified_utc)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query, n.ID, n.Title, n.Content, n.OwnerID, n.CreatedUtc, n.ModifiedUtc)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

func (r *PGNoteRepo) Update(ctx context.Context, n domain.Note) error {
	query := `
		UPDATE notes SET title = $2, content = $3, modified_utc = $4
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, n.ID, n.Title, n.Content, n.ModifiedUtc)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGNoteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (code 23505).
func isUniqueViolation(err error) bool {
	var pge *pgconn.PgError
	if errors.As(err, &pge) {
		return pge.Code == "23505"
	}
	return false
}
