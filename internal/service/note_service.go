package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/thechaoticengineer/CloudScribe/internal/domain"
	"github.com/thechaoticengineer/CloudScribe/internal/repo"
	"github.com/thechaoticengineer/CloudScribe/internal/result"
)

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
)

// NoteService owns the per-user authorization rules for notes. The current
// user is always an explicit parameter, resolved once by the transport layer.
type NoteService struct {
	repo repo.NoteRepo
}

func NewNoteService(r repo.NoteRepo) *NoteService {
	return &NoteService{repo: r}
}

// GetAll returns one page of the user's notes, newest first. An empty page
// is a success, not an error. Non-positive page arguments fall back to the
// defaults (1, 10).
func (s *NoteService) GetAll(ctx context.Context, user uuid.UUID, pageNumber, pageSize int) result.Result[result.Page[domain.Note]] {
	if pageNumber < 1 {
		pageNumber = DefaultPageNumber
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	items, total, err := s.repo.ListPage(ctx, user, (pageNumber-1)*pageSize, pageSize)
	if err != nil {
		return result.Fail[result.Page[domain.Note]](storageFailure(err))
	}
	return result.Ok(result.Page[domain.Note]{
		Items:      items,
		PageNumber: pageNumber,
		PageSize:   pageSize,
		TotalCount: total,
	})
}

// GetById checks existence before ownership, so a nonexistent id yields
// NotFound even for a non-owner.
func (s *NoteService) GetById(ctx context.Context, user, id uuid.UUID) result.Result[domain.Note] {
	note, err := s.findOwned(ctx, user, id)
	if err != nil {
		return result.Fail[domain.Note](err)
	}
	return result.Ok(note)
}

func (s *NoteService) Create(ctx context.Context, user uuid.UUID, title, content string) result.Result[domain.Note] {
	note, derr := domain.NewNote(title, content, user)
	if derr != nil {
		return result.Fail[domain.Note](derr)
	}
	if err := s.repo.Insert(ctx, note); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return result.Fail[domain.Note](result.Conflict("Notes.Conflict", "a note with this id already exists"))
		}
		return result.Fail[domain.Note](storageFailure(err))
	}
	return result.Ok(note)
}

func (s *NoteService) Update(ctx context.Context, user, id uuid.UUID, title, content string) result.Result[domain.Note] {
	note, rerr := s.findOwned(ctx, user, id)
	if rerr != nil {
		return result.Fail[domain.Note](rerr)
	}
	if derr := note.Update(title, content); derr != nil {
		return result.Fail[domain.Note](derr)
	}
	if err := s.repo.Update(ctx, note); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return result.Fail[domain.Note](notFound(id))
		}
		return result.Fail[domain.Note](storageFailure(err))
	}
	return result.Ok(note)
}

func (s *NoteService) Delete(ctx context.Context, user, id uuid.UUID) result.Result[result.Void] {
	if _, rerr := s.findOwned(ctx, user, id); rerr != nil {
		return result.Fail[result.Void](rerr)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return result.Fail[result.Void](notFound(id))
		}
		return result.Fail[result.Void](storageFailure(err))
	}
	return result.Ok(result.Void{})
}

// findOwned fetches a note and enforces the existence-then-ownership order:
// NotFound wins over Forbidden for ids that do not exist at all.
func (s *NoteService) findOwned(ctx context.Context, user, id uuid.UUID) (domain.Note, *result.Error) {
	note, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return domain.Note{}, notFound(id)
		}
		return domain.Note{}, storageFailure(err)
	}
	if note.OwnerID != user {
		return domain.Note{}, result.Forbidden("Notes.Forbidden", "you don't have access to this note")
	}
	return note, nil
}

func notFound(id uuid.UUID) *result.Error {
	return result.NotFound("Notes.NotFound", fmt.Sprintf("note %s doesn't exist", id))
}

func storageFailure(err error) *result.Error {
	return result.Failure("Notes.Failure", err.Error())
}
