package item

import (
	"context"
	"strings"
	"time"
)

// UseCase инкапсулирует приложение для работы с задачами.
type UseCase interface {
	List(ctx context.Context, query string) ([]Item, error)
	Create(ctx context.Context, in NewItem) (Item, error)
	Update(ctx context.Context, id int64, p Patch) (Item, error)
	Delete(ctx context.Context, id int64) error
	BulkCreate(ctx context.Context, rows []NewItem) (int, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) UseCase {
	return &service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) List(ctx context.Context, query string) ([]Item, error) {
	items, err := s.repo.List(ctx, strings.TrimSpace(query))
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

func (s *service) Create(ctx context.Context, in NewItem) (Item, error) {
	it, ok := normalize(in)
	if !ok {
		return Item{}, ErrValidation("title is required")
	}
	now := s.now()
	it.CreatedAt, it.UpdatedAt = now, now
	return s.repo.Create(ctx, it)
}

func (s *service) Update(ctx context.Context, id int64, p Patch) (Item, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Item{}, err
	}

	existing.Title = strings.TrimSpace(p.Title.Or(existing.Title))
	existing.Status = strings.TrimSpace(p.Status.Or(existing.Status))
	existing.Owner = strings.TrimSpace(p.Owner.Or(existing.Owner))
	if existing.Title == "" {
		return Item{}, ErrValidation("title is required")
	}
	existing.UpdatedAt = s.now()
	return s.repo.Update(ctx, existing)
}

// Delete is idempotent: a missing id is not an error.
func (s *service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// BulkCreate inserts rows one by one with a shared timestamp, skipping rows
// without a title. On a store fault it returns the count inserted so far.
func (s *service) BulkCreate(ctx context.Context, rows []NewItem) (int, error) {
	if len(rows) == 0 {
		return 0, ErrValidation("rows must be an array with at least 1 item")
	}
	now := s.now()
	inserted := 0
	for _, row := range rows {
		it, ok := normalize(row)
		if !ok {
			continue
		}
		it.CreatedAt, it.UpdatedAt = now, now
		if _, err := s.repo.Create(ctx, it); err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

func normalize(in NewItem) (Item, bool) {
	it := Item{
		Title:  strings.TrimSpace(in.Title),
		Status: strings.TrimSpace(in.Status),
		Owner:  strings.TrimSpace(in.Owner),
	}
	// Only a missing status defaults; whitespace is kept as sent, trimmed to "".
	if in.Status == "" {
		it.Status = StatusNew
	}
	return it, it.Title != ""
}
