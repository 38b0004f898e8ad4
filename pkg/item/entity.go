package item

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Conventional statuses offered by the frontend. The store accepts any string.
const (
	StatusNew        = "New"
	StatusInProgress = "In Progress"
	StatusDone       = "Done"
	StatusBlocked    = "Blocked"
)

// Item is a tracked task.
type Item struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewItem is the input of Create and of each BulkCreate row.
type NewItem struct {
	Title  string `json:"title"`
	Status string `json:"status"`
	Owner  string `json:"owner"`
}

// Field is an optional patch value: Set distinguishes "absent" from
// "present with the zero value". JSON null counts as absent.
type Field[T any] struct {
	Set   bool
	Value T
}

// Some returns a present Field.
func Some[T any](v T) Field[T] { return Field[T]{Set: true, Value: v} }

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*f = Field[T]{}
		return nil
	}
	if err := json.Unmarshal(data, &f.Value); err != nil {
		return err
	}
	f.Set = true
	return nil
}

// Or returns the value when set, otherwise def.
func (f Field[T]) Or(def T) T {
	if f.Set {
		return f.Value
	}
	return def
}

// Patch is a partial update; only set fields overwrite the stored row.
type Patch struct {
	Title  Field[string] `json:"title"`
	Status Field[string] `json:"status"`
	Owner  Field[string] `json:"owner"`
}

var ErrNotFound = errors.New("item not found")

// ErrValidation простая ошибка валидации.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

// Repository is the Item Store port. Each call is a single statement.
type Repository interface {
	List(ctx context.Context, query string) ([]Item, error)
	GetByID(ctx context.Context, id int64) (Item, error)
	Create(ctx context.Context, it Item) (Item, error)
	Update(ctx context.Context, it Item) (Item, error)
	Delete(ctx context.Context, id int64) error
}
