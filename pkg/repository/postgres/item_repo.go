package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/artem13815/tracker/pkg/item"
)

// ItemRepository хранит задачи.
type ItemRepository struct {
	db DBTX
}

func NewItemRepository(db DBTX) *ItemRepository {
	return &ItemRepository{db: db}
}

const itemColumns = `id, title, status, owner, created_at, updated_at`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// List returns items newest first; a non-empty query matches title, status or owner
// as a case-insensitive substring.
func (r *ItemRepository) List(ctx context.Context, query string) ([]item.Item, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if query == "" {
		rows, err = r.db.QueryContext(ctx, `SELECT `+itemColumns+` FROM items ORDER BY id DESC`)
	} else {
		pattern := "%" + likeEscaper.Replace(query) + "%"
		rows, err = r.db.QueryContext(ctx, `
			SELECT `+itemColumns+` FROM items
			WHERE title ILIKE $1 OR status ILIKE $1 OR owner ILIKE $1
			ORDER BY id DESC
		`, pattern)
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	res := []item.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return res, nil
}

func (r *ItemRepository) GetByID(ctx context.Context, id int64) (item.Item, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
	return scanItem(row)
}

func (r *ItemRepository) Create(ctx context.Context, it item.Item) (item.Item, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO items (title, status, owner, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+itemColumns,
		it.Title, it.Status, it.Owner, it.CreatedAt, it.UpdatedAt)
	return scanItem(row)
}

// Update overwrites title, status, owner and updated_at; last write wins.
func (r *ItemRepository) Update(ctx context.Context, it item.Item) (item.Item, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE items SET title = $1, status = $2, owner = $3, updated_at = $4
		WHERE id = $5
		RETURNING `+itemColumns,
		it.Title, it.Status, it.Owner, it.UpdatedAt, it.ID)
	return scanItem(row)
}

func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (item.Item, error) {
	var it item.Item
	if err := s.Scan(&it.ID, &it.Title, &it.Status, &it.Owner, &it.CreatedAt, &it.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return item.Item{}, item.ErrNotFound
		}
		return item.Item{}, fmt.Errorf("db error: %w", err)
	}
	it.CreatedAt = it.CreatedAt.UTC()
	it.UpdatedAt = it.UpdatedAt.UTC()
	return it, nil
}
