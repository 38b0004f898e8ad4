package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/tracker/api/http/presenter"
	"github.com/artem13815/tracker/pkg/item"
	"github.com/artem13815/tracker/pkg/logger"
	"github.com/artem13815/tracker/pkg/metrics"
)

type ItemsHandler struct {
	useCase item.UseCase
	log     *logger.Logger
	metrics *metrics.Metrics
}

func NewItemsHandler(useCase item.UseCase, log *logger.Logger, m *metrics.Metrics) *ItemsHandler {
	return &ItemsHandler{useCase: useCase, log: log.With("handler", "items"), metrics: m}
}

// List returns items matching q, newest first.
// @Summary List items
// @Tags    items
// @Produce json
// @Param   q query string false "substring of title, status or owner"
// @Security BearerAuth
// @Success 200 {array} item.Item
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /items [get]
func (h *ItemsHandler) List(c *fiber.Ctx) error {
	items, err := h.useCase.List(c.UserContext(), c.Query("q"))
	if err != nil {
		return respondError(c, h.log, err, "failed to list items")
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// Create adds a single item.
// @Summary Create item
// @Tags    items
// @Accept  json
// @Produce json
// @Param   input body item.NewItem true "item"
// @Security BearerAuth
// @Success 201 {object} item.Item
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /items [post]
func (h *ItemsHandler) Create(c *fiber.Ctx) error {
	var req item.NewItem
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	created, err := h.useCase.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.log, err, "failed to create item")
	}
	h.metrics.ItemsInserted("single", 1)
	return presenter.JSON(c, http.StatusCreated, created)
}

// Update merges the supplied fields into an existing item.
// @Summary Update item
// @Tags    items
// @Accept  json
// @Produce json
// @Param   id    path int    true "item id"
// @Param   input body object true "partial {title,status,owner}"
// @Security BearerAuth
// @Success 200 {object} item.Item
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /items/{id} [put]
func (h *ItemsHandler) Update(c *fiber.Ctx) error {
	id, ok := itemID(c)
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	var patch item.Patch
	if body := bytes.TrimSpace(c.Body()); len(body) > 0 {
		if err := json.Unmarshal(body, &patch); err != nil {
			return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
		}
	}
	updated, err := h.useCase.Update(c.UserContext(), id, patch)
	if err != nil {
		return respondError(c, h.log, err, "failed to update item")
	}
	return presenter.JSON(c, http.StatusOK, updated)
}

// Delete removes an item. Missing ids are not an error.
// @Summary Delete item
// @Tags    items
// @Produce json
// @Param   id path int true "item id"
// @Security BearerAuth
// @Success 200 {object} presenter.OKResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /items/{id} [delete]
func (h *ItemsHandler) Delete(c *fiber.Ctx) error {
	id, ok := itemID(c)
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	if err := h.useCase.Delete(c.UserContext(), id); err != nil {
		return respondError(c, h.log, err, "failed to delete item")
	}
	return presenter.OK(c, http.StatusOK)
}

type bulkRequest struct {
	Rows []json.RawMessage `json:"rows"`
}

type bulkResponse struct {
	Inserted int `json:"inserted"`
}

// Bulk inserts many items; rows without a title are skipped.
// @Summary Bulk create items
// @Tags    items
// @Accept  json
// @Produce json
// @Param   input body bulkRequest true "{rows:[{title,status,owner}]}"
// @Security BearerAuth
// @Success 200 {object} bulkResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /items/bulk [post]
func (h *ItemsHandler) Bulk(c *fiber.Ctx) error {
	var req bulkRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "rows must be an array with at least 1 item")
	}
	if len(req.Rows) == 0 {
		return presenter.Error(c, http.StatusBadRequest, "rows must be an array with at least 1 item")
	}

	rows := make([]item.NewItem, 0, len(req.Rows))
	for _, raw := range req.Rows {
		row, ok := decodeBulkRow(raw)
		if !ok {
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return presenter.JSON(c, http.StatusOK, bulkResponse{Inserted: 0})
	}

	inserted, err := h.useCase.BulkCreate(c.UserContext(), rows)
	h.metrics.ItemsInserted("bulk", inserted)
	if err != nil {
		h.log.Warn("bulk insert stopped", "inserted", inserted, "rows", len(rows))
		return respondError(c, h.log, err, "failed to insert items")
	}
	return presenter.JSON(c, http.StatusOK, bulkResponse{Inserted: inserted})
}

// decodeBulkRow accepts any JSON object; scalar fields are taken as their
// string form so {"title":"C","status":5} still yields a row.
func decodeBulkRow(raw json.RawMessage) (item.NewItem, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return item.NewItem{}, false
	}
	return item.NewItem{
		Title:  scalarString(fields["title"]),
		Status: scalarString(fields["status"]),
		Owner:  scalarString(fields["owner"]),
	}, true
}

// scalarString renders a JSON string, number or bool as text. Absent, null,
// objects and arrays become "".
func scalarString(raw json.RawMessage) string {
	var v any
	if len(raw) == 0 || json.Unmarshal(raw, &v) != nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// Keep the literal so 10 stays "10" rather than "1e+01".
		return string(bytes.TrimSpace(raw))
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func itemID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
