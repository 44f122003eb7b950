// Package api serves the catalog over HTTP as JSON.
package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mesh-intelligence/catalog/internal/export"
	"github.com/mesh-intelligence/catalog/pkg/types"
)

// ItemHandler holds the catalog dependency for item operations.
type ItemHandler struct {
	catalog types.Catalog
	logger  *slog.Logger
}

// NewItemHandler creates a new ItemHandler backed by catalog.
func NewItemHandler(catalog types.Catalog, logger *slog.Logger) *ItemHandler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ItemHandler{catalog: catalog, logger: logger}
}

// ListItems returns the items matching the query parameters, each naming a
// filter key. With no parameters every item that is not deleted is returned.
func (h *ItemHandler) ListItems(c *gin.Context) {
	items, err := h.query(c, nil)
	if err != nil {
		h.respondError(c, "list items", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetItem returns one item by ID, deleted or not.
func (h *ItemHandler) GetItem(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}
	item, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, "get item", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateItem stores the item in the request body and returns it with its
// assigned ID.
func (h *ItemHandler) CreateItem(c *gin.Context) {
	var item types.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item: " + err.Error()})
		return
	}
	if _, err := h.catalog.Insert(c.Request.Context(), &item); err != nil {
		h.respondError(c, "create item", err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// ReplaceItem overwrites the stored item with the request body. The path
// ID wins over any id in the body.
func (h *ItemHandler) ReplaceItem(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}
	var item types.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item: " + err.Error()})
		return
	}
	item.ID = id

	ctx := c.Request.Context()
	if err := h.catalog.Replace(ctx, &item); err != nil {
		h.respondError(c, "replace item", err)
		return
	}
	stored, err := h.catalog.Get(ctx, id)
	if err != nil {
		h.respondError(c, "get item", err)
		return
	}
	c.JSON(http.StatusOK, stored)
}

// UpdateItem applies a JSON object of field name to raw value.
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}
	var updates map[string]string
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "updates must be an object of string values: " + err.Error()})
		return
	}
	item, err := h.catalog.UpdateFields(c.Request.Context(), id, updates)
	if err != nil {
		h.respondError(c, "update item", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteItem soft-deletes one item.
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}
	if err := h.catalog.SoftDelete(c.Request.Context(), id); err != nil {
		h.respondError(c, "delete item", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportItems streams the matching items as a CSV or JSONL attachment.
// The format parameter selects the encoding; the rest are filter keys.
func (h *ItemHandler) ExportItems(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	items, err := h.query(c, map[string]bool{"format": true})
	if err != nil {
		h.respondError(c, "export items", err)
		return
	}

	c.Header("Content-Type", format.ContentType())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="items.%s"`, format))
	c.Status(http.StatusOK)
	if err := export.Write(c.Writer, format, items); err != nil {
		h.logger.Error("export items failed", "error", err, "request_id", c.GetString(requestIDKey))
	}
}

// query runs List or Filter depending on whether the request carries
// filter parameters. Keys in skip are not filter keys. Repeated keys use
// the first value.
func (h *ItemHandler) query(c *gin.Context, skip map[string]bool) ([]types.Item, error) {
	values := make(map[string]string)
	for key, vals := range c.Request.URL.Query() {
		if skip[key] || len(vals) == 0 {
			continue
		}
		values[key] = vals[0]
	}

	ctx := c.Request.Context()
	if len(values) == 0 {
		return h.catalog.List(ctx)
	}
	filter, err := types.ParseFilter(values)
	if err != nil {
		return nil, err
	}
	return h.catalog.Filter(ctx, filter)
}

// itemID parses the :id path parameter, writing a 400 response when it is
// not a positive integer.
func (h *ItemHandler) itemID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.respondError(c, "parse id", &types.CoercionError{Field: "id", Value: raw, Err: types.ErrInvalidID})
		return 0, false
	}
	return id, true
}
