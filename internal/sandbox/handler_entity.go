package sandbox

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rentbooks/rentbooks/internal/core/domain"
	"github.com/rentbooks/rentbooks/internal/dto"
)

// entityHandler serves /api/entities/, the tenant and vendor counterparties.
type entityHandler struct {
	store *store
}

func newEntityHandler(st *store) *entityHandler {
	return &entityHandler{store: st}
}

func registerEntityRoutes(rg *gin.RouterGroup, st *store) {
	h := newEntityHandler(st)
	entities := rg.Group("/entities")
	{
		entities.GET("/", h.list)
		entities.POST("/", h.create)
		entities.PUT("/:id/", h.update)
	}
}

func (h *entityHandler) list(c *gin.Context) {
	propertyID, ok := propertyIDParam(c)
	if !ok {
		return
	}
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	out := make([]domain.Entity, 0)
	for _, e := range h.store.entities {
		if e.PropertyID == propertyID && !e.IsDeleted {
			out = append(out, e)
		}
	}
	sortByID(out)
	c.JSON(http.StatusOK, out)
}

func (h *entityHandler) create(c *gin.Context) {
	propertyID, ok := propertyIDParam(c)
	if !ok {
		return
	}
	var req dto.EntityPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if err := dto.Validate(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	if _, exists := h.store.properties[propertyID]; !exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown property"})
		return
	}
	e := domain.Entity{
		ID:         h.store.allocID(),
		PropertyID: propertyID,
		Name:       req.Name,
		Kind:       req.Kind,
		Email:      req.Email,
		Phone:      req.Phone,
	}
	h.store.entities[e.ID] = e
	c.JSON(http.StatusCreated, e)
}

type entityPatch struct {
	dto.EntityPayload
	IsDeleted *bool `json:"is_deleted"`
}

func (h *entityHandler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entity id"})
		return
	}
	var req entityPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	e, ok := h.store.entities[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Entity not found"})
		return
	}

	if req.IsDeleted != nil && *req.IsDeleted {
		e.IsDeleted = true
		h.store.entities[id] = e
		c.JSON(http.StatusOK, e)
		return
	}

	if err := dto.Validate(req.EntityPayload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	e.Name = req.Name
	e.Kind = req.Kind
	e.Email = req.Email
	e.Phone = req.Phone
	h.store.entities[id] = e
	c.JSON(http.StatusOK, e)
}
