package sandbox

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rentbooks/rentbooks/internal/core/domain"
	"github.com/rentbooks/rentbooks/internal/dto"
)

// propertyHandler serves /api/properties/. The sandbox does not model
// per-user ownership; every authenticated user sees the same data set.
type propertyHandler struct {
	store *store
}

func newPropertyHandler(st *store) *propertyHandler {
	return &propertyHandler{store: st}
}

func registerPropertyRoutes(rg *gin.RouterGroup, st *store) {
	h := newPropertyHandler(st)
	properties := rg.Group("/properties")
	{
		properties.GET("/", h.list)
		properties.POST("/", h.create)
		properties.PUT("/:id/", h.update)
	}
}

func (h *propertyHandler) list(c *gin.Context) {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	out := make([]domain.Property, 0, len(h.store.properties))
	for _, p := range h.store.properties {
		if !p.IsDeleted {
			out = append(out, p)
		}
	}
	sortByID(out)
	c.JSON(http.StatusOK, out)
}

func (h *propertyHandler) create(c *gin.Context) {
	var req dto.PropertyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if err := dto.Validate(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.store.mu.Lock()
	p := domain.Property{
		ID:      h.store.allocID(),
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		State:   req.State,
		Zip:     req.Zip,
	}
	h.store.properties[p.ID] = p
	h.store.mu.Unlock()

	c.JSON(http.StatusCreated, p)
}

// propertyPatch lets the update endpoint accept both a full payload and the
// soft-delete body {"is_deleted": true}.
type propertyPatch struct {
	dto.PropertyPayload
	IsDeleted *bool `json:"is_deleted"`
}

func (h *propertyHandler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property id"})
		return
	}
	var req propertyPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	p, ok := h.store.properties[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	if req.IsDeleted != nil && *req.IsDeleted {
		p.IsDeleted = true
		h.store.properties[id] = p
		c.JSON(http.StatusOK, p)
		return
	}

	if err := dto.Validate(req.PropertyPayload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p.Name = req.Name
	p.Address = req.Address
	p.City = req.City
	p.State = req.State
	p.Zip = req.Zip
	h.store.properties[id] = p
	c.JSON(http.StatusOK, p)
}
