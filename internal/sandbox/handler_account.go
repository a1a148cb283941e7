package sandbox

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rentbooks/rentbooks/internal/core/domain"
	"github.com/rentbooks/rentbooks/internal/dto"
)

// accountHandler serves /api/accounts/. The collection is scoped by the
// property_id query parameter on reads and creates.
type accountHandler struct {
	store *store
}

func newAccountHandler(st *store) *accountHandler {
	return &accountHandler{store: st}
}

func registerAccountRoutes(rg *gin.RouterGroup, st *store) {
	h := newAccountHandler(st)
	accounts := rg.Group("/accounts")
	{
		accounts.GET("/", h.list)
		accounts.POST("/", h.create)
		accounts.PUT("/:id/", h.update)
	}
}

func (h *accountHandler) list(c *gin.Context) {
	propertyID, ok := propertyIDParam(c)
	if !ok {
		return
	}
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	out := make([]domain.Account, 0)
	for _, a := range h.store.accounts {
		if a.PropertyID == propertyID && !a.IsDeleted {
			out = append(out, a)
		}
	}
	sortByID(out)
	c.JSON(http.StatusOK, out)
}

func (h *accountHandler) create(c *gin.Context) {
	propertyID, ok := propertyIDParam(c)
	if !ok {
		return
	}
	var req dto.AccountPayload
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
	a := domain.Account{
		ID:          h.store.allocID(),
		PropertyID:  propertyID,
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
	}
	h.store.accounts[a.ID] = a
	c.JSON(http.StatusCreated, a)
}

type accountPatch struct {
	dto.AccountPayload
	IsDeleted *bool `json:"is_deleted"`
}

func (h *accountHandler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account id"})
		return
	}
	var req accountPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	a, ok := h.store.accounts[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}

	if req.IsDeleted != nil && *req.IsDeleted {
		a.IsDeleted = true
		h.store.accounts[id] = a
		c.JSON(http.StatusOK, a)
		return
	}

	if err := dto.Validate(req.AccountPayload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a.Name = req.Name
	a.Type = req.Type
	a.Description = req.Description
	h.store.accounts[id] = a
	c.JSON(http.StatusOK, a)
}
