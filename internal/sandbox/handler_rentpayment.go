package sandbox

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rentbooks/rentbooks/internal/core/domain"
	"github.com/rentbooks/rentbooks/internal/dto"
)

// rentPaymentHandler serves /api/rent-payments/. Lists accept an optional
// year+month period filter alongside the property scope.
type rentPaymentHandler struct {
	store *store
}

func newRentPaymentHandler(st *store) *rentPaymentHandler {
	return &rentPaymentHandler{store: st}
}

func registerRentPaymentRoutes(rg *gin.RouterGroup, st *store) {
	h := newRentPaymentHandler(st)
	payments := rg.Group("/rent-payments")
	{
		payments.GET("/", h.list)
		payments.POST("/", h.create)
		payments.PUT("/:id/", h.update)
	}
}

func (h *rentPaymentHandler) list(c *gin.Context) {
	propertyID, ok := propertyIDParam(c)
	if !ok {
		return
	}
	year, _ := strconv.Atoi(c.Query("year"))
	month, _ := strconv.Atoi(c.Query("month"))

	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	out := make([]domain.RentPayment, 0)
	for _, p := range h.store.payments {
		if p.PropertyID != propertyID || p.IsDeleted {
			continue
		}
		if year != 0 && month != 0 && (p.Year != year || p.Month != month) {
			continue
		}
		out = append(out, p)
	}
	sortByID(out)
	c.JSON(http.StatusOK, out)
}

func (h *rentPaymentHandler) create(c *gin.Context) {
	propertyID, ok := propertyIDParam(c)
	if !ok {
		return
	}
	var req dto.RentPaymentPayload
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
	entityRef := h.store.entityRefLocked(req.EntityID)
	if entityRef == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown entity"})
		return
	}
	p := domain.RentPayment{
		ID:         h.store.allocID(),
		PropertyID: propertyID,
		Entity:     entityRef,
		Year:       req.Year,
		Month:      req.Month,
		Amount:     req.Amount,
		PaidOn:     req.PaidOn,
		Memo:       req.Memo,
	}
	h.store.payments[p.ID] = p
	c.JSON(http.StatusCreated, p)
}

type rentPaymentPatch struct {
	dto.RentPaymentPayload
	IsDeleted *bool `json:"is_deleted"`
}

func (h *rentPaymentHandler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rent payment id"})
		return
	}
	var req rentPaymentPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	p, ok := h.store.payments[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Rent payment not found"})
		return
	}

	if req.IsDeleted != nil && *req.IsDeleted {
		p.IsDeleted = true
		h.store.payments[id] = p
		c.JSON(http.StatusOK, p)
		return
	}

	if err := dto.Validate(req.RentPaymentPayload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entityRef := h.store.entityRefLocked(req.EntityID)
	if entityRef == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown entity"})
		return
	}
	p.Entity = entityRef
	p.Year = req.Year
	p.Month = req.Month
	p.Amount = req.Amount
	p.PaidOn = req.PaidOn
	p.Memo = req.Memo
	h.store.payments[id] = p
	c.JSON(http.StatusOK, p)
}
