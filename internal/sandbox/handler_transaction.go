package sandbox

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rentbooks/rentbooks/internal/core/domain"
	"github.com/rentbooks/rentbooks/internal/dto"
)

// transactionHandler serves /api/transactions/. Lists are scoped by
// property_id plus exactly one of account_id or entity_id; writes arrive
// with the relations flattened and are served back nested.
type transactionHandler struct {
	store *store
}

func newTransactionHandler(st *store) *transactionHandler {
	return &transactionHandler{store: st}
}

func registerTransactionRoutes(rg *gin.RouterGroup, st *store) {
	h := newTransactionHandler(st)
	transactions := rg.Group("/transactions")
	{
		transactions.GET("/", h.list)
		transactions.POST("/", h.create)
		transactions.PUT("/:id/", h.update)
	}
}

func (h *transactionHandler) list(c *gin.Context) {
	propertyID, ok := propertyIDParam(c)
	if !ok {
		return
	}
	accountID, _ := strconv.ParseInt(c.Query("account_id"), 10, 64)
	entityID, _ := strconv.ParseInt(c.Query("entity_id"), 10, 64)

	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	out := make([]domain.Transaction, 0)
	for _, t := range h.store.transactions {
		if t.PropertyID != propertyID || t.IsDeleted {
			continue
		}
		if accountID != 0 && (t.Account == nil || t.Account.ID != accountID) {
			continue
		}
		if entityID != 0 && (t.Entity == nil || t.Entity.ID != entityID) {
			continue
		}
		out = append(out, t)
	}
	sortByID(out)
	c.JSON(http.StatusOK, out)
}

// create accepts either a single payload object or an array of payloads.
// An array creates the whole batch atomically and answers with an array,
// mirroring the single/bulk response shapes clients must handle.
func (h *transactionHandler) create(c *gin.Context) {
	propertyID, ok := propertyIDParam(c)
	if !ok {
		return
	}
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	var reqs []dto.TransactionPayload
	bulk := len(bytes.TrimSpace(raw)) > 0 && bytes.TrimSpace(raw)[0] == '['
	if bulk {
		if err := json.Unmarshal(raw, &reqs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
		if len(reqs) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Empty transaction batch"})
			return
		}
	} else {
		var req dto.TransactionPayload
		if err := json.Unmarshal(raw, &req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
		reqs = []dto.TransactionPayload{req}
	}
	for _, req := range reqs {
		if err := dto.Validate(req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	if _, exists := h.store.properties[propertyID]; !exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown property"})
		return
	}
	created := make([]domain.Transaction, 0, len(reqs))
	for _, req := range reqs {
		t, errMsg := h.materializeLocked(propertyID, req)
		if errMsg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": errMsg})
			return
		}
		created = append(created, t)
	}
	// All refs resolved; commit the batch.
	for _, t := range created {
		h.store.transactions[t.ID] = t
	}
	if bulk {
		c.JSON(http.StatusCreated, created)
		return
	}
	c.JSON(http.StatusCreated, created[0])
}

// materializeLocked resolves the flattened refs and allocates the record.
// Caller holds the store mutex. A non-empty second return is the client
// error message.
func (h *transactionHandler) materializeLocked(propertyID int64, req dto.TransactionPayload) (domain.Transaction, string) {
	accountRef := h.store.accountRefLocked(req.AccountID)
	if accountRef == nil {
		return domain.Transaction{}, "Unknown account"
	}
	var entityRef *domain.EntityRef
	if req.EntityID != 0 {
		entityRef = h.store.entityRefLocked(req.EntityID)
		if entityRef == nil {
			return domain.Transaction{}, "Unknown entity"
		}
	}
	return domain.Transaction{
		ID:         h.store.allocID(),
		PropertyID: propertyID,
		Date:       req.Date,
		Account:    accountRef,
		Entity:     entityRef,
		Type:       req.Type,
		Amount:     req.Amount,
		Memo:       req.Memo,
	}, ""
}

type transactionPatch struct {
	dto.TransactionPayload
	IsDeleted *bool `json:"is_deleted"`
}

func (h *transactionHandler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction id"})
		return
	}
	var req transactionPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	t, ok := h.store.transactions[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}

	if req.IsDeleted != nil && *req.IsDeleted {
		t.IsDeleted = true
		h.store.transactions[id] = t
		c.JSON(http.StatusOK, t)
		return
	}

	if err := dto.Validate(req.TransactionPayload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	accountRef := h.store.accountRefLocked(req.AccountID)
	if accountRef == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown account"})
		return
	}
	var entityRef *domain.EntityRef
	if req.EntityID != 0 {
		entityRef = h.store.entityRefLocked(req.EntityID)
		if entityRef == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown entity"})
			return
		}
	}
	t.Date = req.Date
	t.Account = accountRef
	t.Entity = entityRef
	t.Type = req.Type
	t.Amount = req.Amount
	t.Memo = req.Memo
	h.store.transactions[id] = t
	c.JSON(http.StatusOK, t)
}
