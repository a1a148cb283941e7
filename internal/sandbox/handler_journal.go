package sandbox

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rentbooks/rentbooks/internal/core/domain"
	"github.com/rentbooks/rentbooks/internal/dto"
	"github.com/rentbooks/rentbooks/internal/utils/accounting"
)

// journalHandler serves /api/journals/. Incoming line payloads carry
// account_id fields; responses resolve them back to nested account refs.
// The balance rule is enforced here the same way the client enforces it,
// so an unbalanced journal that slips past the client is still rejected.
type journalHandler struct {
	store *store
}

func newJournalHandler(st *store) *journalHandler {
	return &journalHandler{store: st}
}

func registerJournalRoutes(rg *gin.RouterGroup, st *store) {
	h := newJournalHandler(st)
	journals := rg.Group("/journals")
	{
		journals.GET("/", h.list)
		journals.POST("/", h.create)
		journals.PUT("/:id/", h.update)
	}
}

func (h *journalHandler) list(c *gin.Context) {
	propertyID, ok := propertyIDParam(c)
	if !ok {
		return
	}
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	out := make([]domain.Journal, 0)
	for _, j := range h.store.journals {
		if j.PropertyID == propertyID && !j.IsDeleted {
			out = append(out, j)
		}
	}
	sortByID(out)
	c.JSON(http.StatusOK, out)
}

// materializeLines turns incoming line payloads into domain lines with
// nested account refs. Callers must hold the store mutex.
func (h *journalHandler) materializeLinesLocked(lines []dto.JournalLinePayload) ([]domain.JournalLine, bool) {
	out := make([]domain.JournalLine, 0, len(lines))
	for _, lp := range lines {
		ref := h.store.accountRefLocked(lp.AccountID)
		if ref == nil {
			return nil, false
		}
		out = append(out, domain.JournalLine{
			ID:      h.store.allocID(),
			Account: ref,
			Type:    lp.Type,
			Amount:  lp.Amount,
			Memo:    lp.Memo,
		})
	}
	return out, true
}

func (h *journalHandler) create(c *gin.Context) {
	propertyID, ok := propertyIDParam(c)
	if !ok {
		return
	}
	var req dto.JournalPayload
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
	lines, ok := h.materializeLinesLocked(req.Lines)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown account in journal lines"})
		return
	}
	if err := accounting.ValidateJournalBalance(lines); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	j := domain.Journal{
		ID:         h.store.allocID(),
		PropertyID: propertyID,
		Date:       req.Date,
		Memo:       req.Memo,
		Lines:      lines,
	}
	h.store.journals[j.ID] = j
	c.JSON(http.StatusCreated, j)
}

type journalPatch struct {
	dto.JournalPayload
	IsDeleted *bool `json:"is_deleted"`
}

func (h *journalHandler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid journal id"})
		return
	}
	var req journalPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	j, ok := h.store.journals[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Journal not found"})
		return
	}

	if req.IsDeleted != nil && *req.IsDeleted {
		j.IsDeleted = true
		h.store.journals[id] = j
		c.JSON(http.StatusOK, j)
		return
	}

	if err := dto.Validate(req.JournalPayload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lines, ok := h.materializeLinesLocked(req.Lines)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown account in journal lines"})
		return
	}
	if err := accounting.ValidateJournalBalance(lines); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	j.Date = req.Date
	j.Memo = req.Memo
	j.Lines = lines
	h.store.journals[id] = j
	c.JSON(http.StatusOK, j)
}
