// Package mapping converts client-side domain records into outgoing wire
// payloads. The one rule applied everywhere: nested relation objects
// (account, entity) are flattened to their <relation>_id field and the
// nested object is dropped from the payload. The same transform runs on
// both create and update paths.
package mapping

import (
	"github.com/rentbooks/rentbooks/internal/core/domain"
	"github.com/rentbooks/rentbooks/internal/dto"
)

// ToPropertyPayload builds the outgoing payload for a property write.
func ToPropertyPayload(p domain.Property) dto.PropertyPayload {
	return dto.PropertyPayload{
		Name:    p.Name,
		Address: p.Address,
		City:    p.City,
		State:   p.State,
		Zip:     p.Zip,
	}
}

// ToAccountPayload builds the outgoing payload for an account write.
func ToAccountPayload(a domain.Account) dto.AccountPayload {
	return dto.AccountPayload{
		Name:        a.Name,
		Type:        a.Type,
		Description: a.Description,
	}
}

// ToEntityPayload builds the outgoing payload for an entity write.
func ToEntityPayload(e domain.Entity) dto.EntityPayload {
	return dto.EntityPayload{
		Name:  e.Name,
		Kind:  e.Kind,
		Email: e.Email,
		Phone: e.Phone,
	}
}

// ToJournalPayload flattens a journal's line account relations to
// account_id fields.
func ToJournalPayload(j domain.Journal) dto.JournalPayload {
	lines := make([]dto.JournalLinePayload, len(j.Lines))
	for i, line := range j.Lines {
		lines[i] = dto.JournalLinePayload{
			Type:   line.Type,
			Amount: line.Amount,
			Memo:   line.Memo,
		}
		if line.Account != nil {
			lines[i].AccountID = line.Account.ID
		}
	}
	return dto.JournalPayload{
		Date:  j.Date,
		Memo:  j.Memo,
		Lines: lines,
	}
}

// ToTransactionPayload flattens a transaction's account and entity
// relations to _id fields.
func ToTransactionPayload(t domain.Transaction) dto.TransactionPayload {
	p := dto.TransactionPayload{
		Date:   t.Date,
		Type:   t.Type,
		Amount: t.Amount,
		Memo:   t.Memo,
	}
	if t.Account != nil {
		p.AccountID = t.Account.ID
	}
	if t.Entity != nil {
		p.EntityID = t.Entity.ID
	}
	return p
}

// ToRentPaymentPayload flattens a rent payment's entity relation to
// entity_id.
func ToRentPaymentPayload(r domain.RentPayment) dto.RentPaymentPayload {
	p := dto.RentPaymentPayload{
		Year:   r.Year,
		Month:  r.Month,
		Amount: r.Amount,
		PaidOn: r.PaidOn,
		Memo:   r.Memo,
	}
	if r.Entity != nil {
		p.EntityID = r.Entity.ID
	}
	return p
}
