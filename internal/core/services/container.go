package services

import (
	"log/slog"

	"github.com/rentbooks/rentbooks/internal/adapters/restapi"
	portssvc "github.com/rentbooks/rentbooks/internal/core/ports/services"
	"github.com/rentbooks/rentbooks/internal/platform/storage"
)

// Container wires the full service tree against one API client. The
// dependency chain is explicit: Session -> Property -> resource services,
// mirroring the scoping rules (everything depends on the token, everything
// but properties depends on the active property, transactions additionally
// on the account/entity selections).
type Container struct {
	Notifier     *NotifierService
	Session      *SessionService
	Properties   *PropertyService
	Accounts     *AccountService
	Entities     *EntityService
	Journals     *JournalService
	Transactions *TransactionService
	RentPayments *RentPaymentService
}

// NewContainer builds and wires all services. tokenStore is the durable
// store the access token persists in.
func NewContainer(client *restapi.Client, tokenStore storage.Store, clock portssvc.Clock, logger *slog.Logger) *Container {
	if logger == nil {
		logger = slog.Default()
	}

	notifier := NewNotifierService(clock, logger)
	session := NewSessionService(restapi.NewAuthRemote(client), tokenStore, notifier, clock, logger)
	properties := NewPropertyService(restapi.NewPropertyRemote(client), session, notifier, logger)
	accounts := NewAccountService(restapi.NewAccountRemote(client), session, properties, notifier, logger)
	entities := NewEntityService(restapi.NewEntityRemote(client), session, properties, notifier, logger)
	journals := NewJournalService(restapi.NewJournalRemote(client), session, properties, notifier, logger)
	transactions := NewTransactionService(restapi.NewTransactionRemote(client), session, properties, accounts, entities, notifier, logger)

	// Session-scoped values (the active date) live in memory and die with
	// the engine, unlike the durable token store.
	sessionState := storage.NewMemStore()
	payments := NewRentPaymentService(restapi.NewRentPaymentRemote(client), session, properties, notifier, sessionState, logger)

	session.RegisterScopeListener(properties)

	// Accounts and entities are registered before transactions so their
	// selections are already cleared when the transaction scope is
	// recomputed for the new property.
	properties.RegisterScopeListener(accounts)
	properties.RegisterScopeListener(entities)
	properties.RegisterScopeListener(journals)
	properties.RegisterScopeListener(payments)
	properties.RegisterScopeListener(transactions)

	accounts.RegisterScopeListener(transactions)
	entities.RegisterScopeListener(transactions)

	return &Container{
		Notifier:     notifier,
		Session:      session,
		Properties:   properties,
		Accounts:     accounts,
		Entities:     entities,
		Journals:     journals,
		Transactions: transactions,
		RentPayments: payments,
	}
}
