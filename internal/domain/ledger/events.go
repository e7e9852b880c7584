package ledger

import (
	"time"

	"github.com/openbooks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for ledger aggregates
const (
	EventInvoiceCreated = "ledger.invoice.created"
	EventInvoiceUpdated = "ledger.invoice.updated"
	EventInvoiceDeleted = "ledger.invoice.deleted"
	EventBillCreated    = "ledger.bill.created"
	EventBillUpdated    = "ledger.bill.updated"
	EventBillDeleted    = "ledger.bill.deleted"
	EventPaymentCreated = "ledger.payment.created"
	EventPaymentUpdated = "ledger.payment.updated"
	EventPaymentDeleted = "ledger.payment.deleted"
)

// TransactionEventTypes lists every event type whose source record
// contributes to report figures.
func TransactionEventTypes() []string {
	return []string{
		EventInvoiceCreated, EventInvoiceUpdated, EventInvoiceDeleted,
		EventBillCreated, EventBillUpdated, EventBillDeleted,
		EventPaymentCreated, EventPaymentUpdated, EventPaymentDeleted,
	}
}

// TransactionEvent is published on every write to an invoice, bill, or
// payment. It carries the record's transaction date so subscribers can
// reason about which reporting periods the write could have touched.
type TransactionEvent struct {
	shared.BaseDomainEvent
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
	Number string          `json:"number,omitempty"`
}

// TransactionDate returns the date of the underlying ledger record
func (e *TransactionEvent) TransactionDate() time.Time {
	return e.Date
}

// NewInvoiceCreatedEvent creates an event for a newly created invoice
func NewInvoiceCreatedEvent(inv *Invoice) *TransactionEvent {
	return newTransactionEvent(EventInvoiceCreated, "Invoice", inv)
}

// NewInvoiceUpdatedEvent creates an event for an updated invoice
func NewInvoiceUpdatedEvent(inv *Invoice) *TransactionEvent {
	return newTransactionEvent(EventInvoiceUpdated, "Invoice", inv)
}

// NewInvoiceDeletedEvent creates an event for a deleted invoice
func NewInvoiceDeletedEvent(inv *Invoice) *TransactionEvent {
	return newTransactionEvent(EventInvoiceDeleted, "Invoice", inv)
}

// NewBillCreatedEvent creates an event for a newly created bill
func NewBillCreatedEvent(b *Bill) *TransactionEvent {
	return &TransactionEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventBillCreated, "Bill", b.ID),
		Date:            b.BillDate,
		Amount:          b.TotalAmount,
		Number:          b.BillNumber,
	}
}

// NewBillUpdatedEvent creates an event for an updated bill
func NewBillUpdatedEvent(b *Bill) *TransactionEvent {
	return &TransactionEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventBillUpdated, "Bill", b.ID),
		Date:            b.BillDate,
		Amount:          b.TotalAmount,
		Number:          b.BillNumber,
	}
}

// NewBillDeletedEvent creates an event for a deleted bill
func NewBillDeletedEvent(b *Bill) *TransactionEvent {
	return &TransactionEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventBillDeleted, "Bill", b.ID),
		Date:            b.BillDate,
		Amount:          b.TotalAmount,
		Number:          b.BillNumber,
	}
}

// NewPaymentCreatedEvent creates an event for a newly created payment
func NewPaymentCreatedEvent(p *Payment) *TransactionEvent {
	return &TransactionEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPaymentCreated, "Payment", p.ID),
		Date:            p.Date,
		Amount:          p.Amount,
	}
}

// NewPaymentUpdatedEvent creates an event for an updated payment
func NewPaymentUpdatedEvent(p *Payment) *TransactionEvent {
	return &TransactionEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPaymentUpdated, "Payment", p.ID),
		Date:            p.Date,
		Amount:          p.Amount,
	}
}

// NewPaymentDeletedEvent creates an event for a deleted payment
func NewPaymentDeletedEvent(p *Payment) *TransactionEvent {
	return &TransactionEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPaymentDeleted, "Payment", p.ID),
		Date:            p.Date,
		Amount:          p.Amount,
	}
}

func newTransactionEvent(eventType, aggType string, inv *Invoice) *TransactionEvent {
	return &TransactionEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, aggType, inv.ID),
		Date:            inv.InvoiceDate,
		Amount:          inv.TotalAmount,
		Number:          inv.InvoiceNumber,
	}
}
