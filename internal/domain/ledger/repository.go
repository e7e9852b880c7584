package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/openbooks/backend/internal/domain/shared"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	shared.Repository[Customer]
	FindByEmail(ctx context.Context, email string) (*Customer, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// VendorRepository defines the interface for vendor persistence
type VendorRepository interface {
	shared.Repository[Vendor]
	FindByEmail(ctx context.Context, email string) (*Vendor, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// ItemRepository defines the interface for item persistence
type ItemRepository interface {
	shared.Repository[Item]
	FindBySKU(ctx context.Context, sku string) (*Item, error)
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
}

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	shared.Repository[Invoice]
	FindByNumber(ctx context.Context, number string) (*Invoice, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Invoice, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
}

// BillRepository defines the interface for bill persistence
type BillRepository interface {
	shared.Repository[Bill]
	FindByNumber(ctx context.Context, number string) (*Bill, error)
	FindByVendor(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]Bill, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
}

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	shared.Repository[Payment]
	FindByInvoice(ctx context.Context, invoiceID uuid.UUID, filter shared.Filter) ([]Payment, error)
}

// QuoteRepository defines the interface for quote persistence
type QuoteRepository interface {
	shared.Repository[Quote]
	FindByNumber(ctx context.Context, number string) (*Quote, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
}

// ProformaInvoiceRepository defines the interface for proforma persistence
type ProformaInvoiceRepository interface {
	shared.Repository[ProformaInvoice]
	FindByNumber(ctx context.Context, number string) (*ProformaInvoice, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
}

// DeliveryChallanRepository defines the interface for challan persistence
type DeliveryChallanRepository interface {
	shared.Repository[DeliveryChallan]
	FindByNumber(ctx context.Context, number string) (*DeliveryChallan, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
}

// InventoryAdjustmentRepository defines the interface for adjustment persistence
type InventoryAdjustmentRepository interface {
	shared.Repository[InventoryAdjustment]
	FindByItem(ctx context.Context, itemID uuid.UUID, filter shared.Filter) ([]InventoryAdjustment, error)
}
