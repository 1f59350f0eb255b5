package purchasing

import (
	"context"

	"github.com/resale/backend/internal/domain/inventory"
	"github.com/resale/backend/internal/domain/purchasing"
)

// TransactionScope provides transactional access to the purchasing repositories.
// When a function is executed within a transaction scope, all repository operations
// will be part of the same database transaction and will be committed or rolled back atomically.
// Allocation and receiving each run inside exactly one such scope.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all repositories a purchasing
// transaction touches. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// OrderRepo returns the purchase order repository scoped to the current transaction
	OrderRepo() purchasing.PurchaseOrderRepository
	// InventoryRepo returns the inventory item repository scoped to the current transaction
	InventoryRepo() inventory.InventoryItemRepository
	// EventRepo returns the receiving audit repository scoped to the current transaction
	EventRepo() purchasing.ReceivingEventRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use transactions.
// This is useful for testing or when transaction support is not required.
type NoOpTransactionScope struct {
	orderRepo     purchasing.PurchaseOrderRepository
	inventoryRepo inventory.InventoryItemRepository
	eventRepo     purchasing.ReceivingEventRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	orderRepo purchasing.PurchaseOrderRepository,
	inventoryRepo inventory.InventoryItemRepository,
	eventRepo purchasing.ReceivingEventRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:     orderRepo,
		inventoryRepo: inventoryRepo,
		eventRepo:     eventRepo,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// OrderRepo returns the purchase order repository.
func (s *NoOpTransactionScope) OrderRepo() purchasing.PurchaseOrderRepository {
	return s.orderRepo
}

// InventoryRepo returns the inventory item repository.
func (s *NoOpTransactionScope) InventoryRepo() inventory.InventoryItemRepository {
	return s.inventoryRepo
}

// EventRepo returns the receiving audit repository.
func (s *NoOpTransactionScope) EventRepo() purchasing.ReceivingEventRepository {
	return s.eventRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
