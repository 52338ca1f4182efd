// Package errors provides custom error types for catalog and ledger operations.
package errors

import "errors"

var ErrValidation = errors.New("validation failed")

var ErrProductNotFound = errors.New("product not found")
var ErrDuplicateProductName = errors.New("product name already exists")
var ErrInsufficientStock = errors.New("insufficient stock")
var ErrOptimisticLock = errors.New("optimistic lock error: the record has been modified by another transaction")

var ErrTransactionBegin = errors.New("failed to begin transaction")
var ErrTransactionCommit = errors.New("failed to commit transaction")
var ErrTransactionRollback = errors.New("failed to rollback transaction")
