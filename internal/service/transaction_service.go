package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/poeconomics/fundbank-backend/internal/apperrors"
	"github.com/poeconomics/fundbank-backend/internal/model"
	"github.com/poeconomics/fundbank-backend/internal/repository"
)

// TransactionService handles the append-only transaction history: adding
// deposits/withdrawals, listing users, and the confirmed per-user bulk
// delete. All mutations are serialized behind the shared write lock and
// audited after they succeed.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
	auditService    *AuditService
	lock            *WriteLock
}

// NewTransactionService creates a new TransactionService with the provided dependencies.
func NewTransactionService(
	transactionRepo *repository.TransactionRepository,
	auditService *AuditService,
	lock *WriteLock,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		auditService:    auditService,
		lock:            lock,
	}
}

// GetAll returns the full transaction history in simulation order.
func (s *TransactionService) GetAll() ([]model.Transaction, error) {
	return s.transactionRepo.GetAll()
}

// GetUsers returns the distinct users that currently have transactions.
func (s *TransactionService) GetUsers() ([]string, error) {
	return s.transactionRepo.GetUsers()
}

// Create appends one deposit or withdrawal and audits it as AddTx.
// Inputs are assumed validated at the boundary.
func (s *TransactionService) Create(ctx context.Context, date time.Time, user, txType string, amount float64, admin string) (*model.Transaction, error) {
	transaction := &model.Transaction{
		ID:        uuid.New().String(),
		Date:      date,
		User:      user,
		Type:      txType,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.transactionRepo.Insert(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	details := fmt.Sprintf("%s %.2f for %s on %s", txType, amount, user, date.Format(model.DateOnly))
	if err := s.auditService.Record(ctx, model.ActionAddTx, details, admin); err != nil {
		return nil, err
	}

	return transaction, nil
}

// DeleteWallet removes every transaction belonging to user, atomically.
// The caller must re-type the exact username as confirmation; a mismatch
// rejects the request with no mutation and no audit entry. Returns the
// number of removed records.
func (s *TransactionService) DeleteWallet(ctx context.Context, user, confirm, admin string) (int64, error) {
	if user == "" {
		return 0, apperrors.ErrEmptyUser
	}
	if confirm != user {
		return 0, apperrors.ErrConfirmationMismatch
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	removed, err := s.transactionRepo.DeleteByUser(ctx, user)
	if err != nil {
		return 0, fmt.Errorf("failed to delete wallet: %w", err)
	}
	if removed == 0 {
		return 0, apperrors.ErrUserNotFound
	}

	details := fmt.Sprintf("Deleted ALL transactions for user '%s' (%d removed)", user, removed)
	if err := s.auditService.Record(ctx, model.ActionDeleteWallet, details, admin); err != nil {
		return removed, err
	}

	return removed, nil
}

// Restore replaces the entire transaction history wholesale and audits it
// as RestoreTx. Used by the record-file upload path.
func (s *TransactionService) Restore(ctx context.Context, transactions []model.Transaction, admin string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.transactionRepo.ReplaceAll(ctx, transactions); err != nil {
		return fmt.Errorf("failed to restore transactions: %w", err)
	}

	details := fmt.Sprintf("Transactions restored from upload (%d records)", len(transactions))
	return s.auditService.Record(ctx, model.ActionRestoreTx, details, admin)
}
