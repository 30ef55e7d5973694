package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sheikh-saqib/wire-transfer-simulator/internal/clearing"
	interfaces "github.com/sheikh-saqib/wire-transfer-simulator/internal/interfaces"
	"github.com/sheikh-saqib/wire-transfer-simulator/internal/ledger"
	"github.com/sheikh-saqib/wire-transfer-simulator/internal/messages"
	"github.com/sheikh-saqib/wire-transfer-simulator/internal/models"
	"github.com/sheikh-saqib/wire-transfer-simulator/internal/models/events"
)

// ErrTransferNotFound is returned when no transfer has the requested ID.
var ErrTransferNotFound = errors.New("transfer not found")

// Starter launches the clearing run of a transfer.
type Starter interface {
	Start(transfer *models.Transfer) *clearing.Task
}

// Registry creates transfers, hands them to the clearing pipeline and answers
// lookups. It is built once at startup and shared by reference.
type Registry struct {
	ledger    *ledger.Ledger
	transfers interfaces.TransferStore
	composer  *messages.Composer
	pipeline  Starter
	publisher interfaces.EventPublisher
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string

	mu    sync.Mutex
	tasks map[string]*clearing.Task
}

// Option configures a Registry.
type Option func(*Registry)

func WithPublisher(pub interfaces.EventPublisher) Option {
	return func(r *Registry) { r.publisher = pub }
}

func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// WithIDGenerator replaces the random UUID used as transfer ID.
func WithIDGenerator(newID func() string) Option {
	return func(r *Registry) { r.newID = newID }
}

// NewRegistry wires a Registry.
func NewRegistry(l *ledger.Ledger, transfers interfaces.TransferStore, composer *messages.Composer, pipeline Starter, opts ...Option) *Registry {
	r := &Registry{
		ledger:    l,
		transfers: transfers,
		composer:  composer,
		pipeline:  pipeline,
		logger:    zap.NewNop(),
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
		tasks:     make(map[string]*clearing.Task),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create validates req, opens both accounts if needed, builds the transfer with
// its initiation document and first step, and starts clearing in the background.
// It returns without waiting for any stage.
func (r *Registry) Create(ctx context.Context, req models.CreateTransferRequest) (models.TransferDetails, error) {
	if err := req.Validate(); err != nil {
		return models.TransferDetails{}, err
	}

	debtor, err := r.ledger.GetOrCreate(ctx,
		models.DebtorAccountKey(req.InstitutionNumber, req.TransitNumber, req.AccountNumber),
		ledger.Opening{
			AccountNumber:     req.AccountNumber,
			InstitutionNumber: req.InstitutionNumber,
			TransitNumber:     req.TransitNumber,
			Holder:            req.DebtorName,
			Currency:          req.Currency,
		})
	if err != nil {
		return models.TransferDetails{}, fmt.Errorf("failed to open debtor account: %w", err)
	}

	creditor, err := r.ledger.GetOrCreate(ctx,
		models.CreditorAccountKey(req.CreditorIBAN),
		ledger.Opening{
			AccountNumber:     models.CreditorAccountNumber(req.CreditorIBAN),
			InstitutionNumber: models.CreditorInstitutionNumber,
			TransitNumber:     models.CreditorTransitNumber,
			Holder:            req.CreditorName,
			Currency:          req.Currency,
		})
	if err != nil {
		return models.TransferDetails{}, fmt.Errorf("failed to open creditor account: %w", err)
	}

	createdAt := r.now()
	transfer := models.NewTransfer(r.newID(), req, createdAt, debtor.ID, creditor.ID)

	initiation, err := messages.Encode(r.composer.Initiation(transfer.Snapshot(), createdAt))
	if err != nil {
		return models.TransferDetails{}, err
	}
	transfer.AttachInitiation(initiation)

	first := models.ProcessingStep{
		Timestamp: createdAt,
		Stage:     models.StageInitiated,
		Status:    models.StatusPending,
		Detail: models.StepDetail{
			Amount:     models.Dec(transfer.Amount),
			Currency:   transfer.Currency,
			EndToEndID: messages.EndToEndID(transfer.ID),
		},
	}
	if err := transfer.Record(first); err != nil {
		return models.TransferDetails{}, err
	}

	if err := r.transfers.Save(ctx, transfer); err != nil {
		return models.TransferDetails{}, fmt.Errorf("failed to save transfer: %w", err)
	}
	r.publish(ctx, transfer, first)

	// Taken before Start so the caller sees the transfer as created.
	details, err := r.details(ctx, transfer)
	if err != nil {
		return models.TransferDetails{}, err
	}

	task := r.pipeline.Start(transfer)
	r.mu.Lock()
	r.tasks[transfer.ID] = task
	r.mu.Unlock()

	r.logger.Info("transfer created",
		zap.String("transfer_id", transfer.ID),
		zap.String("amount", transfer.Amount.String()),
		zap.String("currency", transfer.Currency),
		zap.String("debtor_account", debtor.ID),
		zap.String("creditor_account", creditor.ID))

	return details, nil
}

func (r *Registry) publish(ctx context.Context, t *models.Transfer, step models.ProcessingStep) {
	if r.publisher == nil {
		return
	}
	if err := r.publisher.Publish(ctx, t.ID, events.NewTransferStepRecorded(t, step)); err != nil {
		r.logger.Warn("failed to publish step event",
			zap.String("transfer_id", t.ID),
			zap.Error(err))
	}
}

// Get returns one transfer with both accounts, or ErrTransferNotFound.
func (r *Registry) Get(ctx context.Context, id string) (models.TransferDetails, error) {
	transfer, err := r.transfers.Get(ctx, id)
	if err != nil {
		return models.TransferDetails{}, fmt.Errorf("failed to load transfer: %w", err)
	}
	if transfer == nil {
		return models.TransferDetails{}, fmt.Errorf("%w: %s", ErrTransferNotFound, id)
	}
	return r.details(ctx, transfer)
}

// List returns all transfers in creation order.
func (r *Registry) List(ctx context.Context) ([]models.TransferDetails, error) {
	transfers, err := r.transfers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}

	result := make([]models.TransferDetails, 0, len(transfers))
	for _, transfer := range transfers {
		d, err := r.details(ctx, transfer)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, nil
}

// ListAccounts returns all ledger accounts in creation order.
func (r *Registry) ListAccounts(ctx context.Context) ([]models.LedgerAccount, error) {
	return r.ledger.Accounts(ctx)
}

// Wait blocks until the clearing run of transfer id stops or ctx ends.
func (r *Registry) Wait(ctx context.Context, id string) error {
	r.mu.Lock()
	task, ok := r.tasks[id]
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrTransferNotFound, id)
	}
	return task.Wait(ctx)
}

// Drain waits for every clearing run started so far. Faulted runs are not an
// error here; they are recorded on their transfers.
func (r *Registry) Drain(ctx context.Context) error {
	r.mu.Lock()
	tasks := make([]*clearing.Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		tasks = append(tasks, task)
	}
	r.mu.Unlock()

	for _, task := range tasks {
		select {
		case <-task.Done():
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (r *Registry) details(ctx context.Context, transfer *models.Transfer) (models.TransferDetails, error) {
	snapshot := transfer.Snapshot()

	debtor, err := r.ledger.Account(ctx, snapshot.DebtorAccountID)
	if err != nil {
		return models.TransferDetails{}, err
	}
	creditor, err := r.ledger.Account(ctx, snapshot.CreditorAccountID)
	if err != nil {
		return models.TransferDetails{}, err
	}

	return models.TransferDetails{
		TransferSnapshot: snapshot,
		DebtorAccount:    debtor,
		CreditorAccount:  creditor,
	}, nil
}
