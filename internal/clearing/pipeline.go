package clearing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	interfaces "github.com/sheikh-saqib/wire-transfer-simulator/internal/interfaces"
	"github.com/sheikh-saqib/wire-transfer-simulator/internal/ledger"
	"github.com/sheikh-saqib/wire-transfer-simulator/internal/messages"
	"github.com/sheikh-saqib/wire-transfer-simulator/internal/models"
	"github.com/sheikh-saqib/wire-transfer-simulator/internal/models/events"
)

// Ledger is the part of the ledger the pipeline moves money with.
type Ledger interface {
	Debit(ctx context.Context, accountID string, amount decimal.Decimal, description, transferID string) (models.LedgerEntry, error)
	Credit(ctx context.Context, accountID string, amount decimal.Decimal, description, transferID string) (models.LedgerEntry, error)
}

// Delays is the simulated latency before each stage.
type Delays struct {
	Validation   time.Duration
	FundCheck    time.Duration
	Routing      time.Duration
	Settlement   time.Duration
	Credit       time.Duration
	Confirmation time.Duration
}

// DefaultDelays model the time a real clearing run takes at each stage.
var DefaultDelays = Delays{
	Validation:   2 * time.Second,
	FundCheck:    3 * time.Second,
	Routing:      2 * time.Second,
	Settlement:   4 * time.Second,
	Credit:       2 * time.Second,
	Confirmation: 1 * time.Second,
}

// Networks decides which clearing network carries a transfer.
type Networks struct {
	LocalCurrency string
	Domestic      string
	International string
}

// DefaultNetworks route CAD over Lynx and everything else over SWIFT.
var DefaultNetworks = Networks{
	LocalCurrency: "CAD",
	Domestic:      "Lynx",
	International: "SWIFT",
}

// Select returns the domestic network for the local currency and the international one otherwise.
func (n Networks) Select(currency string) string {
	if currency == n.LocalCurrency {
		return n.Domestic
	}
	return n.International
}

// Pipeline advances transfers through validation, fund reservation, routing,
// settlement, credit and confirmation.
type Pipeline struct {
	ledger    Ledger
	composer  *messages.Composer
	publisher interfaces.EventPublisher
	delays    Delays
	networks  Networks
	logger    *zap.Logger
	now       func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

func WithDelays(d Delays) Option {
	return func(p *Pipeline) { p.delays = d }
}

func WithNetworks(n Networks) Option {
	return func(p *Pipeline) { p.networks = n }
}

// WithPublisher makes every recorded step go out as a TransferStepRecorded event.
func WithPublisher(pub interfaces.EventPublisher) Option {
	return func(p *Pipeline) { p.publisher = pub }
}

func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// NewPipeline creates a Pipeline with default delays and networks.
func NewPipeline(l Ledger, composer *messages.Composer, opts ...Option) *Pipeline {
	p := &Pipeline{
		ledger:   l,
		composer: composer,
		delays:   DefaultDelays,
		networks: DefaultNetworks,
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// stageFunc runs one stage. It returns false to halt the run without a fault.
type stageFunc func(r *run, ctx context.Context) (bool, error)

type stage struct {
	name  models.Stage
	delay time.Duration
	run   stageFunc
}

func (p *Pipeline) stages() []stage {
	return []stage{
		{models.StageValidation, p.delays.Validation, (*run).validate},
		{models.StageFundReservation, p.delays.FundCheck, (*run).reserveFunds},
		{models.StageRouting, p.delays.Routing, (*run).route},
		{models.StageSettlement, p.delays.Settlement, (*run).settle},
		{models.StageCredit, p.delays.Credit, (*run).credit},
		{models.StageConfirmation, p.delays.Confirmation, (*run).confirm},
	}
}

// run is the state of one pipeline execution.
type run struct {
	p        *Pipeline
	transfer *models.Transfer
	task     *Task
	stages   []stage
	logger   *zap.Logger
}

// Start schedules the pipeline for transfer and returns at once. Each stage is
// a timer continuation of the previous one, so no goroutine is parked during delays.
func (p *Pipeline) Start(transfer *models.Transfer) *Task {
	r := &run{
		p:        p,
		transfer: transfer,
		task:     newTask(transfer.ID),
		stages:   p.stages(),
		logger:   p.logger.With(zap.String("transfer_id", transfer.ID)),
	}
	r.schedule(0)
	return r.task
}

func (r *run) schedule(i int) {
	if i >= len(r.stages) {
		r.task.finish(nil)
		return
	}
	time.AfterFunc(r.stages[i].delay, func() { r.exec(i) })
}

func (r *run) exec(i int) {
	s := r.stages[i]
	ctx := context.Background()

	next, err := r.safeRun(ctx, s)
	if err != nil {
		r.logger.Error("clearing stage failed",
			zap.String("stage", string(s.name)),
			zap.Error(err))
		step := r.transfer.RecordFault(r.p.now(), s.name, err)
		r.publish(ctx, step)
		r.task.finish(err)
		return
	}
	if !next {
		r.task.finish(nil)
		return
	}
	r.schedule(i + 1)
}

func (r *run) safeRun(ctx context.Context, s stage) (next bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			next = false
			err = fmt.Errorf("panic in %s stage: %v", s.name, rec)
		}
	}()
	return s.run(r, ctx)
}

// record appends a step, logs it and publishes it.
func (r *run) record(ctx context.Context, name models.Stage, status models.Status, detail models.StepDetail) error {
	step := models.ProcessingStep{
		Timestamp: r.p.now(),
		Stage:     name,
		Status:    status,
		Detail:    detail,
	}
	if err := r.transfer.Record(step); err != nil {
		return err
	}

	r.logger.Info("clearing step recorded",
		zap.String("stage", string(name)),
		zap.String("status", string(status)))
	r.publish(ctx, step)
	return nil
}

func (r *run) publish(ctx context.Context, step models.ProcessingStep) {
	if r.p.publisher == nil {
		return
	}
	event := events.NewTransferStepRecorded(r.transfer, step)
	if err := r.p.publisher.Publish(ctx, r.transfer.ID, event); err != nil {
		r.logger.Warn("failed to publish step event",
			zap.String("stage", string(step.Stage)),
			zap.Error(err))
	}
}

func (r *run) validate(ctx context.Context) (bool, error) {
	t := r.transfer
	err := r.record(ctx, models.StageValidation, models.StatusValidating, models.StepDetail{
		Amount:        models.Dec(t.Amount),
		Currency:      t.Currency,
		MessageID:     messages.InstructionID(t.ID),
		EndToEndID:    messages.EndToEndID(t.ID),
		DebtorAgent:   r.p.composer.DebtorAgentBIC(),
		CreditorAgent: t.Creditor.BIC,
	})
	return err == nil, err
}

func (r *run) reserveFunds(ctx context.Context) (bool, error) {
	t := r.transfer
	entry, err := r.p.ledger.Debit(ctx, t.DebtorAccountID, t.Amount, "Wire transfer to "+t.Creditor.Name, t.ID)

	var insufficient *ledger.InsufficientFundsError
	if errors.As(err, &insufficient) {
		err = r.record(ctx, models.StageFundReservationFailed, models.StatusFailed, models.StepDetail{
			Amount:    models.Dec(t.Amount),
			Currency:  t.Currency,
			AccountID: t.DebtorAccountID,
			Balance:   models.Dec(insufficient.Available),
			Shortfall: models.Dec(insufficient.Shortfall()),
		})
		return false, err
	}
	if err != nil {
		return false, fmt.Errorf("failed to debit %s: %w", t.DebtorAccountID, err)
	}

	err = r.record(ctx, models.StageFundReservation, models.StatusValidating, models.StepDetail{
		Amount:    models.Dec(t.Amount),
		Currency:  t.Currency,
		AccountID: t.DebtorAccountID,
		Balance:   models.Dec(entry.BalanceAfter),
	})
	return err == nil, err
}

func (r *run) route(ctx context.Context) (bool, error) {
	t := r.transfer
	err := r.record(ctx, models.StageRouting, models.StatusProcessing, models.StepDetail{
		Currency: t.Currency,
		Network:  r.p.networks.Select(t.Currency),
	})
	return err == nil, err
}

func (r *run) settle(ctx context.Context) (bool, error) {
	t := r.transfer
	err := r.record(ctx, models.StageSettlement, models.StatusSettling, models.StepDetail{
		Amount:        models.Dec(t.Amount),
		Currency:      t.Currency,
		Network:       r.p.networks.Select(t.Currency),
		DebtorAgent:   r.p.composer.DebtorAgentBIC(),
		CreditorAgent: t.Creditor.BIC,
	})
	return err == nil, err
}

func (r *run) credit(ctx context.Context) (bool, error) {
	t := r.transfer
	entry, err := r.p.ledger.Credit(ctx, t.CreditorAccountID, t.Amount, "Wire transfer from "+t.Debtor.Name, t.ID)
	if err != nil {
		return false, fmt.Errorf("failed to credit %s: %w", t.CreditorAccountID, err)
	}

	err = r.record(ctx, models.StageCredit, models.StatusCompleted, models.StepDetail{
		Amount:        models.Dec(t.Amount),
		Currency:      t.Currency,
		AccountID:     t.CreditorAccountID,
		Balance:       models.Dec(entry.BalanceAfter),
		CreditorAgent: t.Creditor.BIC,
	})
	return err == nil, err
}

func (r *run) confirm(ctx context.Context) (bool, error) {
	t := r.transfer
	at := r.p.now()

	doc := r.p.composer.StatusReport(t.Snapshot(), at)
	encoded, err := messages.Encode(doc)
	if err != nil {
		return false, err
	}
	t.AttachStatusReport(encoded)

	err = r.record(ctx, models.StageConfirmation, models.StatusCompleted, models.StepDetail{
		MessageID:  doc.Report.GroupHeader.MessageID,
		EndToEndID: messages.EndToEndID(t.ID),
	})
	return err == nil, err
}
