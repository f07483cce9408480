package transfer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nathanyu/accounts-service/internal/domain"
	"github.com/nathanyu/accounts-service/internal/store"
	"github.com/nathanyu/accounts-service/internal/telemetry"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Validator evaluates a transfer snapshot; see the validation package for the
// production rule set. Declared here so tests can substitute a stub.
type Validator interface {
	Validate(snapshot domain.TransferSnapshot) []domain.Violation
}

// Notifier receives post-transfer notifications. Delivery is best-effort and
// decoupled from the transfer outcome: errors are logged and swallowed.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) error
}

// Coordinator executes transfers between two accounts. Both account locks are
// acquired in a single global order keyed by account id, so two transfers
// contending for the same pair always request the locks in the same relative
// sequence and cannot deadlock each other. Transfers on disjoint pairs run
// fully in parallel.
type Coordinator struct {
	store     *store.AccountStore
	validator Validator
	notifier  Notifier
}

// NewCoordinator wires the coordinator with its collaborators.
func NewCoordinator(store *store.AccountStore, validator Validator, notifier Notifier) *Coordinator {
	return &Coordinator{
		store:     store,
		validator: validator,
		notifier:  notifier,
	}
}

// PerformTransfer moves amount from one account to the other, all or nothing.
// A non-empty violation list rejects the whole operation with
// TransferRejectedError and no balance change. transferID correlates spans,
// logs and notifications.
func (c *Coordinator) PerformTransfer(ctx context.Context, transferID, fromID, toID string, amount decimal.Decimal) error {
	start := time.Now()

	if telemetry.Tracer != nil {
		var span trace.Span
		ctx, span = telemetry.Tracer.Start(ctx, "transfer.PerformTransfer",
			trace.WithAttributes(
				attribute.String("transfer_id", transferID),
				attribute.String("from_account", fromID),
				attribute.String("to_account", toID),
				attribute.String("amount", amount.String()),
			),
		)
		defer span.End()
	}

	fromSnapshot, toSnapshot, err := c.execute(fromID, toID, amount)
	if err != nil {
		if rejected, ok := err.(*domain.TransferRejectedError); ok {
			for _, v := range rejected.Violations {
				telemetry.TransferViolationsTotal.WithLabelValues(string(v.Code)).Inc()
			}
		}
		telemetry.TransfersTotal.WithLabelValues("rejected").Inc()
		telemetry.TransferAmount.WithLabelValues("rejected").Observe(amount.InexactFloat64())
		if span := trace.SpanFromContext(ctx); span.IsRecording() {
			span.SetAttributes(attribute.Bool("rejected", true))
			span.RecordError(err)
		}
		return err
	}

	telemetry.TransfersTotal.WithLabelValues("success").Inc()
	telemetry.TransferAmount.WithLabelValues("success").Observe(amount.InexactFloat64())
	telemetry.TransferDuration.Observe(time.Since(start).Seconds())
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(attribute.Bool("success", true))
	}

	// Notifications go out after the locks have dropped; the snapshots were
	// captured inside the critical section, so the messages still render the
	// balances this transfer committed.
	c.notifyAboutTransfer(ctx, transferID, amount, fromSnapshot, toSnapshot)

	return nil
}

// execute is the critical section: lock both accounts in order, validate the
// snapshot, mutate both balances. Returns post-commit snapshots of both
// accounts on success.
func (c *Coordinator) execute(fromID, toID string, amount decimal.Decimal) (fromSnapshot, toSnapshot domain.AccountSnapshot, err error) {
	// Missing accounts are not an error yet: locking skips them and
	// validation reports them, so both absent ids surface in one response.
	from, _ := c.store.Get(fromID)
	to, _ := c.store.Get(toID)

	lockStart := time.Now()
	first, second := lockOrder(from, to)
	if first != nil {
		first.Lock()
		defer first.Unlock()
	}
	if second != nil {
		second.Lock()
		defer second.Unlock()
	}
	telemetry.LockWaitDuration.Observe(time.Since(lockStart).Seconds())

	snapshot := buildSnapshot(from, fromID, to, toID, amount)

	if violations := c.validator.Validate(snapshot); len(violations) > 0 {
		return domain.AccountSnapshot{}, domain.AccountSnapshot{}, &domain.TransferRejectedError{Violations: violations}
	}

	// Both mutations happen while both locks are held, so no reader taking
	// either account's lock can observe a debit without its credit.
	from.SetBalance(from.Balance().Sub(amount))
	to.SetBalance(to.Balance().Add(amount))

	return from.SnapshotLocked(), to.SnapshotLocked(), nil
}

// lockOrder returns the two accounts in global acquisition order: the
// lexicographically greater id locks first. Missing accounts come back nil
// and are skipped by the caller; the same account on both sides is locked
// once.
func lockOrder(from, to *domain.Account) (first, second *domain.Account) {
	if from == nil || to == nil {
		if from != nil {
			return from, nil
		}
		return to, nil
	}
	if from == to {
		return from, nil
	}
	if from.ID() < to.ID() {
		return to, from
	}
	return from, to
}

// buildSnapshot captures the validation view. Caller holds every resolved
// account's lock.
func buildSnapshot(from *domain.Account, fromID string, to *domain.Account, toID string, amount decimal.Decimal) domain.TransferSnapshot {
	snapshot := domain.TransferSnapshot{
		FromID: fromID,
		ToID:   toID,
		Amount: amount,
		// Null-safe identity comparison: two missing accounts count as the
		// same identity, matching the reference rejection set.
		SameAccount: from == to,
	}
	if from != nil {
		snapshot.FromFound = true
		snapshot.FromBalance = from.Balance()
	}
	if to != nil {
		snapshot.ToFound = true
		snapshot.ToBalance = to.Balance()
	}
	return snapshot
}

// notifyAboutTransfer dispatches one notification to each side of the
// transfer. Failures never affect the transfer.
func (c *Coordinator) notifyAboutTransfer(ctx context.Context, transferID string, amount decimal.Decimal, from, to domain.AccountSnapshot) {
	notifications := []domain.Notification{
		{
			TransferID: transferID,
			AccountID:  to.ID,
			Balance:    to.Balance,
			Message:    fmt.Sprintf("Transfer from account %s, quantity: %s", from, amount),
		},
		{
			TransferID: transferID,
			AccountID:  from.ID,
			Balance:    from.Balance,
			Message:    fmt.Sprintf("Transfer to account %s, quantity: %s", to, amount),
		},
	}

	for _, n := range notifications {
		if err := c.notifier.Notify(ctx, n); err != nil {
			telemetry.NotificationFailures.Inc()
			slog.WarnContext(ctx, "failed to deliver transfer notification",
				"transfer_id", transferID,
				"account", n.AccountID,
				"error", err,
			)
			continue
		}
		telemetry.NotificationsPublished.Inc()
	}
}
