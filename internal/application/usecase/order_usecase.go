package usecase

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"quickcart/internal/application/notify"
	orderdom "quickcart/internal/domain/order"
	"quickcart/internal/domain/record"
)

// Mailer delivers the order confirmation (best-effort, post-create).
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Archiver mirrors a created order into secondary storage (best-effort).
type Archiver interface {
	Archive(ctx context.Context, o orderdom.Order) error
}

// CreateOrderRequest is the checkout input: the cart snapshot plus the
// authenticated account. Email is optional; when present a confirmation mail
// is attempted.
type CreateOrderRequest struct {
	AccountID string
	Email     string
	Items     []orderdom.LineItem
}

// OrderUsecase is the one-shot transformation of a cart snapshot into a
// persisted order record. Create never partially commits from this layer:
// any failed record in the batch fails the call.
type OrderUsecase struct {
	store    record.Store
	notifier notify.Notifier
	mailer   Mailer
	archiver Archiver

	now     func() time.Time
	randInt func(n int) int
}

func NewOrderUsecase(store record.Store, notifier notify.Notifier) *OrderUsecase {
	return &OrderUsecase{
		store:    store,
		notifier: notifier,
		now:      time.Now,
		randInt:  rand.Intn,
	}
}

// WithMailer wires the confirmation mailer.
func (u *OrderUsecase) WithMailer(m Mailer) *OrderUsecase {
	u.mailer = m
	return u
}

// WithArchiver wires the reporting mirror.
func (u *OrderUsecase) WithArchiver(a Archiver) *OrderUsecase {
	u.archiver = a
	return u
}

// WithClock overrides time and suffix sources; useful for tests.
func (u *OrderUsecase) WithClock(now func() time.Time, randInt func(n int) int) *OrderUsecase {
	if now != nil {
		u.now = now
	}
	if randInt != nil {
		u.randInt = randInt
	}
	return u
}

// Create persists one confirmed order and returns it. The order number is
// QC<millis><3-digit suffix>; uniqueness is probabilistic.
func (u *OrderUsecase) Create(ctx context.Context, req CreateOrderRequest) (orderdom.Order, error) {
	if u == nil || u.store == nil {
		return orderdom.Order{}, record.E(record.KindNotInitialized, "order create", "record store is nil")
	}
	aid := strings.TrimSpace(req.AccountID)
	if aid == "" {
		return orderdom.Order{}, record.E(record.KindInvalidInput, "order create", "account id is required")
	}
	if len(req.Items) == 0 {
		return orderdom.Order{}, record.E(record.KindInvalidInput, "order create", "order has no items")
	}

	items, err := orderdom.EncodeItems(req.Items)
	if err != nil {
		return orderdom.Order{}, record.Wrap(record.KindInvalidInput, "order create", err)
	}

	now := u.now()
	number := orderdom.NewNumber(now, u.randInt(1000))
	total := orderdom.Total(req.Items)

	results, err := u.store.CreateRecords(ctx, orderdom.Table, []record.Record{{
		record.FieldName:          number,
		orderdom.FieldOrderDate:   now.UTC().Format(time.RFC3339),
		orderdom.FieldStatus:      orderdom.StatusConfirmed,
		orderdom.FieldTotalAmount: total.InexactFloat64(),
		orderdom.FieldItems:       items,
		orderdom.FieldOwner:       aid,
	}})
	if err == nil {
		err = record.AggregateWrites("order create", results)
	}
	if err != nil {
		notify.Error(u.notifier, "Failed to create order")
		return orderdom.Order{}, err
	}

	created := orderdom.Decode(results[0].Record)
	notify.Success(u.notifier, "Order created successfully!")

	u.afterCreate(ctx, created, req.Email)
	return created, nil
}

// GetAll returns the account's orders, newest first. Degrades to empty.
func (u *OrderUsecase) GetAll(ctx context.Context, accountID string) []orderdom.Order {
	if u == nil || u.store == nil {
		return []orderdom.Order{}
	}
	recs, err := u.store.FetchRecords(ctx, orderdom.Table, record.Query{
		Where: []record.Condition{
			{Field: orderdom.FieldOwner, Op: record.OpEqualTo, Values: []any{strings.TrimSpace(accountID)}},
		},
		OrderBy: []record.Order{{Field: orderdom.FieldOrderDate, Desc: true}},
	})
	if err != nil {
		log.Printf("[order_usecase] list failed: %v", err)
		return []orderdom.Order{}
	}
	out := make([]orderdom.Order, 0, len(recs))
	for _, rec := range recs {
		out = append(out, orderdom.Decode(rec))
	}
	return out
}

// GetByID returns one order of the account. An order owned by someone else is
// reported as not found, not as forbidden.
func (u *OrderUsecase) GetByID(ctx context.Context, accountID string, id int) (orderdom.Order, error) {
	if u == nil || u.store == nil {
		return orderdom.Order{}, record.E(record.KindNotInitialized, "order get", "record store is nil")
	}
	rec, err := u.store.GetRecordByID(ctx, orderdom.Table, id, nil)
	if err != nil {
		return orderdom.Order{}, err
	}
	if rec.String(orderdom.FieldOwner) != strings.TrimSpace(accountID) {
		return orderdom.Order{}, record.E(record.KindNotFound, "order get", "no record")
	}
	return orderdom.Decode(rec), nil
}

// afterCreate runs the best-effort post-create hooks. Failures are logged,
// never surfaced: the order is already committed.
func (u *OrderUsecase) afterCreate(ctx context.Context, o orderdom.Order, email string) {
	if u.archiver != nil {
		if err := u.archiver.Archive(ctx, o); err != nil {
			log.Printf("[order_usecase] archive %s failed: %v", o.Number, err)
		}
	}
	if u.mailer != nil && strings.TrimSpace(email) != "" {
		subject := "Order confirmation " + o.Number
		if err := u.mailer.Send(ctx, email, subject, confirmationBody(o)); err != nil {
			log.Printf("[order_usecase] confirmation mail for %s failed: %v", o.Number, err)
		}
	}
}

func confirmationBody(o orderdom.Order) string {
	var b strings.Builder
	b.WriteString("Thank you for your order!\n\n")
	b.WriteString("Order number: " + o.Number + "\n")
	b.WriteString("Status: " + o.Status + "\n\n")
	for _, it := range o.Items {
		fmt.Fprintf(&b, "  %dx %s  %s\n", it.Quantity, it.Name, it.Price.StringFixed(2))
	}
	b.WriteString("\nTotal: " + o.TotalAmount.StringFixed(2) + "\n")
	return b.String()
}
