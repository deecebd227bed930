package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catering/internal/builder"
	"catering/internal/core"
	"catering/internal/notify"
	"catering/internal/validation"

	"go.uber.org/zap"
)

var ErrInvalidTransition = errors.New("invalid status transition")

const (
	msgReceived = "Thank you! Your order has been received and we will contact you shortly."
	msgFailed   = "We could not place your order. Please try again or call us."

	notifyTimeout = 30 * time.Second
)

type Service struct {
	repo          Repository
	catalog       core.CatalogReader
	notifier      notify.Notifier
	defaultLocale string
	location      *time.Location
	now           func() time.Time
	log           *zap.Logger
}

func NewService(repo Repository, catalog core.CatalogReader, notifier notify.Notifier, defaultLocale string, log *zap.Logger) *Service {
	return &Service{
		repo:          repo,
		catalog:       catalog,
		notifier:      notifier,
		defaultLocale: defaultLocale,
		location:      time.Local,
		now:           time.Now,
		log:           log.Named("orders"),
	}
}

var _ builder.Submitter = (*Service)(nil)

// --------------------------------------------------
// CHECKOUT
// --------------------------------------------------

// Checkout validates the form, re-prices the payload against the catalog,
// stores the order and sends the notification. A notification failure does
// not fail a stored order.
func (s *Service) Checkout(ctx context.Context, form builder.CheckoutForm) (*Order, error) {
	c, err := validateContact(form.Contact, s.defaultLocale, s.location, s.now())
	if err != nil {
		return nil, err
	}

	if form.OrderData == "" {
		return nil, validation.New("orderData", "required")
	}
	payload, err := builder.ParsePayload(form.OrderData)
	if err != nil {
		return nil, validation.New("orderData", "malformed order data")
	}

	menus, err := s.catalog.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	p, err := reprice(payload, menus)
	if err != nil {
		return nil, err
	}
	if !p.totalPrice.Equal(payload.TotalPrice.Decimal) {
		s.log.Warn("client total differs from catalog",
			zap.String("client", payload.TotalPrice.String()),
			zap.String("catalog", p.totalPrice.String()),
		)
	}

	names, err := s.catalog.DishNames(ctx, p.dishIDs)
	if err != nil {
		s.log.Warn("dish name lookup failed, using catalog names", zap.Error(err))
	} else {
		p.applyNames(names)
	}

	order := &Order{
		ClientName:    c.ClientName,
		ClientPhone:   c.ClientPhone,
		ClientEmail:   c.ClientEmail,
		Address:       c.Address,
		EventDate:     c.eventDate,
		Message:       c.Message,
		Locale:        c.Locale,
		Lines:         p.lines,
		TotalPrice:    p.totalPrice,
		TotalPortions: p.totalPortions,
		Status:        StatusNew,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}
	s.log.Info("order placed",
		zap.String("orderID", order.ID),
		zap.Int("portions", order.TotalPortions),
		zap.String("total", order.TotalPrice.String()),
	)

	// The order is stored; a client hanging up must not cancel its email.
	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	if err := s.notifier.Notify(notifyCtx, orderPlaced(order)); err != nil {
		s.log.Error("order notification failed", zap.String("orderID", order.ID), zap.Error(err))
	}
	return order, nil
}

// Submit reports Checkout as a result for the order wizard.
func (s *Service) Submit(ctx context.Context, form builder.CheckoutForm) builder.Result {
	if _, err := s.Checkout(ctx, form); err != nil {
		if ve, ok := validation.As(err); ok {
			return builder.Result{Success: false, Message: ve.Error()}
		}
		s.log.Error("checkout failed", zap.Error(err))
		return builder.Result{Success: false, Message: msgFailed}
	}
	return builder.Result{Success: true, Message: msgReceived}
}

func orderPlaced(o *Order) notify.OrderPlaced {
	msg := notify.OrderPlaced{
		OrderID:       o.ID,
		ClientName:    o.ClientName,
		ClientPhone:   o.ClientPhone,
		ClientEmail:   o.ClientEmail,
		Address:       o.Address,
		EventDate:     o.EventDate,
		Message:       o.Message,
		Locale:        o.Locale,
		Lines:         make([]notify.Line, 0, len(o.Lines)),
		TotalPrice:    o.TotalPrice,
		TotalPortions: o.TotalPortions,
		PlacedAt:      o.CreatedAt,
	}
	for _, l := range o.Lines {
		dishes := make([]string, len(l.Dishes))
		for i, d := range l.Dishes {
			dishes[i] = d.Name
		}
		msg.Lines = append(msg.Lines, notify.Line{
			MenuName:        l.MenuName,
			Portions:        l.Portions,
			PricePerPortion: l.PricePerPortion,
			TotalPrice:      l.TotalPrice,
			Dishes:          dishes,
		})
	}
	return msg
}

// --------------------------------------------------
// ADMIN
// --------------------------------------------------

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Order, int, error) {
	if filter.Status != "" && !ValidStatus(filter.Status) {
		return nil, 0, validation.New("status", "unknown status")
	}
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	return s.repo.Get(ctx, id)
}

// UpdateStatus moves an order along NEW, CONFIRMED, COMPLETED or cancels it.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*Order, error) {
	if !ValidStatus(status) {
		return nil, validation.New("status", "unknown status")
	}
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(current.Status, status) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, current.Status, status)
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	s.log.Info("order status changed",
		zap.String("orderID", id),
		zap.String("from", current.Status),
		zap.String("to", status),
	)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
