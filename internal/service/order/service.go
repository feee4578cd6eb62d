// Package order implements the checkout placement sequence: resolve the
// delivery point, mint an order code, find candidate stores, partition the
// cart across them and persist the whole order graph atomically.
package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"nearmart/internal/allocation"
	"nearmart/internal/domain"
	orderrepo "nearmart/internal/repository/order"
)

type orderRepo interface {
	Create(ctx context.Context, in orderrepo.CreateInput) (*domain.CustomerOrder, error)
	GetByID(ctx context.Context, id string) (*domain.CustomerOrder, error)
	GetByCode(ctx context.Context, code string) (*domain.CustomerOrder, error)
}

type storeLocator interface {
	NearbyStoreIDs(ctx context.Context, lat, lng, radiusKm float64) []string
}

type availabilityIndex interface {
	FindAvailability(ctx context.Context, storeIDs, productIDs []string) ([]domain.Availability, error)
}

type sequences interface {
	Next(ctx context.Context, key string) (int64, error)
}

type geocoder interface {
	Geocode(ctx context.Context, address string) (*domain.Coordinates, error)
}

type Service struct {
	orders       orderRepo
	locator      storeLocator
	availability availabilityIndex
	sequences    sequences
	geocoder     geocoder
	codePrefix   string
	logger       *zap.Logger
	now          func() time.Time
}

func New(orders orderRepo, locator storeLocator, availability availabilityIndex, seq sequences, geo geocoder, codePrefix string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		orders:       orders,
		locator:      locator,
		availability: availability,
		sequences:    seq,
		geocoder:     geo,
		codePrefix:   codePrefix,
		logger:       logger,
		now:          time.Now,
	}
}

// PlaceInput is one checkout submission.
type PlaceInput struct {
	CustomerID       string            `json:"customerId"`
	Items            []domain.CartItem `json:"items"`
	ShippingAddress  string            `json:"shippingAddress"`
	ShippingLat      *float64          `json:"shippingLat"`
	ShippingLng      *float64          `json:"shippingLng"`
	PaymentMethod    string            `json:"paymentMethod"`
	PaymentStatus    string            `json:"paymentStatus"`
	DeliveryFeeCents int64             `json:"deliveryFeeCents"`
	DiscountCents    int64             `json:"discountCents"`
}

// Place runs the full placement sequence and returns the persisted order
// aggregate. Placement is all-or-nothing: any failure leaves no rows behind.
// It is intentionally not idempotent; submitting the same input twice
// creates two orders.
func (s *Service) Place(ctx context.Context, in PlaceInput) (*domain.CustomerOrder, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	coords, err := s.resolveCoordinates(ctx, in)
	if err != nil {
		return nil, err
	}

	code, err := s.nextOrderCode(ctx)
	if err != nil {
		return nil, err
	}

	candidates := s.locator.NearbyStoreIDs(ctx, coords.Lat, coords.Lng, 0)
	if len(candidates) == 0 {
		return nil, &domain.NoStoresAvailableError{Lat: coords.Lat, Lng: coords.Lng}
	}

	avail, err := s.availability.FindAvailability(ctx, candidates, productIDs(in.Items))
	if err != nil {
		return nil, fmt.Errorf("resolve availability: %w", err)
	}

	result := allocation.Allocate(in.Items, avail)
	if len(result.Unassigned) > 0 {
		names := make([]string, 0, len(result.Unassigned))
		seen := make(map[string]bool)
		for _, item := range result.Unassigned {
			if !seen[item.Name] {
				seen[item.Name] = true
				names = append(names, item.Name)
			}
		}
		s.logger.Info("placement rejected, items unavailable",
			zap.String("customer_id", in.CustomerID), zap.Strings("items", names))
		return nil, &domain.ItemsUnavailableError{Names: names}
	}

	subtotal := int64(0)
	for _, item := range in.Items {
		subtotal += item.UnitPriceCents * int64(item.Quantity)
	}

	fees := apportionFee(in.DeliveryFeeCents, len(result.StoreOrder))
	storeOrders := make([]orderrepo.StoreOrderInput, 0, len(result.StoreOrder))
	for i, storeID := range result.StoreOrder {
		items := result.Assignments[storeID]
		storeSubtotal := int64(0)
		for _, item := range items {
			storeSubtotal += item.UnitPriceCents * int64(item.Quantity)
		}
		storeOrders = append(storeOrders, orderrepo.StoreOrderInput{
			StoreID:          storeID,
			SubtotalCents:    storeSubtotal,
			DeliveryFeeCents: fees[i],
			Items:            items,
		})
	}

	created, err := s.orders.Create(ctx, orderrepo.CreateInput{
		CustomerID:       in.CustomerID,
		OrderCode:        code,
		Status:           domain.StatusPendingAtStore,
		PaymentStatus:    in.PaymentStatus,
		PaymentMethod:    in.PaymentMethod,
		SubtotalCents:    subtotal,
		DeliveryFeeCents: in.DeliveryFeeCents,
		DiscountCents:    in.DiscountCents,
		TotalCents:       subtotal + in.DeliveryFeeCents - in.DiscountCents,
		ShippingAddress:  in.ShippingAddress,
		ShippingLat:      coords.Lat,
		ShippingLng:      coords.Lng,
		StoreOrders:      storeOrders,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order placed",
		zap.String("order_id", created.ID), zap.String("order_code", created.OrderCode),
		zap.String("customer_id", created.CustomerID), zap.Int("store_orders", len(created.StoreOrders)))
	return created, nil
}

// Get returns the order aggregate by id.
func (s *Service) Get(ctx context.Context, id string) (*domain.CustomerOrder, error) {
	return s.orders.GetByID(ctx, id)
}

// GetByCode returns the order aggregate by its human-readable code.
func (s *Service) GetByCode(ctx context.Context, code string) (*domain.CustomerOrder, error) {
	return s.orders.GetByCode(ctx, code)
}

func validate(in PlaceInput) error {
	if strings.TrimSpace(in.CustomerID) == "" {
		return domain.NewValidationError("customerId required")
	}
	if len(in.Items) == 0 {
		return domain.NewValidationError("cart is empty")
	}
	for i, item := range in.Items {
		if strings.TrimSpace(item.ProductID) == "" {
			return domain.NewValidationError("items[%d]: productId required", i)
		}
		if item.Quantity <= 0 {
			return domain.NewValidationError("items[%d]: quantity must be positive", i)
		}
		if item.UnitPriceCents < 0 {
			return domain.NewValidationError("items[%d]: unitPriceCents must not be negative", i)
		}
	}
	hasCoords := in.ShippingLat != nil && in.ShippingLng != nil
	if strings.TrimSpace(in.ShippingAddress) == "" && !hasCoords {
		return domain.NewValidationError("shipping address or coordinates required")
	}
	return nil
}

func (s *Service) resolveCoordinates(ctx context.Context, in PlaceInput) (domain.Coordinates, error) {
	if in.ShippingLat != nil && in.ShippingLng != nil {
		return domain.Coordinates{Lat: *in.ShippingLat, Lng: *in.ShippingLng}, nil
	}
	coords, err := s.geocoder.Geocode(ctx, in.ShippingAddress)
	if err != nil {
		return domain.Coordinates{}, &domain.AddressResolutionError{Address: in.ShippingAddress, Err: err}
	}
	if coords == nil {
		return domain.Coordinates{}, &domain.AddressResolutionError{Address: in.ShippingAddress}
	}
	return *coords, nil
}

// nextOrderCode mints a code like NM202506010042: brand prefix, UTC date,
// then a zero-padded per-date sequence from the datastore counter.
func (s *Service) nextOrderCode(ctx context.Context) (string, error) {
	key := s.codePrefix + s.now().UTC().Format("20060102")
	n, err := s.sequences.Next(ctx, key)
	if err != nil {
		return "", &domain.SequenceGenerationError{Prefix: key, Err: err}
	}
	return fmt.Sprintf("%s%04d", key, n), nil
}

func productIDs(items []domain.CartItem) []string {
	seen := make(map[string]bool, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}
	return ids
}

// apportionFee splits total equally across n sub-orders; the remainder
// cents go to the first part so the parts always sum to total exactly.
func apportionFee(total int64, n int) []int64 {
	if n <= 0 {
		return nil
	}
	fees := make([]int64, n)
	base := total / int64(n)
	for i := range fees {
		fees[i] = base
	}
	fees[0] += total % int64(n)
	return fees
}
