package orders_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"service-tracking/internal/apperr"
	"service-tracking/internal/domain"
	"service-tracking/internal/geo"
	"service-tracking/internal/lifecycle"
	"service-tracking/internal/service/orders"
	testlog "service-tracking/internal/testutil"
)

var (
	pickup  = geo.Point{Lat: 26.6586, Lon: 86.2003}
	dropoff = geo.Point{Lat: 26.6650, Lon: 86.2070}
)

func createdEvent() orders.Event {
	p, d := pickup, dropoff
	return orders.Event{
		OrderID:    "order-1",
		Status:     "  CREATED  ",
		CustomerID: "cust-1",
		StoreID:    "store-1",
		Pickup:     &p,
		Dropoff:    &d,
		QuotedFee:  decimal.NewNullDecimal(decimal.RequireFromString("34.88")),
	}
}

func TestProcessor_Handle_Created_CreatesDelivery(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	d := NewMockDeliveryPort(ctrl)
	p := orders.NewProcessor(d, nil)

	d.EXPECT().
		CreateDelivery(gomock.Any(), domain.NewDelivery{
			OrderID:    "order-1",
			CustomerID: "cust-1",
			StoreID:    "store-1",
			Pickup:     pickup,
			Dropoff:    dropoff,
			QuotedFee:  decimal.NewNullDecimal(decimal.RequireFromString("34.88")),
		}).
		Return(&domain.Delivery{ID: "d1"}, true, nil)

	require.NoError(t, p.Handle(context.Background(), createdEvent()))
}

func TestProcessor_Handle_Created_RedeliveryIsQuiet(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	d := NewMockDeliveryPort(ctrl)
	rec := testlog.New()
	p := orders.NewProcessor(d, rec.Logger())

	d.EXPECT().CreateDelivery(gomock.Any(), gomock.Any()).Return(&domain.Delivery{ID: "d1"}, false, nil)

	require.NoError(t, p.Handle(context.Background(), createdEvent()))
	e, ok := rec.Find("order already has a delivery")
	require.True(t, ok)
	v, _ := e.Field("delivery_id")
	require.Equal(t, "d1", v)
}

func TestProcessor_Handle_Created_WithoutPointsIsInvalid(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	d := NewMockDeliveryPort(ctrl)
	p := orders.NewProcessor(d, nil)

	ev := createdEvent()
	ev.Dropoff = nil

	err := p.Handle(context.Background(), ev)
	require.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestProcessor_Handle_Created_ErrorReturned(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	d := NewMockDeliveryPort(ctrl)
	p := orders.NewProcessor(d, nil)

	wantErr := fmt.Errorf("%w: db down", apperr.ErrTransient)
	d.EXPECT().CreateDelivery(gomock.Any(), gomock.Any()).Return(nil, false, wantErr)

	err := p.Handle(context.Background(), createdEvent())
	require.ErrorIs(t, err, wantErr)
}

func TestProcessor_Handle_Canceled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     string
		reason     string
		wantReason string
	}{
		{name: "canceled with reason", status: "canceled", reason: "customer changed mind", wantReason: "customer changed mind"},
		{name: "deleted falls back", status: "Deleted", wantReason: "order canceled"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			d := NewMockDeliveryPort(ctrl)
			p := orders.NewProcessor(d, nil)

			d.EXPECT().CancelByOrder(gomock.Any(), "order-2", tt.wantReason).Return(nil)

			err := p.Handle(context.Background(), orders.Event{OrderID: "order-2", Status: tt.status, Reason: tt.reason})
			require.NoError(t, err)
		})
	}
}

func TestProcessor_Handle_Canceled_AfterPickupIsIgnored(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	d := NewMockDeliveryPort(ctrl)
	rec := testlog.New()
	p := orders.NewProcessor(d, rec.Logger())

	d.EXPECT().
		CancelByOrder(gomock.Any(), "order-2", gomock.Any()).
		Return(fmt.Errorf("%w: picked_up -> cancelled", lifecycle.ErrInvalidTransition))

	require.NoError(t, p.Handle(context.Background(), orders.Event{OrderID: "order-2", Status: "canceled"}))
	require.True(t, rec.Has("order cancel ignored"))
}

func TestProcessor_Handle_Canceled_OtherErrorReturned(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	d := NewMockDeliveryPort(ctrl)
	p := orders.NewProcessor(d, nil)

	wantErr := errors.New("boom")
	d.EXPECT().CancelByOrder(gomock.Any(), "order-2", gomock.Any()).Return(wantErr)

	err := p.Handle(context.Background(), orders.Event{OrderID: "order-2", Status: "canceled"})
	require.ErrorIs(t, err, wantErr)
}

func TestProcessor_Handle_UnknownStatus_NoOps(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	d := NewMockDeliveryPort(ctrl)
	p := orders.NewProcessor(d, nil)

	for _, status := range []string{"completed", "cooking", "some-new-status"} {
		require.NoError(t, p.Handle(context.Background(), orders.Event{OrderID: "order-x", Status: status}))
	}
}
