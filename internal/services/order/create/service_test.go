package create_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"github.com/tumbleweedd/pineapple_store/storefront_service/internal/domain/models"
	internalErrors "github.com/tumbleweedd/pineapple_store/storefront_service/internal/lib/errors"
	"github.com/tumbleweedd/pineapple_store/storefront_service/internal/services/order/create"
	"github.com/tumbleweedd/pineapple_store/storefront_service/internal/services/order/create/mocks"
	"github.com/tumbleweedd/pineapple_store/storefront_service/pkg/logger"
	"github.com/tumbleweedd/pineapple_store/storefront_service/pkg/supabase"
)

const functionName = "create-order"

type outcomeSpy struct {
	outcomes []string
}

func (o *outcomeSpy) OrderRelayed(outcome string) {
	o.outcomes = append(o.outcomes, outcome)
}

func validOrder() *models.OrderRequest {
	return &models.OrderRequest{
		UserID: "u1",
		Items: []models.OrderItem{
			{ProductID: "1", Quantity: 2, PriceAtPurchase: 10},
			{ProductID: "2", Quantity: 1, PriceAtPurchase: 5},
		},
	}
}

func TestCreateSuccess(t *testing.T) {
	ctx := context.Background()
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	fn := mocks.NewMockOrderFunction(ctl)
	tracer := mocks.NewMockTracer(ctl)
	reporter := mocks.NewMockErrorReporter(ctl)
	publisher := mocks.NewMockEventPublisher(ctl)
	outcomes := &outcomeSpy{}

	respBody := []byte(`{"success":true,"order":{"id":"ord_42","status":"pending"}}`)
	traceHeader := http.Header{}
	traceHeader.Set("sentry-trace", "abc-def-1")
	traceHeader.Set("baggage", "sentry-trace_id=abc")

	tracer.EXPECT().TraceHeaders(ctx).Return(traceHeader, true)
	fn.EXPECT().InvokeFunction(ctx, functionName, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, body []byte, header http.Header) (*supabase.FunctionResponse, error) {
			var payload models.OrderPayload
			require.NoError(t, json.Unmarshal(body, &payload))
			require.Equal(t, "u1", payload.UserID)
			require.Len(t, payload.Items, 2)
			require.Equal(t, 25.0, payload.Total)

			require.Equal(t, "abc-def-1", header.Get("sentry-trace"))
			require.Equal(t, "sentry-trace_id=abc", header.Get("baggage"))

			return &supabase.FunctionResponse{StatusCode: http.StatusCreated, Body: respBody}, nil
		})
	publisher.EXPECT().PublishOrderCreated(ctx, gomock.Any()).
		Do(func(_ context.Context, event *models.OrderCreatedEvent) {
			require.Equal(t, models.OrderCreated, event.EventType)
			require.Equal(t, "ord_42", event.OrderID)
			require.Equal(t, "u1", event.UserID)
			require.Equal(t, 25.0, event.Total)
			require.Equal(t, 2, event.ItemCount)
			require.NotEmpty(t, event.UUID())
		})

	svc := create.New(logger.NewDiscard(), fn, functionName, tracer, reporter, publisher, outcomes)

	created, err := svc.Create(ctx, validOrder())
	require.NoError(t, err)
	require.Equal(t, "ord_42", created.OrderID)
	require.Equal(t, respBody, created.Raw)
	require.Equal(t, []string{"created"}, outcomes.outcomes)
}

func TestCreateWithoutActiveTrace(t *testing.T) {
	ctx := context.Background()
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	fn := mocks.NewMockOrderFunction(ctl)
	tracer := mocks.NewMockTracer(ctl)

	tracer.EXPECT().TraceHeaders(ctx).Return(nil, false)
	fn.EXPECT().InvokeFunction(ctx, functionName, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ []byte, header http.Header) (*supabase.FunctionResponse, error) {
			require.Empty(t, header.Get("sentry-trace"))
			require.Empty(t, header.Get("baggage"))
			return &supabase.FunctionResponse{StatusCode: http.StatusCreated, Body: []byte(`{"order":{"id":"ord_1"}}`)}, nil
		})

	svc := create.New(logger.NewDiscard(), fn, functionName, tracer, nil, nil, nil)

	created, err := svc.Create(ctx, validOrder())
	require.NoError(t, err)
	require.Equal(t, "ord_1", created.OrderID)
}

func TestCreateValidation(t *testing.T) {
	type tCase struct {
		name  string
		order *models.OrderRequest
	}

	tCases := []tCase{
		{name: "nil order", order: nil},
		{name: "empty user", order: &models.OrderRequest{Items: validOrder().Items}},
		{name: "blank user", order: &models.OrderRequest{UserID: "   ", Items: validOrder().Items}},
		{name: "empty items", order: &models.OrderRequest{UserID: "u1"}},
		{
			name: "zero quantity",
			order: &models.OrderRequest{UserID: "u1", Items: []models.OrderItem{
				{ProductID: "1", Quantity: 0, PriceAtPurchase: 1},
			}},
		},
		{
			name: "negative price",
			order: &models.OrderRequest{UserID: "u1", Items: []models.OrderItem{
				{ProductID: "1", Quantity: 1, PriceAtPurchase: -0.01},
			}},
		},
	}

	for _, tc := range tCases {
		t.Run(tc.name, func(t *testing.T) {
			ctl := gomock.NewController(t)
			defer ctl.Finish()

			// no expectations: any call to the function fails the test
			fn := mocks.NewMockOrderFunction(ctl)
			outcomes := &outcomeSpy{}

			svc := create.New(logger.NewDiscard(), fn, functionName, nil, nil, nil, outcomes)

			created, err := svc.Create(context.Background(), tc.order)
			require.Nil(t, created)
			require.ErrorIs(t, err, internalErrors.ErrValidation)
			require.Equal(t, []string{"invalid"}, outcomes.outcomes)
		})
	}
}

func TestCreateUpstreamFailures(t *testing.T) {
	type tCase struct {
		name        string
		resp        *supabase.FunctionResponse
		invokeErr   error
		wantErr     error
		wantStatus  int
		wantMessage string
		wantOutcome string
		skipReport  bool
	}

	tCases := []tCase{
		{
			name:        "transport failure",
			invokeErr:   fmt.Errorf("supabase.Client.InvokeFunction: %w: %w", supabase.ErrTransport, errors.New("connection refused")),
			wantErr:     internalErrors.ErrUpstreamUnavailable,
			wantOutcome: "unavailable",
		},
		{
			name:        "deadline exceeded",
			invokeErr:   context.DeadlineExceeded,
			wantErr:     internalErrors.ErrUpstreamUnavailable,
			wantOutcome: "unavailable",
		},
		{
			name:        "client canceled",
			invokeErr:   context.Canceled,
			wantErr:     internalErrors.ErrInternal,
			wantOutcome: "canceled",
			skipReport:  true,
		},
		{
			name:        "client canceled during transport",
			invokeErr:   fmt.Errorf("supabase.Client.InvokeFunction: %w: %w", supabase.ErrTransport, context.Canceled),
			wantErr:     internalErrors.ErrInternal,
			wantOutcome: "canceled",
			skipReport:  true,
		},
		{
			name:        "unexpected invoke error",
			invokeErr:   errors.New("boom"),
			wantErr:     internalErrors.ErrInternal,
			wantOutcome: "internal",
		},
		{
			name:        "rejected with error field",
			resp:        &supabase.FunctionResponse{StatusCode: http.StatusBadRequest, Body: []byte(`{"error":"Product 9 not found"}`)},
			wantErr:     internalErrors.ErrUpstreamRejected,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Product 9 not found",
			wantOutcome: "rejected",
		},
		{
			name:        "rejected with message field",
			resp:        &supabase.FunctionResponse{StatusCode: http.StatusConflict, Body: []byte(`{"message":"out of stock"}`)},
			wantErr:     internalErrors.ErrUpstreamRejected,
			wantStatus:  http.StatusConflict,
			wantMessage: "out of stock",
			wantOutcome: "rejected",
		},
		{
			name:        "rejected with plain text",
			resp:        &supabase.FunctionResponse{StatusCode: http.StatusBadGateway, Body: []byte("  upstream exploded \n")},
			wantErr:     internalErrors.ErrUpstreamRejected,
			wantStatus:  http.StatusBadGateway,
			wantMessage: "upstream exploded",
			wantOutcome: "rejected",
		},
		{
			name:        "rejected with empty body",
			resp:        &supabase.FunctionResponse{StatusCode: http.StatusInternalServerError},
			wantErr:     internalErrors.ErrUpstreamRejected,
			wantStatus:  http.StatusInternalServerError,
			wantMessage: http.StatusText(http.StatusInternalServerError),
			wantOutcome: "rejected",
		},
		{
			name:        "ok instead of created",
			resp:        &supabase.FunctionResponse{StatusCode: http.StatusOK, Body: []byte(`{"order":{"id":"x"}}`)},
			wantErr:     internalErrors.ErrUpstreamRejected,
			wantStatus:  http.StatusOK,
			wantMessage: http.StatusText(http.StatusOK),
			wantOutcome: "rejected",
		},
	}

	for _, tc := range tCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			ctl := gomock.NewController(t)
			defer ctl.Finish()

			fn := mocks.NewMockOrderFunction(ctl)
			reporter := mocks.NewMockErrorReporter(ctl)
			// no publish expected on failure
			publisher := mocks.NewMockEventPublisher(ctl)
			outcomes := &outcomeSpy{}

			fn.EXPECT().InvokeFunction(ctx, functionName, gomock.Any(), gomock.Any()).Return(tc.resp, tc.invokeErr)
			if !tc.skipReport {
				reporter.EXPECT().CaptureError(ctx, gomock.Any())
			}

			svc := create.New(logger.NewDiscard(), fn, functionName, nil, reporter, publisher, outcomes)

			created, err := svc.Create(ctx, validOrder())
			require.Nil(t, created)
			require.ErrorIs(t, err, tc.wantErr)
			require.Equal(t, []string{tc.wantOutcome}, outcomes.outcomes)

			if tc.wantStatus != 0 {
				var rejected *internalErrors.UpstreamRejectedError
				require.True(t, errors.As(err, &rejected))
				require.Equal(t, tc.wantStatus, rejected.StatusCode)
				require.Equal(t, tc.wantMessage, rejected.Message)
			}
		})
	}
}
