package create

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tumbleweedd/pineapple_store/storefront_service/internal/domain/models"
	internalErrors "github.com/tumbleweedd/pineapple_store/storefront_service/internal/lib/errors"
	"github.com/tumbleweedd/pineapple_store/storefront_service/pkg/logger"
	"github.com/tumbleweedd/pineapple_store/storefront_service/pkg/supabase"
)

//go:generate mockgen -destination=mocks/mocks.go -package=mocks . OrderFunction,Tracer,ErrorReporter,EventPublisher

type OrderFunction interface {
	InvokeFunction(ctx context.Context, name string, body []byte, header http.Header) (*supabase.FunctionResponse, error)
}

// Tracer exposes the propagation headers of the active trace, if there is one.
type Tracer interface {
	TraceHeaders(ctx context.Context) (http.Header, bool)
}

type ErrorReporter interface {
	CaptureError(ctx context.Context, err error)
}

type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, event *models.OrderCreatedEvent)
}

type outcomeRecorder interface {
	OrderRelayed(outcome string)
}

const (
	outcomeCreated     = "created"
	outcomeInvalid     = "invalid"
	outcomeUnavailable = "unavailable"
	outcomeRejected    = "rejected"
	outcomeInternal    = "internal"
	outcomeCanceled    = "canceled"

	maxRejectionMessage = 512
)

type OrderCreationService struct {
	log logger.Logger

	orderFunction OrderFunction
	functionName  string

	tracer    Tracer
	reporter  ErrorReporter
	publisher EventPublisher
	recorder  outcomeRecorder
}

// New builds the order relay. Everything after functionName is optional and may be nil.
func New(
	log logger.Logger,
	orderFunction OrderFunction,
	functionName string,
	tracer Tracer,
	reporter ErrorReporter,
	publisher EventPublisher,
	recorder outcomeRecorder,
) *OrderCreationService {
	return &OrderCreationService{
		log:           log,
		orderFunction: orderFunction,
		functionName:  functionName,
		tracer:        tracer,
		reporter:      reporter,
		publisher:     publisher,
		recorder:      recorder,
	}
}

func (os *OrderCreationService) Create(ctx context.Context, req *models.OrderRequest) (*models.CreatedOrder, error) {
	const op = "services.order.Create"

	if err := Validate(req); err != nil {
		os.record(outcomeInvalid)
		return nil, err
	}

	payload := req.Payload()

	body, err := json.Marshal(payload)
	if err != nil {
		os.log.ErrorContext(ctx, op, logger.Err(err))
		os.record(outcomeInternal)
		return nil, fmt.Errorf("%s: marshal payload: %w", op, internalErrors.ErrInternal)
	}

	os.log.InfoContext(ctx, op,
		logger.String("user_id", payload.UserID),
		logger.Int("item_count", len(payload.Items)),
		logger.Float64("total", payload.Total),
	)

	resp, err := os.orderFunction.InvokeFunction(ctx, os.functionName, body, os.traceHeaders(ctx))
	if err != nil {
		return nil, os.invokeFailed(ctx, op, err)
	}
	if resp == nil {
		os.record(outcomeInternal)
		return nil, fmt.Errorf("%s: empty function response: %w", op, internalErrors.ErrInternal)
	}

	if resp.StatusCode != http.StatusCreated {
		rejected := &internalErrors.UpstreamRejectedError{
			StatusCode: resp.StatusCode,
			Message:    rejectionMessage(resp),
		}
		os.log.ErrorContext(ctx, op,
			logger.Int("status", resp.StatusCode),
			logger.String("error", rejected.Message),
		)
		os.report(ctx, rejected)
		os.record(outcomeRejected)
		return nil, fmt.Errorf("%s: %w", op, rejected)
	}

	created := &models.CreatedOrder{
		OrderID: gjson.GetBytes(resp.Body, "order.id").String(),
		Raw:     resp.Body,
	}

	os.log.InfoContext(ctx, op, logger.String("message", "order created"), logger.String("order_id", created.OrderID))
	os.record(outcomeCreated)
	os.publish(ctx, created, payload)

	return created, nil
}

func (os *OrderCreationService) invokeFailed(ctx context.Context, op string, err error) error {
	if errors.Is(err, context.Canceled) {
		os.log.WarnContext(ctx, op, logger.String("message", "request canceled by client"), logger.Err(err))
		os.record(outcomeCanceled)
		return fmt.Errorf("%s: %w: %v", op, internalErrors.ErrInternal, err)
	}

	os.log.ErrorContext(ctx, op, logger.Err(err))
	os.report(ctx, err)

	if errors.Is(err, supabase.ErrTransport) || errors.Is(err, context.DeadlineExceeded) {
		os.record(outcomeUnavailable)
		return fmt.Errorf("%s: %w: %v", op, internalErrors.ErrUpstreamUnavailable, err)
	}

	os.record(outcomeInternal)
	return fmt.Errorf("%s: %w: %v", op, internalErrors.ErrInternal, err)
}

func (os *OrderCreationService) traceHeaders(ctx context.Context) http.Header {
	header := http.Header{}
	if os.tracer == nil {
		return header
	}

	traceHeader, ok := os.tracer.TraceHeaders(ctx)
	if !ok {
		return header
	}

	for key, values := range traceHeader {
		for _, value := range values {
			header.Add(key, value)
		}
	}

	return header
}

func (os *OrderCreationService) publish(ctx context.Context, created *models.CreatedOrder, payload models.OrderPayload) {
	if os.publisher == nil {
		return
	}

	os.publisher.PublishOrderCreated(ctx, &models.OrderCreatedEvent{
		EventUUID: uuid.New(),
		EventType: models.OrderCreated,
		OrderID:   created.OrderID,
		UserID:    payload.UserID,
		Total:     payload.Total,
		ItemCount: len(payload.Items),
		CreatedAt: time.Now().UTC(),
	})
}

func (os *OrderCreationService) report(ctx context.Context, err error) {
	if os.reporter != nil {
		os.reporter.CaptureError(ctx, err)
	}
}

func (os *OrderCreationService) record(outcome string) {
	if os.recorder != nil {
		os.recorder.OrderRelayed(outcome)
	}
}

func rejectionMessage(resp *supabase.FunctionResponse) string {
	for _, field := range []string{"error", "message"} {
		if value := gjson.GetBytes(resp.Body, field); value.Type == gjson.String && value.Str != "" {
			return value.Str
		}
	}

	if text := strings.TrimSpace(string(resp.Body)); text != "" && !gjson.ValidBytes(resp.Body) {
		if len(text) > maxRejectionMessage {
			text = text[:maxRejectionMessage]
		}
		return text
	}

	return http.StatusText(resp.StatusCode)
}
