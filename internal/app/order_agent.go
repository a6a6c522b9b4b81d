package app

import (
	"context"
	"fmt"
	"time"

	"clinical_voice_service/internal/domain/agents"
	"clinical_voice_service/internal/domain/orders"
	"clinical_voice_service/internal/pkg/logger"

	"github.com/google/uuid"
)

const orderSystemPrompt = `You are an Order Agent responsible for managing clinical orders.
You can perform the following operations:
- create_order: Create a new clinical order
- verify_order: Verify an existing order
- cancel_order: Cancel an order

IMPORTANT: You must respond with a valid JSON object. The response must be parseable JSON.
DO NOT include any escaped characters or newlines in string values.

Always respond in JSON format with the following structure:
{
    "operation": "<operation_type>",
    "status": "success" or "error",
    "data": {
        "order_type": "test" or "medication" or "procedure",
        "order_id": "<order_id_if_mentioned>",
        "details": {"<detail>": "<value>"}
    },
    "warnings": [],
    "error": null or error_message
}

Remember:
1. All string values must be properly quoted
2. No escaped newlines in string values
3. No trailing commas
4. order_type must be exactly one of: test, medication, procedure`

// orderAgent turns extracted order requests into clinical order records.
type orderAgent struct {
	chat   agents.ChatClient
	orders orders.OrderRepository
	logger logger.Logger
}

// NewOrderAgent creates a new instance of the order agent
func NewOrderAgent(chat agents.ChatClient, repository orders.OrderRepository, logger logger.Logger) (agents.Agent, error) {
	if chat == nil || repository == nil {
		return nil, fmt.Errorf("chat client and order repository are required")
	}
	return &orderAgent{
		chat:   chat,
		orders: repository,
		logger: logger,
	}, nil
}

func (a *orderAgent) Name() string {
	return agents.AgentOrder
}

func (a *orderAgent) Process(ctx context.Context, message string) (*agents.Response, error) {
	envelope := completeEnvelope(ctx, a.chat, orderSystemPrompt, message)
	if envelope.Status == agents.StatusError {
		return envelope, nil
	}

	switch envelope.Operation {
	case "create_order":
		return a.handleCreate(ctx, envelope)
	case "verify_order":
		return a.handleStatusChange(ctx, envelope, orders.StatusVerified)
	case "cancel_order":
		return a.handleStatusChange(ctx, envelope, orders.StatusCancelled)
	default:
		return agents.NewErrorResponse(envelope.Operation, fmt.Sprintf("Unsupported operation: %s", envelope.Operation)), nil
	}
}

func (a *orderAgent) handleCreate(ctx context.Context, envelope *agents.Response) (*agents.Response, error) {
	orderType := stringField(envelope.Data, "order_type")
	switch orderType {
	case orders.TypeTest, orders.TypeMedication, orders.TypeProcedure:
	case "":
		return agents.NewErrorResponse("create_order", "No order type provided"), nil
	default:
		return agents.NewErrorResponse("create_order",
			fmt.Sprintf("Invalid order type: %s; use test, medication or procedure", orderType)), nil
	}

	details := mapField(envelope.Data, "details")
	if details == nil {
		details = map[string]interface{}{}
	}

	now := time.Now().UTC()
	order := &orders.ClinicalOrder{
		ID:              uuid.New().String(),
		Code:            orders.NewOrderCode(now),
		OrderType:       orderType,
		Details:         details,
		Status:          orders.StatusPending,
		Warnings:        envelope.Warnings,
		DateTimeCreated: now,
	}
	if err := order.Validate(); err != nil {
		return nil, fmt.Errorf("invalid clinical order: %w", err)
	}

	if err := a.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	a.logger.Info("Created ", orderType, " order ", order.Code)
	resp := agents.NewSuccessResponse("create_order", map[string]interface{}{
		"order_id":   order.Code,
		"order_type": order.OrderType,
		"status":     order.Status,
		"details":    order.Details,
	})
	resp.Warnings = append(resp.Warnings, envelope.Warnings...)
	return resp, nil
}

func (a *orderAgent) handleStatusChange(ctx context.Context, envelope *agents.Response, status string) (*agents.Response, error) {
	code := stringField(envelope.Data, "order_id", "code")
	if code == "" {
		return agents.NewErrorResponse(envelope.Operation, "No order id provided"), nil
	}

	order, err := a.orders.GetByCode(ctx, code)
	if err != nil {
		return agents.NewErrorResponse(envelope.Operation, fmt.Sprintf("Order %s not found", code)), nil
	}

	order.Status = status
	if err := a.orders.UpdateByID(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update order %s: %w", code, err)
	}

	a.logger.Info("Order ", order.Code, " marked ", status)
	return agents.NewSuccessResponse(envelope.Operation, map[string]interface{}{
		"order_id":   order.Code,
		"order_type": order.OrderType,
		"status":     order.Status,
	}), nil
}
