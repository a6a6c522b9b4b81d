//go:build unit
// +build unit

package app

import (
	"context"
	"strings"
	"testing"

	"clinical_voice_service/internal/domain/agents"
	"clinical_voice_service/internal/domain/orders"
	"clinical_voice_service/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderAgent_CreateOrder(t *testing.T) {
	repo := &memOrderRepo{}
	chat := &stubChat{reply: `{
		"operation": "create_order",
		"status": "success",
		"data": {"order_type": "test", "details": {"test_name": "CBC"}},
		"error": null
	}`}
	agent, err := NewOrderAgent(chat, repo, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	resp, err := agent.Process(context.Background(), "order a CBC for the patient")
	require.NoError(t, err)

	require.Equal(t, agents.StatusSuccess, resp.Status)
	assert.Equal(t, orders.StatusPending, resp.Data["status"])

	code, ok := resp.Data["order_id"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(code, "ORD-"))

	stored, err := repo.GetByCode(context.Background(), code)
	require.NoError(t, err)
	assert.Equal(t, orders.TypeTest, stored.OrderType)
	assert.Equal(t, "CBC", stored.Details["test_name"])
}

func TestOrderAgent_CreateOrderInvalidType(t *testing.T) {
	repo := &memOrderRepo{}
	chat := &stubChat{reply: `{
		"operation": "create_order",
		"status": "success",
		"data": {"order_type": "imaging"},
		"error": null
	}`}
	agent, err := NewOrderAgent(chat, repo, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	resp, err := agent.Process(context.Background(), "order an MRI")
	require.NoError(t, err)

	assert.Equal(t, agents.StatusError, resp.Status)
	require.NotNil(t, resp.Error)
	assert.Contains(t, *resp.Error, "Invalid order type: imaging")
}

func TestOrderAgent_VerifyOrder(t *testing.T) {
	repo := &memOrderRepo{}
	createChat := &stubChat{reply: `{
		"operation": "create_order",
		"status": "success",
		"data": {"order_type": "medication", "details": {"medication": "Amoxicillin"}},
		"error": null
	}`}
	agent, err := NewOrderAgent(createChat, repo, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	created, err := agent.Process(context.Background(), "order amoxicillin")
	require.NoError(t, err)
	code := created.Data["order_id"].(string)

	verifyChat := &stubChat{reply: `{
		"operation": "verify_order",
		"status": "success",
		"data": {"order_id": "` + code + `"},
		"error": null
	}`}
	agent, err = NewOrderAgent(verifyChat, repo, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	resp, err := agent.Process(context.Background(), "verify order "+code)
	require.NoError(t, err)

	require.Equal(t, agents.StatusSuccess, resp.Status)
	assert.Equal(t, orders.StatusVerified, resp.Data["status"])

	stored, err := repo.GetByCode(context.Background(), code)
	require.NoError(t, err)
	assert.Equal(t, orders.StatusVerified, stored.Status)
}

func TestOrderAgent_CancelUnknownOrder(t *testing.T) {
	repo := &memOrderRepo{}
	chat := &stubChat{reply: `{
		"operation": "cancel_order",
		"status": "success",
		"data": {"order_id": "ORD-19700101000000"},
		"error": null
	}`}
	agent, err := NewOrderAgent(chat, repo, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	resp, err := agent.Process(context.Background(), "cancel order ORD-19700101000000")
	require.NoError(t, err)

	assert.Equal(t, agents.StatusError, resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "Order ORD-19700101000000 not found", *resp.Error)
}
