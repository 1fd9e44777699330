package issue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "fitout/internal/domain/issue/valueobjects"
)

func TestNewAIDraft(t *testing.T) {
	msg, err := NewAIDraft(1, "Re: broken chairs", "We propose a replacement.", 0.82)
	require.NoError(t, err)

	assert.Equal(t, vo.SenderAI, msg.Sender())
	assert.Equal(t, vo.MessageStatusPendingApproval, msg.Status())
	require.NotNil(t, msg.AIConfidence())
	assert.Equal(t, 0.82, *msg.AIConfidence())
}

func TestNewVendorMessage(t *testing.T) {
	msg, err := NewVendorMessage(1, "Re: broken chairs", "We will replace them.", "vendor@example.com", "<abc@mail>", "<def@mail>")
	require.NoError(t, err)

	assert.Equal(t, vo.SenderVendor, msg.Sender())
	assert.Equal(t, vo.MessageStatusReceived, msg.Status())
	assert.Equal(t, "<abc@mail>", msg.RFCMessageID())
	assert.Equal(t, "<def@mail>", msg.InReplyTo())
}

func TestNewSystemNote(t *testing.T) {
	msg, err := NewSystemNote(1, "AI drafting failed, stored fallback reply")
	require.NoError(t, err)

	assert.Equal(t, vo.SenderSystem, msg.Sender())
	assert.Equal(t, vo.MessageStatusInternal, msg.Status())
}

func TestMessage_PendingApprovalLifecycle(t *testing.T) {
	t.Run("approve then send", func(t *testing.T) {
		msg, err := NewAIDraft(1, "Re: chairs", "draft body", 0.6)
		require.NoError(t, err)

		require.NoError(t, msg.Approve(42))
		require.NotNil(t, msg.ApproverID())
		assert.Equal(t, uint(42), *msg.ApproverID())
		assert.NotNil(t, msg.ApprovedAt())

		require.NoError(t, msg.MarkSent("<out-1@fitout>"))
		assert.Equal(t, vo.MessageStatusSent, msg.Status())
		assert.Equal(t, "<out-1@fitout>", msg.RFCMessageID())
	})

	t.Run("reject marks failed", func(t *testing.T) {
		msg, err := NewAIDraft(1, "Re: chairs", "draft body", 0.6)
		require.NoError(t, err)

		require.NoError(t, msg.MarkFailed())
		assert.Equal(t, vo.MessageStatusFailed, msg.Status())
	})

	t.Run("sent is terminal", func(t *testing.T) {
		msg, err := NewAIDraft(1, "Re: chairs", "draft body", 0.6)
		require.NoError(t, err)
		require.NoError(t, msg.MarkSent("<out-2@fitout>"))

		assert.Error(t, msg.MarkFailed())
	})

	t.Run("received cannot become sent", func(t *testing.T) {
		msg, err := NewVendorMessage(1, "s", "b", "v@example.com", "<in@mail>", "")
		require.NoError(t, err)

		assert.Error(t, msg.MarkSent("<out-3@fitout>"))
	})
}

func TestMessage_EditBody(t *testing.T) {
	msg, err := NewAIDraft(1, "Re: chairs", "original draft", 0.5)
	require.NoError(t, err)

	require.NoError(t, msg.EditBody("edited draft"))
	assert.Equal(t, "edited draft", msg.Body())

	require.NoError(t, msg.MarkSent("<out@fitout>"))
	assert.Error(t, msg.EditBody("too late"), "sent messages are immutable")
}

func TestMessage_ApproveRequiresPending(t *testing.T) {
	msg, err := NewVendorMessage(1, "s", "b", "v@example.com", "<in@mail>", "")
	require.NoError(t, err)

	assert.Error(t, msg.Approve(42))
}
