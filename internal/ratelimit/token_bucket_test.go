package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBucket_Allow(t *testing.T) {
	tb := NewTokenBucket(60, 3)

	assert.True(t, tb.Allow(), "初始桶应是满的")
	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow(), "令牌耗尽后应拒绝")
}

func TestTokenBucket_Refill(t *testing.T) {
	// 600 qpm = 每秒10个令牌
	tb := NewTokenBucket(600, 1)
	require.True(t, tb.Allow())
	require.False(t, tb.Allow(), "容量为1，取完即空")

	time.Sleep(150 * time.Millisecond)
	assert.True(t, tb.Allow(), "等待后应补充出新令牌")
}

func TestTokenBucket_DefaultCapacity(t *testing.T) {
	tb := NewTokenBucket(10, 0)
	assert.Equal(t, 5.0, tb.capacity, "未指定容量时默认为qpm的一半")

	tiny := NewTokenBucket(1, 0)
	assert.Equal(t, 1.0, tiny.capacity, "容量至少为1")
}

func TestTokenBucket_WaitRespectsContext(t *testing.T) {
	// 极低速率保证Wait必须等待
	tb := NewTokenBucket(1, 1)
	require.True(t, tb.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := tb.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded, "上下文超时应中断等待")
}
