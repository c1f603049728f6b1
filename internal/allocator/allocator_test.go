package allocator

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"katydid-common-core/pkg/idgen/core"
)

// newTestAllocator 创建连接到内嵌Redis的分配器
func newTestAllocator(t *testing.T, mr *miniredis.Miniredis, ttl time.Duration) *Allocator {
	t.Helper()
	a, err := New(Options{
		RedisAddr:    mr.Addr(),
		Namespace:    "test",
		DatacenterID: 1,
		LeaseTTL:     ttl,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

// TestNew 测试分配器创建
// 说明：创建只初始化客户端，不建立连接，无需真实Redis
func TestNew(t *testing.T) {
	t.Run("正常创建", func(t *testing.T) {
		a, err := New(Options{
			RedisAddr:    "localhost:6379",
			DatacenterID: 5,
			LeaseTTL:     10 * time.Second,
		})
		require.NoError(t, err)
		t.Cleanup(func() { _ = a.Close() })

		assert.Equal(t, "katydid:idgen", a.namespace, "应使用默认命名空间")
	})

	t.Run("数据中心ID越界", func(t *testing.T) {
		_, err := New(Options{
			RedisAddr:    "localhost:6379",
			DatacenterID: 1024,
		})
		assert.ErrorIs(t, err, core.ErrInvalidDatacenterID)
	})

	t.Run("默认值填充", func(t *testing.T) {
		a, err := New(Options{RedisAddr: "localhost:6379"})
		require.NoError(t, err)
		t.Cleanup(func() { _ = a.Close() })

		assert.Equal(t, 30*time.Second, a.ttl)
		assert.NotNil(t, a.logger)
	})
}

// TestAcquire 测试槽位租用
func TestAcquire(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	t.Run("租到第一个空闲槽位", func(t *testing.T) {
		a := newTestAllocator(t, mr, time.Minute)

		lease, err := a.Acquire(ctx)
		require.NoError(t, err)
		defer lease.Stop()

		assert.Equal(t, uint64(0), lease.WorkerID)
		assert.Equal(t, uint64(0), lease.ProcessID)
		assert.True(t, mr.Exists("test:dc:1:w:0:p:0"), "租约键应已写入")
	})
}

// TestAcquireContention 测试多节点争用
// 说明：已被占用的槽位SetNX失败，后来者探测到下一个空闲槽位
func TestAcquireContention(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	a := newTestAllocator(t, mr, time.Minute)
	b := newTestAllocator(t, mr, time.Minute)

	leaseA, err := a.Acquire(ctx)
	require.NoError(t, err)
	defer leaseA.Stop()

	leaseB, err := b.Acquire(ctx)
	require.NoError(t, err)
	defer leaseB.Stop()

	// 两个节点必须租到互不相同的坐标
	assert.False(t, leaseA.WorkerID == leaseB.WorkerID &&
		leaseA.ProcessID == leaseB.ProcessID, "两个节点租到了同一坐标")
	assert.Equal(t, uint64(0), leaseB.WorkerID)
	assert.Equal(t, uint64(1), leaseB.ProcessID)
}

// TestStopReleasesOwnLease 测试释放自己的租约
func TestStopReleasesOwnLease(t *testing.T) {
	mr := miniredis.RunT(t)
	a := newTestAllocator(t, mr, time.Minute)

	lease, err := a.Acquire(context.Background())
	require.NoError(t, err)
	require.True(t, mr.Exists("test:dc:1:w:0:p:0"))

	lease.Stop()
	assert.False(t, mr.Exists("test:dc:1:w:0:p:0"), "释放后租约键应被删除")
}

// TestStopKeepsSuccessorLease 测试释放不删除易主后的租约
// 说明：节点停顿超过TTL后槽位会被其他节点SetNX抢占，
// 原持有者的释放必须比对值，绝不能删除新占有者的租约键
func TestStopKeepsSuccessorLease(t *testing.T) {
	mr := miniredis.RunT(t)
	a := newTestAllocator(t, mr, time.Minute)

	lease, err := a.Acquire(context.Background())
	require.NoError(t, err)

	// 模拟TTL过期后槽位被另一个节点抢占
	const key = "test:dc:1:w:0:p:0"
	require.NoError(t, mr.Set(key, "successor-node/42/1"))

	lease.Stop()

	// 新占有者的租约键必须原样保留
	got, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "successor-node/42/1", got, "释放删除了他人的租约")
}

// TestRenewDetectsLoss 测试续期发现租约丢失
// 说明：续期比对值，键已易主时发出丢失信号而不是续他人的租约
func TestRenewDetectsLoss(t *testing.T) {
	mr := miniredis.RunT(t)
	// 短TTL让续期循环快速运转（续期间隔 = TTL/3）
	a := newTestAllocator(t, mr, 90*time.Millisecond)

	lease, err := a.Acquire(context.Background())
	require.NoError(t, err)
	defer lease.Stop()

	// 模拟槽位被另一个节点抢占
	const key = "test:dc:1:w:0:p:0"
	require.NoError(t, mr.Set(key, "successor-node/42/1"))

	select {
	case <-lease.Lost():
		// 丢失信号发出后不能再续他人的租约
		got, err := mr.Get(key)
		require.NoError(t, err)
		assert.Equal(t, "successor-node/42/1", got)
	case <-time.After(2 * time.Second):
		t.Fatal("续期循环未发现租约丢失")
	}
}

// TestSlotKey 测试槽位键构造
func TestSlotKey(t *testing.T) {
	a, err := New(Options{
		RedisAddr:    "localhost:6379",
		Namespace:    "test:ns",
		DatacenterID: 7,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	assert.Equal(t, "test:ns:dc:7:w:3:p:9", a.slotKey(3, 9))
}
