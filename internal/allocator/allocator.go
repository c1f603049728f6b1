// Package allocator 节点坐标租约分配
//
// 说明：多实例部署时，跨实例的ID唯一性完全依赖互不相同的(datacenter, worker,
// process)坐标。本包在节点启动时从Redis租用一个空闲坐标槽位，并在存活期间
// 自动续期；生成器拿到坐标后便不再与Redis有任何交互——生成过程本身是
// 完全无协调的。
package allocator

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"katydid-common-core/pkg/idgen/core"
)

const (
	// slotsPerWorker 每个工作机器ID下的进程槽位数（进程ID位宽决定）
	slotsPerWorker = 1024

	// maxScanSlots 启动时最多探测的槽位数
	// 说明：限制启动耗时；超过该数量仍无空闲槽位视为集群已满
	maxScanSlots = 4096

	// renewDivisor 续期间隔 = TTL / renewDivisor
	renewDivisor = 3

	// opTimeout 单次续期/释放调用的超时
	opTimeout = 3 * time.Second
)

// renewScript 比对值后续期
// 说明：租约键在TTL过期后可能已被其他节点SetNX抢占，
// 必须先确认值仍是自己的再续期，否则会误续他人租约
var renewScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("pexpire", KEYS[1], ARGV[2])
end
return 0`)

// releaseScript 比对值后删除
// 说明：同上，值已不是自己的说明槽位已易主，绝不能删除他人租约
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`)

// Lease 坐标租约
// 说明：持有租约期间，对应的(worker, process)坐标不会被其他节点租用
type Lease struct {
	// WorkerID 租到的工作机器ID（0-1023）
	WorkerID uint64

	// ProcessID 租到的进程ID（0-1023）
	ProcessID uint64

	key    string
	value  string
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
	cancel context.CancelFunc
	done   chan struct{}
	lost   chan struct{}
}

// Lost 租约丢失信号
// 说明：续期时发现键已不是自己的（节点停顿超过TTL后槽位被抢占）即关闭该通道；
// 持有者必须立即停止用该坐标铸造ID，否则会与新占有者产生重复ID
func (l *Lease) Lost() <-chan struct{} {
	return l.lost
}

// Allocator 坐标租约分配器
type Allocator struct {
	client       *redis.Client
	namespace    string
	datacenterID uint64
	ttl          time.Duration
	logger       *zap.Logger
}

// Options 分配器选项
type Options struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Namespace     string
	DatacenterID  uint64
	LeaseTTL      time.Duration
	Logger        *zap.Logger
}

// New 创建坐标租约分配器
func New(opts Options) (*Allocator, error) {
	if opts.DatacenterID > core.MaxDatacenterID {
		return nil, fmt.Errorf("%w: got %d, valid range [0, %d]",
			core.ErrInvalidDatacenterID, opts.DatacenterID, core.MaxDatacenterID)
	}
	if opts.Namespace == "" {
		opts.Namespace = "katydid:idgen"
	}
	if opts.LeaseTTL <= 0 {
		opts.LeaseTTL = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.RedisAddr,
		Password: opts.RedisPassword,
		DB:       opts.RedisDB,
	})

	return &Allocator{
		client:       client,
		namespace:    opts.Namespace,
		datacenterID: opts.DatacenterID,
		ttl:          opts.LeaseTTL,
		logger:       opts.Logger,
	}, nil
}

// Acquire 租用一个空闲的坐标槽位
// 说明：从槽位0开始线性探测，SETNX抢占成功即为租到；
// 租约在后台自动续期，调用方通过Lease.Stop()释放
func (a *Allocator) Acquire(ctx context.Context) (*Lease, error) {
	// 租约值记录持有者身份，便于排查坐标被谁占用
	hostname, _ := os.Hostname()
	value := fmt.Sprintf("%s/%d/%d", hostname, os.Getpid(), time.Now().UnixMilli())

	// 线性探测空闲槽位
	for slot := 0; slot < maxScanSlots; slot++ {
		workerID := uint64(slot / slotsPerWorker)
		processID := uint64(slot % slotsPerWorker)
		if workerID > core.MaxWorkerID {
			break
		}

		key := a.slotKey(workerID, processID)

		ok, err := a.client.SetNX(ctx, key, value, a.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to probe coordinate slot %s: %w", key, err)
		}
		if !ok {
			continue // 槽位已被占用，探测下一个
		}

		// 抢占成功，启动续期循环
		// 注意：续期用独立的context，不随Acquire的ctx取消
		rctx, cancel := context.WithCancel(context.Background())

		lease := &Lease{
			WorkerID:  workerID,
			ProcessID: processID,
			key:       key,
			value:     value,
			client:    a.client,
			ttl:       a.ttl,
			logger:    a.logger,
			cancel:    cancel,
			done:      make(chan struct{}),
			lost:      make(chan struct{}),
		}
		go lease.renewLoop(rctx)

		a.logger.Info("坐标租约获取成功",
			zap.Uint64("datacenter_id", a.datacenterID),
			zap.Uint64("worker_id", workerID),
			zap.Uint64("process_id", processID),
			zap.String("key", key))

		return lease, nil
	}

	return nil, fmt.Errorf("no free coordinate slot in datacenter %d (probed %d slots)",
		a.datacenterID, maxScanSlots)
}

// Close 关闭分配器底层的Redis连接
func (a *Allocator) Close() error {
	return a.client.Close()
}

// slotKey 构造槽位键
func (a *Allocator) slotKey(workerID, processID uint64) string {
	return fmt.Sprintf("%s:dc:%d:w:%d:p:%d", a.namespace, a.datacenterID, workerID, processID)
}

// renewLoop 租约续期循环
// 说明：每TTL/3通过renewScript比对值后续期；发现键已易主即发出丢失信号并退出
func (l *Lease) renewLoop(ctx context.Context) {
	defer close(l.done)

	ticker := time.NewTicker(l.ttl / renewDivisor)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// 单次调用用独立的超时context，避免Stop()的取消撕裂在途的续期调用
			callCtx, cancel := context.WithTimeout(context.Background(), opTimeout)
			kept, err := renewScript.Run(callCtx, l.client,
				[]string{l.key}, l.value, l.ttl.Milliseconds()).Int()
			cancel()

			if err != nil {
				// 正在停机时不再告警
				if ctx.Err() != nil {
					return
				}
				l.logger.Warn("坐标租约续期失败",
					zap.String("key", l.key), zap.Error(err))
				continue
			}
			if kept == 0 {
				// 键已过期且被其他节点抢占；继续铸造会产生跨节点重复ID
				l.logger.Error("坐标租约已丢失，坐标可能已被其他节点占用",
					zap.String("key", l.key))
				close(l.lost)
				return
			}
		}
	}
}

// Stop 停止续期并释放租约
// 说明：释放同样比对值，槽位已易主时绝不删除新占有者的租约
func (l *Lease) Stop() {
	l.cancel()
	<-l.done

	// 尽力释放租约键；失败时租约会在TTL后自然过期
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := releaseScript.Run(ctx, l.client, []string{l.key}, l.value).Err(); err != nil {
		l.logger.Warn("坐标租约释放失败", zap.String("key", l.key), zap.Error(err))
	}
}
