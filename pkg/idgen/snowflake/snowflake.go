package snowflake

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"katydid-common-core/pkg/idgen/core"
)

// Generator Snowflake算法的128位ID生成器实现
type Generator struct {
	// ========== 不可变配置 ==========
	version      uint64 // 版本号（0-15）
	datacenterID uint64 // 数据中心ID（0-1023）
	workerID     uint64 // 工作机器ID（0-1023）
	processID    uint64 // 进程ID（0-1023）

	// ========== 核心状态（由mu保护，必须作为整体原子更新） ==========
	lastTimestamp uint64 // 上次生成ID的时间戳（毫秒）
	hasLast       bool   // 是否已生成过ID（lastTimestamp是否有效）
	sequence      uint64 // 当前毫秒内的序列号（0 - 2^30-1）

	// ========== 配置和策略 ==========
	config *Config // 生成器配置（构造时克隆，生命周期内不变）

	// ========== 性能优化 ==========
	// precomputedPart 预计算的word1静态部分（版本号、数据中心ID、工作机器ID、进程ID）
	// 说明：这四部分在生成器生命周期内不变，预先计算避免每次生成ID时重复移位
	precomputedPart uint64

	// ========== 监控和工具 ==========
	metrics   *Metrics          // 性能监控指标（可选，nil时不收集）
	validator core.IIDValidator // ID验证器
	parser    core.IIDParser    // ID解析器
	clock     core.Clock        // 时钟协作者

	// ========== 并发控制 ==========
	mu sync.Mutex // 互斥锁，保护生成器状态
}

// New 创建一个新的Snowflake ID生成器
// 说明：使用最简配置创建生成器，版本号和进程ID为0，默认关闭监控
func New(datacenterID, workerID uint64) (core.IGenerator, error) {
	return NewWithConfig(&Config{
		DatacenterID:  datacenterID,
		WorkerID:      workerID,
		EnableMetrics: false, // 默认关闭监控以保持性能
	})
}

// NewWithConfig 使用配置创建Snowflake ID生成器
// 说明：完整配置方式，支持自定义时钟、起始序列号和监控开关
func NewWithConfig(config *Config) (core.IGenerator, error) {
	if config == nil {
		return nil, core.ErrNilConfig
	}

	// 步骤1：验证配置
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// 步骤2：设置默认值
	config.SetDefaults()

	// 步骤3：预先计算word1的静态部分（性能优化）
	precomputedPart := config.Version<<core.VersionShift |
		config.DatacenterID<<core.DatacenterIDShift |
		config.WorkerID<<core.WorkerIDShift |
		config.ProcessID<<core.ProcessIDShift

	// 步骤4：初始化监控（如果启用）
	var metrics *Metrics
	if config.EnableMetrics {
		metrics = NewMetrics()
	}

	// 步骤5：创建生成器实例
	// 注意：序列号初始化为起始序列号，因此起始序列号等于上限时首次生成即报耗尽
	generator := &Generator{
		version:         config.Version,
		datacenterID:    config.DatacenterID,
		workerID:        config.WorkerID,
		processID:       config.ProcessID,
		lastTimestamp:   0,
		hasLast:         false, // 尚未生成过ID
		sequence:        config.DefaultSequence,
		config:          config.Clone(), // 使用配置副本（不可变性原则）
		precomputedPart: precomputedPart,
		metrics:         metrics,
		validator:       NewValidator(),
		parser:          NewParser(),
		clock:           config.Clock,
	}

	config.Logger.Info("Snowflake生成器创建成功",
		zap.Uint64("version", config.Version),
		zap.Uint64("datacenter_id", config.DatacenterID),
		zap.Uint64("worker_id", config.WorkerID),
		zap.Uint64("process_id", config.ProcessID),
		zap.Uint64("default_sequence", config.DefaultSequence),
		zap.Bool("metrics_enabled", config.EnableMetrics))

	return generator, nil
}

// NextID 生成下一个唯一ID（线程安全）
// 实现core.IIDGenerator接口
func (g *Generator) NextID() (core.ID128, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.nextIDUnsafe()
}

// NextIDBatch 批量生成ID（线程安全）
// 实现core.IBatchGenerator接口
// 说明：序列号耗尽或时钟回拨时返回已生成的部分和错误，绝不等待下一毫秒
func (g *Generator) NextIDBatch(n int) ([]core.ID128, error) {
	// 参数验证
	if n <= 0 {
		return nil, fmt.Errorf("%w: batch size must be positive, got %d",
			core.ErrInvalidBatchSize, n)
	}
	if n > maxBatchSize {
		return nil, fmt.Errorf("%w: batch size too large (max %d), got %d",
			core.ErrInvalidBatchSize, maxBatchSize, n)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	ids := make([]core.ID128, 0, n)
	for i := 0; i < n; i++ {
		id, err := g.nextIDUnsafe()
		if err != nil {
			// 返回已生成的ID和错误，已生成部分依然有效且唯一
			return ids, fmt.Errorf("%w (generated %d/%d ids)", err, len(ids), n)
		}
		ids = append(ids, id)
	}

	if g.metrics != nil {
		g.metrics.BatchCount.Add(1)
	}

	return ids, nil
}

// GetVersion 获取版本号
// 实现core.IConfigurableGenerator接口
func (g *Generator) GetVersion() uint64 {
	return g.version
}

// GetDatacenterID 获取数据中心ID
// 实现core.IConfigurableGenerator接口
func (g *Generator) GetDatacenterID() uint64 {
	return g.datacenterID
}

// GetWorkerID 获取工作机器ID
// 实现core.IConfigurableGenerator接口
func (g *Generator) GetWorkerID() uint64 {
	return g.workerID
}

// GetProcessID 获取进程ID
// 实现core.IConfigurableGenerator接口
func (g *Generator) GetProcessID() uint64 {
	return g.processID
}

// GetMetrics 获取性能监控指标
// 实现core.IMonitorableGenerator接口
func (g *Generator) GetMetrics() map[string]uint64 {
	if g.metrics == nil {
		return map[string]uint64{"metrics_enabled": 0}
	}
	return g.metrics.ToMap()
}

// ResetMetrics 重置性能监控指标
// 实现core.IMonitorableGenerator接口
func (g *Generator) ResetMetrics() {
	if g.metrics != nil {
		g.metrics.Reset()
	}
}

// GetIDCount 获取已生成的ID总数
// 实现core.IMonitorableGenerator接口
func (g *Generator) GetIDCount() uint64 {
	if g.metrics == nil {
		return 0
	}
	return g.metrics.IDCount.Load()
}

// ParseID 解析ID
// 实现core.IValidaParseableGenerator接口
func (g *Generator) ParseID(id core.ID128) (*core.IDInfo, error) {
	return g.parser.Parse(id)
}

// ValidateID 验证ID
// 实现core.IValidaParseableGenerator接口
func (g *Generator) ValidateID(id core.ID128) error {
	return g.validator.Validate(id)
}

// nextIDUnsafe 内部使用的不加锁版本的ID生成方法
// 说明：调用者必须已持有锁
// 注意：任何失败路径都不修改生成器状态，时钟追上后重试是安全且幂等的
func (g *Generator) nextIDUnsafe() (core.ID128, error) {
	// 步骤1：从注入的时钟获取当前时间戳（毫秒）
	timestamp := g.clock.NowMillis()

	// 步骤2：时钟回拨检测
	// 说明：观察到的时间戳必须单调不减；回拨直接报错，绝不产出乱序或冲突的ID
	if g.hasLast && timestamp < g.lastTimestamp {
		if g.metrics != nil {
			g.metrics.ClockRegression.Add(1)
		}
		return core.ID128{}, &core.ClockRegressionError{
			Backward: g.lastTimestamp - timestamp,
		}
	}

	// 步骤3：序列号耗尽检测
	// 说明：再递增一次就会超出30位字段宽度时直接报错，绝不回绕
	// 注意：该检查先于毫秒分支，起始序列号本身等于上限时首次生成即失败
	if g.sequence >= core.MaxSequence {
		if g.metrics != nil {
			g.metrics.SequenceExhausted.Add(1)
		}
		return core.ID128{}, &core.SequenceExhaustedError{
			Overflow: g.sequence - core.MaxSequence + 1,
		}
	}

	// 步骤4：序列号管理
	if g.hasLast && timestamp == g.lastTimestamp {
		// 同一毫秒内，序列号递增
		g.sequence++
	} else {
		// 新的毫秒（或首次生成），序列号重置为起始序列号
		// 说明：每个毫秒拥有独立的计数空间
		g.sequence = g.config.DefaultSequence
	}

	// 步骤5：更新时间戳状态
	g.lastTimestamp = timestamp
	g.hasLast = true

	// 步骤6：组装ID
	// word0：完整毫秒时间戳；word1：版本号(4) | 数据中心ID(10) | 工作机器ID(10) | 进程ID(10) | 序列号(30)
	id := core.NewID128FromWords(timestamp, g.precomputedPart|g.sequence)

	// 步骤7：更新监控指标
	if g.metrics != nil {
		g.metrics.IDCount.Add(1)
	}

	return id, nil
}
