package snowflake

import (
	"fmt"

	"go.uber.org/zap"

	"katydid-common-core/pkg/idgen/core"
)

// ============================================================================
// Snowflake 配置定义
// ============================================================================

// Config Snowflake生成器配置
type Config struct {
	// Version 版本号
	// 范围：0-15（4位二进制）
	// 用途：标识ID布局版本，便于将来演进布局时区分新旧ID
	Version uint64

	// DatacenterID 数据中心ID
	// 范围：0-1023（10位二进制）
	// 用途：标识不同的数据中心，避免跨数据中心ID冲突
	DatacenterID uint64

	// WorkerID 工作机器ID
	// 范围：0-1023（10位二进制）
	// 用途：标识同一数据中心内的不同机器，避免同数据中心内ID冲突
	WorkerID uint64

	// ProcessID 进程ID
	// 范围：0-1023（10位二进制）
	// 用途：标识同一机器上的不同进程，避免同机多进程ID冲突
	ProcessID uint64

	// DefaultSequence 起始序列号
	// 说明：毫秒推进（或首次生成）时序列号重置为该值
	// 范围：0 - 2^30-1
	// 默认值：0
	DefaultSequence uint64

	// Clock 时钟协作者
	// 说明：生成器通过该接口读取当前毫秒时间戳；为nil时使用系统时钟
	// 注意：时钟读取必须廉价且非阻塞，它处于生成器的临界区内
	Clock core.Clock

	// EnableMetrics 是否启用性能监控
	// 说明：
	//   - true: 收集ID生成统计信息（如：生成数量、时钟回拨次数等）
	//   - false: 不收集监控数据，性能更优
	//
	// 默认值：false
	EnableMetrics bool

	// Logger 日志器
	// 说明：为nil时使用zap.NewNop()，库内不产生任何输出
	Logger *zap.Logger
}

// Validate 验证配置的有效性
// 说明：任一坐标字段越界即构造失败，不会产出半配置的生成器
func (c *Config) Validate() error {
	// 验证版本号
	if c.Version > core.MaxVersion {
		return fmt.Errorf("%w: got %d, valid range [0, %d]",
			core.ErrInvalidVersion, c.Version, core.MaxVersion)
	}

	// 验证数据中心ID
	if c.DatacenterID > core.MaxDatacenterID {
		return fmt.Errorf("%w: got %d, valid range [0, %d]",
			core.ErrInvalidDatacenterID, c.DatacenterID, core.MaxDatacenterID)
	}

	// 验证工作机器ID
	if c.WorkerID > core.MaxWorkerID {
		return fmt.Errorf("%w: got %d, valid range [0, %d]",
			core.ErrInvalidWorkerID, c.WorkerID, core.MaxWorkerID)
	}

	// 验证进程ID
	if c.ProcessID > core.MaxProcessID {
		return fmt.Errorf("%w: got %d, valid range [0, %d]",
			core.ErrInvalidProcessID, c.ProcessID, core.MaxProcessID)
	}

	// 验证起始序列号
	// 注意：等于上限是合法配置，但首次生成就会触发序列号耗尽错误
	if c.DefaultSequence > core.MaxSequence {
		return fmt.Errorf("%w: got %d, valid range [0, %d]",
			core.ErrInvalidSequence, c.DefaultSequence, core.MaxSequence)
	}

	return nil
}

// SetDefaults 设置配置的默认值
func (c *Config) SetDefaults() {
	// 时钟默认使用系统时钟
	if c.Clock == nil {
		c.Clock = core.SystemClock{}
	}

	// 日志器默认不输出
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}

	// 注意：DefaultSequence的零值0就是合理的默认起始序列号，无需显式设置
}

// Clone 克隆配置对象
func (c *Config) Clone() *Config {
	// 创建新的配置对象，复制所有字段
	return &Config{
		Version:         c.Version,
		DatacenterID:    c.DatacenterID,
		WorkerID:        c.WorkerID,
		ProcessID:       c.ProcessID,
		DefaultSequence: c.DefaultSequence,
		Clock:           c.Clock,
		EnableMetrics:   c.EnableMetrics,
		Logger:          c.Logger,
	}
}
