package core

// IIDGenerator ID生成器基础接口
type IIDGenerator interface {
	// NextID 生成下一个唯一ID（线程安全）
	NextID() (ID128, error)
}

// IBatchGenerator 批量ID生成接口
type IBatchGenerator interface {
	IIDGenerator

	// NextIDBatch 批量生成指定数量的ID（线程安全）
	// 说明：序列号耗尽时返回已生成的部分和错误，不等待下一毫秒
	NextIDBatch(n int) ([]ID128, error)
}

// IConfigurableGenerator 可配置的生成器接口
type IConfigurableGenerator interface {
	// GetVersion 获取版本号
	// 返回值：版本号（0-15）
	GetVersion() uint64

	// GetDatacenterID 获取数据中心ID
	// 返回值：数据中心ID（0-1023）
	GetDatacenterID() uint64

	// GetWorkerID 获取工作机器ID
	// 返回值：工作机器ID（0-1023）
	GetWorkerID() uint64

	// GetProcessID 获取进程ID
	// 返回值：进程ID（0-1023）
	GetProcessID() uint64
}

// IMonitorableGenerator 可监控的生成器接口
type IMonitorableGenerator interface {
	// GetMetrics 获取性能监控指标
	GetMetrics() map[string]uint64

	// ResetMetrics 重置性能监控指标
	ResetMetrics()

	// GetIDCount 获取已生成的ID总数
	GetIDCount() uint64
}

// IValidaParseableGenerator 可验证+解析的生成器接口
type IValidaParseableGenerator interface {
	// ParseID 解析ID，提取其中的时间戳、机器ID等元信息
	ParseID(id ID128) (*IDInfo, error)

	// ValidateID 验证ID的有效性
	ValidateID(id ID128) error
}

// IGenerator 完整功能的生成器接口
type IGenerator interface {
	IIDGenerator
	IBatchGenerator
	IConfigurableGenerator
	IMonitorableGenerator
	IValidaParseableGenerator
}

// IGeneratorFactory 生成器工厂接口
type IGeneratorFactory interface {
	// Create 根据配置创建生成器实例
	Create(config any) (IGenerator, error)
}

// IDInfo ID信息结构
type IDInfo struct {
	ID           ID128  // 原始ID值
	Timestamp    uint64 // 时间戳（Unix毫秒，即word0）
	Version      uint64 // 版本号（0-15）
	DatacenterID uint64 // 数据中心ID（0-1023）
	WorkerID     uint64 // 工作机器ID（0-1023）
	ProcessID    uint64 // 进程ID（0-1023）
	Sequence     uint64 // 序列号（0-1073741823，同一毫秒内的序号）
}

// IIDParser ID解析器接口
type IIDParser interface {
	// Parse 解析ID，提取完整的元信息
	Parse(id ID128) (*IDInfo, error)

	// ExtractTimestamp 提取时间戳（Unix毫秒）
	ExtractTimestamp(id ID128) uint64

	// ExtractVersion 提取版本号
	ExtractVersion(id ID128) uint64

	// ExtractDatacenterID 提取数据中心ID
	ExtractDatacenterID(id ID128) uint64

	// ExtractWorkerID 提取工作机器ID
	ExtractWorkerID(id ID128) uint64

	// ExtractProcessID 提取进程ID
	ExtractProcessID(id ID128) uint64

	// ExtractSequence 提取序列号
	ExtractSequence(id ID128) uint64
}

// IIDValidator ID验证器接口
type IIDValidator interface {
	// Validate 验证ID的有效性
	Validate(id ID128) error

	// ValidateBatch 批量验证ID
	ValidateBatch(ids []ID128) error
}
