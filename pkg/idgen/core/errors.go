package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidVersion 版本号超出有效范围
	ErrInvalidVersion = errors.New("invalid version: must be between 0 and 15")

	// ErrInvalidDatacenterID 数据中心ID超出有效范围
	ErrInvalidDatacenterID = errors.New("invalid datacenter id: must be between 0 and 1023")

	// ErrInvalidWorkerID 工作机器ID超出有效范围
	ErrInvalidWorkerID = errors.New("invalid worker id: must be between 0 and 1023")

	// ErrInvalidProcessID 进程ID超出有效范围
	ErrInvalidProcessID = errors.New("invalid process id: must be between 0 and 1023")

	// ErrInvalidSequence 序列号超出有效范围
	ErrInvalidSequence = errors.New("invalid sequence: must be between 0 and 1073741823")

	// ErrClockMovedBackwards 检测到时钟回拨
	ErrClockMovedBackwards = errors.New("clock moved backwards: refusing to generate id")

	// ErrSequenceExhausted 同一毫秒内序列号耗尽
	ErrSequenceExhausted = errors.New("sequence exhausted: refusing to generate id")

	// ErrInvalidID 无效的ID
	ErrInvalidID = errors.New("invalid id")

	// ErrInvalidBatchSize 批量生成数量无效
	ErrInvalidBatchSize = errors.New("invalid batch size")

	// ErrNilConfig 配置为nil
	ErrNilConfig = errors.New("config cannot be nil")

	// ErrGeneratorNotFound 生成器未找到
	ErrGeneratorNotFound = errors.New("generator not found")

	// ErrGeneratorAlreadyExists 生成器已存在
	ErrGeneratorAlreadyExists = errors.New("generator already exists")

	// ErrInvalidGeneratorType 无效的生成器类型
	ErrInvalidGeneratorType = errors.New("invalid generator type")

	// ErrInvalidKey 无效的键
	ErrInvalidKey = errors.New("invalid key")

	// ErrFactoryNotFound 工厂未找到
	ErrFactoryNotFound = errors.New("factory not found")

	// ErrParserNotFound 解析器未找到
	ErrParserNotFound = errors.New("parser not found")

	// ErrValidatorNotFound 验证器未找到
	ErrValidatorNotFound = errors.New("validator not found")

	// ErrMaxGeneratorsReached 达到最大生成器数量
	ErrMaxGeneratorsReached = errors.New("maximum number of generators reached")
)

// ClockRegressionError 时钟回拨错误
// 说明：携带回拨幅度（毫秒），便于调用方诊断和决定重试策略
// 注意：生成器自身不重试、不等待，发生回拨时生成器状态保持不变
type ClockRegressionError struct {
	// Backward 回拨幅度（毫秒），即 lastTimestamp - currentTimestamp
	Backward uint64
}

// Error 实现error接口
func (e *ClockRegressionError) Error() string {
	return fmt.Sprintf("%v: detected backward drift of %d ms",
		ErrClockMovedBackwards, e.Backward)
}

// Unwrap 支持 errors.Is(err, ErrClockMovedBackwards)
func (e *ClockRegressionError) Unwrap() error {
	return ErrClockMovedBackwards
}

// SequenceExhaustedError 序列号耗尽错误
// 说明：携带溢出幅度，便于调用方诊断
// 注意：发生耗尽时生成器状态保持不变
type SequenceExhaustedError struct {
	// Overflow 溢出幅度，即再生成一个ID会超出序列号上限的量
	Overflow uint64
}

// Error 实现error接口
func (e *SequenceExhaustedError) Error() string {
	return fmt.Sprintf("%v: sequence would overflow by %d",
		ErrSequenceExhausted, e.Overflow)
}

// Unwrap 支持 errors.Is(err, ErrSequenceExhausted)
func (e *SequenceExhaustedError) Unwrap() error {
	return ErrSequenceExhausted
}
