package snowflake

import (
	"fmt"
	"time"

	"katydid-common-core/pkg/idgen/core"
)

// Validator Snowflake ID验证器
type Validator struct{}

// ValidateID 全局验证函数
func ValidateID(id core.ID128) error {
	return NewValidator().Validate(id)
}

// NewValidator 创建新的验证器实例
// 说明：验证器是无状态的，可以创建多个实例或共享单个实例
func NewValidator() core.IIDValidator {
	return &Validator{}
}

// Validate 验证Snowflake ID的有效性
// 实现core.IIDValidator接口
func (v *Validator) Validate(id core.ID128) error {
	timestamp := id.TimestampMs()

	// 验证1：时间戳不能早于项目纪元
	// 说明：如果时间戳早于纪元，可能是：
	//   - 其他布局/其他系统生成的ID
	//   - ID格式错误或损坏
	if timestamp < timestampFloor {
		return fmt.Errorf("%w: timestamp %d is before floor %d",
			core.ErrInvalidID, timestamp, timestampFloor)
	}

	// 验证2：时间戳不能太超前
	// 说明：允许一定的时钟误差（maxFutureTimeTolerance = 1分钟）
	now := uint64(time.Now().UnixMilli())
	if timestamp > now+maxFutureTimeTolerance {
		return fmt.Errorf("%w: timestamp %d is too far in the future (current: %d, max tolerance: %d ms)",
			core.ErrInvalidID, timestamp, now, maxFutureTimeTolerance)
	}

	return nil
}

// ValidateBatch 批量验证ID
// 实现core.IIDValidator接口
func (v *Validator) ValidateBatch(ids []core.ID128) error {
	if ids == nil {
		return fmt.Errorf("ids slice cannot be nil")
	}

	// 空切片视为有效（边界情况处理）
	if len(ids) == 0 {
		return nil
	}

	// 逐个验证，遇到第一个错误立即返回
	for i, id := range ids {
		if err := v.Validate(id); err != nil {
			return fmt.Errorf("invalid id at index %d: %w", i, err)
		}
	}

	return nil
}
