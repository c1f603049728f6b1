package domain

import (
	"fmt"
	"strings"
	"time"

	"katydid-common-core/pkg/idgen/core"
	"katydid-common-core/pkg/idgen/registry"
)

const (
	// maxParseIDStringLength 解析ID字符串的最大长度
	// 说明：防止DoS攻击（超长字符串导致资源耗尽）
	maxParseIDStringLength = 100

	// defaultGeneratorType 默认使用的生成器类型
	// 说明：用于解析和验证时的默认选择
	defaultGeneratorType = core.GeneratorTypeSnowflake
)

// ID 业务层ID类型
// 说明：core.ID128的别名，集合与解析辅助函数都围绕它展开
type ID = core.ID128

// ParseID 从字符串解析ID
// 说明：支持32字符十六进制（可带0x前缀）
func ParseID(s string) (ID, error) {
	// 验证1：防止空字符串
	if len(s) == 0 {
		return ID{}, fmt.Errorf("id string cannot be empty")
	}

	// 验证2：防止超长字符串导致的资源消耗（DoS防护）
	if len(s) > maxParseIDStringLength {
		return ID{}, fmt.Errorf("id string too long: max %d characters, got %d",
			maxParseIDStringLength, len(s))
	}

	// 去掉可选的0x前缀
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}

	return core.ParseID128String(s)
}

// Parse 解析ID，提取元信息
// 说明：使用默认生成器类型（Snowflake）进行解析
func Parse(id ID) (*core.IDInfo, error) {
	return ParseWithType(id, defaultGeneratorType)
}

// ParseWithType 使用指定生成器类型解析ID
func ParseWithType(id ID, generatorType core.GeneratorType) (*core.IDInfo, error) {
	if !generatorType.IsValid() {
		return nil, fmt.Errorf("%w: %s", core.ErrInvalidGeneratorType, generatorType)
	}

	parser, err := registry.GetParserRegistry().Get(generatorType)
	if err != nil {
		return nil, fmt.Errorf("failed to get parser: %w", err)
	}

	return parser.Parse(id)
}

// Validate 验证ID的有效性
// 说明：使用默认生成器类型（Snowflake）进行验证
func Validate(id ID) error {
	return ValidateWithType(id, defaultGeneratorType)
}

// ValidateWithType 使用指定生成器类型验证ID
func ValidateWithType(id ID, generatorType core.GeneratorType) error {
	if !generatorType.IsValid() {
		return fmt.Errorf("%w: %s", core.ErrInvalidGeneratorType, generatorType)
	}

	validator, err := registry.GetValidatorRegistry().Get(generatorType)
	if err != nil {
		return fmt.Errorf("failed to get validator: %w", err)
	}
	return validator.Validate(id)
}

// ExtractTime 提取时间戳
func ExtractTime(id ID) time.Time {
	return ExtractTimeWithType(id, defaultGeneratorType)
}

// ExtractTimeWithType 使用指定生成器类型提取时间戳
func ExtractTimeWithType(id ID, generatorType core.GeneratorType) time.Time {
	if !generatorType.IsValid() {
		return time.Time{} // 类型无效，返回零值
	}

	parser, err := registry.GetParserRegistry().Get(generatorType)
	if err != nil {
		return time.Time{} // 解析器获取失败，返回零值
	}
	timestamp := parser.ExtractTimestamp(id)

	// 确保时间戳合理
	if timestamp == 0 {
		return time.Time{}
	}

	return time.UnixMilli(int64(timestamp))
}

// IsZero 检查ID是否为零值
func IsZero(id ID) bool {
	return id == ID{}
}
