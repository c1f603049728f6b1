package core

// GeneratorType 生成器类型枚举
type GeneratorType string

const (
	// GeneratorTypeSnowflake Snowflake算法生成器（128位布局）
	GeneratorTypeSnowflake GeneratorType = "snowflake"
	// GeneratorTypeUUID UUID生成器（预留，便于扩展）
	GeneratorTypeUUID GeneratorType = "uuid"
	// GeneratorTypeCustom 自定义生成器（预留，便于扩展）
	GeneratorTypeCustom GeneratorType = "custom"
)

// String 实现Stringer接口
func (t GeneratorType) String() string {
	return string(t)
}

// IsValid 验证生成器类型是否有效
func (t GeneratorType) IsValid() bool {
	switch t {
	case GeneratorTypeSnowflake, GeneratorTypeUUID, GeneratorTypeCustom:
		return true
	default:
		return false
	}
}
