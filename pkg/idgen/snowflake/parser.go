package snowflake

import (
	"fmt"
	"time"

	"katydid-common-core/pkg/idgen/core"
)

// Parser Snowflake ID解析器
type Parser struct {
	validator core.IIDValidator // 验证器，用于解析前验证ID有效性
}

// NewParser 创建新的解析器实例
func NewParser() *Parser {
	return &Parser{
		validator: NewValidator(),
	}
}

// Parse 解析Snowflake ID，提取完整的元信息
// 实现core.IIDParser接口
func (p *Parser) Parse(id core.ID128) (*core.IDInfo, error) {
	// 步骤1：先验证ID的有效性
	// 说明：只解析有效的ID，避免返回错误的元信息
	if err := p.validator.Validate(id); err != nil {
		return nil, fmt.Errorf("invalid snowflake id: %w", err)
	}

	// 步骤2：提取各部分信息
	// 说明：word0即完整毫秒时间戳；word1按位宽掩码/移位拆出逻辑字段
	// 步骤3：返回完整信息
	return &core.IDInfo{
		ID:           id,
		Timestamp:    id.TimestampMs(),
		Version:      id.Version(),
		DatacenterID: id.DatacenterID(),
		WorkerID:     id.WorkerID(),
		ProcessID:    id.ProcessID(),
		Sequence:     id.Sequence(),
	}, nil
}

// ExtractTimestamp 从Snowflake ID中提取时间戳（Unix毫秒）
// 实现core.IIDParser接口
func (p *Parser) ExtractTimestamp(id core.ID128) uint64 {
	return id.TimestampMs()
}

// ExtractTimestampAsTime 从Snowflake ID中提取时间戳并转换为time.Time
func (p *Parser) ExtractTimestampAsTime(id core.ID128) time.Time {
	timestamp := id.TimestampMs()
	// 无效时间戳返回零值时间
	if timestamp == 0 {
		return time.Time{}
	}
	// 将Unix毫秒时间戳转换为time.Time
	return time.UnixMilli(int64(timestamp))
}

// ExtractVersion 从Snowflake ID中提取版本号
// 实现core.IIDParser接口
func (p *Parser) ExtractVersion(id core.ID128) uint64 {
	return id.Version()
}

// ExtractDatacenterID 从Snowflake ID中提取数据中心ID
// 实现core.IIDParser接口
func (p *Parser) ExtractDatacenterID(id core.ID128) uint64 {
	return id.DatacenterID()
}

// ExtractWorkerID 从Snowflake ID中提取工作机器ID
// 实现core.IIDParser接口
func (p *Parser) ExtractWorkerID(id core.ID128) uint64 {
	return id.WorkerID()
}

// ExtractProcessID 从Snowflake ID中提取进程ID
// 实现core.IIDParser接口
func (p *Parser) ExtractProcessID(id core.ID128) uint64 {
	return id.ProcessID()
}

// ExtractSequence 从Snowflake ID中提取序列号
// 实现core.IIDParser接口
func (p *Parser) ExtractSequence(id core.ID128) uint64 {
	return id.Sequence()
}

// ParseSnowflakeID 全局解析函数
func ParseSnowflakeID(id core.ID128) (timestamp, version, datacenterID, workerID, processID, sequence uint64) {
	return id.TimestampMs(), id.Version(), id.DatacenterID(),
		id.WorkerID(), id.ProcessID(), id.Sequence()
}

// GetTimestamp 全局时间戳提取函数
func GetTimestamp(id core.ID128) time.Time {
	return NewParser().ExtractTimestampAsTime(id)
}
