package snowflake

import "sync/atomic"

// Metrics 性能监控指标（单一职责：只负责监控数据）
type Metrics struct {
	IDCount           atomic.Uint64 // 已生成ID总数
	BatchCount        atomic.Uint64 // 成功完成的批量生成次数
	ClockRegression   atomic.Uint64 // 时钟回拨次数
	SequenceExhausted atomic.Uint64 // 序列号耗尽次数
}

// NewMetrics 创建新的监控指标实例
func NewMetrics() *Metrics {
	return &Metrics{}
}

// Reset 重置所有监控指标
func (m *Metrics) Reset() {
	if m == nil {
		return
	}
	m.IDCount.Store(0)
	m.BatchCount.Store(0)
	m.ClockRegression.Store(0)
	m.SequenceExhausted.Store(0)
}

// Snapshot 获取当前指标的快照（不可变性：返回副本）
func (m *Metrics) Snapshot() *Metrics {
	if m == nil {
		return NewMetrics()
	}

	snapshot := NewMetrics()
	snapshot.IDCount.Store(m.IDCount.Load())
	snapshot.BatchCount.Store(m.BatchCount.Load())
	snapshot.ClockRegression.Store(m.ClockRegression.Load())
	snapshot.SequenceExhausted.Store(m.SequenceExhausted.Load())
	return snapshot
}

// ToMap 转换为map格式（便于序列化和展示）
func (m *Metrics) ToMap() map[string]uint64 {
	if m == nil {
		return map[string]uint64{
			"metrics_enabled": 0,
		}
	}

	return map[string]uint64{
		"metrics_enabled":    1,
		"id_count":           m.IDCount.Load(),
		"batch_count":        m.BatchCount.Load(),
		"clock_regression":   m.ClockRegression.Load(),
		"sequence_exhausted": m.SequenceExhausted.Load(),
	}
}
