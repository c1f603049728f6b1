package snowflake

const (
	// timestampFloor ID时间戳合法下限（2020-01-01 00:00:00 UTC，毫秒）
	// 说明：早于项目纪元的时间戳不可能由本布局的生成器产生
	timestampFloor uint64 = 1577836800000

	// maxFutureTimeTolerance 允许的未来时间容差（毫秒）
	// 目的：
	//   - 防止恶意构造未来的ID
	//   - 容忍服务器之间的时钟偏差
	maxFutureTimeTolerance uint64 = 60 * 1000 // 1分钟

	// maxBatchSize 批量生成最大数量
	maxBatchSize = 100_000
)
