package core

import "time"

// Clock 时钟协作者接口
// 说明：生成器通过注入的时钟读取当前时间，便于测试和替换时间源
// 契约：返回距固定纪元的毫秒数（64位无符号整数）；正常情况下单调不减，
// 但生成器不依赖该保证——任何观察到的回退都会被当作错误上报
type Clock interface {
	// NowMillis 返回当前Unix毫秒时间戳
	NowMillis() uint64
}

// SystemClock 系统时钟实现
// 说明：无状态，可共享单个实例
type SystemClock struct{}

// NowMillis 实现Clock接口
func (SystemClock) NowMillis() uint64 {
	return uint64(time.Now().UnixMilli())
}

// ClockFunc 函数式时钟适配器
// 说明：便于测试中用闭包脚本化时间推进
type ClockFunc func() uint64

// NowMillis 实现Clock接口
func (f ClockFunc) NowMillis() uint64 {
	return f()
}
