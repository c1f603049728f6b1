package server

// MintRequest 铸造ID请求
type MintRequest struct {
	// Count 铸造数量，省略时为1
	Count int `json:"count" binding:"omitempty,min=1,max=10000" example:"1"`
}

// IDResponse 单个ID的完整展示
type IDResponse struct {
	// ID 32字符十六进制表示
	ID string `json:"id" example:"00000000000003e8500000000000007b"`

	// Word0 高位字（毫秒时间戳），十进制字符串
	Word0 string `json:"word0" example:"1000"`

	// Word1 低位字（打包字段），十进制字符串
	Word1 string `json:"word1" example:"5764607523034234875"`

	// Timestamp 毫秒时间戳
	Timestamp uint64 `json:"timestamp" example:"1000"`

	// Version 版本号
	Version uint64 `json:"version" example:"0"`

	// DatacenterID 数据中心ID
	DatacenterID uint64 `json:"datacenter_id" example:"1"`

	// WorkerID 工作机器ID
	WorkerID uint64 `json:"worker_id" example:"2"`

	// ProcessID 进程ID
	ProcessID uint64 `json:"process_id" example:"3"`

	// Sequence 序列号
	Sequence uint64 `json:"sequence" example:"0"`
}

// MintResponse 铸造ID响应
type MintResponse struct {
	IDs []IDResponse `json:"ids"`
}

// TokenRequest 换取访问令牌请求
type TokenRequest struct {
	// Token 管理令牌明文
	Token string `json:"token" binding:"required"`
}

// TokenResponse 访问令牌响应
type TokenResponse struct {
	// AccessToken JWT访问令牌
	AccessToken string `json:"access_token"`

	// ExpiresIn 有效期（秒）
	ExpiresIn int64 `json:"expires_in"`
}

// ErrorResponse 错误响应
type ErrorResponse struct {
	// Error 错误信息
	Error string `json:"error"`

	// Code 错误类别（clock_regression/sequence_exhausted/invalid_request/...）
	Code string `json:"code,omitempty"`

	// Backward 时钟回拨幅度（毫秒），仅时钟回拨错误携带
	Backward uint64 `json:"backward_ms,omitempty"`

	// Overflow 序列号溢出幅度，仅序列号耗尽错误携带
	Overflow uint64 `json:"overflow,omitempty"`
}

// MetricsResponse 生成器监控指标响应
type MetricsResponse struct {
	// Node 节点坐标
	Node NodeInfo `json:"node"`

	// Metrics 指标键值对
	Metrics map[string]uint64 `json:"metrics"`
}

// NodeInfo 节点坐标信息
type NodeInfo struct {
	Version      uint64 `json:"version"`
	DatacenterID uint64 `json:"datacenter_id"`
	WorkerID     uint64 `json:"worker_id"`
	ProcessID    uint64 `json:"process_id"`
}
