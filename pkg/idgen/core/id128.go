package core

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
)

// ============================================================================
// ID128 位布局定义
// ============================================================================
//
// ID128 共128位，由两个64位无符号字组成：
//   word0（高位字）：完整的毫秒时间戳（不截断、不偏移）
//   word1（低位字）：从高位到低位依次为
//     版本号(4位) | 数据中心ID(10位) | 工作机器ID(10位) | 进程ID(10位) | 序列号(30位)

const (
	// 位数分配（word1内，共64位）
	VersionBits      = 4  // 版本号位数
	DatacenterIDBits = 10 // 数据中心ID位数
	WorkerIDBits     = 10 // 工作机器ID位数
	ProcessIDBits    = 10 // 进程ID位数
	SequenceBits     = 30 // 序列号位数

	// 最大值计算(切记不是个数)
	MaxVersion      uint64 = 1<<VersionBits - 1      // 15 [0, 15]
	MaxDatacenterID uint64 = 1<<DatacenterIDBits - 1 // 1023 [0, 1023]
	MaxWorkerID     uint64 = 1<<WorkerIDBits - 1     // 1023 [0, 1023]
	MaxProcessID    uint64 = 1<<ProcessIDBits - 1    // 1023 [0, 1023]
	MaxSequence     uint64 = 1<<SequenceBits - 1     // 1073741823 (2^30 - 1)

	// 位移量（word1内）
	ProcessIDShift    = SequenceBits                                  // 30
	WorkerIDShift     = SequenceBits + ProcessIDBits                  // 40
	DatacenterIDShift = SequenceBits + ProcessIDBits + WorkerIDBits   // 50
	VersionShift      = DatacenterIDShift + DatacenterIDBits          // 60
)

// ID128 128位唯一标识符
// 说明：不可变的纯值对象，相等性和哈希基于(word0, word1)的结构比较
// 注意：字段不导出，构造后无法修改；可直接用 == 比较，可作为map键
type ID128 struct {
	word0 uint64 // 高位字：毫秒时间戳
	word1 uint64 // 低位字：打包的逻辑字段
}

// NewID128FromFields 从逻辑字段构造ID128
// 说明：每个字段都会按其位宽做范围检查，越界是配置/编程错误，直接报错而非静默截断
func NewID128FromFields(version, timestampMs, datacenterID, workerID, processID, sequence uint64) (ID128, error) {
	// 逐字段范围检查
	if version > MaxVersion {
		return ID128{}, fmt.Errorf("%w: got %d, valid range [0, %d]",
			ErrInvalidVersion, version, MaxVersion)
	}
	if datacenterID > MaxDatacenterID {
		return ID128{}, fmt.Errorf("%w: got %d, valid range [0, %d]",
			ErrInvalidDatacenterID, datacenterID, MaxDatacenterID)
	}
	if workerID > MaxWorkerID {
		return ID128{}, fmt.Errorf("%w: got %d, valid range [0, %d]",
			ErrInvalidWorkerID, workerID, MaxWorkerID)
	}
	if processID > MaxProcessID {
		return ID128{}, fmt.Errorf("%w: got %d, valid range [0, %d]",
			ErrInvalidProcessID, processID, MaxProcessID)
	}
	if sequence > MaxSequence {
		return ID128{}, fmt.Errorf("%w: got %d, valid range [0, %d]",
			ErrInvalidSequence, sequence, MaxSequence)
	}

	// 打包word1：版本号(4) | 数据中心ID(10) | 工作机器ID(10) | 进程ID(10) | 序列号(30)
	word1 := version<<VersionShift |
		datacenterID<<DatacenterIDShift |
		workerID<<WorkerIDShift |
		processID<<ProcessIDShift |
		sequence

	return ID128{word0: timestampMs, word1: word1}, nil
}

// NewID128FromWords 从两个原始64位字构造ID128
// 说明：不做任何验证，用于已持久化/已传输标识符的往返还原
func NewID128FromWords(word0, word1 uint64) ID128 {
	return ID128{word0: word0, word1: word1}
}

// Word0 高位字（毫秒时间戳）
func (id ID128) Word0() uint64 { return id.word0 }

// Word1 低位字（打包字段）
func (id ID128) Word1() uint64 { return id.word1 }

// TimestampMs 提取毫秒时间戳（即word0本身）
func (id ID128) TimestampMs() uint64 { return id.word0 }

// Version 提取版本号（word1高4位）
func (id ID128) Version() uint64 {
	return id.word1 >> VersionShift & MaxVersion
}

// DatacenterID 提取数据中心ID（右移50位，取低10位）
func (id ID128) DatacenterID() uint64 {
	return id.word1 >> DatacenterIDShift & MaxDatacenterID
}

// WorkerID 提取工作机器ID（右移40位，取低10位）
func (id ID128) WorkerID() uint64 {
	return id.word1 >> WorkerIDShift & MaxWorkerID
}

// ProcessID 提取进程ID（右移30位，取低10位）
func (id ID128) ProcessID() uint64 {
	return id.word1 >> ProcessIDShift & MaxProcessID
}

// Sequence 提取序列号（word1低30位）
func (id ID128) Sequence() uint64 {
	return id.word1 & MaxSequence
}

// Compare 按(word0, word1)的全序比较，返回-1/0/1
// 说明：该顺序可用作排序/去重键；唯一性由生成器保证，顺序只是伴随性质
func (id ID128) Compare(other ID128) int {
	if id.word0 != other.word0 {
		if id.word0 < other.word0 {
			return -1
		}
		return 1
	}
	if id.word1 != other.word1 {
		if id.word1 < other.word1 {
			return -1
		}
		return 1
	}
	return 0
}

// Bytes 返回16字节大端序线上表示
// 说明：时间戳字在前，保证跨进程交换时逐位一致，且字节序比较保持时间顺序
func (id ID128) Bytes() []byte {
	b := make([]byte, 16)
	binary.BigEndian.PutUint64(b[0:8], id.word0)
	binary.BigEndian.PutUint64(b[8:16], id.word1)
	return b
}

// ID128FromBytes 从16字节大端序表示还原ID128
func ID128FromBytes(b []byte) (ID128, error) {
	if len(b) != 16 {
		return ID128{}, fmt.Errorf("%w: expected 16 bytes, got %d", ErrInvalidID, len(b))
	}
	return ID128{
		word0: binary.BigEndian.Uint64(b[0:8]),
		word1: binary.BigEndian.Uint64(b[8:16]),
	}, nil
}

// String 返回32字符的十六进制字符串（小写，无前缀）
// 实现fmt.Stringer接口
func (id ID128) String() string {
	const hexdigits = "0123456789abcdef"
	b := id.Bytes()
	out := make([]byte, 32)
	for i, v := range b {
		out[i*2] = hexdigits[v>>4]
		out[i*2+1] = hexdigits[v&0x0f]
	}
	return string(out)
}

// ParseID128String 从32字符十六进制字符串解析ID128
func ParseID128String(s string) (ID128, error) {
	if len(s) != 32 {
		return ID128{}, fmt.Errorf("%w: expected 32 hex characters, got %d",
			ErrInvalidID, len(s))
	}
	var b [16]byte
	for i := 0; i < 16; i++ {
		hi, ok1 := hexVal(s[i*2])
		lo, ok2 := hexVal(s[i*2+1])
		if !ok1 || !ok2 {
			return ID128{}, fmt.Errorf("%w: invalid hex character at position %d",
				ErrInvalidID, i*2)
		}
		b[i] = hi<<4 | lo
	}
	return ID128FromBytes(b[:])
}

// hexVal 单个十六进制字符转数值
func hexVal(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// MarshalJSON 实现JSON序列化
// 设计原则：序列化为十六进制字符串，128位整数无法安全表示为JSON数字
func (id ID128) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

// UnmarshalJSON 实现JSON反序列化
func (id *ID128) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: expected hex string, got %s", ErrInvalidID, string(data))
	}
	parsed, err := ParseID128String(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// MarshalBinary 实现encoding.BinaryMarshaler接口
func (id ID128) MarshalBinary() ([]byte, error) {
	return id.Bytes(), nil
}

// UnmarshalBinary 实现encoding.BinaryUnmarshaler接口
func (id *ID128) UnmarshalBinary(data []byte) error {
	parsed, err := ID128FromBytes(data)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
