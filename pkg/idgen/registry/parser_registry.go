package registry

import (
	"fmt"
	"sync"

	"katydid-common-core/pkg/idgen/core"
)

// ParserRegistry 解析器注册表
type ParserRegistry struct {
	parsers map[core.GeneratorType]core.IIDParser // 解析器映射表
	mu      sync.RWMutex                          // 读写锁，保护并发访问
}

var (
	// globalParserRegistry 全局解析器注册表实例（单例）
	globalParserRegistry *ParserRegistry

	// parserRegistryOnce 确保解析器注册表只初始化一次
	parserRegistryOnce sync.Once
)

// GetParserRegistry 获取全局解析器注册表
func GetParserRegistry() *ParserRegistry {
	parserRegistryOnce.Do(func() {
		globalParserRegistry = &ParserRegistry{
			parsers: make(map[core.GeneratorType]core.IIDParser),
		}
	})
	return globalParserRegistry
}

// Register 注册解析器
func (r *ParserRegistry) Register(generatorType core.GeneratorType, parser core.IIDParser) error {
	// 验证生成器类型
	if !generatorType.IsValid() {
		return fmt.Errorf("%w: %s", core.ErrInvalidGeneratorType, generatorType)
	}

	// 验证解析器不为nil
	if parser == nil {
		return fmt.Errorf("parser cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// 注册解析器（允许覆盖已有解析器）
	r.parsers[generatorType] = parser

	return nil
}

// Get 获取解析器
func (r *ParserRegistry) Get(generatorType core.GeneratorType) (core.IIDParser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	parser, exists := r.parsers[generatorType]
	if !exists {
		return nil, fmt.Errorf("%w: %s", core.ErrParserNotFound, generatorType)
	}

	return parser, nil
}

// Has 检查解析器是否存在
func (r *ParserRegistry) Has(generatorType core.GeneratorType) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.parsers[generatorType]
	return exists
}
