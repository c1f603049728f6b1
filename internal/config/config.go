// Package config 服务配置加载
// 说明：基于viper，支持yaml配置文件 + 环境变量覆盖（前缀KATYDID_）
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"katydid-common-core/pkg/logger"
	"katydid-common-core/pkg/validator"
)

// Config 服务总配置
type Config struct {
	Server    ServerConfig    `mapstructure:"server" json:"server"`
	Node      NodeConfig      `mapstructure:"node" json:"node"`
	Allocator AllocatorConfig `mapstructure:"allocator" json:"allocator"`
	Database  DatabaseConfig  `mapstructure:"database" json:"database"`
	Log       logger.Config   `mapstructure:"log" json:"log"`
}

// ServerConfig HTTP服务配置
type ServerConfig struct {
	// Addr 监听地址
	Addr string `mapstructure:"addr" json:"addr" validate:"required"`

	// Mode gin运行模式（debug/release/test）
	Mode string `mapstructure:"mode" json:"mode" validate:"oneof=debug release test"`

	// JWTSecret 签发/校验访问令牌的密钥
	// 说明：为空时铸造接口不做鉴权（仅限开发环境）
	JWTSecret string `mapstructure:"jwt_secret" json:"-"`

	// AdminTokenHash 管理令牌的bcrypt哈希
	// 说明：用于/api/v1/auth/token换取JWT；为空时禁用该接口
	AdminTokenHash string `mapstructure:"admin_token_hash" json:"-"`

	// ShutdownTimeout 优雅停机超时
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" json:"shutdown_timeout"`
}

// NodeConfig 生成器节点坐标配置
// 说明：跨实例唯一性完全依赖互不相同的坐标配置，而不是实例间共识
type NodeConfig struct {
	// Version 版本号（0-15）
	Version uint64 `mapstructure:"version" json:"version" validate:"lte=15"`

	// DatacenterID 数据中心ID（0-1023）
	DatacenterID uint64 `mapstructure:"datacenter_id" json:"datacenter_id" validate:"lte=1023"`

	// WorkerID 工作机器ID（0-1023）
	WorkerID uint64 `mapstructure:"worker_id" json:"worker_id" validate:"lte=1023"`

	// ProcessID 进程ID（0-1023）
	ProcessID uint64 `mapstructure:"process_id" json:"process_id" validate:"lte=1023"`

	// DefaultSequence 起始序列号（0 - 2^30-1）
	DefaultSequence uint64 `mapstructure:"default_sequence" json:"default_sequence" validate:"lte=1073741823"`

	// EnableMetrics 是否启用生成器监控指标
	EnableMetrics bool `mapstructure:"enable_metrics" json:"enable_metrics"`
}

// AllocatorConfig 坐标租约分配器配置
// 说明：启用后，节点启动时从Redis租用一个空闲的(datacenter, worker, process)坐标，
// 替代Node中手工配置的坐标；生成过程本身从不访问Redis
type AllocatorConfig struct {
	// Enabled 是否启用自动坐标分配
	Enabled bool `mapstructure:"enabled" json:"enabled"`

	// RedisAddr Redis地址
	RedisAddr string `mapstructure:"redis_addr" json:"redis_addr" validate:"required_if=Enabled true"`

	// RedisPassword Redis密码
	RedisPassword string `mapstructure:"redis_password" json:"-"`

	// RedisDB Redis数据库编号
	RedisDB int `mapstructure:"redis_db" json:"redis_db"`

	// Namespace 租约键前缀，不同集群用不同前缀隔离
	Namespace string `mapstructure:"namespace" json:"namespace"`

	// LeaseTTL 租约有效期，节点存活期间自动续期
	LeaseTTL time.Duration `mapstructure:"lease_ttl" json:"lease_ttl"`
}

// DatabaseConfig 坐标分配审计库配置
type DatabaseConfig struct {
	// Driver 数据库驱动（sqlite/mysql/postgres），为空时禁用审计
	Driver string `mapstructure:"driver" json:"driver" validate:"omitempty,oneof=sqlite mysql postgres"`

	// DSN 数据库连接串
	DSN string `mapstructure:"dsn" json:"-" validate:"required_with=Driver"`
}

// Load 加载配置
// 说明：path为空时只使用默认值和环境变量
func Load(path string) (*Config, error) {
	v := viper.New()

	// 步骤1：设置默认值
	setDefaults(v)

	// 步骤2：读取配置文件（可选）
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	// 步骤3：环境变量覆盖（KATYDID_SERVER_ADDR等）
	v.SetEnvPrefix("katydid")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 步骤4：反序列化
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 步骤5：验证
	if err := validator.Struct(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults 设置默认值
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("node.version", 0)
	v.SetDefault("node.datacenter_id", 0)
	v.SetDefault("node.worker_id", 0)
	v.SetDefault("node.process_id", 0)
	v.SetDefault("node.default_sequence", 0)
	v.SetDefault("node.enable_metrics", true)

	v.SetDefault("allocator.enabled", false)
	v.SetDefault("allocator.namespace", "katydid:idgen")
	v.SetDefault("allocator.lease_ttl", "30s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.console", true)
}
