// Package logger 基于zap的结构化日志封装
// 说明：统一日志初始化入口，支持控制台输出和基于lumberjack的文件滚动
package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config 日志配置
type Config struct {
	// Level 最低日志级别（debug/info/warn/error）
	Level string `mapstructure:"level" json:"level"`

	// Filename 日志文件路径，为空时只输出到控制台
	Filename string `mapstructure:"filename" json:"filename"`

	// MaxSizeMB 单个日志文件最大大小（MB）
	MaxSizeMB int `mapstructure:"max_size_mb" json:"max_size_mb"`

	// MaxBackups 保留的旧日志文件最大数量
	MaxBackups int `mapstructure:"max_backups" json:"max_backups"`

	// MaxAgeDays 旧日志文件最大保留天数
	MaxAgeDays int `mapstructure:"max_age_days" json:"max_age_days"`

	// Compress 是否压缩滚动后的日志文件
	Compress bool `mapstructure:"compress" json:"compress"`

	// Console 是否同时输出到控制台
	Console bool `mapstructure:"console" json:"console"`
}

// SetDefaults 设置配置的默认值
func (c *Config) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.MaxSizeMB <= 0 {
		c.MaxSizeMB = 100
	}
	if c.MaxBackups <= 0 {
		c.MaxBackups = 10
	}
	if c.MaxAgeDays <= 0 {
		c.MaxAgeDays = 30
	}
	// 没有配置文件输出时强制开启控制台，避免日志完全丢失
	if c.Filename == "" {
		c.Console = true
	}
}

// New 根据配置创建zap日志器
func New(cfg *Config) (*zap.Logger, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.SetDefaults()

	// 解析日志级别
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	// 编码器：文件走JSON，控制台走带颜色的行格式
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var cores []zapcore.Core

	// 文件输出（lumberjack负责滚动）
	if cfg.Filename != "" {
		writer := &lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			zapcore.AddSync(writer),
			level,
		))
	}

	// 控制台输出
	if cfg.Console {
		consoleCfg := zap.NewDevelopmentEncoderConfig()
		consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleCfg),
			zapcore.AddSync(os.Stdout),
			level,
		))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

// Init 创建日志器并替换zap全局实例
// 说明：库内部通过zap.L()取用全局日志器；返回的函数用于退出前刷新缓冲
func Init(cfg *Config) (*zap.Logger, func(), error) {
	log, err := New(cfg)
	if err != nil {
		return nil, nil, err
	}

	undo := zap.ReplaceGlobals(log)
	cleanup := func() {
		undo()
		_ = log.Sync()
	}
	return log, cleanup, nil
}
