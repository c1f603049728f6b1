package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

// TestConfigSetDefaults 测试配置默认值
func TestConfigSetDefaults(t *testing.T) {
	t.Run("零值配置", func(t *testing.T) {
		cfg := &Config{}
		cfg.SetDefaults()

		if cfg.Level != "info" {
			t.Errorf("Level = %q, 期望 info", cfg.Level)
		}
		if cfg.MaxSizeMB != 100 {
			t.Errorf("MaxSizeMB = %d, 期望 100", cfg.MaxSizeMB)
		}
		// 没有文件输出时强制开启控制台
		if !cfg.Console {
			t.Error("无文件输出时Console应为true")
		}
	})

	t.Run("已有值不覆盖", func(t *testing.T) {
		cfg := &Config{Level: "debug", MaxSizeMB: 50, Filename: "x.log"}
		cfg.SetDefaults()

		if cfg.Level != "debug" || cfg.MaxSizeMB != 50 {
			t.Error("已设置的值不应被覆盖")
		}
		if cfg.Console {
			t.Error("有文件输出时Console不应被强制开启")
		}
	})
}

// TestNew 测试日志器创建
func TestNew(t *testing.T) {
	t.Run("默认配置", func(t *testing.T) {
		log, err := New(nil)
		if err != nil {
			t.Fatalf("创建失败: %v", err)
		}
		log.Info("测试日志")
	})

	t.Run("无效级别", func(t *testing.T) {
		if _, err := New(&Config{Level: "loud"}); err == nil {
			t.Error("无效级别应报错")
		}
	})

	t.Run("文件输出", func(t *testing.T) {
		dir := t.TempDir()
		filename := filepath.Join(dir, "test.log")

		log, err := New(&Config{Level: "info", Filename: filename, Console: false})
		if err != nil {
			t.Fatalf("创建失败: %v", err)
		}

		log.Info("写入文件的日志", zap.String("key", "value"))
		_ = log.Sync()

		data, err := os.ReadFile(filename)
		if err != nil {
			t.Fatalf("读取日志文件失败: %v", err)
		}
		if !strings.Contains(string(data), "写入文件的日志") {
			t.Error("日志文件应包含写入的内容")
		}
	})
}

// TestInit 测试全局日志器初始化
func TestInit(t *testing.T) {
	log, cleanup, err := Init(&Config{Level: "warn"})
	if err != nil {
		t.Fatalf("初始化失败: %v", err)
	}
	defer cleanup()

	if log == nil {
		t.Error("日志器不应为nil")
	}
}
