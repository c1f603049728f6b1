package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestLoadDefaults 测试默认配置
func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("加载失败: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, 期望 :8080", cfg.Server.Addr)
	}
	if cfg.Server.Mode != "release" {
		t.Errorf("Server.Mode = %q, 期望 release", cfg.Server.Mode)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v, 期望 10s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Node.DatacenterID != 0 || cfg.Node.WorkerID != 0 {
		t.Error("默认坐标应全为0")
	}
	if !cfg.Node.EnableMetrics {
		t.Error("默认应启用监控")
	}
	if cfg.Allocator.Enabled {
		t.Error("默认应禁用坐标分配器")
	}
	if cfg.Allocator.LeaseTTL != 30*time.Second {
		t.Errorf("LeaseTTL = %v, 期望 30s", cfg.Allocator.LeaseTTL)
	}
}

// TestLoadFromFile 测试从yaml文件加载
func TestLoadFromFile(t *testing.T) {
	content := `
server:
  addr: ":9090"
  mode: debug
node:
  version: 2
  datacenter_id: 5
  worker_id: 10
  process_id: 20
  default_sequence: 100
log:
  level: debug
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("加载失败: %v", err)
	}

	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q, 期望 :9090", cfg.Server.Addr)
	}
	if cfg.Server.Mode != "debug" {
		t.Errorf("Server.Mode = %q, 期望 debug", cfg.Server.Mode)
	}
	if cfg.Node.Version != 2 || cfg.Node.DatacenterID != 5 ||
		cfg.Node.WorkerID != 10 || cfg.Node.ProcessID != 20 {
		t.Errorf("节点坐标不匹配: %+v", cfg.Node)
	}
	if cfg.Node.DefaultSequence != 100 {
		t.Errorf("DefaultSequence = %d, 期望 100", cfg.Node.DefaultSequence)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, 期望 debug", cfg.Log.Level)
	}
}

// TestLoadValidation 测试配置验证
func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"无效运行模式", "server:\n  mode: production\n"},
		{"版本号越界", "node:\n  version: 16\n"},
		{"数据中心ID越界", "node:\n  datacenter_id: 1024\n"},
		{"工作机器ID越界", "node:\n  worker_id: 1024\n"},
		{"进程ID越界", "node:\n  process_id: 1024\n"},
		{"起始序列号越界", "node:\n  default_sequence: 1073741824\n"},
		{"无效数据库驱动", "database:\n  driver: oracle\n  dsn: x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("期望得到验证错误")
			}
		})
	}
}

// TestLoadMissingFile 测试不存在的配置文件
func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("不存在的文件应报错")
	}
}

// TestLoadEnvOverride 测试环境变量覆盖
func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("KATYDID_SERVER_ADDR", ":7070")
	t.Setenv("KATYDID_NODE_WORKER_ID", "42")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("加载失败: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("Server.Addr = %q, 期望环境变量覆盖为 :7070", cfg.Server.Addr)
	}
	if cfg.Node.WorkerID != 42 {
		t.Errorf("Node.WorkerID = %d, 期望环境变量覆盖为 42", cfg.Node.WorkerID)
	}
}
