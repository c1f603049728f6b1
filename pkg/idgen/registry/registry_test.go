package registry

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"katydid-common-core/pkg/idgen/core"
	"katydid-common-core/pkg/idgen/snowflake"
)

// TestRegistryCreate 测试创建并注册生成器
func TestRegistryCreate(t *testing.T) {
	tests := []struct {
		name          string
		key           string
		generatorType core.GeneratorType
		config        any
		wantErr       error
	}{
		{"有效创建", "gen-1", core.GeneratorTypeSnowflake,
			&snowflake.Config{DatacenterID: 1, WorkerID: 1}, nil},
		{"空键", "", core.GeneratorTypeSnowflake,
			&snowflake.Config{}, core.ErrInvalidKey},
		{"键包含非法字符", "gen/1", core.GeneratorTypeSnowflake,
			&snowflake.Config{}, core.ErrInvalidKey},
		{"键过长", strings.Repeat("a", 257), core.GeneratorTypeSnowflake,
			&snowflake.Config{}, core.ErrInvalidKey},
		{"无效生成器类型", "gen-2", core.GeneratorType("unknown"),
			&snowflake.Config{}, core.ErrInvalidGeneratorType},
		{"无效配置类型", "gen-3", core.GeneratorTypeSnowflake,
			"not a config", nil}, // 工厂拒绝，错误不是哨兵
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			gen, err := r.Create(tt.key, tt.generatorType, tt.config)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("期望错误 %v, 得到 %v", tt.wantErr, err)
				}
				return
			}
			if tt.name == "无效配置类型" {
				if err == nil {
					t.Error("期望得到错误")
				}
				return
			}
			if err != nil {
				t.Fatalf("创建失败: %v", err)
			}
			if gen == nil {
				t.Error("生成器不应为nil")
			}
			if !r.Has(tt.key) {
				t.Error("注册后Has应返回true")
			}
		})
	}
}

// TestRegistryDuplicateKey 测试重复键
func TestRegistryDuplicateKey(t *testing.T) {
	r := NewRegistry()
	config := &snowflake.Config{DatacenterID: 1, WorkerID: 1}

	if _, err := r.Create("dup", core.GeneratorTypeSnowflake, config); err != nil {
		t.Fatal(err)
	}

	_, err := r.Create("dup", core.GeneratorTypeSnowflake, config)
	if !errors.Is(err, core.ErrGeneratorAlreadyExists) {
		t.Errorf("期望ErrGeneratorAlreadyExists, 得到 %v", err)
	}
}

// TestRegistryGet 测试获取生成器
func TestRegistryGet(t *testing.T) {
	r := NewRegistry()
	config := &snowflake.Config{DatacenterID: 2, WorkerID: 3}

	created, err := r.Create("svc", core.GeneratorTypeSnowflake, config)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("已存在", func(t *testing.T) {
		got, err := r.Get("svc")
		if err != nil {
			t.Fatalf("获取失败: %v", err)
		}
		if got != created {
			t.Error("应返回同一个生成器实例")
		}
	})

	t.Run("不存在", func(t *testing.T) {
		_, err := r.Get("missing")
		if !errors.Is(err, core.ErrGeneratorNotFound) {
			t.Errorf("期望ErrGeneratorNotFound, 得到 %v", err)
		}
	})
}

// TestRegistryGetOrCreate 测试获取或创建
func TestRegistryGetOrCreate(t *testing.T) {
	r := NewRegistry()
	config := &snowflake.Config{DatacenterID: 1, WorkerID: 1}

	first, err := r.GetOrCreate("shared", core.GeneratorTypeSnowflake, config)
	if err != nil {
		t.Fatal(err)
	}

	second, err := r.GetOrCreate("shared", core.GeneratorTypeSnowflake, config)
	if err != nil {
		t.Fatal(err)
	}

	if first != second {
		t.Error("两次GetOrCreate应返回同一个实例")
	}
	if r.Count() != 1 {
		t.Errorf("Count = %d, 期望 1", r.Count())
	}
}

// TestRegistryRemove 测试移除生成器
func TestRegistryRemove(t *testing.T) {
	r := NewRegistry()
	config := &snowflake.Config{DatacenterID: 1, WorkerID: 1}

	if _, err := r.Create("temp", core.GeneratorTypeSnowflake, config); err != nil {
		t.Fatal(err)
	}

	if err := r.Remove("temp"); err != nil {
		t.Fatalf("移除失败: %v", err)
	}
	if r.Has("temp") {
		t.Error("移除后Has应返回false")
	}

	// 再次移除应报错
	if err := r.Remove("temp"); !errors.Is(err, core.ErrGeneratorNotFound) {
		t.Errorf("期望ErrGeneratorNotFound, 得到 %v", err)
	}
}

// TestRegistryClear 测试清空注册表
func TestRegistryClear(t *testing.T) {
	r := NewRegistry()
	config := &snowflake.Config{DatacenterID: 1, WorkerID: 1}

	for _, key := range []string{"a", "b", "c"} {
		if _, err := r.Create(key, core.GeneratorTypeSnowflake, config); err != nil {
			t.Fatal(err)
		}
	}
	if r.Count() != 3 {
		t.Fatalf("Count = %d, 期望 3", r.Count())
	}

	r.Clear()
	if r.Count() != 0 {
		t.Errorf("清空后Count = %d, 期望 0", r.Count())
	}
	if len(r.ListKeys()) != 0 {
		t.Error("清空后ListKeys应为空")
	}
}

// TestRegistryMaxGenerators 测试数量限制
func TestRegistryMaxGenerators(t *testing.T) {
	r := NewRegistry()
	if err := r.SetMaxGenerators(2); err != nil {
		t.Fatal(err)
	}

	config := &snowflake.Config{DatacenterID: 1, WorkerID: 1}
	for _, key := range []string{"a", "b"} {
		if _, err := r.Create(key, core.GeneratorTypeSnowflake, config); err != nil {
			t.Fatal(err)
		}
	}

	// 超出限制
	_, err := r.Create("c", core.GeneratorTypeSnowflake, config)
	if !errors.Is(err, core.ErrMaxGeneratorsReached) {
		t.Errorf("期望ErrMaxGeneratorsReached, 得到 %v", err)
	}

	t.Run("无效限制参数", func(t *testing.T) {
		if err := r.SetMaxGenerators(0); err == nil {
			t.Error("限制为0应报错")
		}
		if err := r.SetMaxGenerators(absoluteMaxGenerators + 1); err == nil {
			t.Error("超过绝对上限应报错")
		}
		if err := r.SetMaxGenerators(1); err == nil {
			t.Error("低于当前数量应报错")
		}
	})
}

// TestRegistryConcurrent 测试并发访问注册表
func TestRegistryConcurrent(t *testing.T) {
	r := NewRegistry()
	config := &snowflake.Config{DatacenterID: 1, WorkerID: 1}

	var wg sync.WaitGroup
	for g := 0; g < 10; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				gen, err := r.GetOrCreate("concurrent", core.GeneratorTypeSnowflake, config)
				if err != nil {
					t.Errorf("GetOrCreate失败: %v", err)
					return
				}
				if _, err := gen.NextID(); err != nil {
					t.Errorf("生成ID失败: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	if r.Count() != 1 {
		t.Errorf("Count = %d, 期望 1", r.Count())
	}
}

// TestFactoryRegistry 测试工厂注册表
func TestFactoryRegistry(t *testing.T) {
	t.Run("内置工厂已注册", func(t *testing.T) {
		factory, err := GetFactoryRegistry().Get(core.GeneratorTypeSnowflake)
		if err != nil {
			t.Fatalf("获取snowflake工厂失败: %v", err)
		}
		if factory == nil {
			t.Error("工厂不应为nil")
		}
	})

	t.Run("未注册类型", func(t *testing.T) {
		_, err := GetFactoryRegistry().Get(core.GeneratorTypeCustom)
		if !errors.Is(err, core.ErrFactoryNotFound) {
			t.Errorf("期望ErrFactoryNotFound, 得到 %v", err)
		}
	})
}

// TestParserValidatorRegistry 测试解析器和验证器注册表
func TestParserValidatorRegistry(t *testing.T) {
	gen, err := snowflake.New(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	id, err := gen.NextID()
	if err != nil {
		t.Fatal(err)
	}

	t.Run("解析器", func(t *testing.T) {
		parser, err := GetParserRegistry().Get(core.GeneratorTypeSnowflake)
		if err != nil {
			t.Fatalf("获取snowflake解析器失败: %v", err)
		}
		info, err := parser.Parse(id)
		if err != nil {
			t.Fatalf("解析失败: %v", err)
		}
		if info.DatacenterID != 1 || info.WorkerID != 1 {
			t.Errorf("解析结果不匹配: %+v", info)
		}
	})

	t.Run("验证器", func(t *testing.T) {
		validator, err := GetValidatorRegistry().Get(core.GeneratorTypeSnowflake)
		if err != nil {
			t.Fatalf("获取snowflake验证器失败: %v", err)
		}
		if err := validator.Validate(id); err != nil {
			t.Errorf("刚生成的ID验证失败: %v", err)
		}
	})

	t.Run("未注册类型", func(t *testing.T) {
		if _, err := GetParserRegistry().Get(core.GeneratorTypeUUID); !errors.Is(err, core.ErrParserNotFound) {
			t.Errorf("期望ErrParserNotFound, 得到 %v", err)
		}
		if _, err := GetValidatorRegistry().Get(core.GeneratorTypeUUID); !errors.Is(err, core.ErrValidatorNotFound) {
			t.Errorf("期望ErrValidatorNotFound, 得到 %v", err)
		}
	})
}

// TestDefaultGenerator 测试默认生成器
func TestDefaultGenerator(t *testing.T) {
	ResetDefaultGenerator()
	t.Cleanup(ResetDefaultGenerator)

	first, err := GetDefaultGenerator()
	if err != nil {
		t.Fatalf("获取默认生成器失败: %v", err)
	}

	second, err := GetDefaultGenerator()
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("默认生成器应是单例")
	}

	// 默认坐标全为0
	if first.GetDatacenterID() != 0 || first.GetWorkerID() != 0 || first.GetProcessID() != 0 {
		t.Error("默认生成器坐标应全为0")
	}

	if _, err := first.NextID(); err != nil {
		t.Errorf("默认生成器生成ID失败: %v", err)
	}
}
