// idgend 128位分布式唯一ID生成服务
//
//	@title			katydid idgend API
//	@version		1.0
//	@description	128位分布式唯一ID生成服务
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"katydid-common-core/internal/allocator"
	"katydid-common-core/internal/config"
	"katydid-common-core/internal/server"
	"katydid-common-core/internal/store"
	"katydid-common-core/pkg/idgen/snowflake"
	"katydid-common-core/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "idgend:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "配置文件路径（yaml），为空时使用默认值和环境变量")
	flag.Parse()

	// 步骤1：加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 步骤2：初始化日志
	log, cleanup, err := logger.Init(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer cleanup()

	ctx := context.Background()

	// 步骤3：打开审计库（可选）
	var auditStore *store.Store
	if cfg.Database.Driver != "" {
		auditStore, err = store.Open(cfg.Database.Driver, cfg.Database.DSN, log)
		if err != nil {
			return fmt.Errorf("failed to open audit store: %w", err)
		}
		defer auditStore.Close()
	}

	// 步骤4：确定节点坐标
	// 说明：启用分配器时从Redis租用(worker, process)坐标，否则使用配置中的静态坐标。
	// 无论哪种方式，坐标确定后生成过程不再依赖任何外部系统
	workerID := cfg.Node.WorkerID
	processID := cfg.Node.ProcessID
	var leaseLost <-chan struct{}
	if cfg.Allocator.Enabled {
		alloc, err := allocator.New(allocator.Options{
			RedisAddr:     cfg.Allocator.RedisAddr,
			RedisPassword: cfg.Allocator.RedisPassword,
			RedisDB:       cfg.Allocator.RedisDB,
			Namespace:     cfg.Allocator.Namespace,
			DatacenterID:  cfg.Node.DatacenterID,
			LeaseTTL:      cfg.Allocator.LeaseTTL,
			Logger:        log,
		})
		if err != nil {
			return fmt.Errorf("failed to create coordinate allocator: %w", err)
		}
		defer alloc.Close()

		lease, err := alloc.Acquire(ctx)
		if err != nil {
			return fmt.Errorf("failed to acquire coordinate lease: %w", err)
		}
		defer lease.Stop()

		workerID = lease.WorkerID
		processID = lease.ProcessID
		leaseLost = lease.Lost()
	}

	// 步骤5：记录坐标分配审计
	if auditStore != nil {
		hostname, _ := os.Hostname()
		assignment := &store.NodeAssignment{
			DatacenterID: cfg.Node.DatacenterID,
			WorkerID:     workerID,
			ProcessID:    processID,
			Hostname:     hostname,
			PID:          os.Getpid(),
		}
		if err := auditStore.RecordAssignment(ctx, assignment); err != nil {
			log.Warn("坐标分配审计记录失败", zap.Error(err))
		} else {
			defer func() {
				if err := auditStore.RecordRelease(ctx, assignment.ID); err != nil {
					log.Warn("坐标释放审计记录失败", zap.Error(err))
				}
			}()
		}
	}

	// 步骤6：创建ID生成器
	gen, err := snowflake.NewWithConfig(&snowflake.Config{
		Version:         cfg.Node.Version,
		DatacenterID:    cfg.Node.DatacenterID,
		WorkerID:        workerID,
		ProcessID:       processID,
		DefaultSequence: cfg.Node.DefaultSequence,
		EnableMetrics:   cfg.Node.EnableMetrics,
		Logger:          log,
	})
	if err != nil {
		return fmt.Errorf("failed to create generator: %w", err)
	}

	// 步骤7：启动HTTP服务
	srv, err := server.New(server.Options{
		Addr:           cfg.Server.Addr,
		Mode:           cfg.Server.Mode,
		JWTSecret:      cfg.Server.JWTSecret,
		AdminTokenHash: cfg.Server.AdminTokenHash,
		Generator:      gen,
		Logger:         log,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	// 步骤8：等待退出信号，优雅停机
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Info("收到退出信号", zap.String("signal", sig.String()))
	case <-leaseLost:
		// 坐标已被其他节点占用，继续铸造会产生重复ID，必须立即停机
		log.Error("坐标租约丢失，停止服务")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
