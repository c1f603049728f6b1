// Package store 坐标分配审计库
//
// 说明：记录每次节点坐标分配/释放的审计日志，便于排查坐标冲突。
// 注意：本包不持久化任何生成器状态或已铸造的ID——生成器本身无持久化。
package store

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NodeAssignment 节点坐标分配记录
type NodeAssignment struct {
	ID           uint64     `gorm:"primaryKey;autoIncrement"`
	DatacenterID uint64     `gorm:"index:idx_coordinate"`
	WorkerID     uint64     `gorm:"index:idx_coordinate"`
	ProcessID    uint64     `gorm:"index:idx_coordinate"`
	Hostname     string     `gorm:"size:255"`
	PID          int        `gorm:"column:pid"`
	AssignedAt   time.Time  `gorm:"autoCreateTime"`
	ReleasedAt   *time.Time `gorm:"default:null"`
}

// TableName 指定表名
func (NodeAssignment) TableName() string {
	return "node_assignments"
}

// Store 审计存储
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

// Open 打开审计库连接并自动迁移表结构
// 说明：driver支持sqlite/mysql/postgres三种
func Open(driver, dsn string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	// 根据驱动选择方言
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// 自动迁移
	if err := db.AutoMigrate(&NodeAssignment{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	logger.Info("审计库已就绪", zap.String("driver", driver))

	return &Store{db: db, logger: logger}, nil
}

// RecordAssignment 记录一次坐标分配
func (s *Store) RecordAssignment(ctx context.Context, a *NodeAssignment) error {
	if a == nil {
		return fmt.Errorf("assignment cannot be nil")
	}
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("failed to record assignment: %w", err)
	}
	return nil
}

// RecordRelease 记录坐标释放
func (s *Store) RecordRelease(ctx context.Context, id uint64) error {
	now := time.Now()
	result := s.db.WithContext(ctx).
		Model(&NodeAssignment{}).
		Where("id = ? AND released_at IS NULL", id).
		Update("released_at", &now)
	if result.Error != nil {
		return fmt.Errorf("failed to record release: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("assignment %d not found or already released", id)
	}
	return nil
}

// ListActive 列出当前未释放的坐标分配
func (s *Store) ListActive(ctx context.Context) ([]NodeAssignment, error) {
	var assignments []NodeAssignment
	err := s.db.WithContext(ctx).
		Where("released_at IS NULL").
		Order("assigned_at DESC").
		Find(&assignments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active assignments: %w", err)
	}
	return assignments, nil
}

// Close 关闭数据库连接
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
