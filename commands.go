package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"fintrack/config"
	"fintrack/database"
	"fintrack/router"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

var (
	configFile string
	port       string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "fintrack",
		Short:         "个人记账 API 服务",
		Long:          "个人记账 API：收支记录、储蓄目标、类别预算与统计分析。",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "外部配置文件路径（可选）")
	root.PersistentFlags().StringVarP(&port, "port", "p", "", "监听端口，如: 5000 或 :5000")

	root.AddCommand(serveCmd(), initDBCmd(), versionCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "启动 HTTP 服务（默认命令）",
		RunE:  runServe,
	}
}

func initDBCmd() *cobra.Command {
	var sample bool
	cmd := &cobra.Command{
		Use:   "init-db",
		Short: "创建数据表并写入默认类别",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := openDatabase(cfg, sample || cfg.Seed.SampleData)
			if err != nil {
				return err
			}
			return closeDatabase(db)
		},
	}
	cmd.Flags().BoolVar(&sample, "sample", false, "同时写入示例收支记录")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "显示版本信息",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fintrack v%s\n", version)
		},
	}
}

// loadConfig 加载配置（内置配置 + 可选的外部配置 + 环境变量），命令行参数覆盖端口
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}
	if port != "" {
		// 自动添加冒号前缀
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
		log.Printf("命令行指定端口: %s", port)
	}
	config.PrintConfig()
	return cfg, nil
}

// openDatabase 初始化数据库并写入默认类别
func openDatabase(cfg *config.Config, sample bool) (*gorm.DB, error) {
	db, err := database.Init(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("数据库初始化失败: %w", err)
	}
	n, err := database.SeedCategories(db)
	if err != nil {
		return nil, fmt.Errorf("写入默认类别失败: %w", err)
	}
	log.Printf("类别数量: %d", n)

	if sample {
		if err := database.SeedSampleData(db, time.Now()); err != nil {
			return nil, fmt.Errorf("写入示例数据失败: %w", err)
		}
		log.Printf("已写入示例收支记录")
	}
	return db, nil
}

func closeDatabase(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDatabase(cfg, cfg.Seed.SampleData)
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	srv := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           router.SetupRouter(cfg, db),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("==========================================")
	log.Printf("  💰 个人记账 API 已启动")
	log.Printf("==========================================")
	log.Printf("  健康检查: http://localhost%s/api/health", cfg.Server.Port)
	log.Printf("  Swagger:  http://localhost%s/swagger/index.html", cfg.Server.Port)
	log.Printf("  API接口:  http://localhost%s/api/", cfg.Server.Port)
	log.Printf("==========================================")

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("服务器启动失败: %w", err)
		}
		return nil
	case <-cmd.Context().Done():
	}

	log.Printf("正在关闭服务器...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("服务器关闭失败: %w", err)
	}
	log.Printf("服务器已关闭")
	return nil
}
