package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

// @title 个人记账 API
// @version 1.0
// @description 收支记录、储蓄目标、类别预算与统计分析接口
// @host localhost:5000
// @BasePath /

var version = "1.0.0"

func main() {
	// 本地开发时加载 .env，文件不存在时忽略
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
}
