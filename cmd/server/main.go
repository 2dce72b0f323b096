// Package main 是应用程序的入口点。
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"research-agent-go/internal/config"
	"research-agent-go/internal/handler"
	"research-agent-go/internal/middleware"
	"research-agent-go/internal/repository"
	"research-agent-go/internal/service"
	"research-agent-go/pkg/database"
	"research-agent-go/pkg/extract"
	"research-agent-go/pkg/log"
	"research-agent-go/pkg/search"
	"research-agent-go/pkg/summarize"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. 初始化配置
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Info("日志记录器初始化成功")

	// 3. 构建外部能力句柄。任何一项缺失都只降级，不阻止启动。
	caps := buildCapabilities(cfg)
	if missing := caps.MissingServices(); len(missing) > 0 {
		log.Warnf("部分外部服务未配置，相关功能将降级运行:")
		for _, m := range missing {
			log.Warnf("  - %s", m)
		}
	} else {
		log.Info("所有外部服务初始化成功")
	}

	// 4. 确定运行模式并初始化 Service (依赖注入)
	mode := service.ResolveMode(cfg.Research.Mode, caps)
	log.Infof("研究管道运行模式: %s", mode)
	researchService := service.NewResearchService(caps, mode, cfg.Search.ResultCount)
	conversationService := service.NewConversationService(researchService, caps.Store)

	// 5. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.Server.Mode)
	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	r.Use(middleware.RequestLogger(), middleware.CORS(), gin.Recovery())

	// 6. 注册路由
	r.GET("/health", handler.NewHealthHandler(caps).Check)

	conversationHandler := handler.NewConversationHandler(conversationService)
	conversations := r.Group("/conversations")
	{
		conversations.GET("", conversationHandler.ListConversations)
		conversations.GET("/:id", conversationHandler.GetConversation)
		conversations.POST("", conversationHandler.CreateConversation)
	}

	// 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	// 设置一个5秒的超时上下文
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}
	log.Info("服务已优雅关闭")
}

// buildCapabilities 依据配置构建外部能力句柄，缺失的能力保持为 nil。
func buildCapabilities(cfg config.Config) service.Capabilities {
	caps := service.Capabilities{
		Extractor: extract.NewExtractor(),
	}

	if cfg.Search.APIKey != "" {
		caps.Search = search.NewClient(cfg.Search)
	}

	if cfg.GenAI.APIKey != "" {
		summarizer, err := summarize.NewClient(context.Background(), cfg.GenAI)
		if err != nil {
			log.Error("GenAI 客户端初始化失败，摘要能力降级", err)
		} else {
			caps.Summarizer = summarizer
		}
	}

	if redisClient := database.InitRedis(
		cfg.Database.Redis.Addr,
		cfg.Database.Redis.Password,
		cfg.Database.Redis.DB,
	); redisClient != nil {
		caps.Store = repository.NewConversationRepository(redisClient)
	}

	return caps
}
