package database

import (
	"context"
	"time"

	"research-agent-go/pkg/log"

	"github.com/go-redis/redis/v8"
)

// InitRedis 初始化 Redis 客户端连接。
// 与其他基础设施不同，持久化能力缺失时服务要降级运行而不是退出；
// 未配置地址或连接失败时返回 nil，由上层据此进入降级模式。
func InitRedis(addr, password string, db int) *redis.Client {
	if addr == "" {
		log.Warnf("Redis 地址未配置，会话持久化能力不可用")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Error("Redis 连接失败，会话持久化能力不可用", err)
		_ = client.Close()
		return nil
	}

	log.Info("Redis client connected successfully")
	return client
}
