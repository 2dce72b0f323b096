// Package config 负责加载和管理应用程序的配置。
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// 全局配置变量，存储从配置文件加载的所有设置。
var Conf Config

// Config 是整个应用程序的配置结构体，与 config.yaml 文件结构对应。
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	Search   SearchConfig   `mapstructure:"search"`
	GenAI    GenAIConfig    `mapstructure:"genai"`
	Research ResearchConfig `mapstructure:"research"`
}

// ServerConfig 存储服务器相关的配置。
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// LogConfig 存储日志相关的配置。
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// DatabaseConfig 存储所有数据库连接的配置。
type DatabaseConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

// RedisConfig 存储 Redis 的配置。Addr 为空表示未配置持久化能力。
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SearchConfig 存储 SerpAPI 网络搜索的配置。APIKey 为空表示搜索能力未配置。
type SearchConfig struct {
	APIKey      string `mapstructure:"api_key"`
	BaseURL     string `mapstructure:"base_url"`
	Engine      string `mapstructure:"engine"`
	ResultCount int    `mapstructure:"result_count"`
}

// GenAIConfig 存储 Google 生成式模型的配置。APIKey 为空表示摘要能力未配置。
type GenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// ResearchConfig 存储研究管道的运行策略。
// Mode 可选 strict / degraded / auto，auto 表示所有外部能力齐备时取 strict。
type ResearchConfig struct {
	Mode string `mapstructure:"mode"`
}

// Init 初始化配置加载，从指定的路径读取 YAML 文件并解析到 Conf 变量中。
// API 密钥等敏感信息允许通过环境变量覆盖，缺失时服务降级运行而非退出。
func Init(configPath string) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	// 密钥通过环境变量注入，配置文件中通常留空
	_ = viper.BindEnv("search.api_key", "SERPAPI_API_KEY")
	_ = viper.BindEnv("genai.api_key", "GOOGLE_API_KEY")
	_ = viper.BindEnv("database.redis.addr", "REDIS_ADDR")

	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("读取配置文件失败: %w", err))
	}

	if err := viper.Unmarshal(&Conf); err != nil {
		panic(fmt.Errorf("无法将配置解析到结构体中: %w", err))
	}

	applyDefaults()
}

// applyDefaults 填充缺省值，保证下游组件拿到的配置始终可用。
func applyDefaults() {
	if Conf.Server.Port == "" {
		Conf.Server.Port = "8000"
	}
	if Conf.Search.BaseURL == "" {
		Conf.Search.BaseURL = "https://serpapi.com"
	}
	if Conf.Search.Engine == "" {
		Conf.Search.Engine = "google"
	}
	if Conf.Search.ResultCount <= 0 {
		Conf.Search.ResultCount = 5
	}
	if Conf.GenAI.Model == "" {
		Conf.GenAI.Model = "gemini-1.5-flash"
	}
	if Conf.Research.Mode == "" {
		Conf.Research.Mode = "auto"
	}
}
