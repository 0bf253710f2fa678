package config

import (
	"fmt"

	"github.com/spf13/viper"
)

var GlobalConfig *Config

// Config 全局配置
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Crypto   CryptoConfig   `mapstructure:"crypto"`
	Log      LogConfig      `mapstructure:"log"`
	Audit    AuditConfig    `mapstructure:"audit"`
	Seed     SeedConfig     `mapstructure:"seed"`
}

// ServerConfig 服务配置
type ServerConfig struct {
	Name string `mapstructure:"name"`
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Database        string `mapstructure:"database"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // 秒
	QueryTimeout    int    `mapstructure:"query_timeout"`     // 秒，单次查询超时
	LogLevel        string `mapstructure:"log_level"`         // SQL日志级别: silent/error/warn/info
}

// AuthConfig 认证配置
type AuthConfig struct {
	JWT    JWTConfig    `mapstructure:"jwt"`
	APIKey APIKeyConfig `mapstructure:"api_key"`
}

// JWTConfig JWT配置
type JWTConfig struct {
	Secret            string `mapstructure:"secret"`
	AccessTokenExpire int    `mapstructure:"access_token_expire"` // 秒，默认24h
}

// APIKeyConfig API Key配置
type APIKeyConfig struct {
	LegacyEnabled bool   `mapstructure:"legacy_enabled"` // 是否接受遗留静态Key
	StaticKey     string `mapstructure:"static_key"`     // 遗留静态Key（legacy_enabled=true时生效）
}

// CryptoConfig 加密配置
type CryptoConfig struct {
	AESKey     string `mapstructure:"aes_key"`     // 32字节
	BcryptCost int    `mapstructure:"bcrypt_cost"` // bcrypt工作因子，0使用默认值
}

// LogConfig 日志配置
type LogConfig struct {
	Level    string `mapstructure:"level"`  // debug, info, warn, error
	Format   string `mapstructure:"format"` // json, console
	Output   string `mapstructure:"output"` // stdout, file
	FilePath string `mapstructure:"file_path"`
}

// AuditConfig 凭据巡检配置
type AuditConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Cron    string `mapstructure:"cron"` // Cron表达式，孤儿凭据巡检时间
}

// SeedConfig 初始化数据配置
type SeedConfig struct {
	File string `mapstructure:"file"` // seed文件路径，空则跳过
}

const (
	// DefaultAccessTokenExpire Token默认有效期24小时
	DefaultAccessTokenExpire = 86400
	// DefaultQueryTimeout 数据库默认查询超时
	DefaultQueryTimeout = 5
)

// Load 加载配置
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// 设置配置文件路径
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// 读取环境变量
	v.AutomaticEnv()

	// 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	// 解析配置
	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if config.Auth.JWT.AccessTokenExpire <= 0 {
		config.Auth.JWT.AccessTokenExpire = DefaultAccessTokenExpire
	}
	if config.Database.QueryTimeout <= 0 {
		config.Database.QueryTimeout = DefaultQueryTimeout
	}

	// 设置全局配置
	GlobalConfig = config

	return config, nil
}

// GetDSN 获取数据库DSN
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.Username,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}
