package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL             string        `json:"api_base_url"`             // 歌词集合资源地址
	HTTPTimeout            time.Duration `json:"http_timeout"`             // HTTP 请求超时
	DownloadDir            string        `json:"download_dir"`             // PDF 保存目录
	DataDir                string        `json:"data_dir"`                 // SQLite数据库文件存放目录
	DBFileName             string        `json:"db_file_name"`             // SQLite数据库文件名
	DBPath                 string        `json:"-"`                        // 完整的数据库文件路径
	ImportDir              string        `json:"import_dir"`               // 监听的投稿目录
	ImportT2S              bool          `json:"import_t2s"`               // 导入时繁体转简体
	StabilityCheckInterval time.Duration `json:"stability_check_interval"` // 每次检查的间隔
	StabilityQuietDuration time.Duration `json:"stability_quiet_duration"` // 文件在多长时间内没有变化才算稳定
	StabilityMaxWait       time.Duration `json:"stability_max_wait"`       // 最长等待文件稳定的时间
	LogLevel               string        `json:"log_level"`
	LogFile                string        `json:"log_file"` // 为空时只输出到控制台
}

const (
	apiBaseURL  = "https://lyricus-api.onrender.com/api/lyrics"
	downloadDir = "downloads"
	dataDir     = "data"
	importDir   = "inbox"
	dbFileName  = "lyricus.db"
	logLevel    = "info"

	// 文件稳定性检查相关参数
	stabilityCheckInterval = 2 * time.Second  // 每次检查的间隔
	stabilityQuietDuration = 5 * time.Second  // 文件在多长时间内没有变化才算稳定
	stabilityMaxWait       = 10 * time.Minute // 最长等待文件稳定的时间

	httpTimeout = 30 * time.Second
)

// LoadConfig 从环境变量或默认值加载配置
func LoadConfig() (*Config, error) {
	// 尝试加载 .env 文件
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL:             os.Getenv("LYRICUS_API_URL"),
		HTTPTimeout:            parseDurationOrDefault(os.Getenv("HTTP_TIMEOUT"), httpTimeout),
		DownloadDir:            os.Getenv("DOWNLOAD_DIR"),
		DataDir:                os.Getenv("DATA_DIR"),
		DBFileName:             os.Getenv("DB_FILE_NAME"),
		ImportDir:              os.Getenv("IMPORT_DIR"),
		ImportT2S:              parseBoolOrDefault(os.Getenv("IMPORT_T2S"), false),
		StabilityCheckInterval: parseDurationOrDefault(os.Getenv("STABILITY_CHECK_INTERVAL"), stabilityCheckInterval),
		StabilityQuietDuration: parseDurationOrDefault(os.Getenv("STABILITY_QUIET_DURATION"), stabilityQuietDuration),
		StabilityMaxWait:       parseDurationOrDefault(os.Getenv("STABILITY_MAX_WAIT"), stabilityMaxWait),
		LogLevel:               os.Getenv("LOG_LEVEL"),
		LogFile:                os.Getenv("LOG_FILE"),
	}

	// 设置默认值
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = apiBaseURL
	}
	if cfg.DownloadDir == "" {
		cfg.DownloadDir = downloadDir
	}
	if cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	if cfg.DBFileName == "" {
		cfg.DBFileName = dbFileName
	}
	if cfg.ImportDir == "" {
		cfg.ImportDir = importDir
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = logLevel
	}
	cfg.DBPath = filepath.Join(cfg.DataDir, cfg.DBFileName)
	return cfg, nil
}

// EnsureDirs 确认下载和数据目录存在
func (c *Config) EnsureDirs() error {
	if err := os.MkdirAll(c.DownloadDir, 0755); err != nil {
		return fmt.Errorf("failed to create download directory %s: %w", c.DownloadDir, err)
	}
	if err := os.MkdirAll(c.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create database directory %s: %w", c.DataDir, err)
	}
	return nil
}

func parseDurationOrDefault(s string, defaultValue time.Duration) time.Duration {
	if s == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Warning: Could not parse duration '%s', using default '%v'. Error: %v", s, defaultValue, err)
		return defaultValue
	}
	return d
}

func parseBoolOrDefault(s string, defaultValue bool) bool {
	if s == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		log.Printf("Warning: Could not parse bool '%s', using default '%v'. Error: %v", s, defaultValue, err)
		return defaultValue
	}
	return b
}
