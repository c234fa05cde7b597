package main

import (
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yleoer/lyricus/pkg/api"
	"github.com/yleoer/lyricus/pkg/browse"
	"github.com/yleoer/lyricus/pkg/config"
	"github.com/yleoer/lyricus/pkg/logger"
	"github.com/yleoer/lyricus/pkg/notify"
)

// app 保存所有子命令共享的依赖
type app struct {
	out, errOut io.Writer

	apiURL   string
	logLevel string
	jsonOut  bool

	cfg      *config.Config
	logger   *zap.Logger
	client   *api.Client
	notifier notify.Notifier
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	rootCmd := &cobra.Command{
		Use:           "lyricus",
		Short:         "Browse, search and download song lyrics.",
		Long:          `lyricus 从远端歌词 API 拉取全部歌词，在本地检索、排序、按歌手分组，并支持提交和下载 PDF。`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.PersistentFlags().StringVar(&a.apiURL, "api", "", "lyrics collection endpoint (overrides LYRICUS_API_URL)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides LOG_LEVEL)")
	rootCmd.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "print results as JSON")

	rootCmd.AddCommand(
		newListCmd(a),
		newShowCmd(a),
		newArtistsCmd(a),
		newTrendingCmd(a),
		newAddCmd(a),
		newDownloadCmd(a),
		newWatchCmd(a),
	)
	return rootCmd
}

// execute 运行命令并把失败原因写到 errOut，返回进程退出码
func execute(args []string, out, errOut io.Writer) int {
	cmd := newRootCmd(out, errOut)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(errOut, "Error: %s\n", describeError(err))
		return 1
	}
	return 0
}

// describeError 区分网络失败和 HTTP 状态失败
func describeError(err error) string {
	if api.IsNetwork(err) {
		return fmt.Sprintf("network failure: %v", err)
	}
	if code := api.StatusCode(err); code != 0 {
		return fmt.Sprintf("HTTP %d: %v", code, err)
	}
	return err.Error()
}

// setup 加载配置并初始化 logger 和 API 客户端
func (a *app) setup() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if a.apiURL != "" {
		cfg.APIBaseURL = a.apiURL
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	a.cfg = cfg

	a.logger, err = logger.New(logger.Config{
		Level:      cfg.LogLevel,
		OutputPath: cfg.LogFile,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Console:    a.errOut,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger.Debug("Configuration loaded",
		zap.String("api", cfg.APIBaseURL),
		zap.String("download_dir", cfg.DownloadDir),
		zap.String("db_path", cfg.DBPath))

	a.client = api.NewClient(cfg.APIBaseURL, &http.Client{Timeout: cfg.HTTPTimeout}, a.logger)
	a.notifier = consoleNotifier{w: a.errOut}
	return nil
}

// newView 创建一个视图会话
func (a *app) newView(opts ...browse.Option) *browse.View {
	return browse.NewView(a.client, a.notifier, a.logger, opts...)
}

// consoleNotifier 把提示打印到标准错误
type consoleNotifier struct {
	w io.Writer
}

func (c consoleNotifier) Notify(n notify.Notice) {
	fmt.Fprintf(c.w, "%s: %s\n", n.Title, n.Description)
}
