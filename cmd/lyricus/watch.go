package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yleoer/lyricus/pkg/converter"
	"github.com/yleoer/lyricus/pkg/database"
	"github.com/yleoer/lyricus/pkg/notify"
	"github.com/yleoer/lyricus/pkg/scanner"
	"github.com/yleoer/lyricus/pkg/scheduler"
	"github.com/yleoer/lyricus/pkg/util"
)

func newWatchCmd(a *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a directory and submit dropped lyric files",
		Long: `watch 监听投稿目录中的 .txt、.lrc 和 .json 文件，文件写入稳定后解析并提交到歌词 API。
已导入的文件记录在本地 SQLite 数据库中，重启后不会重复提交。`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = a.cfg.ImportDir
			}
			if err := a.cfg.EnsureDirs(); err != nil {
				return err
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create import directory %s: %w", dir, err)
			}
			root, err := filepath.Abs(dir)
			if err != nil {
				return err
			}

			ledger, err := database.NewSQLiteStore(a.cfg.DBPath, a.logger)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer ledger.Close()

			var tc converter.TextConverter = converter.Identity{}
			if a.cfg.ImportT2S {
				if tc, err = converter.NewOpenCCConverter(a.logger); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sched := scheduler.NewImportScheduler(ctx,
				scheduler.Options{
					CheckInterval: a.cfg.StabilityCheckInterval,
					QuietDuration: a.cfg.StabilityQuietDuration,
					MaxWait:       a.cfg.StabilityMaxWait,
				},
				ledger,
				scanner.NewLyricScanner(tc, a.logger),
				a.client,
				notify.Multi{a.notifier, notify.LogNotifier{Logger: a.logger}},
				a.logger,
			)

			a.logger.Info("Monitoring import directory", zap.String("dir", root), zap.String("api", a.cfg.APIBaseURL))
			sched.InitialScan(root)
			err = watchDir(ctx, root, sched, a.logger)
			sched.Wait()
			return err
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "directory to watch (overrides IMPORT_DIR)")
	return cmd
}

// watchDir 监听目录的一级文件变动，直到 ctx 被取消
func watchDir(ctx context.Context, root string, sched *scheduler.ImportScheduler, logger *zap.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(root); err != nil {
		return fmt.Errorf("error adding %s to watcher: %w", root, err)
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping watcher")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			logger.Debug("Watcher event", zap.String("op", event.Op.String()), zap.String("path", event.Name))

			if filepath.Dir(event.Name) != root {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}
			if util.IsDirectory(event.Name) || !util.IsLyricSubmissionFile(event.Name) {
				continue
			}
			sched.TriggerScan(event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Watcher error", zap.Error(err))
		}
	}
}
