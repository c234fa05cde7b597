package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yleoer/lyricus/pkg/browse"
	"github.com/yleoer/lyricus/pkg/database"
	"github.com/yleoer/lyricus/pkg/saver"
	"github.com/yleoer/lyricus/pkg/util"
)

func newDownloadCmd(a *app) *cobra.Command {
	var (
		dir   string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "download <id>",
		Short: "Download the PDF of a lyric",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if dir == "" {
				dir = a.cfg.DownloadDir
			}
			if err := a.cfg.EnsureDirs(); err != nil {
				return err
			}

			ledger, err := database.NewSQLiteStore(a.cfg.DBPath, a.logger)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer ledger.Close()

			if !force {
				last, err := ledger.LastDownload(id)
				if err != nil {
					a.logger.Warn("Error reading download history", zap.Int64("id", id), zap.Error(err))
				}
				if last != nil && util.FileExists(last.Path) {
					a.logger.Info("Lyric already downloaded, skipping",
						zap.Int64("id", id), zap.String("path", last.Path))
					fmt.Fprintln(a.out, last.Path)
					return nil
				}
			}

			dst := saver.NewDir(dir, a.logger)
			a.logger.Debug("Downloading lyric", zap.Int64("id", id), zap.String("dir", dst.Root()))
			view := a.newView(browse.WithSaver(dst), browse.WithLedger(ledger))
			defer view.Unmount()
			path, err := view.Download(cmd.Context(), id)
			if err != nil {
				return err
			}
			abs, err := filepath.Abs(path)
			if err != nil {
				abs = path
			}
			fmt.Fprintln(a.out, abs)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "directory to save into (overrides DOWNLOAD_DIR)")
	cmd.Flags().BoolVar(&force, "force", false, "download again even if a previous copy exists")
	return cmd
}
