package upload

import (
	"assetup/internal/logger"
	"assetup/internal/service/common"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/schollz/progressbar/v3"
)

// Runner はアセットを1件ずつ順番に処理する
type Runner struct {
	store ObjectStore
	opts  Options
	out   io.Writer
}

// NewRunner は新しいRunnerを作成
// ドライランの場合 store は nil でもよい（リクエストは一切行わない）
func NewRunner(store ObjectStore, opts Options, out io.Writer) *Runner {
	return &Runner{store: store, opts: opts, out: out}
}

// Run は全アセットを列挙順に処理し、集計結果を返す
// 個々のアップロード失敗はエラーとして返さず集計に含める
func (r *Runner) Run(ctx context.Context, assets []Asset) Totals {
	var totals Totals

	var bar *progressbar.ProgressBar
	if r.opts.Progress != nil {
		bar = newProgressBar(r.opts.Progress, len(assets))
	}

	for _, asset := range assets {
		totals.Record(r.process(ctx, asset))
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	if !r.opts.DryRun {
		r.printSummary(totals)
	}
	return totals
}

// process は1アセットを処理して最終状態を返す
func (r *Runner) process(ctx context.Context, asset Asset) Outcome {
	contentType := DetectContentType(asset.LocalPath, r.opts.Sniff)

	if r.opts.SkipExisting && !r.opts.DryRun {
		if r.exists(ctx, asset.Key) {
			fmt.Fprintf(r.out, "%s [SKIP] %s already exists\n", common.SkipIcon, asset.Key)
			return OutcomeSkipped
		}
	}

	if r.opts.DryRun {
		fmt.Fprintf(r.out, "%s [DRY RUN] Would upload %s -> %s (content_type=%s)\n",
			common.InfoIcon, asset.LocalPath, asset.Key, contentType)
		return OutcomeDryRun
	}

	size, err := r.put(ctx, asset, contentType)
	if err != nil {
		fmt.Fprintf(r.out, "%s [ERROR] %s: %v\n", common.ErrorIcon, asset.Key, err)
		return OutcomeError
	}

	fmt.Fprintf(r.out, "%s [OK] %s (%s)\n", common.SuccessIcon, asset.Key, common.FormatBytes(size))
	return OutcomeOK
}

// exists は存在確認を行う
// 判定できない応答は警告を出して「存在しない」として扱う
func (r *Runner) exists(ctx context.Context, key string) bool {
	reqCtx, cancel := r.requestContext(ctx)
	defer cancel()

	found, err := r.store.Exists(reqCtx, key)
	if err != nil {
		event := logger.Log.Warn().Err(err).Str("key", key)
		var statusErr *common.StatusError
		if errors.As(err, &statusErr) {
			event = event.Int("status", statusErr.StatusCode).Str("body", statusErr.Body)
		}
		event.Msg("existence check failed, treating as absent")
		return false
	}
	return found
}

// put はローカルファイルを開いてアップロードし、送信したバイト数を返す
func (r *Runner) put(ctx context.Context, asset Asset, contentType string) (int64, error) {
	f, err := os.Open(asset.LocalPath)
	if err != nil {
		return 0, fmt.Errorf("ファイルを開けません: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("ファイル情報の取得に失敗: %w", err)
	}

	reqCtx, cancel := r.requestContext(ctx)
	defer cancel()

	logger.Log.Debug().
		Str("key", asset.Key).
		Str("content_type", contentType).
		Int64("size", info.Size()).
		Msg("uploading")

	if err := r.store.Put(reqCtx, asset.Key, f, info.Size(), contentType); err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (r *Runner) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.Timeout > 0 {
		return context.WithTimeout(ctx, r.opts.Timeout)
	}
	return context.WithCancel(ctx)
}

// printSummary は最終集計を表示する
func (r *Runner) printSummary(totals Totals) {
	fmt.Fprintf(r.out, "%s Done. ok=%d skipped=%d error=%d\n",
		common.PartyIcon, totals.OK, totals.Skipped, totals.Error)

	common.PrintTable(r.out, fmt.Sprintf("バケット '%s' へのアップロード結果", r.opts.Bucket),
		[]common.TableColumn{{Header: "結果"}, {Header: "件数", AlignRight: true}},
		[][]string{
			{OutcomeOK.String(), strconv.Itoa(totals.OK)},
			{OutcomeSkipped.String(), strconv.Itoa(totals.Skipped)},
			{OutcomeError.String(), strconv.Itoa(totals.Error)},
		})
}

func newProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("アップロード中..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
	)
}
