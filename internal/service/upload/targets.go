package upload

import (
	"assetup/internal/logger"
	"assetup/internal/service/common"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// DefaultTargets はアップロード対象のデフォルトパターン（ルートからの相対パス）
// 末尾要素にワイルドカードを含むものはディレクトリ直下のみを対象にする
var DefaultTargets = []string{
	"4613-grp-a/*",
	"4613-grp-b/*",
	"4613-unit-1-main.webp",
	"4613-unit-2-main.webp",
}

// ErrNoTargets は対象ファイルが1件も見つからなかった場合のエラー
var ErrNoTargets = errors.New("no matching files found")

// FindTargets はルート配下でパターンに一致するファイルを列挙する
// 順序はパターン順、ワイルドカード内はファイル名順
func FindTargets(root string, patterns []string) ([]Asset, error) {
	var assets []Asset
	seen := make(map[string]struct{})

	add := func(localPath string) error {
		rel, err := filepath.Rel(root, localPath)
		if err != nil {
			return fmt.Errorf("相対パスの計算に失敗 (%s): %w", localPath, err)
		}
		key := filepath.ToSlash(rel)
		if key == ".." || strings.HasPrefix(key, "../") {
			return fmt.Errorf("対象 %s がルート %s の外にあります", localPath, root)
		}
		if _, ok := seen[key]; ok {
			return nil
		}
		seen[key] = struct{}{}
		assets = append(assets, Asset{LocalPath: localPath, Key: key})
		return nil
	}

	for _, pattern := range patterns {
		dir, name := path.Split(strings.TrimPrefix(filepath.ToSlash(pattern), "/"))
		if name == "" {
			return nil, fmt.Errorf("不正なパターン: %q", pattern)
		}
		localDir := filepath.Join(root, filepath.FromSlash(dir))

		// 明示的な単一ファイル
		if !common.HasWildcard(name) {
			if common.IsHidden(name) {
				continue
			}
			localPath := filepath.Join(localDir, name)
			if !isRegularFile(localPath) {
				logger.Log.Debug().Str("path", localPath).Msg("target file not found")
				continue
			}
			if err := add(localPath); err != nil {
				return nil, err
			}
			continue
		}

		// ディレクトリ直下のglob
		g, err := common.CompilePattern(name)
		if err != nil {
			return nil, fmt.Errorf("不正なパターン %q: %w", pattern, err)
		}
		entries, err := os.ReadDir(localDir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Log.Debug().Str("dir", localDir).Msg("target directory not found")
				continue
			}
			return nil, fmt.Errorf("ディレクトリの読み込みに失敗 (%s): %w", localDir, err)
		}
		// os.ReadDir はファイル名順で返す
		for _, entry := range entries {
			if common.IsHidden(entry.Name()) || !g.Match(entry.Name()) {
				continue
			}
			localPath := filepath.Join(localDir, entry.Name())
			if !isRegularFile(localPath) {
				continue
			}
			if err := add(localPath); err != nil {
				return nil, err
			}
		}
	}

	if len(assets) == 0 {
		return nil, ErrNoTargets
	}
	return assets, nil
}

// isRegularFile はシンボリックリンクを辿った先が通常ファイルかを返す
func isRegularFile(p string) bool {
	info, err := os.Stat(p)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
