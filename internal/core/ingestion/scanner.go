package ingestion

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// supportedExtensions は取り込み対象とするファイル拡張子
var supportedExtensions = map[string]struct{}{
	".txt":      {},
	".md":       {},
	".markdown": {},
}

// ScanDocuments はルートパス配下の取り込み対象ファイルのパス一覧を返す
//
// ルートが単一ファイルの場合は拡張子が対象のときのみそのパスを返す
// ディレクトリの場合は再帰的に列挙し、決定的なソート順で返す
// （取り込みの再現性とベクトルIDの安定性のため）
// ルートが存在しない場合は ErrPathNotFound を返す
// 対象ファイルが0件の場合はエラーではなく空のスライスを返し、扱いは呼び出し側に委ねる
func ScanDocuments(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, root)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", root, err)
	}

	if !info.IsDir() {
		if isSupported(root) {
			return []string{root}, nil
		}
		return nil, nil
	}

	var paths []string
	// WalkDir は辞書順で走査するため、結果の順序は実行間で安定する
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && isSupported(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return paths, nil
}

func isSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := supportedExtensions[ext]
	return ok
}
