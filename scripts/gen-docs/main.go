package main

import (
	"assetup/cmd"
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra/doc"
)

func main() {
	docsDir := "./docs"

	// 既存のdocsディレクトリをクリーン
	if err := os.RemoveAll(docsDir); err != nil {
		log.Fatalf("Failed to clean docs directory: %v", err)
	}
	if err := os.MkdirAll(docsDir, 0755); err != nil {
		log.Fatalf("Failed to create docs directory: %v", err)
	}

	// サブコマンドはないのでルートコマンドだけをdocs/README.mdとして生成
	buf := new(bytes.Buffer)
	cmd.RootCmd.DisableAutoGenTag = true
	if err := doc.GenMarkdownCustom(cmd.RootCmd, buf, linkHandler); err != nil {
		log.Fatalf("Failed to generate documentation: %v", err)
	}

	filename := filepath.Join(docsDir, "README.md")
	if err := os.WriteFile(filename, []byte(removeSeeAlsoSection(buf.String())), 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", filename, err)
	}

	fmt.Printf("✅ Documentation generated in %s\n", filename)
}

func linkHandler(name string) string {
	if strings.TrimSuffix(name, ".md") == cmd.AppName {
		return "README.md"
	}
	return name
}

// removeSeeAlsoSection はリンク先のないSEE ALSOセクションを削除
func removeSeeAlsoSection(content string) string {
	if i := strings.Index(content, "### SEE ALSO"); i >= 0 {
		return strings.TrimRight(content[:i], "\n") + "\n"
	}
	return content
}
