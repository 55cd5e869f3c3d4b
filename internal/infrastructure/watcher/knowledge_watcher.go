package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/aidechat/backend/internal/infrastructure/log"
)

// watchedExtensions 监听目录中会被摄入的文件类型
var watchedExtensions = []string{".txt", ".md"}

// Ingestor 知识摄入端
type Ingestor interface {
	IsConfigured() bool
	Add(ctx context.Context, text string, metadata map[string]any) bool
}

// KnowledgeWatcher 监听目录并把新增/修改的文本文件摄入知识库
// 记录标识由内容决定，同一文件被重复触发只会覆盖同一条记录
type KnowledgeWatcher struct {
	dir      string
	ingestor Ingestor
	watcher  *fsnotify.Watcher
	cancel   context.CancelFunc
	logger   *slog.Logger
}

// NewKnowledgeWatcher 创建知识目录监听器
// dir 为空时返回 nil，表示该功能未启用
func NewKnowledgeWatcher(dir string, ingestor Ingestor) *KnowledgeWatcher {
	if dir == "" {
		return nil
	}
	return &KnowledgeWatcher{
		dir:      dir,
		ingestor: ingestor,
		logger:   log.NewModuleLogger("watcher", "knowledge"),
	}
}

// Start 开始监听
func (w *KnowledgeWatcher) Start() error {
	if !w.ingestor.IsConfigured() {
		w.logger.Warn("Vector store not configured, knowledge watcher disabled",
			"dir", w.dir,
		)
		return nil
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := fsWatcher.Add(w.dir); err != nil {
		_ = fsWatcher.Close()
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}

	w.watcher = fsWatcher

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel

	go w.loop(ctx)

	w.logger.Info("Knowledge watcher started",
		"dir", w.dir,
	)
	return nil
}

// Stop 停止监听
func (w *KnowledgeWatcher) Stop() error {
	if w.cancel != nil {
		w.cancel()
	}
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}

// loop 事件循环
func (w *KnowledgeWatcher) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if !isWatchedExtension(event.Name) {
				continue
			}
			w.ingestFile(ctx, event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("File watcher error",
				"error", err,
			)
		}
	}
}

// ingestFile 读取文件内容并写入知识库
func (w *KnowledgeWatcher) ingestFile(ctx context.Context, path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		w.logger.Error("Failed to read knowledge file",
			"path", path,
			"error", err,
		)
		return
	}

	text := strings.TrimSpace(string(content))
	if text == "" {
		return
	}

	ok := w.ingestor.Add(ctx, text, map[string]any{
		"source": filepath.Base(path),
	})
	if ok {
		w.logger.Info("Knowledge file ingested",
			"path", path,
			"bytes", len(content),
		)
	}
}

// isWatchedExtension 检查文件扩展名是否在监听范围内
func isWatchedExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, watched := range watchedExtensions {
		if ext == watched {
			return true
		}
	}
	return false
}
