package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeIngestor 线程安全地记录摄入的文本
type fakeIngestor struct {
	mu         sync.Mutex
	configured bool
	texts      []string
	sources    []string
}

func (f *fakeIngestor) IsConfigured() bool { return f.configured }

func (f *fakeIngestor) Add(ctx context.Context, text string, metadata map[string]any) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts = append(f.texts, text)
	if source, ok := metadata["source"].(string); ok {
		f.sources = append(f.sources, source)
	}
	return true
}

func (f *fakeIngestor) ingested() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.texts))
	copy(out, f.texts)
	return out
}

func TestNewKnowledgeWatcher_DisabledWithoutDir(t *testing.T) {
	assert.Nil(t, NewKnowledgeWatcher("", &fakeIngestor{configured: true}))
}

func TestStart_SkipsWhenNotConfigured(t *testing.T) {
	w := NewKnowledgeWatcher(t.TempDir(), &fakeIngestor{configured: false})
	require.NotNil(t, w)

	require.NoError(t, w.Start())
	defer func() { _ = w.Stop() }()

	assert.Nil(t, w.watcher, "未配置向量库时不应创建底层监听器")
}

func TestIngestFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.md")
	require.NoError(t, os.WriteFile(path, []byte("  some knowledge\n"), 0644))

	ingestor := &fakeIngestor{configured: true}
	w := NewKnowledgeWatcher(dir, ingestor)

	w.ingestFile(context.Background(), path)

	require.Len(t, ingestor.texts, 1)
	assert.Equal(t, "some knowledge", ingestor.texts[0], "摄入前应去除首尾空白")
	assert.Equal(t, []string{"note.md"}, ingestor.sources)
}

func TestIngestFile_SkipsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("   \n"), 0644))

	ingestor := &fakeIngestor{configured: true}
	w := NewKnowledgeWatcher(dir, ingestor)

	w.ingestFile(context.Background(), path)
	assert.Empty(t, ingestor.texts)
}

func TestWatcher_IngestsCreatedFile(t *testing.T) {
	dir := t.TempDir()
	ingestor := &fakeIngestor{configured: true}

	w := NewKnowledgeWatcher(dir, ingestor)
	require.NoError(t, w.Start())
	defer func() { _ = w.Stop() }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.txt"), []byte("watched content"), 0644))

	// 事件投递是异步的
	assert.Eventually(t, func() bool {
		texts := ingestor.ingested()
		return len(texts) > 0 && texts[0] == "watched content"
	}, 2*time.Second, 20*time.Millisecond)
}

func TestWatcher_IgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	ingestor := &fakeIngestor{configured: true}

	w := NewKnowledgeWatcher(dir, ingestor)
	require.NoError(t, w.Start())
	defer func() { _ = w.Stop() }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "binary.pdf"), []byte("%PDF"), 0644))

	time.Sleep(200 * time.Millisecond)
	assert.Empty(t, ingestor.ingested())
}

func TestIsWatchedExtension(t *testing.T) {
	assert.True(t, isWatchedExtension("/a/b/doc.txt"))
	assert.True(t, isWatchedExtension("/a/b/DOC.MD"))
	assert.False(t, isWatchedExtension("/a/b/image.png"))
	assert.False(t, isWatchedExtension("/a/b/noext"))
}
