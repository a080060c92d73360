package app

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// WriteBuild lays out a build under a temp dir. files maps relative paths to
// their content; the returned path is the root directory.
func WriteBuild(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		p := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root
}

// SetupAppTest creates a new app instance for system testing, returning its
// output and log buffers.
func SetupAppTest(t *testing.T, appConfig Config) (*App, *SafeBuffer, *SafeBuffer) {
	t.Helper()

	if appConfig.Workers == 0 {
		appConfig.Workers = 2
	}
	appConfig.LogLevel = "debug"
	cfg, err := NewConfig(appConfig)
	require.NoError(t, err)

	out, logs := &SafeBuffer{}, &SafeBuffer{}
	testApp := NewApp(out, logs, cfg, DefaultLoader())

	t.Cleanup(func() {
		if os.Getenv("ORGDEFAULTS_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})

	return testApp, out, logs
}
