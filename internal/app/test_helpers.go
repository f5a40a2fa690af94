package app

import (
	"bytes"
	"context"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/technige/n4/internal/driver"
	"github.com/technige/n4/internal/driver/bolt"
	"github.com/technige/n4/internal/driver/drivertest"
	"github.com/technige/n4/internal/hcl"
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

// TestHarness exposes what a system test needs to observe an App.
type TestHarness struct {
	App    *App
	Driver *drivertest.Driver
	Out    *SafeBuffer
	Err    *SafeBuffer
	// Options records what the app asked to connect with.
	Options []bolt.Options
}

// SetupAppTest creates a new app instance wired to a scripted driver. The
// environment is empty and input is fed to the console.
func SetupAppTest(t *testing.T, appConfig *Config, handler drivertest.Handler, input string) *TestHarness {
	t.Helper()

	h := &TestHarness{Driver: drivertest.New(handler), Out: &SafeBuffer{}, Err: &SafeBuffer{}}
	connect := func(_ context.Context, opts bolt.Options) (driver.Driver, error) {
		h.Options = append(h.Options, opts)
		return h.Driver, nil
	}
	noEnv := func(string) (string, bool) { return "", false }
	streams := IO{In: strings.NewReader(input), Out: h.Out, Err: h.Err}

	testApp, err := NewApp(streams, appConfig, hcl.NewLoader().WithEnviron(nil), noEnv, connect)
	if err != nil {
		t.Fatalf("NewApp() failed: %v", err)
	}
	h.App = testApp

	t.Cleanup(func() {
		if os.Getenv("N4_TEST_LOGS") == "true" {
			t.Logf("--- Full Output for %s ---\n%s\n%s", t.Name(), h.Out.String(), h.Err.String())
		}
	})

	return h
}
