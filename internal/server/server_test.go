package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vclens/vclens/internal/config"
	"github.com/vclens/vclens/internal/home"
	"github.com/vclens/vclens/internal/server/endpoints"
)

func newTestConfig(t *testing.T) (*config.Manager, *home.Dir) {
	t.Helper()

	root := t.TempDir()
	homeDir, err := home.New(filepath.Join(root, ".vclens"))
	if err != nil {
		t.Fatal(err)
	}
	if err := homeDir.EnsureExists(); err != nil {
		t.Fatal(err)
	}

	cfgPath := homeDir.ConfigPath()
	if err := os.WriteFile(cfgPath, []byte("server:\n  host: 127.0.0.1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cm, err := config.NewManager(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	return cm, homeDir
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func waitForServer(url string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	return fmt.Errorf("server at %s not ready after %v", url, timeout)
}

func TestServer_Lifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping server lifecycle test in short mode")
	}

	cm, homeDir := newTestConfig(t)
	port := freePort(t)

	srv, err := New(Config{
		Host:          "127.0.0.1",
		Port:          port,
		ConfigManager: cm,
		Home:          homeDir,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start(serverCtx)
	}()

	url := fmt.Sprintf("http://127.0.0.1:%d", port)
	if err := waitForServer(url, 10*time.Second); err != nil {
		serverCancel()
		t.Fatalf("server did not start: %v", err)
	}

	t.Run("health_endpoint", func(t *testing.T) {
		resp, err := http.Get(url + "/health")
		if err != nil {
			t.Fatalf("health check failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("health status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		var health endpoints.HealthResponse
		if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if health.Status != "ok" {
			t.Errorf("health.Status = %q, want %q", health.Status, "ok")
		}
	})

	t.Run("status_endpoint", func(t *testing.T) {
		resp, err := http.Get(url + "/status")
		if err != nil {
			t.Fatalf("status check failed: %v", err)
		}
		defer resp.Body.Close()

		var status endpoints.StatusResponse
		if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if status.Server != "running" {
			t.Errorf("status.Server = %q, want %q", status.Server, "running")
		}
	})

	t.Run("files_empty", func(t *testing.T) {
		resp, err := http.Get(url + "/files")
		if err != nil {
			t.Fatalf("files request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("files status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
		var files endpoints.FilesResponse
		if err := json.NewDecoder(resp.Body).Decode(&files); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(files.Files) != 0 {
			t.Errorf("Files = %v, want empty", files.Files)
		}
	})

	t.Run("is_running", func(t *testing.T) {
		if !srv.IsRunning() {
			t.Error("IsRunning() = false, want true")
		}
	})

	serverCancel()

	select {
	case err := <-serverErr:
		if err != nil {
			t.Logf("server returned error (expected during shutdown): %v", err)
		}
	case <-time.After(30 * time.Second):
		t.Fatal("server did not shut down within timeout")
	}

	if srv.IsRunning() {
		t.Error("IsRunning() = true after shutdown, want false")
	}
}

func TestServer_RequiresConfigManager(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("New without config manager returned nil error")
	}
}

func TestServer_DoubleStart(t *testing.T) {
	cm, homeDir := newTestConfig(t)
	port := freePort(t)

	srv, err := New(Config{Host: "127.0.0.1", Port: port, ConfigManager: cm, Home: homeDir})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(ctx) }()

	url := fmt.Sprintf("http://127.0.0.1:%d", port)
	if err := waitForServer(url, 10*time.Second); err != nil {
		cancel()
		t.Fatal(err)
	}

	if err := srv.Start(context.Background()); err == nil {
		t.Error("second Start returned nil error")
	}

	cancel()
	<-errCh
}
