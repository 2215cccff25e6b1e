package providers

import (
	"slices"
	"testing"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	mock := NewMockClient()
	r.Register(MockClientName, mock)

	got, err := r.Get(MockClientName)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != mock {
		t.Error("Get returned a different client")
	}

	if _, err := r.Get("nope"); err == nil {
		t.Error("Get on unknown name returned nil error")
	}
}

func TestRegistry_Reload(t *testing.T) {
	r := NewRegistry()

	cfg := RegistryConfig{Gateways: map[string]GatewayConfig{
		"openai": {Type: "openai", APIKey: "k1", Model: "m1", Enabled: true},
	}}
	r.Reload(cfg)

	first, err := r.Get("openai")
	if err != nil {
		t.Fatalf("Get after reload: %v", err)
	}

	// Unchanged config keeps the same client instance.
	r.Reload(cfg)
	same, _ := r.Get("openai")
	if same != first {
		t.Error("reload with unchanged config recreated the client")
	}

	// Changed model recreates it.
	cfg.Gateways["openai"] = GatewayConfig{Type: "openai", APIKey: "k1", Model: "m2", Enabled: true}
	r.Reload(cfg)
	updated, _ := r.Get("openai")
	if updated == first {
		t.Error("reload with new model kept the stale client")
	}

	// Removed from config means unregistered.
	r.Reload(RegistryConfig{Gateways: map[string]GatewayConfig{}})
	if _, err := r.Get("openai"); err == nil {
		t.Error("client survived reload that dropped it")
	}
}

func TestRegistry_ReloadSkipsDisabledAndKeyless(t *testing.T) {
	r := NewRegistry()
	r.Reload(RegistryConfig{Gateways: map[string]GatewayConfig{
		"disabled": {Type: "openai", APIKey: "k", Enabled: false},
		"keyless":  {Type: "openai", APIKey: "", Enabled: true},
		"unknown":  {Type: "wat", APIKey: "k", Enabled: true},
	}})

	if names := r.List(); len(names) != 0 {
		t.Errorf("List() = %v, want empty", names)
	}
}

func TestRegistry_List(t *testing.T) {
	r := NewRegistry()
	r.Register("a", NewMockClient())
	r.Register("b", NewMockClient())

	names := r.List()
	slices.Sort(names)
	if !slices.Equal(names, []string{"a", "b"}) {
		t.Errorf("List() = %v", names)
	}
}
