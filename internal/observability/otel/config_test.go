package otel

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Enabled {
		t.Error("tracing enabled by default")
	}
	if cfg.Protocol != ProtocolHTTP {
		t.Errorf("Protocol = %q, want %q", cfg.Protocol, ProtocolHTTP)
	}
	if cfg.ServiceName != "paradoxe" {
		t.Errorf("ServiceName = %q", cfg.ServiceName)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("PARADOXE_OTEL", "1")
	t.Setenv("PARADOXE_OTEL_PROTOCOL", "otlpgrpc")
	t.Setenv("PARADOXE_OTEL_ENDPOINT", "collector:4317")
	t.Setenv("PARADOXE_OTEL_INSECURE", "true")

	cfg := FromEnv()
	if !cfg.Enabled {
		t.Error("Enabled = false")
	}
	if cfg.Protocol != ProtocolGRPC {
		t.Errorf("Protocol = %q", cfg.Protocol)
	}
	if cfg.Endpoint != "collector:4317" {
		t.Errorf("Endpoint = %q", cfg.Endpoint)
	}
	if !cfg.Insecure {
		t.Error("Insecure = false")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"disabled is always valid", Config{Enabled: false, Protocol: "bogus"}, false},
		{"valid http", Config{Enabled: true, Protocol: ProtocolHTTP, SampleRatio: 1.0}, false},
		{"valid grpc", Config{Enabled: true, Protocol: ProtocolGRPC, SampleRatio: 0.5}, false},
		{"bad protocol", Config{Enabled: true, Protocol: "udp", SampleRatio: 1.0}, true},
		{"bad ratio", Config{Enabled: true, Protocol: ProtocolHTTP, SampleRatio: 1.5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
