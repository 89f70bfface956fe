package mcp

import "testing"

func TestTransportValid(t *testing.T) {
	tests := []struct {
		transport Transport
		valid     bool
		remote    bool
	}{
		{TransportStdio, true, false},
		{TransportHTTP, true, true},
		{TransportSSE, true, true},
		{Transport("ws"), false, false},
		{Transport(""), false, false},
	}

	for _, tt := range tests {
		if got := tt.transport.Valid(); got != tt.valid {
			t.Errorf("Transport(%q).Valid() = %v, want %v", tt.transport, got, tt.valid)
		}
		if got := tt.transport.Remote(); got != tt.remote {
			t.Errorf("Transport(%q).Remote() = %v, want %v", tt.transport, got, tt.remote)
		}
	}
}

func TestServerConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ServerConfig
		wantErr bool
	}{
		{
			name:    "valid stdio",
			cfg:     ServerConfig{ServerID: "github", Transport: TransportStdio, Command: "npx"},
			wantErr: false,
		},
		{
			name:    "valid http",
			cfg:     ServerConfig{ServerID: "api", Transport: TransportHTTP, URL: "https://x/mcp"},
			wantErr: false,
		},
		{
			name:    "missing id",
			cfg:     ServerConfig{Transport: TransportStdio, Command: "npx"},
			wantErr: true,
		},
		{
			name:    "stdio without command",
			cfg:     ServerConfig{ServerID: "x", Transport: TransportStdio},
			wantErr: true,
		},
		{
			name:    "sse without url",
			cfg:     ServerConfig{ServerID: "x", Transport: TransportSSE},
			wantErr: true,
		},
		{
			name:    "bad transport",
			cfg:     ServerConfig{ServerID: "x", Transport: "carrier-pigeon"},
			wantErr: true,
		},
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

func TestEffectiveHeaders(t *testing.T) {
	cfg := ServerConfig{
		AccessKey: "abc123",
		Headers:   map[string]string{"X-Region": "eu"},
	}

	headers := cfg.EffectiveHeaders()
	if headers["Authorization"] != "Bearer abc123" {
		t.Errorf("Authorization = %q", headers["Authorization"])
	}
	if headers["X-Region"] != "eu" {
		t.Errorf("X-Region = %q", headers["X-Region"])
	}

	// Never aliases the stored map.
	headers["X-Region"] = "us"
	if cfg.Headers["X-Region"] != "eu" {
		t.Error("EffectiveHeaders leaked the underlying map")
	}
}

func TestEffectiveHeadersExplicitAuthorizationWins(t *testing.T) {
	cfg := ServerConfig{
		AccessKey: "ignored",
		Headers:   map[string]string{"Authorization": "Basic xyz"},
	}
	if got := cfg.EffectiveHeaders()["Authorization"]; got != "Basic xyz" {
		t.Errorf("Authorization = %q, want explicit header preserved", got)
	}
}

func TestRemovalConfigEffectiveScope(t *testing.T) {
	r := RemovalConfig{ServerID: "x"}
	if r.EffectiveScope() != ScopeAuto {
		t.Errorf("empty scope should default to auto, got %q", r.EffectiveScope())
	}

	r.Scope = ScopeAll
	if r.EffectiveScope() != ScopeAll {
		t.Errorf("explicit scope overridden, got %q", r.EffectiveScope())
	}
}
