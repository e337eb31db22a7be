package utils

import (
	"net/http/httptest"
	"testing"
)

func TestParseHostNoPort(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"10.0.0.1", "10.0.0.1"},
		{"10.0.0.1:8080", "10.0.0.1"},
		{"[::1]:443", "::1"},
		{"[::1]", "::1"},
		{" 192.168.1.2 ", "192.168.1.2"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseHostNoPort(tt.in); got != tt.want {
				t.Errorf("ParseHostNoPort(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{
			name: "remote addr only",
			want: "192.0.2.10",
		},
		{
			name:    "proxy headers ignored when untrusted",
			headers: map[string]string{"X-Forwarded-For": "203.0.113.5"},
			want:    "192.0.2.10",
		},
		{
			name:       "cloudflare header first",
			headers:    map[string]string{"CF-Connecting-IP": "198.51.100.1", "X-Forwarded-For": "203.0.113.5"},
			trustProxy: true,
			want:       "198.51.100.1",
		},
		{
			name:       "left-most forwarded for",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.1"},
			trustProxy: true,
			want:       "203.0.113.5",
		},
		{
			name:       "real ip",
			headers:    map[string]string{"X-Real-IP": "203.0.113.9"},
			trustProxy: true,
			want:       "203.0.113.9",
		},
		{
			name:       "trusted but no headers",
			trustProxy: true,
			want:       "192.0.2.10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = "192.0.2.10:51234"
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r, tt.trustProxy); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIPMatcher(t *testing.T) {
	m := NewIPMatcher([]string{"10.0.0.0/8", "192.168.1.50", " ", "fd00::/8", "not-an-ip"})

	if m.IsEmpty() {
		t.Fatal("IsEmpty() = true, want false")
	}
	if inv := m.Invalid(); len(inv) != 1 || inv[0] != "not-an-ip" {
		t.Errorf("Invalid() = %v, want [not-an-ip]", inv)
	}

	tests := []struct {
		ip   string
		want bool
	}{
		{"10.1.2.3", true},
		{"192.168.1.50", true},
		{"192.168.1.51", false},
		{"::ffff:10.0.0.1", true},
		{"fd12::1", true},
		{"2001:db8::1", false},
		{"garbage", false},
	}
	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			if got := m.Allow(tt.ip); got != tt.want {
				t.Errorf("Allow(%q) = %v, want %v", tt.ip, got, tt.want)
			}
		})
	}
}

func TestIPMatcher_Empty(t *testing.T) {
	if !NewIPMatcher(nil).IsEmpty() {
		t.Error("NewIPMatcher(nil).IsEmpty() = false, want true")
	}
}
