package entity

import "testing"

func TestCanonicalIDs(t *testing.T) {
	if got := CanonicalChannelID(1234567890); got != -1001234567890 {
		t.Errorf("CanonicalChannelID(1234567890) = %d, want -1001234567890", got)
	}
	if got := CanonicalGroupID(987654); got != -987654 {
		t.Errorf("CanonicalGroupID(987654) = %d, want -987654", got)
	}
}

func TestRawID(t *testing.T) {
	tests := []struct {
		in   int64
		want int64
	}{
		{777000, 777000},
		{-987654, 987654},
		{-1001234567890, 1234567890},
	}
	for _, tt := range tests {
		if got := RawID(tt.in); got != tt.want {
			t.Errorf("RawID(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestBareUsername(t *testing.T) {
	r := &Record{Username: "@example"}
	if got := r.BareUsername(); got != "example" {
		t.Errorf("BareUsername() = %q, want %q", got, "example")
	}
	r = &Record{}
	if got := r.BareUsername(); got != "" {
		t.Errorf("BareUsername() on empty = %q, want empty", got)
	}
}

func TestMarkSource(t *testing.T) {
	r := &Record{}
	r.MarkSource("botapi", "id", "display_name")
	r.MarkSource("mtproto", "presence_status")

	if r.Sources["id"] != "botapi" {
		t.Errorf("Sources[id] = %q, want botapi", r.Sources["id"])
	}
	if r.Sources["presence_status"] != "mtproto" {
		t.Errorf("Sources[presence_status] = %q, want mtproto", r.Sources["presence_status"])
	}
}

func TestTypeIsChat(t *testing.T) {
	for _, typ := range []Type{TypeGroup, TypeSupergroup, TypeChannel} {
		if !typ.IsChat() {
			t.Errorf("%s.IsChat() = false, want true", typ)
		}
	}
	for _, typ := range []Type{TypeUser, TypeBot} {
		if typ.IsChat() {
			t.Errorf("%s.IsChat() = true, want false", typ)
		}
	}
}
