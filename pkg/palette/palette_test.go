package palette

import "testing"

func TestKeys(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{PlatformKey("AWS"), "plat|AWS"},
		{CategoryKey("AWS", "Compute"), "cat|AWS|Compute"},
		{TypeKey("AWS", "Compute", "Serverless"), "type|AWS|Compute|Serverless"},
		{PlatformKey("Open Source"), "plat|Open Source"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("key = %q, want %q", tt.got, tt.want)
		}
	}
}

func TestToggle(t *testing.T) {
	s := New()
	key := PlatformKey("AWS")

	if !s.Collapsed(key) {
		t.Error("rows must default to collapsed")
	}

	if collapsed := s.Toggle(key); collapsed {
		t.Error("first toggle should expand")
	}
	if s.Collapsed(key) {
		t.Error("row still collapsed after toggle")
	}

	if collapsed := s.Toggle(key); !collapsed {
		t.Error("second toggle should collapse again")
	}

	// Independent keys do not interfere.
	other := CategoryKey("AWS", "Compute")
	s.Toggle(other)
	if s.Collapsed(other) {
		t.Error("other key not expanded")
	}
	if !s.Collapsed(key) {
		t.Error("toggling other key changed this one")
	}
}

func TestReset(t *testing.T) {
	s := New()
	s.Toggle(PlatformKey("AWS"))
	s.Toggle(TypeKey("GCP", "Storage", "Object"))

	s.Reset()

	if !s.Collapsed(PlatformKey("AWS")) || !s.Collapsed(TypeKey("GCP", "Storage", "Object")) {
		t.Error("Reset should collapse every row")
	}
}
