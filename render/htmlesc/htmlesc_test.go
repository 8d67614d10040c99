package htmlesc

import "testing"

func TestText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<Device>", "&lt;Device&gt;"},
		{`a "b" & c`, `a "b" & c`},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Text(tt.in); got != tt.want {
			t.Errorf("Text(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAttr(t *testing.T) {
	if got := Attr(`x?a=1&b="<2>"`); got != `x?a=1&b=&quot;&lt;2&gt;&quot;` {
		t.Errorf("Attr() = %q", got)
	}
}
