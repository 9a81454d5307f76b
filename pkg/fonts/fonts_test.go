package fonts

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Family
		ok   bool
	}{
		{"times", Times, true},
		{"Helvetica", Helvetica, true},
		{" COURIER ", Courier, true},
		{"comic-sans", "comic-sans", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Parse(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Parse(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestPDFName(t *testing.T) {
	tests := []struct {
		f    Family
		want string
	}{
		{Times, "Times"},
		{Helvetica, "Helvetica"},
		{Courier, "Courier"},
		{"unknown", "Times"},
	}
	for _, tt := range tests {
		if got := tt.f.PDFName(); got != tt.want {
			t.Errorf("%q.PDFName() = %q, want %q", tt.f, got, tt.want)
		}
	}
}

func TestNames(t *testing.T) {
	got := Names()
	want := []string{"courier", "helvetica", "times"}
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestStyle(t *testing.T) {
	if Regular.PDFStyle() != "" || Bold.PDFStyle() != "B" {
		t.Errorf("PDFStyle() = %q/%q, want \"\"/\"B\"", Regular.PDFStyle(), Bold.PDFStyle())
	}
	if Regular.String() != "regular" || Bold.String() != "bold" {
		t.Errorf("String() = %q/%q", Regular, Bold)
	}
}
