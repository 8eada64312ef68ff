package utils

import (
	"reflect"
	"testing"
)

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name string
		in   string
		sep  string
		want []string
	}{
		{"simple", "a,b,c", ",", []string{"a", "b", "c"}},
		{"spaces and empties", "a, b ,, c", ",", []string{"a", "b", "c"}},
		{"leading and trailing seps", ",a,b,", ",", []string{"a", "b"}},
		{"only separators", ",,,", ",", []string{}},
		{"empty input", "", ",", []string{}},
		{"whitespace only", "   ", ",", []string{}},
		{"single entry", "urgent", ",", []string{"urgent"}},
		{"inner whitespace kept", "home office, deep work", ",", []string{"home office", "deep work"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitAndTrim(tt.in, tt.sep)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitAndTrim(%q): got %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"under limit", "short", 10, "short"},
		{"at limit", "exactly10!", 10, "exactly10!"},
		{"over limit", "a much longer string", 10, "a much ..."},
		{"tiny limit", "abcdef", 2, "ab"},
		{"zero limit", "abcdef", 0, ""},
		{"multibyte", "日本語のテキストです", 5, "日本..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.in, tt.max); got != tt.want {
				t.Errorf("Truncate(%q, %d): got %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		name string
		ptr  string
		want string
	}{
		{"empty", "", ""},
		{"root", "#", ""},
		{"simple", "#/tasks", "tasks"},
		{"nested", "#/tasks/0/text", "tasks[0].text"},
		{"no fragment prefix", "/tasks/2/tags/1", "tasks[2].tags[1]"},
		{"escaped slash", "#/a~1b", "a/b"},
		{"escaped tilde", "#/a~0b", "a~b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JSONPointerToPath(tt.ptr); got != tt.want {
				t.Errorf("JSONPointerToPath(%q): got %q, want %q", tt.ptr, got, tt.want)
			}
		})
	}
}
