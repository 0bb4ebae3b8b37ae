package search

import (
	"reflect"
	"testing"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Record
	}{
		{
			name: "plain",
			raw:  "a.txt:3:1:foo bar",
			want: Record{Display: "a.txt:3:1:foo bar", Path: "a.txt", Line: 3, Actionable: true},
		},
		{
			name: "content with colons",
			raw:  "src/main.go:12:5:x := map[string]int{\"a\": 1}",
			want: Record{Display: "src/main.go:12:5:x := map[string]int{\"a\": 1}", Path: "src/main.go", Line: 12, Actionable: true},
		},
		{
			name: "colored path and line",
			raw:  "\x1b[0m\x1b[35msrc/a.go\x1b[0m:\x1b[0m\x1b[32m42\x1b[0m:7:\x1b[0m\x1b[1m\x1b[31mfoo\x1b[0m",
			want: Record{
				Display:    "\x1b[0m\x1b[35msrc/a.go\x1b[0m:\x1b[0m\x1b[32m42\x1b[0m:7:\x1b[0m\x1b[1m\x1b[31mfoo\x1b[0m",
				Path:       "src/a.go",
				Line:       42,
				Actionable: true,
			},
		},
		{
			name: "match highlighted inside file name",
			raw:  "\x1b[35mdir/\x1b[1;31mfoo\x1b[0m\x1b[35m.txt\x1b[0m:9:1:foo",
			want: Record{
				Display:    "\x1b[35mdir/\x1b[1;31mfoo\x1b[0m\x1b[35m.txt\x1b[0m:9:1:foo",
				Path:       "dir/foo.txt",
				Line:       9,
				Actionable: true,
			},
		},
		{
			name: "colon-separated SGR parameters are not separators",
			raw:  "\x1b[38:5:1mfile.txt\x1b[0m:4:1:x",
			want: Record{Display: "\x1b[38:5:1mfile.txt\x1b[0m:4:1:x", Path: "file.txt", Line: 4, Actionable: true},
		},
		{
			name: "hyperlinked path",
			raw:  "\x1b]8;;file:///tmp/a.txt\x1b\\a.txt\x1b]8;;\x1b\\:5:2:hit",
			want: Record{Display: "\x1b]8;;file:///tmp/a.txt\x1b\\a.txt\x1b]8;;\x1b\\:5:2:hit", Path: "a.txt", Line: 5, Actionable: true},
		},
		{
			name: "no separators",
			raw:  "just some text",
			want: Record{Display: "just some text"},
		},
		{
			name: "single separator",
			raw:  "a.txt:nothing else",
			want: Record{Display: "a.txt:nothing else"},
		},
		{
			name: "non numeric line",
			raw:  "a.txt:abc:1:foo",
			want: Record{Display: "a.txt:abc:1:foo"},
		},
		{
			name: "zero line",
			raw:  "a.txt:0:1:foo",
			want: Record{Display: "a.txt:0:1:foo"},
		},
		{
			name: "empty path",
			raw:  ":3:1:foo",
			want: Record{Display: ":3:1:foo"},
		},
		{
			name: "empty line",
			raw:  "",
			want: Record{Display: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLine([]byte(tt.raw))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ParseLine(%q) = %#v, want %#v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseLine_InvalidUTF8Path(t *testing.T) {
	raw := []byte("bad\xffname.txt:3:1:foo")
	got := ParseLine(raw)
	if got.Actionable {
		t.Fatalf("ParseLine actionable for invalid UTF-8 path: %#v", got)
	}
	if got.Display != "bad\uFFFDname.txt:3:1:foo" {
		t.Fatalf("Display = %q, want replacement character", got.Display)
	}
}

func TestRecordLocation(t *testing.T) {
	rec := ParseLine([]byte("a.txt:3:1:foo bar"))
	path, line, ok := rec.Location()
	if !ok || path != "a.txt" || line != 3 {
		t.Fatalf("Location() = (%q, %d, %t), want (a.txt, 3, true)", path, line, ok)
	}

	if _, _, ok := ParseLine([]byte("garbage")).Location(); ok {
		t.Fatalf("Location() ok for display-only record")
	}
}
