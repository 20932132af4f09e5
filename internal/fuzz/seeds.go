package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxFuzzInput = 64 << 10

var languageSeeds = []string{
	"",
	"main : fn() void\nmain = fn() { 1 }\n",
	"import { util std.io }\nmain : fn() void\nmain = fn() { util.f() std.io.g() }\n",
	"add : fn(i32, i32) i32\nadd = fn(a, b) { a + b }\n",
	"f : fn() f64\nf := fn() { x := 2.5 x = x * 2.0 x ^ 2.0 }\n",
	";adds;\nputs : extern fn(string) i32\n",
	"s : fn() string\ns = fn() { \"a\\n\\\"b\" }\n",
	"m : fn(i32) i32\nm = fn(n) { -(n % 3) + (n / 2) }\n",
	"import {}\n",
	"x : fn(\n",
	"f = fn( { ) }\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".gh" {
			return nil
		}
		// #nosec G304 -- path comes from the repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clamp(src))
		return nil
	})
}

// clamp copies input, cutting it to maxFuzzInput.
func clamp(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
