// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fusion_test

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"
	"znkr.io/fusion"
)

var update = flag.Bool("update", false, "update golden files")

// TestGolden runs the test cases in testdata. Every test case is a txtar archive with the sections
// before and after, which list the items of one provider per line ("-" for no items), and one or
// more updates sections, which start with optional pragma lines followed by the expected updates.
func TestGolden(t *testing.T) {
	for _, tt := range parseTests(t) {
		t.Run(tt.name, func(t *testing.T) {
			for sti, st := range tt.subtests {
				t.Run(st.name, func(t *testing.T) {
					h := newHarness(st.opts...)
					var ls []*list
					for i, line := range tt.before {
						l := newList(fmt.Sprintf("p%d", i), line)
						if err := h.r.Append(l); err != nil {
							t.Fatalf("Append(%s) = %v", l.name, err)
						}
						ls = append(ls, l)
					}
					h.check(t)
					h.last()

					for i, line := range tt.after {
						ls[i].new = items(line)
					}
					if len(ls) > 0 {
						if err := ls[0].h.NotifyChanged(); err != nil {
							t.Fatalf("NotifyChanged() = %v", err)
						}
					}
					var got bytes.Buffer
					for _, u := range h.last() {
						fmt.Fprintln(&got, u)
					}
					if diff := cmp.Diff(string(st.want), got.String()); diff != "" {
						t.Errorf("updates are different [-want,+got]:\n%s", diff)
					}
					h.check(t)
					if *update {
						tt.subtests[sti].want = got.Bytes()
					}
				})
			}

			// Run in a cleanup to make sure it runs after the subtests have finished.
			t.Cleanup(func() {
				if !*update {
					return
				}
				ar := &txtar.Archive{
					Comment: tt.comment,
					Files: []txtar.File{
						{Name: "before", Data: tt.beforeData},
						{Name: "after", Data: tt.afterData},
					},
				}
				for _, st := range tt.subtests {
					data := append(bytes.Clone(st.pragmas), st.want...)
					ar.Files = append(ar.Files, txtar.File{Name: "updates", Data: data})
				}
				if err := os.WriteFile(tt.filename, txtar.Format(ar), 0o644); err != nil {
					t.Fatalf("error writing golden file: %v", err)
				}
			})
		})
	}
}

type test struct {
	name                  string
	filename              string
	comment               []byte
	beforeData, afterData []byte
	before, after         []string
	subtests              []subtest
}

type subtest struct {
	name    string
	opts    []fusion.Option
	pragmas []byte
	want    []byte
}

// providerLines splits a before or after section into one line of items per provider.
func providerLines(data []byte) []string {
	var out []string
	for line := range strings.Lines(string(data)) {
		line = strings.TrimSpace(line)
		if line == "-" {
			line = ""
		}
		out = append(out, line)
	}
	return out
}

func parseTests(t testing.TB) []test {
	t.Helper()
	testFiles, err := filepath.Glob("testdata/*.test")
	if err != nil {
		t.Fatalf("Failed to read testdata: %v", err)
	}
	var tests []test
	for _, filename := range testFiles {
		ar, err := txtar.ParseFile(filename)
		if err != nil {
			t.Fatalf("failed to parse test case: %v", err)
		}
		name := strings.TrimSuffix(strings.TrimPrefix(filename, "testdata/"), ".test")
		test := test{
			name:     name,
			filename: filename,
			comment:  ar.Comment,
		}

		for _, f := range ar.Files {
			switch f.Name {
			case "before":
				test.beforeData = f.Data
				test.before = providerLines(f.Data)
			case "after":
				test.afterData = f.Data
				test.after = providerLines(f.Data)
			case "updates":
				data := f.Data
				var st subtest
				var name []string
				i := 0
				for i < len(data) && data[i] == '#' {
					eol := i + bytes.IndexByte(data[i:], '\n')
					if eol < i {
						t.Fatal("failed to parse test case: missing newline after pragma line")
					}
					k, v, found := strings.Cut(string(data[i+1:eol]), ":")
					if !found {
						t.Fatal("failed to parse test case: missing ':' in pragma line")
					}
					switch k, v := strings.TrimSpace(k), strings.TrimSpace(v); k {
					case "minimal":
						switch v {
						case "true":
							st.opts = append(st.opts, fusion.Minimal())
						case "false":
							// do nothing
						default:
							t.Fatalf("invalid value for minimal: %q", v)
						}
						name = append(name, k+"="+v)
					case "moves":
						switch v {
						case "true":
							// do nothing
						case "false":
							st.opts = append(st.opts, fusion.DetectMoves(false))
						default:
							t.Fatalf("invalid value for moves: %q", v)
						}
						name = append(name, k+"="+v)
					default:
						t.Fatalf("unknown option: %q", k)
					}
					i = eol + 1
				}
				if len(name) == 0 {
					name = append(name, "default")
				}
				st.name = strings.Join(name, ":")
				st.pragmas = data[:i]
				st.want = data[i:]
				test.subtests = append(test.subtests, st)
			default:
				t.Fatalf("unknown file in archive: %v", f)
			}
		}
		if len(test.before) != len(test.after) {
			t.Fatalf("%s: before has %d providers, after has %d", filename, len(test.before), len(test.after))
		}
		tests = append(tests, test)
	}
	return tests
}

func BenchmarkGolden(b *testing.B) {
	for _, tt := range parseTests(b) {
		b.Run(tt.name, func(b *testing.B) {
			for _, st := range tt.subtests {
				b.Run(st.name, func(b *testing.B) {
					r := fusion.New[string](nil, st.opts...)
					var ls []*list
					for i, line := range tt.before {
						l := newList(fmt.Sprintf("p%d", i), line)
						r.Append(l)
						ls = append(ls, l)
					}
					before := r.Snapshot()
					for i, line := range tt.after {
						ls[i].new = items(line)
					}
					after := r.Snapshot()

					b.ReportAllocs()
					for b.Loop() {
						_ = fusion.Diff(before, after, st.opts...)
					}
				})
			}
		})
	}
}
