package starldoc_test

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"pkt.systems/starldoc"
	"pkt.systems/starldoc/internal/docfile"
	"pkt.systems/starldoc/typing"
)

func syntheticModule(n int) *starldoc.Module {
	members := make(map[string]starldoc.ModuleMember, n)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("fn_%03d", n-i)
		members[name] = &starldoc.Function{
			Docs: &starldoc.DocString{Summary: "Does " + name + ".", Details: "Line one.\nLine two."},
			Params: starldoc.Params{
				{Name: "a", Type: typing.Name("int"), Docs: &starldoc.DocString{Summary: "First."}},
				{Name: "b", Type: typing.List(typing.Name("str"))},
				{Name: "kwargs", Kind: starldoc.ParamKwargs, Type: typing.Any(), Docs: &starldoc.DocString{Summary: "Rest."}},
			},
			Ret: starldoc.Return{Type: typing.Dict(typing.Name("str"), typing.Name("int"))},
		}
	}
	return &starldoc.Module{Docs: &starldoc.DocString{Summary: "Synthetic."}, Members: members}
}

func BenchmarkRenderModule(b *testing.B) {
	mod := syntheticModule(200)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = starldoc.RenderDocItem("synthetic", mod)
	}
}

func BenchmarkRenderGoldenDocuments(b *testing.B) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	if err != nil {
		b.Fatalf("glob: %v", err)
	}
	docs := make([]*docfile.Document, 0, len(paths))
	for _, path := range paths {
		doc, err := docfile.Load(path)
		if err != nil {
			b.Fatalf("load %s: %v", path, err)
		}
		docs = append(docs, doc)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, doc := range docs {
			_ = starldoc.RenderDocItem(doc.Name, doc.Item)
		}
	}
}

func TestRenderSharedTreeConcurrently(t *testing.T) {
	t.Parallel()
	mod := syntheticModule(50)
	want := starldoc.RenderDocItem("synthetic", mod)
	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = starldoc.RenderDocItem("synthetic", mod)
		}(i)
	}
	wg.Wait()
	for i, got := range results {
		if got != want {
			t.Fatalf("render %d differs from sequential render", i)
		}
	}
}
