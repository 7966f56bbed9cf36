package agent

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/Abdul234Malik/NELFUND/internal/vectordb"
)

func newTestPipeline(store *stubStore, provider *stubProvider) *Pipeline {
	retriever := NewRetriever(openStub(store, nil, nil), 4)
	generator := NewGenerator(provider, "gpt-4o-mini", 0)
	return NewPipeline(retriever, generator, 4)
}

func TestHandle_EmptyQueryNeverCrashes(t *testing.T) {
	p := newTestPipeline(&stubStore{}, &stubProvider{response: "x"})

	res := p.Handle(context.Background(), "")
	if res.Answer == "" {
		t.Error("expected a non-empty answer for empty query")
	}
	if len(res.Sources) != 0 {
		t.Errorf("expected no sources for empty query, got %v", res.Sources)
	}
	if res.Sources == nil {
		t.Error("sources must be an empty slice, not nil")
	}
}

func TestHandle_GreetingSkipsRetrieval(t *testing.T) {
	store := &stubStore{results: []vectordb.SearchResult{resultFrom("a", "act.pdf")}}
	provider := &stubProvider{response: "x"}
	p := newTestPipeline(store, provider)

	res := p.Handle(context.Background(), "hello")
	if res.Intent != IntentGreeting {
		t.Errorf("expected greeting intent, got %q", res.Intent)
	}
	if res.Answer != GreetingAnswer {
		t.Errorf("unexpected answer: %q", res.Answer)
	}
	if len(res.Sources) != 0 {
		t.Errorf("greeting must have no sources, got %v", res.Sources)
	}
	if atomic.LoadInt32(&store.searchCalls) != 0 {
		t.Error("greeting must not hit the index")
	}
	if provider.callCount() != 0 {
		t.Error("greeting must not call the generation provider")
	}
}

func TestHandle_EmptyIndexReturnsNoInformationMessage(t *testing.T) {
	p := newTestPipeline(&stubStore{}, &stubProvider{response: "x"})

	res := p.Handle(context.Background(), "what is eligibility?")
	if res.Intent != IntentPolicy {
		t.Errorf("expected policy intent, got %q", res.Intent)
	}
	if res.Answer != NoContextAnswer {
		t.Errorf("expected the no-information message, got %q", res.Answer)
	}
	if len(res.Sources) != 0 {
		t.Errorf("expected no sources, got %v", res.Sources)
	}
}

func TestHandle_SourcesMatchRetrievedPassagesExactly(t *testing.T) {
	store := &stubStore{results: []vectordb.SearchResult{
		resultFrom("chunk one", "act.pdf"),
		resultFrom("chunk two", "faq.pdf"),
		resultFrom("chunk three", "act.pdf"),
	}}
	p := newTestPipeline(store, &stubProvider{response: "grounded answer"})

	res := p.Handle(context.Background(), "what is eligibility?")
	want := []string{"act.pdf", "faq.pdf"}
	if !reflect.DeepEqual(res.Sources, want) {
		t.Errorf("sources = %v, want %v", res.Sources, want)
	}
	if res.Answer != "grounded answer" {
		t.Errorf("unexpected answer: %q", res.Answer)
	}
}

func TestHandle_GenerationFailurePreservesSources(t *testing.T) {
	store := &stubStore{results: []vectordb.SearchResult{resultFrom("chunk", "act.pdf")}}
	p := newTestPipeline(store, &stubProvider{err: errors.New("model timeout")})

	res := p.Handle(context.Background(), "what is eligibility?")
	if !strings.Contains(res.Answer, "model timeout") {
		t.Errorf("expected diagnostic answer, got %q", res.Answer)
	}
	if !reflect.DeepEqual(res.Sources, []string{"act.pdf"}) {
		t.Errorf("sources must survive generation failure, got %v", res.Sources)
	}
}

func TestHandle_RetrievalFailureDowngradesToNoInformation(t *testing.T) {
	store := &stubStore{searchErr: errors.New("embedding service unavailable")}
	p := newTestPipeline(store, &stubProvider{response: "x"})

	res := p.Handle(context.Background(), "what is eligibility?")
	if res.Answer != NoContextAnswer {
		t.Errorf("expected degraded no-information answer, got %q", res.Answer)
	}
	if len(res.Sources) != 0 {
		t.Errorf("expected no sources after retrieval failure, got %v", res.Sources)
	}
}

func TestHandle_Idempotent(t *testing.T) {
	store := &stubStore{results: []vectordb.SearchResult{
		resultFrom("chunk one", "act.pdf"),
		resultFrom("chunk two", "faq.pdf"),
	}}
	p := newTestPipeline(store, &stubProvider{response: "stable answer"})

	first := p.Handle(context.Background(), "how do I apply?")
	second := p.Handle(context.Background(), "how do I apply?")

	if first.Intent != second.Intent {
		t.Errorf("intent changed between calls: %q vs %q", first.Intent, second.Intent)
	}
	if !reflect.DeepEqual(first.Sources, second.Sources) {
		t.Errorf("sources changed between calls: %v vs %v", first.Sources, second.Sources)
	}
	if first.Answer != second.Answer {
		t.Errorf("answer changed with deterministic backends: %q vs %q", first.Answer, second.Answer)
	}
}

func TestHandle_VeryLongInput(t *testing.T) {
	p := newTestPipeline(&stubStore{}, &stubProvider{response: "x"})

	long := strings.Repeat("loan eligibility repayment ", 5000)
	res := p.Handle(context.Background(), long)
	if res.Answer == "" {
		t.Error("expected an answer for very long input")
	}
}

func TestHandle_ConcurrentInvocations(t *testing.T) {
	store := &stubStore{results: []vectordb.SearchResult{resultFrom("chunk", "act.pdf")}}
	p := newTestPipeline(store, &stubProvider{response: "answer"})

	done := make(chan Result, 32)
	for i := 0; i < 32; i++ {
		go func() {
			done <- p.Handle(context.Background(), "what is eligibility?")
		}()
	}
	for i := 0; i < 32; i++ {
		res := <-done
		if res.Answer != "answer" {
			t.Errorf("unexpected answer under concurrency: %q", res.Answer)
		}
		if !reflect.DeepEqual(res.Sources, []string{"act.pdf"}) {
			t.Errorf("unexpected sources under concurrency: %v", res.Sources)
		}
	}
}
