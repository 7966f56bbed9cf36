package agent

import (
	"context"
	"fmt"
	"log"
)

// State is the working record threaded through one pipeline invocation.
// Each stage reads prior fields and writes new ones; skipped stages leave
// their fields at the zero value.
type State struct {
	Query    string
	Intent   Intent
	Passages []Passage
	Context  string
	Answer   string
	Sources  []string
}

// Result is the structured outcome returned to the caller.
type Result struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
	Intent  Intent   `json:"-"`
}

// stage enumerates the fixed states of the pipeline. The topology never
// changes: classify, optionally retrieve, answer, done.
type stage int

const (
	stageClassify stage = iota
	stageRetrieve
	stageAnswer
	stageDone
)

// Pipeline orchestrates intent classification, retrieval, and answer
// generation as a single forward pass. It is safe for concurrent use; all
// per-query state is local to each Handle invocation.
type Pipeline struct {
	retriever *Retriever
	generator *Generator
	topK      int
}

// NewPipeline creates a Pipeline. topK <= 0 selects DefaultTopK.
func NewPipeline(retriever *Retriever, generator *Generator, topK int) *Pipeline {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Pipeline{retriever: retriever, generator: generator, topK: topK}
}

// Handle runs a query through the pipeline and always returns a structured
// result, for any input. Failures below this boundary are downgraded to a
// user-facing answer; nothing escapes as an error or a panic.
func (p *Pipeline) Handle(ctx context.Context, query string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[PIPELINE] panic recovered: %v", r)
			res = Result{
				Answer:  fmt.Sprintf("Error processing request: %v", r),
				Sources: []string{},
				Intent:  IntentPolicy,
			}
		}
	}()

	st := &State{Query: query, Sources: []string{}}

	for s := stageClassify; s != stageDone; {
		switch s {
		case stageClassify:
			st.Intent = ClassifyIntent(st.Query)
			if st.Intent == IntentGreeting {
				s = stageAnswer
			} else {
				s = stageRetrieve
			}

		case stageRetrieve:
			passages, err := p.retriever.Retrieve(ctx, st.Query, p.topK)
			if err != nil {
				// Degrade to the empty-context answer branch; the user still
				// gets a response instead of a crash.
				log.Printf("[RETRIEVE] %v", err)
				passages = nil
			}
			st.Passages = passages
			st.Context = BuildContext(passages)
			st.Sources = SourceSet(passages)
			s = stageAnswer

		case stageAnswer:
			st.Answer, st.Sources = p.generator.Generate(ctx, st.Intent, st.Query, st.Context, st.Sources)
			s = stageDone
		}
	}

	if st.Sources == nil {
		st.Sources = []string{}
	}
	return Result{Answer: st.Answer, Sources: st.Sources, Intent: st.Intent}
}
