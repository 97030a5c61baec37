// ABOUTME: RAG query executor composing retrieval, prompt fill, and generation
// ABOUTME: Typed RetrievalError/GenerationError let the HTTP layer map failures
package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rohitadv/creator-counsel/internal/models"
	"github.com/rohitadv/creator-counsel/internal/prompts"
	"github.com/rohitadv/creator-counsel/internal/store"
)

// contextSeparator joins retrieved document contents, blank line between.
const contextSeparator = "\n\n"

// Generator produces text for a fully-formed prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// RetrievalError wraps a vector-store failure. The generator is never
// invoked when retrieval fails.
type RetrievalError struct {
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieval failed: %v", e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// GenerationError wraps an LLM provider failure.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Executor runs a task's pipeline: retrieve top-K documents (for retrieval
// tasks), build the context string, fill the template, and generate.
// Identical queries are recomputed from scratch every call.
type Executor struct {
	store           store.Store
	generator       Generator
	registry        *prompts.Registry
	k               int
	maxContextChars int
}

// NewExecutor wires the pipeline. store may be nil when the index failed
// to load; retrieval tasks then fail with *RetrievalError.
func NewExecutor(st store.Store, gen Generator, reg *prompts.Registry, k, maxContextChars int) *Executor {
	if k <= 0 {
		k = 4
	}
	if maxContextChars <= 0 {
		maxContextChars = 8000
	}
	return &Executor{
		store:           st,
		generator:       gen,
		registry:        reg,
		k:               k,
		maxContextChars: maxContextChars,
	}
}

// Execute runs the pipeline for one task and returns the generated text
// verbatim. No caching, no retries, no post-processing.
func (e *Executor) Execute(ctx context.Context, task, input string) (string, error) {
	var contextStr string

	if prompts.RequiresRetrieval(task) {
		if e.store == nil {
			return "", &RetrievalError{Err: errors.New("vector store unavailable")}
		}

		results, err := e.store.SimilaritySearch(ctx, input, e.k)
		if err != nil {
			return "", &RetrievalError{Err: err}
		}

		// Empty retrieval yields an empty context string, not an error.
		contextStr = truncate(BuildContext(results), e.maxContextChars)
	}

	prompt, err := e.registry.Render(task, input, contextStr)
	if err != nil {
		return "", err
	}

	answer, err := e.generator.Generate(ctx, prompt)
	if err != nil {
		return "", &GenerationError{Err: err}
	}

	return answer, nil
}

// SimplifyContract explains contract text in plain terms for creators
func (e *Executor) SimplifyContract(ctx context.Context, text string) (string, error) {
	return e.Execute(ctx, prompts.TaskContractSimplify, text)
}

// CheckContentSafety evaluates content against community guidelines
func (e *Executor) CheckContentSafety(ctx context.Context, text string) (string, error) {
	return e.Execute(ctx, prompts.TaskContentSafety, text)
}

// PolicyAnswer answers a YouTube policy question over retrieved context
func (e *Executor) PolicyAnswer(ctx context.Context, question string) (string, error) {
	return e.Execute(ctx, prompts.TaskPolicyQA, question)
}

// AssistantAnswer answers a general creator-legal question over retrieved context
func (e *Executor) AssistantAnswer(ctx context.Context, question string) (string, error) {
	return e.Execute(ctx, prompts.TaskLegalAssistantQA, question)
}

// BuildContext concatenates document contents in retrieval order,
// separated by a blank line.
func BuildContext(results []models.SearchResult) string {
	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, r.Document.Content)
	}
	return strings.Join(parts, contextSeparator)
}

// truncate caps s at max runes
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
