// ABOUTME: Prompt template registry for the four advisor tasks
// ABOUTME: Templates are configuration data; wording changes need no code change
package prompts

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Task names. Resolution is static: each HTTP endpoint maps to exactly one.
const (
	TaskContractSimplify = "contract-simplify"
	TaskContentSafety    = "content-safety"
	TaskPolicyQA         = "policy-qa"
	TaskLegalAssistantQA = "legal-assistant-qa"
)

// Recognized template slots.
const (
	slotInput   = "{{input}}"
	slotContext = "{{context}}"
)

// Default templates. Wording is product copy; change it here or via a
// prompts file, never in code.
var defaults = map[string]string{
	TaskContractSimplify: `Analyze and simplify the following contract text for content creators.
Provide clear, accurate, and concise explanations:

Contract Content:
{{input}}

Simplified Analysis:`,

	TaskContentSafety: `Evaluate the following content for potential YouTube policy violations including:
- Hate speech or harassment
- Misinformation or false claims
- Copyright infringement risks
- Inappropriate or explicit material
- Other community guideline violations

Content to Analyze:
{{input}}

Safety Assessment:`,

	TaskPolicyQA: `You are a YouTube policy expert. Use the provided context to answer the user's question accurately.
Base your response strictly on the available information without speculation.

User Question: {{input}}
Policy Context:
{{context}}

Expert Response:`,

	TaskLegalAssistantQA: `You are Rohit Advocate, a legal AI assistant specializing in YouTube and content creator legal matters.
Provide helpful, accurate responses based on the available legal context.

Creator Question: {{input}}
Legal Context:
{{context}}

Assistant Response:`,
}

// retrievalTasks marks tasks whose templates consume retrieved context.
// Contract simplification and safety checks run on the user text alone.
var retrievalTasks = map[string]bool{
	TaskPolicyQA:         true,
	TaskLegalAssistantQA: true,
}

// Registry resolves task names to templates. Immutable after construction.
type Registry struct {
	templates map[string]string
}

// NewRegistry returns a registry with the compiled-in templates
func NewRegistry() *Registry {
	templates := make(map[string]string, len(defaults))
	for k, v := range defaults {
		templates[k] = v
	}
	return &Registry{templates: templates}
}

// Load returns a registry with templates from a YAML file merged over the
// defaults. The file maps task names to template strings; unknown task
// names are rejected so typos don't silently leave a default in place.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading prompts file: %w", err)
	}

	var overrides map[string]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parsing prompts file: %w", err)
	}

	r := NewRegistry()
	for task, tmpl := range overrides {
		if _, ok := r.templates[task]; !ok {
			return nil, fmt.Errorf("unknown task %q in prompts file", task)
		}
		r.templates[task] = tmpl
	}
	return r, nil
}

// Render fills the task template's slots with the user input and the
// retrieved context. An empty context is allowed.
func (r *Registry) Render(task, input, context string) (string, error) {
	tmpl, ok := r.templates[task]
	if !ok {
		return "", fmt.Errorf("unknown task %q", task)
	}

	replacer := strings.NewReplacer(slotInput, input, slotContext, context)
	return replacer.Replace(tmpl), nil
}

// RequiresRetrieval reports whether the task conditions its prompt on
// documents from the vector store.
func RequiresRetrieval(task string) bool {
	return retrievalTasks[task]
}

// Tasks returns all known task names.
func (r *Registry) Tasks() []string {
	tasks := make([]string, 0, len(r.templates))
	for task := range r.templates {
		tasks = append(tasks, task)
	}
	return tasks
}
