package assistant

import (
	"fmt"
	"sort"
	"strings"

	"github.com/frahmantamala/toolbox/internal"
)

type Provider string

const (
	ProviderClaude      Provider = "CLAUDE"
	ProviderAzureOpenAI Provider = "AZURE_OPENAI"
)

type providerInfo struct {
	displayName  string
	defaultModel string
	setupTitle   string
	setupSteps   []string
	newModel     func(cfg internal.AIConfig) (ChatModel, bool)
}

// providerTable is populated in init because its constructors reference
// DefaultModel, which reads the table.
var providerTable map[Provider]providerInfo

func init() {
	providerTable = map[Provider]providerInfo{
		ProviderClaude: {
			displayName:  "Claude (Anthropic)",
			defaultModel: "claude-3-5-sonnet-20241022",
			setupTitle:   "Claude AI",
			setupSteps: []string{
				"Get API key from https://console.anthropic.com",
				"Set: `export ANTHROPIC_API_KEY=your_key_here`",
				"Restart application",
			},
			newModel: func(cfg internal.AIConfig) (ChatModel, bool) {
				if cfg.Anthropic.APIKey == "" {
					return nil, false
				}
				return NewAnthropicClient(cfg.Anthropic, cfg.MaxTokens, cfg.RequestTimeout), true
			},
		},
		ProviderAzureOpenAI: {
			displayName:  "Azure OpenAI",
			defaultModel: "gpt-4",
			setupTitle:   "Azure OpenAI",
			setupSteps: []string{
				"Set: `export AZURE_OPENAI_API_KEY=your_key`",
				"Set: `export AZURE_OPENAI_ENDPOINT=your_endpoint`",
				"Restart application",
			},
			newModel: func(cfg internal.AIConfig) (ChatModel, bool) {
				if cfg.Azure.APIKey == "" || cfg.Azure.Endpoint == "" {
					return nil, false
				}
				return NewAzureClient(cfg.Azure, cfg.MaxTokens, cfg.RequestTimeout), true
			},
		},
	}
}

// ParseProvider accepts the enum name in any case. Blank input is rejected;
// callers substitute their configured default before parsing.
func ParseProvider(s string) (Provider, error) {
	p := Provider(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := providerTable[p]; !ok {
		return "", internal.NewValidationError(fmt.Sprintf("Unknown AI provider: %q", s), internal.ErrCodeInvalidProvider)
	}
	return p, nil
}

func (p Provider) DisplayName() string {
	if info, ok := providerTable[p]; ok {
		return info.displayName
	}
	return string(p)
}

func (p Provider) DefaultModel() string {
	return providerTable[p].defaultModel
}

// Providers lists every known provider in a stable order.
func Providers() []Provider {
	out := make([]Provider, 0, len(providerTable))
	for p := range providerTable {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NewChatModels builds a client for every provider whose credentials are
// configured. Providers without credentials are simply absent from the map.
func NewChatModels(cfg internal.AIConfig) map[Provider]ChatModel {
	models := make(map[Provider]ChatModel, len(providerTable))
	for p, info := range providerTable {
		if m, ok := info.newModel(cfg); ok {
			models[p] = m
		}
	}
	return models
}

func setupMessage(p Provider, projectContext string) string {
	info := providerTable[p]

	var b strings.Builder
	fmt.Fprintf(&b, "⚠️ **%s Not Available**\n\n", info.setupTitle)
	fmt.Fprintf(&b, "To use %s:\n", info.setupTitle)
	for i, step := range info.setupSteps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	b.WriteString("\n**Project Context:**\n\n")
	b.WriteString(projectContext)
	return b.String()
}
