package catalog

import "slices"

const ToolsParameter = "tools"

type ModelsResponse struct {
	Data []Model `json:"data"`
}

type Model struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Description         string   `json:"description,omitempty"`
	ContextLength       int      `json:"context_length"`
	Pricing             Pricing  `json:"pricing"`
	SupportedParameters []string `json:"supported_parameters,omitempty"`
}

// Pricing values are USD per single token, quoted as decimal strings.
type Pricing struct {
	Prompt            string `json:"prompt"`
	Completion        string `json:"completion"`
	Request           string `json:"request,omitempty"`
	Image             string `json:"image,omitempty"`
	InternalReasoning string `json:"internal_reasoning,omitempty"`
	InputCacheRead    string `json:"input_cache_read,omitempty"`
	InputCacheWrite   string `json:"input_cache_write,omitempty"`
}

func (m Model) SupportsTools() bool {
	return slices.Contains(m.SupportedParameters, ToolsParameter)
}
