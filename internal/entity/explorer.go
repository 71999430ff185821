package entity

// ExploreRequest is a natural language query about a repository.
type ExploreRequest struct {
	RepoURL string `json:"repo_url"`
	Query   string `json:"query"`
}

// MCPTool is a tool advertised by the MCP server.
type MCPTool struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ToolCall is one planned invocation.
type ToolCall struct {
	Tool   string         `json:"tool"`
	Params map[string]any `json:"params"`
}

// ToolCallResult is the outcome of one executed call.
type ToolCallResult struct {
	Tool    string         `json:"tool"`
	Params  map[string]any `json:"params"`
	Texts   []string       `json:"texts,omitempty"`
	Error   string         `json:"error,omitempty"`
	Success bool           `json:"success"`
}

// Exploration is the full explorer response.
type Exploration struct {
	RepoURL     string           `json:"repo_url"`
	Query       string           `json:"query"`
	Tools       []MCPTool        `json:"available_tools"`
	Results     []ToolCallResult `json:"tool_results"`
	Explanation string           `json:"explanation"`
}
