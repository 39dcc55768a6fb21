package docs

import _ "embed"

// AgentGuide is the bundled usage guide for AI agents, served as an MCP
// resource.
//
//go:embed agent_guide.md
var AgentGuide string
