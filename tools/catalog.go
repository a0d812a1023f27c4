package tools

// Parameter describes one argument a tool accepts.
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Tool is the externally visible definition of a callable tool.
type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
}

// Result is the uniform success envelope returned by Dispatch.
type Result struct {
	Tool          string `json:"tool"`
	CorrelationID string `json:"correlation_id"`
	Data          any    `json:"data"`
}

func param(name, typ, desc string) Parameter {
	return Parameter{Name: name, Type: typ, Description: desc}
}

func required(name, typ, desc string) Parameter {
	return Parameter{Name: name, Type: typ, Description: desc, Required: true}
}

// orgParam is shared by every Apigee tool; when omitted the client's
// configured organization is used.
var orgParam = param("organization", "string", "Apigee organization; defaults to the configured organization")
