package models

// RenderParameter is a named template slot paired with the prompt used to
// generate its content.
type RenderParameter struct {
	Key    string `json:"key"`
	Prompt string `json:"prompt"`
}

// TemplateSpec lists the parameters a template expects, in the order the
// generative model should fill them.
type TemplateSpec struct {
	Parameters []RenderParameter `json:"parameters"`
}

// GeneratedResponse is the model output for one render parameter.
type GeneratedResponse struct {
	Key  string
	Text string
}

// TemplateAsset is an opaque binary attachment shipped alongside the rendered
// newsletter (logos, images). The pipeline passes assets through to delivery
// without inspecting them.
type TemplateAsset struct {
	Name        string
	ContentType string
	Data        []byte
}
