package render

// Request is the body of POST /execute-manim. Exactly one of ScriptPath and
// ScriptContent is expected to be set.
type Request struct {
	ScriptPath    string `json:"script_path,omitempty"`
	ScriptContent string `json:"script_content,omitempty"`
	SceneClass    string `json:"scene_class"`
	ScriptID      string `json:"script_id,omitempty"`
}

type Response struct {
	Success    bool   `json:"success"`
	Output     string `json:"output,omitempty"`
	OutputPath string `json:"output_path,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Output is what an execution produced, successful or not.
type Output struct {
	Output     string
	OutputPath string
}
