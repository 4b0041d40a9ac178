package generator

import "fmt"

const (
	generateSystemPrompt = "You are an expert Manim developer who creates beautiful animations."
	debugSystemPrompt    = "You are an expert Manim developer who can fix errors in animation scripts."

	generateTemperature = 0.7
	debugTemperature    = 0.3
	maxTokens           = 4000
)

const generateTemplate = `
Create a Manim animation script based on this description: "%s"

The script should:
1. Import necessary Manim modules
2. Define a Scene class
3. Implement the construct method with appropriate animations
4. Use best practices for Manim code
5. Include helpful comments explaining the animation steps

VERY IMPORTANT: Return ONLY the raw Python code without any markdown formatting, code blocks, or explanation.
DO NOT include ` + "```python or ```" + ` markers around the code. Just give me the pure Python code.
`

const debugTemplate = `
I'm trying to run a Manim animation script, but it's throwing the following error:

%s

Here's the script:

` + "```python" + `
%s
` + "```" + `

Please fix this script to resolve the error. Return ONLY the corrected Python code without any markdown formatting, code blocks, or explanation.
DO NOT include ` + "```python or ```" + ` markers around the code. Just give me the pure Python code.
`

func generatePrompt(description string) string {
	return fmt.Sprintf(generateTemplate, description)
}

func debugPrompt(script, errText string) string {
	return fmt.Sprintf(debugTemplate, errText, script)
}
