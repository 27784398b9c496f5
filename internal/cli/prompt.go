package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"
)

// Prompt texts for the two run inputs
const (
	ManifestPrompt = "Fingerprint file or SHA (e.g. fingerprint.json or 026b98730aac824ae292238be1176a927e139da8):"
	BaseURLPrompt  = "Asset URL (e.g. https://game-assets.brawlstarsgame.com):"
)

// Prompter asks the user for a single line of input
type Prompter interface {
	Ask(message string) (string, error)
}

// surveyPrompter asks on the terminal
type surveyPrompter struct{}

// NewSurveyPrompter returns a Prompter backed by an interactive terminal
func NewSurveyPrompter() Prompter {
	return surveyPrompter{}
}

func (surveyPrompter) Ask(message string) (string, error) {
	var answer string
	prompt := &survey.Input{Message: message}
	if err := survey.AskOne(prompt, &answer, survey.WithValidator(survey.Required)); err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

// stdinIsTerminal reports whether prompting can work at all
func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
