package ui

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
)

// AskConfirm prompts for a yes/no answer. An aborted prompt (answering no)
// returns false without error; ctrl+c returns an error.
func AskConfirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}

	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, fmt.Errorf("prompt failed: %w", err)
	}

	return true, nil
}
