// Package confirm asks the user before destructive operations.
package confirm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Confirmer answers a yes/no question.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// Always answers every question with the same value (the CLI's --yes flag).
type Always bool

func (a Always) Confirm(string) (bool, error) {
	return bool(a), nil
}

// Prompt asks on Out and reads the answer from In. Only "y" or "yes"
// (any case) confirm; anything else, including EOF, declines.
type Prompt struct {
	In  io.Reader
	Out io.Writer
}

func (p Prompt) Confirm(question string) (bool, error) {
	if _, err := fmt.Fprintf(p.Out, "%s [y/N] ", question); err != nil {
		return false, fmt.Errorf("writing prompt: %w", err)
	}

	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
