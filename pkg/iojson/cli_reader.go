package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// FileReader decodes a T from the file named by its flag, or from stdin when
// the flag is unset and stdin is not a terminal.
type FileReader[T any] struct {
	fileFlagValue string
	stdin         io.Reader
	stdinIsTTY    func() bool
}

func (fr *FileReader[T]) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "path to JSON file (reads from stdin if not provided)",
		Destination: &fr.fileFlagValue,
	}
}

// HasFile reports whether the file flag was set.
func (fr *FileReader[T]) HasFile() bool {
	return fr.fileFlagValue != ""
}

// StdinIsTerminal reports whether stdin is attached to a terminal.
func (fr *FileReader[T]) StdinIsTerminal() bool {
	if fr.stdinIsTTY != nil {
		return fr.stdinIsTTY()
	}
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func (fr *FileReader[T]) Read() (T, error) {
	var reader io.Reader
	var input T

	if fr.fileFlagValue != "" {
		f, err := os.Open(fr.fileFlagValue)
		if err != nil {
			return input, fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		reader = f
	} else {
		if fr.StdinIsTerminal() {
			return input, fmt.Errorf("no input provided (stdin is a terminal); use -f flag or pipe JSON input")
		}
		reader = os.Stdin
		if fr.stdin != nil {
			reader = fr.stdin
		}
	}

	if err := json.NewDecoder(reader).Decode(&input); err != nil {
		return input, fmt.Errorf("decode JSON: %w", err)
	}

	return input, nil
}
