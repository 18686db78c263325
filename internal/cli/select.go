package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
)

var errNoSelection = errors.New("no file selected")

// prompts until a valid number is entered; "q" or end of input cancels
func selectTranscript(in io.Reader, out io.Writer, files []string) (string, error) {
	fmt.Fprintln(out, "\nAvailable transcript files:")
	for i, path := range files {
		fmt.Fprintf(out, "  %d. %s\n", i+1, filepath.Base(path))
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "\nSelect a file (1-%d) or 'q' to quit: ", len(files))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return "", errNoSelection
		}

		choice := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(choice, "q") {
			return "", errNoSelection
		}

		n, err := strconv.Atoi(choice)
		if err != nil {
			fmt.Fprintln(out, "Please enter a valid number or 'q' to quit")
			continue
		}
		if n < 1 || n > len(files) {
			fmt.Fprintf(out, "Please enter a number between 1 and %d\n", len(files))
			continue
		}
		return files[n-1], nil
	}
}

func printSummary(out io.Writer, summary string) {
	rule := strings.Repeat("=", 80)
	fmt.Fprintf(out, "\n%s\nSUMMARY\n%s\n%s\n%s\n", rule, rule, summary, rule)
}
