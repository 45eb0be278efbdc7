package commands

import (
	"bufio"
	"context"
	"fmt"
	"interview-harvest/lib/csvsink"
	"interview-harvest/lib/report"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"
)

// promptSelect lists the candidates and reads a 1-based choice from in, an
// empty answer picks the newest.
func promptSelect(in io.Reader, out io.Writer) csvsink.SelectFunc {
	reader := bufio.NewReader(in)
	return func(ctx context.Context, candidates []csvsink.Candidate) (csvsink.Candidate, error) {
		if len(candidates) == 0 {
			return csvsink.Candidate{}, csvsink.ErrNoCandidates
		}

		t := report.NewTable(out)
		t.SetTitle("CSV files")
		t.AppendHeader(table.Row{"#", "File", "Modified"})
		for i, c := range candidates {
			t.AppendRow(table.Row{i + 1, filepath.Base(c.Path), c.ModTime.Format("2006-01-02 15:04:05")})
		}
		t.Render()

		for {
			if err := ctx.Err(); err != nil {
				return csvsink.Candidate{}, err
			}
			fmt.Fprintf(out, "select a file [1-%d, default 1]: ", len(candidates))
			line, err := reader.ReadString('\n')
			answer := strings.TrimSpace(line)
			if err != nil && answer == "" {
				if err == io.EOF {
					return candidates[0], nil
				}
				return csvsink.Candidate{}, err
			}
			if answer == "" {
				return candidates[0], nil
			}
			n, convErr := strconv.Atoi(answer)
			if convErr == nil && n >= 1 && n <= len(candidates) {
				return candidates[n-1], nil
			}
			fmt.Fprintf(out, "%q is not a valid choice\n", answer)
		}
	}
}

// promptPassword reads a secret without echo when stdin is a terminal.
func promptPassword(label string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		secret, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		return string(secret), err
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
