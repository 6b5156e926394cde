// segment reads OCR markdown from a file (or stdin when no argument is
// given) and prints the detected holding row spans as JSON lines. It runs
// fully offline; handy for tuning segmentation against saved OCR output.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/stack-insights/statement-recon/internal/rows"
)

func main() {
	flag.Parse()

	var (
		data []byte
		err  error
	)
	switch flag.NArg() {
	case 0:
		data, err = io.ReadAll(os.Stdin)
	case 1:
		data, err = os.ReadFile(flag.Arg(0))
	default:
		fmt.Fprintln(os.Stderr, "usage: segment [markdown-file]")
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "read input:", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	for _, sp := range rows.Segment(string(data)) {
		out := map[string]any{"text": sp.Text}
		if sp.SerialNo != nil {
			out["sr_no"] = *sp.SerialNo
		}
		if err := enc.Encode(out); err != nil {
			fmt.Fprintln(os.Stderr, "encode span:", err)
			os.Exit(1)
		}
	}
}
