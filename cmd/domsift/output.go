package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fwojciec/domsift"
)

// printReport writes report to w in the requested format.
func printReport(w io.Writer, report *domsift.Report, out OutputFlags, renderer domsift.Renderer) error {
	if out.Format == "markdown" {
		if renderer == nil {
			return domsift.Errorf(domsift.EINTERNAL, "markdown renderer not configured")
		}
		md, err := renderer.Render(report)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, md)
		return err
	}

	if !out.Pretty {
		data, err := domsift.CompactJSON(report)
		if err != nil {
			return domsift.Errorf(domsift.EPROCESSING, "serializing report: %v", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return domsift.Errorf(domsift.EPROCESSING, "serializing report: %v", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// errorOutput is the JSON object printed on stderr when a command fails.
type errorOutput struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeError reports err as a single JSON object. Application errors keep
// their code and message; anything else is an internal error carrying its text.
func writeError(w io.Writer, err error) {
	out := errorOutput{Error: domsift.ErrorCode(err), Message: err.Error()}
	var e *domsift.Error
	if errors.As(err, &e) {
		out.Message = e.Message
	}
	data, mErr := domsift.CompactJSON(out)
	if mErr != nil {
		fmt.Fprintf(w, "{\"error\":%q,\"message\":%q}\n", out.Error, out.Message)
		return
	}
	fmt.Fprintf(w, "%s\n", data)
}
