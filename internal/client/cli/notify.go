package cli

import (
	"fmt"
	"io"
)

// printNotifier renders synchronizer notifications as tagged lines.
type printNotifier struct {
	w io.Writer
}

func (n printNotifier) Success(msg string) { fmt.Fprintln(n.w, "[ok]", msg) }
func (n printNotifier) Warn(msg string)    { fmt.Fprintln(n.w, "[warn]", msg) }
func (n printNotifier) Error(msg string)   { fmt.Fprintln(n.w, "[error]", msg) }
