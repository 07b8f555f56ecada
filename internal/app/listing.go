package app

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/dshills/termkeys/internal/input/keycode"
	"github.com/dshills/termkeys/internal/input/termcap"
)

// WriteTermcapTable writes every termcap capability with its key and
// the bytes the stateless encoder produces for it under the current
// terminal modes.
func (a *App) WriteTermcapTable(w io.Writer) error {
	a.mu.Lock()
	modes := a.translator.Modes()
	a.mu.Unlock()

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKEY\tBYTES")
	for _, e := range termcap.All() {
		out := "-"
		if s, ok := keycode.EncodeEvent(e.Event(), modes); ok {
			out = strconv.Quote(s)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name, e.Event(), out)
	}
	return tw.Flush()
}
