package recorder

import (
	"bufio"
	"fmt"
	"io"
)

// ConsoleSink prints "[15:04:05] Temperature: 25.31  Pressure: 1.02  " lines.
type ConsoleSink struct {
	out io.Writer
}

func NewConsoleSink(out io.Writer) *ConsoleSink {
	return &ConsoleSink{out: out}
}

func (c *ConsoleSink) Write(s Sample) error {
	w := bufio.NewWriter(c.out)
	fmt.Fprintf(w, "[%s] ", s.Timestamp.Format(TimestampLayout))
	for _, r := range s.Readings {
		value := "--"
		if r.Valid() {
			value = formatValue(r.Value)
		}
		fmt.Fprintf(w, "%s: %s  ", r.SensorType, value)
	}
	fmt.Fprintln(w)
	return w.Flush()
}
