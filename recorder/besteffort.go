package recorder

import (
	"io"
	"log"
)

// BestEffort logs a failed write from sink instead of stopping the run.
// Optional network sinks are wrapped so the CSV and console keep going.
func BestEffort(name string, sink Sink) Sink {
	return &bestEffort{name: name, sink: sink}
}

type bestEffort struct {
	name   string
	sink   Sink
	failed int
}

func (b *bestEffort) Write(s Sample) error {
	if err := b.sink.Write(s); err != nil {
		b.failed++
		log.Printf("%s: dropped sample (%d dropped so far): %v", b.name, b.failed, err)
	}
	return nil
}

func (b *bestEffort) Close() error {
	if c, ok := b.sink.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
