package main

import (
	"github.com/gosuri/uiprogress"
)

// progress starts a progress bar of total steps. With --quiet the bar is
// never rendered.
func (e *env) progress(total int) *uiprogress.Bar {
	bar := uiprogress.NewBar(total)
	if e.quiet || total == 0 {
		return bar
	}

	uiprogress.Start()
	e.progressing = true
	bar = uiprogress.AddBar(total)
	bar.AppendCompleted()
	bar.PrependElapsed()
	return bar
}

func (e *env) stopProgress() {
	if !e.progressing {
		return
	}
	uiprogress.Stop()
	e.progressing = false
}
