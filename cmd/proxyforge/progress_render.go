package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"proxyforge/internal/progress"
)

var errorLine = color.New(color.FgRed)

func stageLabel(stage progress.Stage) string {
	switch stage {
	case progress.StageResolveEntries:
		return "Resolving cards"
	case progress.StageWriteDocument:
		return "Building sheet"
	default:
		return string(stage)
	}
}

// progressRenderer draws one progress bar per pipeline stage on a terminal
// and falls back to plain percentage lines otherwise. Error events always
// print as red lines so they survive bar redraws.
type progressRenderer struct {
	out         *os.File
	interactive bool

	stage progress.Stage
	bar   *progressbar.ProgressBar
}

func newProgressRenderer(out *os.File) *progressRenderer {
	return &progressRenderer{
		out:         out,
		interactive: isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd()),
	}
}

func (r *progressRenderer) handle(event progress.Event) {
	if event.Stage != r.stage {
		r.finishBar()
		r.stage = event.Stage
		if r.interactive {
			r.bar = progressbar.NewOptions(100,
				progressbar.OptionSetWriter(r.out),
				progressbar.OptionSetDescription(stageLabel(event.Stage)),
				progressbar.OptionSetWidth(30),
				progressbar.OptionClearOnFinish(),
			)
		}
	}

	if event.ErrorMessage != "" {
		if r.bar != nil {
			_ = r.bar.Clear()
		}
		errorLine.Fprintf(r.out, "  ! %s\n", event.ErrorMessage)
	}

	if r.bar != nil {
		_ = r.bar.Set(int(event.Percent))
		return
	}
	if !r.interactive && event.Percent == 100 {
		fmt.Fprintf(r.out, "%s: done\n", stageLabel(event.Stage))
	}
}

func (r *progressRenderer) finishBar() {
	if r.bar != nil {
		_ = r.bar.Finish()
		r.bar = nil
	}
}

// Close finishes any active bar so the cursor lands on a clean line.
func (r *progressRenderer) Close() {
	r.finishBar()
}
