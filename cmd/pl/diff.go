package main

import (
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/signadot/plistkit/encode"
	"github.com/signadot/plistkit/ir"
	"github.com/signadot/plistkit/libdiff"
	"github.com/signadot/plistkit/parse"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.Loop == "" {
		if len(args) != 2 {
			return fmt.Errorf("%w: diff (without -loop) requires 2 args, got %v", cli.ErrUsage, args)
		}
		y1, err := getObjFile(cc, args[0], cfg.parseOpts()...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", args[0], err)
		}
		y2, err := getObjFile(cc, args[1], cfg.parseOpts()...)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", args[1], err)
		}
		diff, err := diffInputs(cfg, cc, y1, y2, false)
		if err != nil {
			return err
		}
		if diff {
			return cli.ExitCodeErr(1)
		}
		return nil
	}

	return diffLoop(cfg, cc)
}

func diffLoop(cfg *DiffConfig, cc *cli.Context) error {
	i := 0
	last := ir.FromDict(ir.NewDict())
	ticker := time.NewTicker(cfg.LoopEvery)
	defer ticker.Stop()
	diffCount := 0
	for {
		if i == cfg.LoopLim {
			break
		}
		cmd := exec.Command("sh", "-c", cfg.Loop)
		r, err := cmd.StdoutPipe()
		if err != nil {
			return fmt.Errorf("unable to create pipe for command %q: %w", cfg.Loop, err)
		}
		cmd.WaitDelay = cfg.LoopEvery
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("unable to start %q: %w", cfg.Loop, err)
		}
		d, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		next, err := parse.Parse(d, cfg.parseOpts()...)
		if err != nil {
			return fmt.Errorf("error decoding command output: %w", err)
		}
		differs, err := diffInputs(cfg, cc, last, next, diffCount > 0)
		if err != nil {
			return err
		}
		if differs {
			diffCount++
		}
		if err := cmd.Wait(); err != nil {
			return fmt.Errorf("command %q exited with an error: %w", cfg.Loop, err)
		}
		last = next
		<-ticker.C
		i++
	}
	return nil
}

func diffInputs(do *DiffConfig, cc *cli.Context, a, b *ir.Item, sep bool) (bool, error) {
	if do.Reverse {
		a, b = b, a
	}
	w := cc.Out
	pal := newDiffColors(do.colorize(w))
	var (
		lines   []libdiff.Line
		changes []libdiff.Change
	)
	if do.Text {
		ea, err := encodeFile(do.MainConfig, a)
		if err != nil {
			return false, err
		}
		eb, err := encodeFile(do.MainConfig, b)
		if err != nil {
			return false, err
		}
		lines = libdiff.TextDiff(ea, eb)
		if !libdiff.LinesChanged(lines) {
			return false, nil
		}
	} else {
		changes = libdiff.Diff(a, b)
		if len(changes) == 0 {
			return false, nil
		}
	}
	if sep {
		if err := writeSep(w); err != nil {
			return false, fmt.Errorf("unable to write separator: %w", err)
		}
	}
	if do.Loop != "" {
		when := time.Now().Format(time.RFC3339Nano)
		if _, err := io.WriteString(w, "# difference found at "+when+"\n"); err != nil {
			return false, err
		}
	}
	if do.Text {
		return true, writeLines(w, pal, lines)
	}
	return true, writeChanges(w, pal, changes)
}

type diffColors struct {
	add, del, chg, plain func(string, ...any) string
}

func newDiffColors(on bool) *diffColors {
	if !on {
		return &diffColors{add: fmt.Sprintf, del: fmt.Sprintf, chg: fmt.Sprintf, plain: fmt.Sprintf}
	}
	return &diffColors{
		add:   color.New(color.FgGreen).SprintfFunc(),
		del:   color.New(color.FgRed).SprintfFunc(),
		chg:   color.New(color.FgYellow).SprintfFunc(),
		plain: fmt.Sprintf,
	}
}

func encodeFile(cfg *MainConfig, it *ir.Item) ([]byte, error) {
	buf := &strings.Builder{}
	if err := encode.Encode(it, buf, cfg.fileEncOpts()...); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}

func writeLines(w io.Writer, pal *diffColors, lines []libdiff.Line) error {
	for _, ln := range lines {
		var s string
		switch ln.Type {
		case diffpatch.DiffInsert:
			s = pal.add("+%s", ln.Text)
		case diffpatch.DiffDelete:
			s = pal.del("-%s", ln.Text)
		default:
			s = pal.plain(" %s", ln.Text)
		}
		if _, err := io.WriteString(w, s+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// writeChanges prints one line per change with the values inline, and
// character diffs for changed strings.
func writeChanges(w io.Writer, pal *diffColors, changes []libdiff.Change) error {
	for i := range changes {
		c := &changes[i]
		var s string
		switch c.Op {
		case libdiff.Added:
			s = pal.add("+ %s: %s", c.KeyPath, inline(c.To))
		case libdiff.Removed:
			s = pal.del("- %s: %s", c.KeyPath, inline(c.From))
		case libdiff.Changed:
			if c.Text != nil {
				s = pal.chg("~ %s: ", c.KeyPath) + textDiff(pal, c.Text)
			} else {
				s = pal.chg("~ %s: %s -> %s", c.KeyPath, inline(c.From), inline(c.To))
			}
		}
		if _, err := io.WriteString(w, s+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func textDiff(pal *diffColors, diffs []diffpatch.Diff) string {
	buf := &strings.Builder{}
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffInsert:
			buf.WriteString(pal.add("{+%s+}", d.Text))
		case diffpatch.DiffDelete:
			buf.WriteString(pal.del("[-%s-]", d.Text))
		default:
			buf.WriteString(d.Text)
		}
	}
	return buf.String()
}

// inline renders it as compact single line JSON, with dates and data in
// their string forms.
func inline(it *ir.Item) string {
	if it == nil {
		return ""
	}
	s, err := encodeInline(it)
	if err != nil {
		return "<" + it.Type.String() + ">"
	}
	return s
}

func encodeInline(it *ir.Item) (string, error) {
	buf := &strings.Builder{}
	if err := encode.Encode(it, buf, encode.EncodeJSON(), encode.EncodeIndent("")); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
