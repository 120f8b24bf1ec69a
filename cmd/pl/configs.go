package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/signadot/plistkit/encode"
	"github.com/signadot/plistkit/format"
	"github.com/signadot/plistkit/parse"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='encode with color'"`

	X bool `cli:"name=x aliases=xml desc='do i/o in xml'"`
	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) flagFormat() format.Format {
	switch {
	case cfg.Y:
		return format.YAMLFormat
	case cfg.J:
		return format.JSONFormat
	}
	return format.XMLFormat
}

func (cfg *MainConfig) inFormat() format.Format {
	if cfg.InFormat != nil {
		return *cfg.InFormat
	}
	return cfg.flagFormat()
}

func (cfg *MainConfig) outFormat() format.Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	return cfg.flagFormat()
}

func (cfg *MainConfig) outFormatOr(f format.Format) format.Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	return f
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	return []parse.ParseOption{parse.ParseFormat(cfg.inFormat())}
}

// fileEncOpts are the encoding options for writing documents back to
// files, which are never colored.
func (cfg *MainConfig) fileEncOpts() []encode.EncodeOption {
	return []encode.EncodeOption{encode.EncodeFormat(cfg.outFormat())}
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := cfg.fileEncOpts()
	if cfg.colorize(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// colorize reports whether output to w is colored: always with -color,
// never with -color=false, otherwise when w is a terminal.
func (cfg *MainConfig) colorize(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return false
		}
		break
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type ListConfig struct {
	*MainConfig

	List *cli.Command
}

// EditConfig is shared by the commands editing a document.
type EditConfig struct {
	*MainConfig

	Write    bool   `cli:"name=w desc='write the result back to the file'"`
	Manifest string `cli:"name=m desc='manifest file providing default values'"`
	Domain   string `cli:"name=domain desc='preference domain in the manifest (default: the manifest domain)'"`

	Edit *cli.Command
}

type FindConfig struct {
	*MainConfig

	Values bool `cli:"name=v desc='show the values of matched items'"`

	Find *cli.Command
}

type MatchConfig struct {
	*cli.Command
	*MainConfig

	Trim    bool   `cli:"name=trim desc='trim the results to the match'"`
	String  bool   `cli:"name=s desc='consider match a string argument'"`
	File    bool   `cli:"name=f desc='consider match a file path'"`
	Glob    bool   `cli:"name=glob desc='match strings in the match as globs'"`
	Subtree bool   `cli:"name=subtree desc='match anywhere in the document'"`
	PFormat string `cli:"name=p desc='format of the match: xml, json, yaml (default yaml)'"`
}

type DiffConfig struct {
	*MainConfig
	Reverse   bool   `cli:"name=r desc='reverse the diff'"`
	Text      bool   `cli:"name=text desc='show a line diff of the encodings'"`
	Loop      string `cli:"name=loop desc='command to produce documents to diff in a loop'"`
	LoopEvery time.Duration
	LoopLim   int `cli:"name=loopLim desc='max number of times to loop'"`

	Diff *cli.Command
}

func (cfg *DiffConfig) mkLoopEvery() func(cc *cli.Context, a string) (any, error) {
	return func(_ *cli.Context, a string) (any, error) {
		d, err := time.ParseDuration(a)
		if err != nil {
			return nil, err
		}
		cfg.LoopEvery = d
		return d, nil
	}
}

type PatchConfig struct {
	*MainConfig
	Write  bool `cli:"name=w desc='write the result back to the file'"`
	String bool `cli:"name=s desc='patch arg as string'"`
	File   bool `cli:"name=f desc='patch arg as file'"`

	Patch *cli.Command
}

type DumpConfig struct {
	*MainConfig
	Dump *cli.Command
}

type LoadConfig struct {
	*MainConfig
	Load *cli.Command
}

type ValidateConfig struct {
	*MainConfig
	Manifest string `cli:"name=m desc='manifest file'"`
	Domain   string `cli:"name=domain desc='preference domain (default: the manifest domain)'"`

	Validate *cli.Command
}

type BuildConfig struct {
	*MainConfig
	Write bool `cli:"name=w desc='write the outputs to the destDir of the build file'"`

	Build *cli.Command
}
