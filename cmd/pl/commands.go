package main

import (
	"time"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: xml/x, json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		}, &cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: xml/x, json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "pl").
		WithSynopsis("pl [opts] command [opts]").
		WithDescription("pl is a tool for viewing and editing property lists.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return plMain(cfg, cc, args)
		}).
		WithSubs(
			ViewCommand(cfg),
			GetCommand(cfg),
			ListCommand(cfg),
			SetCommand(cfg),
			InsertCommand(cfg),
			RemoveCommand(cfg),
			ConvertCommand(cfg),
			RenameCommand(cfg),
			MoveCommand(cfg),
			FindCommand(cfg),
			MatchCommand(cfg),
			DiffCommand(cfg),
			PatchCommand(cfg),
			DumpCommand(cfg),
			LoadCommand(cfg),
			ValidateCommand(cfg),
			BuildCommand(cfg))
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.View, "view").
		WithAliases("v").
		WithSynopsis("view [files]").
		WithDescription("view property list files, in color on terminals").
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("get").
		WithAliases("g", "ge").
		WithSynopsis("get <keypath> [files]").
		WithDescription("get the item at a key path such as $.PayloadContent[0].PayloadType").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
	cfg.Get = cmd
	return cmd
}

func ListCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ListConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.List, "list").
		WithAliases("l").
		WithSynopsis("list <keypath> [files]").
		WithDescription("list the items matched by a key path, which may use [*] and ..").
		WithRun(func(cc *cli.Context, args []string) error {
			return list(cfg, cc, args)
		})
}

func editCommand(mainCfg *MainConfig, name, synopsis, desc string, run func(*EditConfig, *cli.Context, []string) error) *cli.Command {
	cfg := &EditConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Edit, name).
		WithSynopsis(synopsis).
		WithDescription(desc).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return run(cfg, cc, args)
		})
}

func SetCommand(mainCfg *MainConfig) *cli.Command {
	return editCommand(mainCfg, "set", "set [opts] <keypath> <value> file",
		"replace the item at a key path. "+valueDescription, set)
}

func InsertCommand(mainCfg *MainConfig) *cli.Command {
	return editCommand(mainCfg, "insert", "insert [opts] <keypath> <index|key> [value] file",
		"insert into the array or dict at a key path. Arrays take an index, - appends; dicts take a new key, appended. "+
			"Without a value the manifest default or an empty string is inserted. "+valueDescription, insert)
}

func RemoveCommand(mainCfg *MainConfig) *cli.Command {
	return editCommand(mainCfg, "remove", "remove [opts] <keypath> file",
		"remove the item at a key path", remove)
}

func ConvertCommand(mainCfg *MainConfig) *cli.Command {
	return editCommand(mainCfg, "convert", "convert [opts] <keypath> <type> file",
		"convert the item at a key path to array, dict, bool, data, date, number or string", convert)
}

func RenameCommand(mainCfg *MainConfig) *cli.Command {
	return editCommand(mainCfg, "rename", "rename [opts] <keypath> <key> file",
		"rename the dict key of the item at a key path, keeping its position", rename)
}

func MoveCommand(mainCfg *MainConfig) *cli.Command {
	return editCommand(mainCfg, "move", "move [opts] <keypath> <index> file",
		"move the item at a key path to another position in its parent", move)
}

const valueDescription = `Values are typed as type:value with type one of
int, real, string, bool, date, data (base64) or json; a value starting with
< is read as a plist fragment and anything else as json, falling back to a
string.`

func FindCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FindConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Find, "find").
		WithAliases("f").
		WithSynopsis("find [opts] <expr> [files]").
		WithDescription(findDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return find(cfg, cc, args)
		})
}

const findDescription = `find prints the key paths of the items for which an expression holds.

The expression is in the expr language (expr-lang.org) and sees
  path, key, index, depth, type, value, count
for each item, with the functions getpath, listpath and getenv. Example:

  pl find 'type == "String" && key == "PayloadType"' profile.mobileconfig`

func MatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "match").
		WithAliases("m").
		WithSynopsis("match [opts] <match> [files]").
		WithDescription("print the documents matched by a match document, yaml by default").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return match(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg, LoopEvery: time.Second, LoopLim: -1}
	loopEveryOpt := &cli.Opt{
		Name: "loopEvery",
		Type: cli.FuncOpt(cfg.mkLoopEvery()),
	}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, loopEveryOpt)

	cmd := cli.NewCommand("diff").
		WithAliases("d", "di").
		WithOpts(opts...).
		WithSynopsis("diff a b or diff -loop <cmd>").
		WithDescription("diff property list documents").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("patch").
		WithAliases("p", "pa").
		WithSynopsis("patch [opts] <patch.json> file").
		WithDescription("apply an RFC 6902 JSON patch, keeping dict order").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patchCmd(cfg, cc, args)
		})
	cfg.Patch = cmd
	return cmd
}

func DumpCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DumpConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Dump, "dump").
		WithSynopsis("dump [files]").
		WithDescription("write property lists as json, or yaml with -O yaml").
		WithRun(func(cc *cli.Context, args []string) error {
			return dump(cfg, cc, args)
		})
}

func LoadCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &LoadConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Load, "load").
		WithSynopsis("load [files]").
		WithDescription("read json, or yaml with -I yaml, and write property lists").
		WithRun(func(cc *cli.Context, args []string) error {
			return load(cfg, cc, args)
		})
}

func ValidateCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ValidateConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Validate, "validate").
		WithSynopsis("validate -m manifest [files]").
		WithDescription("check documents against the constraints of a payload manifest").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return validate(cfg, cc, args)
		})
}

func BuildCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &BuildConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Build, "build").
		WithAliases("b").
		WithSynopsis("build [opts] [dir]").
		WithDescription(buildDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return build(cfg, cc, args)
		})
}

const buildDescription = `build assembles property lists from a build directory.

The directory holds build.plist, build.yaml or build.json:

  build:
    destDir: out
    env: {ORG: Example}
    sources:
    - dir: payloads
    - file: base.plist
    patches:
    - file: org.json
      match: {PayloadType: com.apple.wifi.managed}
      where: 'doc.PayloadVersion > 1'

Patches are RFC 6902 JSON patches with $NAME replaced from env, which
$PLIST_BUILD_ENV overrides as a json merge patch.`
