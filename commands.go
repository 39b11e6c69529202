package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivemoreminix/pyedit/syntax"
	"github.com/fivemoreminix/pyedit/syntax/python"
	"github.com/fivemoreminix/pyedit/ui/buffer"
)

var languages = buffer.NewRegistry(python.Support())

// app is the state shared by every command: the loaded settings and the viper
// instance they came from, for watching.
type app struct {
	cfgFile  string
	cfg      Config
	viper    *viper.Viper
	closeLog func() error
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "pyedit [file]",
		Short:         "A terminal editor for Python",
		Long:          `A terminal text editor with syntax-aware indentation, folding and highlighting for Python.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.closeLog != nil {
				return a.closeLog()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			}
			return runEditor(a, path)
		},
	}
	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "",
		"config file (default: ~/.config/pyedit/config.yaml)")

	root.AddCommand(newHighlightCmd(a), newIndentCmd(a), newFoldsCmd(a), newConfigCmd(a))
	return root
}

func (a *app) configPath() string {
	if a.cfgFile != "" {
		return a.cfgFile
	}
	return DefaultConfigPath()
}

func (a *app) init() error {
	cfg, v, err := LoadConfig(a.configPath())
	if err != nil {
		return err
	}
	a.cfg, a.viper = cfg, v
	a.closeLog, err = setupLogging(cfg.Log)
	if err != nil {
		return err
	}
	logrus.WithField("config", a.configPath()).Debug("config loaded")
	return nil
}

func (a *app) indentOptions() syntax.IndentOptions {
	return syntax.IndentOptions{Unit: a.cfg.IndentUnit, TabSize: a.cfg.TabSize}
}

// source is a file parsed with the language its extension selects.
type source struct {
	support *syntax.Support
	doc     syntax.Lines
	tree    *syntax.Tree
}

func loadSource(path string) (*source, error) {
	support := languages.ForPath(path)
	if support == nil {
		return nil, errors.Errorf("no language for %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading source")
	}
	doc := syntax.IndexLines(data)
	tree, err := support.Language.Parse(doc.Text)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return &source{support, doc, tree}, nil
}

// Colors the highlight command uses for each top-level category.
var categoryColors = map[syntax.Base]*color.Color{
	syntax.Comment:     color.New(color.FgHiBlack),
	syntax.Name:        color.New(color.FgWhite),
	syntax.Keyword:     color.New(color.FgBlue, color.Bold),
	syntax.Literal:     color.New(color.FgMagenta),
	syntax.String:      color.New(color.FgYellow),
	syntax.Operator:    color.New(color.FgCyan),
	syntax.Punctuation: color.New(color.FgWhite),
	syntax.Meta:        color.New(color.FgGreen),
}

func colorFor(tag syntax.Tag) *color.Color {
	if tag.Mods&syntax.ModFunction != 0 {
		return color.New(color.FgHiBlue)
	}
	for _, t := range tag.Fallbacks() {
		if c, ok := categoryColors[t.Base]; ok {
			return c
		}
	}
	return color.New(color.Reset)
}

func newHighlightCmd(a *app) *cobra.Command {
	var showTags bool
	cmd := &cobra.Command{
		Use:   "highlight FILE",
		Short: "Print a file with syntax highlighting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := loadSource(args[0])
			if err != nil {
				return err
			}
			if showTags {
				printTags(cmd.OutOrStdout(), src)
			} else {
				printHighlighted(cmd.OutOrStdout(), src)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&showTags, "tags", "t", false, "list highlighted spans and their tags instead")
	return cmd
}

// printTags writes one "from-to tag text" line per highlighted span.
func printTags(w io.Writer, src *source) {
	src.support.Language.Styles().Highlight(src.tree.Root(), func(from, to int, tag syntax.Tag) {
		fmt.Fprintf(w, "%d-%d\t%s\t%q\n", from, to, tag, src.doc.Slice(from, to))
	})
}

func printHighlighted(w io.Writer, src *source) {
	var last int
	src.support.Language.Styles().Highlight(src.tree.Root(), func(from, to int, tag syntax.Tag) {
		io.WriteString(w, src.doc.Slice(last, from))
		colorFor(tag).Fprint(w, src.doc.Slice(from, to))
		last = to
	})
	io.WriteString(w, src.doc.Slice(last, src.doc.Len()))
}

func newIndentCmd(a *app) *cobra.Command {
	var pos int
	cmd := &cobra.Command{
		Use:   "indent FILE",
		Short: "Print the indentation a new line at a position would get",
		Long: `Print the column a line starting at --pos (a byte offset, default the end of
the file) should be indented to, or "none" when the language has no opinion.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := loadSource(args[0])
			if err != nil {
				return err
			}
			if pos < 0 {
				pos = src.doc.Len()
			} else if pos > src.doc.Len() {
				return errors.Errorf("position %d is past the end of the file (%d bytes)", pos, src.doc.Len())
			}
			col, ok := src.support.Language.Indentation(src.tree, src.doc, pos, a.indentOptions())
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "none")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), col)
			return nil
		},
	}
	cmd.Flags().IntVarP(&pos, "pos", "p", -1, "byte offset to ask about")
	return cmd
}

func newFoldsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "folds FILE",
		Short: "List the foldable ranges of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := loadSource(args[0])
			if err != nil {
				return err
			}
			for _, r := range src.support.Language.Folds(src.tree, src.doc) {
				from, to := src.doc.LineAt(r.From), src.doc.LineAt(r.To)
				fmt.Fprintf(cmd.OutOrStdout(), "%d:%d-%d:%d\n",
					from.Number+1, r.From-from.From+1, to.Number+1, r.To-to.From+1)
			}
			return nil
		},
	}
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
		// The config file may be what is broken, so it is not loaded here.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			a.closeLog, err = setupLogging(DefaultConfig().Log)
			return err
		},
	}
	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configPath()
			if err := WriteDefaultConfig(path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	cmd.AddCommand(initCmd)
	return cmd
}
