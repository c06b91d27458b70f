// Package cmd provides the Cobra CLI command structure for cwl.
//
// This package defines the root command and its flags, layers them with an
// optional config file and CWL_* environment variables through Viper, builds
// the entry tree and prints the report.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/otuschhoff/cwl"
	"github.com/otuschhoff/cwl/pkg/count"
	"github.com/otuschhoff/cwl/pkg/output"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is the application version, set via ldflags.
var version = "dev"

var (
	// Metric options
	countChars bool
	countWords bool
	countLines bool

	// Output options
	outputFormat string
	outputFile   string
	noHeader     bool

	// Filter options
	useGitIgnore    bool
	skipHidden      bool
	filterNameRegex string

	verbose bool
	cfgFile string
)

// errPathNotFound is returned when the path given on the command line does
// not exist.
var errPathNotFound = errors.New("Invalid path")

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "cwl [flags] <path>",
	Short: "Count characters, words and lines in files",
	Long: `cwl reports character, word and line counts for a file or, recursively,
for every file in a directory tree. Without any of -c, -w or -l it only
prints the name of the path.

Examples:
  cwl -w notes.txt
  cwl -c -l ./docs
  cwl --words --output-format json --gitignore .`,
	Version:       version,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runCount,
}

// init sets up all CLI flags for the root command and binds them to Viper.
// Flags are organized into three groups: metrics, output options, and filter options.
func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.Flags()

	// Metric flags
	flags.BoolVarP(&countChars, "chars", "c", false, "get the character count")
	flags.BoolVarP(&countWords, "words", "w", false, "get the word count")
	flags.BoolVarP(&countLines, "lines", "l", false, "get the line count")

	// Output flags
	flags.StringVarP(&outputFormat, "output-format", "f", output.FormatText,
		"Output format: "+strings.Join(output.Formats, ", "))
	flags.StringVarP(&outputFile, "output-file", "o", "",
		"Write output to file (default: stdout)")
	flags.BoolVar(&noHeader, "no-header", false,
		"Hide table headers")

	// Filter flags
	flags.BoolVar(&useGitIgnore, "gitignore", false,
		"Leave out entries matched by the root directory's .gitignore")
	flags.BoolVar(&skipHidden, "skip-hidden", false,
		"Leave out entries whose name starts with a dot")
	flags.StringVar(&filterNameRegex, "name", "",
		"Only count files whose name matches this regex")

	flags.BoolVarP(&verbose, "verbose", "v", false,
		"Log entries that could not be read to stderr")
	flags.StringVar(&cfgFile, "config", "",
		"Config file (default: $HOME/.config/cwl/config.yaml)")

	for key, flag := range map[string]string{
		"chars":         "chars",
		"words":         "words",
		"lines":         "lines",
		"output_format": "output-format",
		"output_file":   "output-file",
		"no_header":     "no-header",
		"gitignore":     "gitignore",
		"skip_hidden":   "skip-hidden",
		"name":          "name",
		"verbose":       "verbose",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

// initConfig reads the config file and CWL_* environment variables.
// Precedence is default < config < env < flag.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cwl"))
		}
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("CWL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Printf("error reading config file: %v", err)
		}
	} else if viper.GetBool("verbose") {
		log.Printf("using config file: %s", viper.ConfigFileUsed())
	}
}

// options holds the resolved settings of one invocation.
type options struct {
	selection    count.Selection
	outputFormat string
	outputFile   string
	noHeader     bool
	gitignore    bool
	skipHidden   bool
	nameRegex    string
	verbose      bool
}

// loadOptions reads the settings from v.
func loadOptions(v *viper.Viper) options {
	return options{
		selection: count.Selection{
			Chars: v.GetBool("chars"),
			Words: v.GetBool("words"),
			Lines: v.GetBool("lines"),
		},
		outputFormat: v.GetString("output_format"),
		outputFile:   v.GetString("output_file"),
		noHeader:     v.GetBool("no_header"),
		gitignore:    v.GetBool("gitignore"),
		skipHidden:   v.GetBool("skip_hidden"),
		nameRegex:    v.GetString("name"),
		verbose:      v.GetBool("verbose"),
	}
}

// runCount executes the count for the single path argument.
func runCount(cmd *cobra.Command, args []string) error {
	return run(afero.NewOsFs(), args[0], loadOptions(viper.GetViper()), cmd.OutOrStdout())
}

// run checks that path exists, builds its entry tree and writes the report
// to out, or to the configured output file.
func run(fsys afero.Fs, path string, opts options, out io.Writer) error {
	if opts.outputFormat == "" {
		opts.outputFormat = output.FormatText
	}
	if !output.ValidFormat(opts.outputFormat) {
		return fmt.Errorf("invalid --output-format: %s", opts.outputFormat)
	}

	info, err := fsys.Stat(path)
	if err != nil {
		return fmt.Errorf("%w \"%s\"", errPathNotFound, path)
	}

	formatter := output.NewFormatter(opts.outputFormat, opts.selection, opts.noHeader)

	// Without metrics only the name of the path is reported.
	if opts.selection.IsNone() {
		var content string
		switch {
		case info.Mode().IsRegular():
			content = formatter.FormatName(path, false)
		case info.IsDir():
			content = formatter.FormatName(path, true)
		}
		return emit(formatter, content, opts.outputFile, out)
	}

	filters, err := buildFilters(fsys, path, info.IsDir(), opts)
	if err != nil {
		return err
	}

	var callbacks cwl.Callbacks
	if opts.verbose {
		callbacks.OnSkip = func(path string, err error) {
			log.Printf("skipping \"%s\": %v", path, err)
		}
	}

	builder := cwl.NewBuilder(fsys, opts.selection, filters, callbacks)
	root := builder.Build(path, true)

	return emit(formatter, formatter.Format(root), opts.outputFile, out)
}

// buildFilters turns the filter options into cwl.Filters. It returns nil
// when no filter is active.
func buildFilters(fsys afero.Fs, root string, isDir bool, opts options) (*cwl.Filters, error) {
	if !opts.gitignore && !opts.skipHidden && opts.nameRegex == "" {
		return nil, nil
	}

	filters := &cwl.Filters{SkipHidden: opts.skipHidden}

	if opts.nameRegex != "" {
		re, err := regexp.Compile(opts.nameRegex)
		if err != nil {
			return nil, fmt.Errorf("invalid --name regex: %w", err)
		}
		filters.NameRegex = re
	}

	if opts.gitignore && isDir {
		matcher, err := cwl.LoadGitIgnore(fsys, root)
		if err != nil {
			return nil, err
		}
		filters.Ignore = matcher
	}

	return filters, nil
}

// emit writes content to filename, or to out when filename is empty.
func emit(formatter *output.Formatter, content, filename string, out io.Writer) error {
	if filename == "" {
		_, err := fmt.Fprint(out, content)
		return err
	}
	if err := formatter.WriteToFile(content, filename); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Output written to: %s\n", filename)
	return nil
}

// Execute adds all child commands to the root command and executes it.
func Execute() error {
	return rootCmd.Execute()
}
