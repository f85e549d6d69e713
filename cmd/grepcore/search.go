package main

import (
	"context"
	"fmt"
	"os"

	"github.com/corelex/grepcore"
	"github.com/corelex/grepcore/pkg/config"
	"github.com/corelex/grepcore/pkg/dirwalk"
	"github.com/corelex/grepcore/pkg/mmapbuf"
	"github.com/corelex/grepcore/pkg/output"
	"github.com/spf13/cobra"
)

var (
	searchPatterns      []string
	searchIgnoreCase    bool
	searchWholeWord     bool
	searchRegex         bool
	searchCountLines    bool
	searchMaxCount      uint64
	searchThreads       int
	searchIncludeHidden bool
	searchFollowSymlink bool
	searchMaxFileSize   int64
	searchExclude       []string
)

var searchCmd = &cobra.Command{
	Use:   "search <target>",
	Short: "Search a file, directory, or stdin for matching lines",
	Long: `Search a target for one or more patterns. target may be a plain file, a
directory (searched recursively), or "-" for stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringArrayVarP(&searchPatterns, "pattern", "e", nil, "Pattern to search for (repeatable)")
	searchCmd.Flags().BoolVarP(&searchIgnoreCase, "ignore-case", "i", false, "Case-insensitive matching")
	searchCmd.Flags().BoolVarP(&searchWholeWord, "word-regexp", "w", false, "Match whole words only")
	searchCmd.Flags().BoolVar(&searchRegex, "regex", false, "Treat patterns as a regular expression")
	searchCmd.Flags().BoolVarP(&searchCountLines, "count", "c", false, "Print only a count of matching lines")
	searchCmd.Flags().Uint64Var(&searchMaxCount, "max-count", 0, "Stop after this many matches (0 = unlimited)")
	searchCmd.Flags().IntVarP(&searchThreads, "threads", "t", 0, "Worker count (0 = number of CPUs)")
	searchCmd.Flags().BoolVar(&searchIncludeHidden, "include-hidden", false, "Include hidden files and directories")
	searchCmd.Flags().BoolVar(&searchFollowSymlink, "follow-symlinks", false, "Follow symlinks while walking a directory")
	searchCmd.Flags().Int64Var(&searchMaxFileSize, "max-file-size", 0, "Skip files larger than this many bytes (0 = unlimited)")
	searchCmd.Flags().StringArrayVar(&searchExclude, "exclude-ext", nil, "File extension to skip (repeatable, e.g. .png)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	if len(searchPatterns) == 0 {
		return fmt.Errorf("grepcore: at least one --pattern/-e is required")
	}
	target := args[0]

	defaults := config.DefaultDefaults()
	if configPath != "" {
		var err error
		defaults, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("grepcore: %w", err)
		}
	}
	applyConfigDefaults(cmd, defaults)

	params := grepcore.SearchParams{
		Patterns:       searchPatterns,
		CaseSensitive:  !searchIgnoreCase,
		WholeWord:      searchWholeWord,
		UseRegex:       searchRegex,
		CountLinesMode: searchCountLines,
		TrackPositions: !searchCountLines,
		MaxCount:       searchMaxCount,
		MinChunkBytes:  defaults.MinChunkBytes,
	}

	sink := output.NewColorSink(cmd.OutOrStdout(), !noColor)

	if target == "-" {
		buf, err := mmapbuf.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		return searchOneBuffer(params, "-", buf, sink)
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("grepcore: %w", err)
	}
	if info.IsDir() {
		return searchDir(params, target, sink)
	}
	return searchOneFile(params, target, sink)
}

// applyConfigDefaults fills in any CLI flag the user didn't explicitly pass
// with the corresponding pkg/config value, the standard cobra
// config-file-plus-flag-override precedence (explicit flags always win).
func applyConfigDefaults(cmd *cobra.Command, d config.Defaults) {
	flags := cmd.Flags()
	if !flags.Changed("threads") && d.Workers > 0 {
		searchThreads = d.Workers
	}
	if !flags.Changed("max-count") && d.DefaultMaxCount > 0 {
		searchMaxCount = d.DefaultMaxCount
	}
	if !flags.Changed("ignore-case") {
		searchIgnoreCase = !d.CaseSensitive
	}
	if !flags.Changed("word-regexp") {
		searchWholeWord = d.WholeWord
	}
}

func searchOneFile(params grepcore.SearchParams, path string, sink output.Sink) error {
	res, err := grepcore.SearchFile(params, path, searchThreads)
	if err != nil {
		return fmt.Errorf("grepcore: %s: %w", path, err)
	}
	return reportResult(path, res, sink)
}

func searchOneBuffer(params grepcore.SearchParams, path string, buf []byte, sink output.Sink) error {
	res, err := grepcore.SearchBuffer(params, buf)
	if err != nil {
		return fmt.Errorf("grepcore: %s: %w", path, err)
	}
	if len(res.Positions) == 0 {
		// count-lines mode carries no positions; report the tally instead.
		return reportResult(path, res, sink)
	}
	if err := reportResultWithContext(path, buf, res, sink); err != nil {
		return err
	}
	return nil
}

func searchDir(params grepcore.SearchParams, root string, sink output.Sink) error {
	filter := dirwalk.NewFilter(root, searchIncludeHidden, searchFollowSymlink, searchMaxFileSize, searchExclude)

	var totalMatches uint64
	var filesWithMatches int
	_, err := grepcore.SearchDirectory(context.Background(), root, params, searchThreads, filter, func(fr grepcore.FileResult) {
		if !fr.Found {
			return
		}
		filesWithMatches++
		totalMatches += fr.Total
		_ = reportResult(fr.Path, fr.Result, sink)
	})
	if err != nil {
		return fmt.Errorf("grepcore: %w", err)
	}
	return sink.Summary(totalMatches, filesWithMatches)
}

// reportResult prints a file-level result without line context (used for
// directory and mmap'd-file searches where re-reading the buffer just to
// print a line would cost another pass; SearchFile callers that want line
// context should use searchOneBuffer instead).
func reportResult(path string, res grepcore.Result, sink output.Sink) error {
	if !res.Found {
		return nil
	}
	for _, pos := range res.Positions {
		if err := sink.Match(output.Match{File: path, Start: pos.Start, End: pos.End}); err != nil {
			return err
		}
	}
	if len(res.Positions) == 0 && res.Total > 0 {
		// count-lines mode: no positions, just the tally.
		msg := fmt.Sprintf("%d matching lines", res.Total)
		return sink.Match(output.Match{File: path, Line: msg, Start: 0, End: len(msg)})
	}
	return nil
}

func reportResultWithContext(path string, buf []byte, res grepcore.Result, sink output.Sink) error {
	if !res.Found {
		return nil
	}
	for _, pos := range res.Positions {
		line, lineNumber, relStart, relEnd := grepcore.ExtractLine(buf, pos.Start, pos.End)
		if err := sink.Match(output.Match{
			File:       path,
			Start:      relStart,
			End:        relEnd,
			Line:       line,
			LineNumber: lineNumber,
		}); err != nil {
			return err
		}
	}
	return nil
}
