// Package main provides the CLI entrypoint for ritmo.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/spf13/cobra"

	"github.com/artemgv/ritmo/internal/chunk"
	"github.com/artemgv/ritmo/internal/config"
	"github.com/artemgv/ritmo/internal/corpus"
	"github.com/artemgv/ritmo/internal/exam"
	"github.com/artemgv/ritmo/internal/model"
	"github.com/artemgv/ritmo/internal/recall"
	"github.com/artemgv/ritmo/internal/score"
	"github.com/artemgv/ritmo/internal/statsui"
	"github.com/artemgv/ritmo/internal/store"
	"github.com/artemgv/ritmo/internal/tui"
)

const (
	defaultMode             = "phrase"
	defaultDisplay          = "chunk"
	defaultWPM              = 300
	defaultMinWPM           = 100
	defaultMaxWPM           = 700
	defaultLineWidth        = 60
	defaultPageSize         = 10
	defaultFixationBudget   = 8
	defaultRampCurve        = "none"
	defaultRampRate         = 25
	defaultRampInterval     = 10.0
	defaultRampStartPercent = 60
	defaultPreview          = 2
	defaultCurveWindow      = 20
	defaultExamQuestions    = 4
	defaultFocus            = "fixation"
	defaultRecallRounds     = 3
)

var (
	readMode           string
	readDisplay        string
	readCustomWidth    int
	readWPM            int
	readMinWPM         int
	readMaxWPM         int
	readLineWidth      int
	readPageSize       int
	readFixationBudget int
	readRampCurve      string
	readRampRate       int
	readRampInterval   float64
	readRampStart      int
	readPreview        int
	readFocus          string
	readCorpus         string
	readCorpusDir      string
	readResume         bool

	recallRounds    int
	recallCorpus    string
	recallCorpusDir string

	statsSource      string
	statsSince       string
	statsLast        int
	statsCurveWindow int

	sampleFull bool

	examQuestions int
	examModel     string
	examCorpus    string
	examCorpusDir string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ritmo [file]",
		Short:         "TUI reading trainer",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runReadCmd,
	}

	rootCmd.Flags().StringVar(&readMode, "mode", defaultMode, "chunk mode: word, phrase, clause, custom")
	rootCmd.Flags().StringVar(&readDisplay, "display", defaultDisplay, "display style: chunk, line")
	rootCmd.Flags().StringVar(&readFocus, "focus", defaultFocus, "line display highlight: fixation, word")
	rootCmd.Flags().IntVar(&readCustomWidth, "custom-width", 0, "chunk width in characters (custom mode)")
	rootCmd.Flags().IntVar(&readWPM, "wpm", defaultWPM, "target reading speed")
	rootCmd.Flags().IntVar(&readMinWPM, "min-wpm", defaultMinWPM, "lower speed bound")
	rootCmd.Flags().IntVar(&readMaxWPM, "max-wpm", defaultMaxWPM, "upper speed bound")
	rootCmd.Flags().IntVar(&readLineWidth, "line-width", defaultLineWidth, "layout line width in characters")
	rootCmd.Flags().IntVar(&readPageSize, "page-size", defaultPageSize, "lines per page")
	rootCmd.Flags().IntVar(&readFixationBudget, "fixation-budget", defaultFixationBudget, "characters covered per fixation")
	rootCmd.Flags().StringVar(&readRampCurve, "ramp", defaultRampCurve, "speed ramp: none, linear, logarithmic")
	rootCmd.Flags().IntVar(&readRampRate, "ramp-rate", defaultRampRate, "WPM added per ramp interval (linear)")
	rootCmd.Flags().Float64Var(&readRampInterval, "ramp-interval", defaultRampInterval, "ramp interval or half-life in seconds")
	rootCmd.Flags().IntVar(&readRampStart, "ramp-start-percent", defaultRampStartPercent, "ramp starting speed as percent of target")
	rootCmd.Flags().IntVar(&readPreview, "preview-sentences", defaultPreview, "sentences to jump ahead in preview")
	rootCmd.Flags().StringVar(&readCorpus, "corpus", "", "read a sampled corpus article (family:tier)")
	rootCmd.Flags().StringVar(&readCorpusDir, "corpus-dir", "", "corpus directory override")
	rootCmd.Flags().BoolVar(&readResume, "resume", false, "resume from the saved position")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newCorpusCmd())
	rootCmd.AddCommand(newExamCmd())
	rootCmd.AddCommand(newRecallCmd())

	return rootCmd
}

func runReadCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "mode", &readMode, fileCfg.Reading.Mode)
	applyStringConfig(cmd, "display", &readDisplay, fileCfg.Reading.Display)
	applyStringConfig(cmd, "focus", &readFocus, fileCfg.Reading.Focus)
	applyIntConfig(cmd, "custom-width", &readCustomWidth, fileCfg.Reading.CustomWidth)
	applyIntConfig(cmd, "wpm", &readWPM, fileCfg.Reading.WPM)
	applyIntConfig(cmd, "min-wpm", &readMinWPM, fileCfg.Reading.MinWPM)
	applyIntConfig(cmd, "max-wpm", &readMaxWPM, fileCfg.Reading.MaxWPM)
	applyIntConfig(cmd, "line-width", &readLineWidth, fileCfg.Reading.LineWidth)
	applyIntConfig(cmd, "page-size", &readPageSize, fileCfg.Reading.PageSize)
	applyIntConfig(cmd, "fixation-budget", &readFixationBudget, fileCfg.Reading.FixationBudget)
	applyStringConfig(cmd, "ramp", &readRampCurve, fileCfg.Reading.RampCurve)
	applyIntConfig(cmd, "ramp-rate", &readRampRate, fileCfg.Reading.RampRate)
	applyFloatConfig(cmd, "ramp-interval", &readRampInterval, fileCfg.Reading.RampIntervalSec)
	applyIntConfig(cmd, "ramp-start-percent", &readRampStart, fileCfg.Reading.RampStartPercent)
	applyIntConfig(cmd, "preview-sentences", &readPreview, fileCfg.Reading.PreviewSentences)
	applyStringConfig(cmd, "corpus-dir", &readCorpusDir, fileCfg.Reading.CorpusDir)

	mode, ok := model.ParseChunkMode(readMode)
	if !ok {
		return fmt.Errorf("unknown --mode %q (word, phrase, clause, custom)", readMode)
	}
	rampCurve, ok := model.ParseRampCurve(readRampCurve)
	if !ok {
		return fmt.Errorf("unknown --ramp %q (none, linear, logarithmic)", readRampCurve)
	}
	if readDisplay != "chunk" && readDisplay != "line" {
		return fmt.Errorf("unknown --display %q (chunk, line)", readDisplay)
	}
	if readFocus != "fixation" && readFocus != "word" {
		return fmt.Errorf("unknown --focus %q (fixation, word)", readFocus)
	}

	cfg := model.ReadingConfig{
		Mode:             mode,
		CustomWidth:      readCustomWidth,
		WPM:              readWPM,
		MinWPM:           readMinWPM,
		MaxWPM:           readMaxWPM,
		LineWidth:        readLineWidth,
		PageSize:         readPageSize,
		FixationBudget:   readFixationBudget,
		RampCurve:        rampCurve,
		RampRate:         readRampRate,
		RampIntervalSec:  readRampInterval,
		RampStartPercent: readRampStart,
		PreviewSentences: readPreview,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	text, source, err := resolveText(args, readCorpus, readCorpusDir)
	if err != nil {
		return err
	}

	text = chunk.RepairRunOnSentences(text)

	if readDisplay == "line" {
		m := tui.NewLineModel(cfg, text, readFocus == "word")
		program := tea.NewProgram(m, tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run TUI: %w", err)
		}
		return nil
	}

	chunks := chunk.Tokenize(text, cfg.Mode, cfg.CustomWidth)
	if len(chunks) == 0 {
		return fmt.Errorf("nothing to read in %s", source)
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	resumeIndex := 0
	if readResume {
		idx, err := st.GetPosition(context.Background(), source)
		if err != nil {
			logErrf("failed to load saved position: %v\n", err)
		} else {
			resumeIndex = idx
		}
	}

	m := tui.NewModel(cfg, st, chunks, source, resumeIndex)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// resolveText loads the reading text from a file argument or from a sampled
// corpus article. Exactly one of the two sources must be given.
func resolveText(args []string, corpusSpec, corpusDir string) (text, source string, err error) {
	if len(args) == 1 && corpusSpec != "" {
		return "", "", fmt.Errorf("pass either a file or --corpus, not both")
	}
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		return string(data), args[0], nil
	}
	if corpusSpec == "" {
		return "", "", fmt.Errorf("pass a file to read or --corpus family:tier")
	}

	family, tier, err := parseCorpusSpec(corpusSpec)
	if err != nil {
		return "", "", err
	}
	provider := corpus.NewProvider(corpusDirs(corpusDir)...)
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	article, ok, err := provider.Sample(family, tier, rnd)
	if err != nil {
		return "", "", fmt.Errorf("failed to load corpus %s:%s: %w", family, tier, err)
	}
	if !ok {
		return "", "", fmt.Errorf("no corpus for %s:%s (looked in %s)", family, tier, strings.Join(corpusDirs(corpusDir), ", "))
	}
	return article.Text, fmt.Sprintf("corpus:%s:%s:%s", family, tier, article.Title), nil
}

func parseCorpusSpec(spec string) (family, tier string, err error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid corpus spec %q, want family:tier", spec)
	}
	family, tier = parts[0], parts[1]
	if !corpus.Valid(family, tier) {
		return "", "", fmt.Errorf("unknown corpus %s:%s (families: %s; tiers: %s)",
			family, tier, strings.Join(corpus.Families, ", "), strings.Join(corpus.Tiers, ", "))
	}
	return family, tier, nil
}

func corpusDirs(override string) []string {
	if override != "" {
		return []string{override}
	}
	return []string{config.DefaultCorpusDir()}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show reading stats",
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSource, "source", "", "source filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	return cmd
}

func runStatsCmd(_ *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	cfg := model.StatsConfig{
		Source:      statsSource,
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	m := statsui.NewModel(st, cfg)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func newCorpusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Inspect corpus files",
	}

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "List corpus availability",
		Args:  cobra.NoArgs,
		RunE:  runCorpusInfoCmd,
	}
	infoCmd.Flags().StringVar(&readCorpusDir, "corpus-dir", "", "corpus directory override")

	sampleCmd := &cobra.Command{
		Use:   "sample family:tier",
		Short: "Print a random article",
		Args:  cobra.ExactArgs(1),
		RunE:  runCorpusSampleCmd,
	}
	sampleCmd.Flags().StringVar(&readCorpusDir, "corpus-dir", "", "corpus directory override")
	sampleCmd.Flags().BoolVar(&sampleFull, "full", false, "print the whole article text")

	cmd.AddCommand(infoCmd)
	cmd.AddCommand(sampleCmd)
	return cmd
}

func runCorpusInfoCmd(cmd *cobra.Command, _ []string) error {
	provider := corpus.NewProvider(corpusDirs(readCorpusDir)...)
	info := provider.Info()

	families := make([]string, 0, len(info))
	for family := range info {
		families = append(families, family)
	}
	sort.Strings(families)

	out := cmd.OutOrStdout()
	for _, family := range families {
		for _, tier := range corpus.Tiers {
			tierInfo, ok := info[family][tier]
			if !ok {
				continue
			}
			status := "missing"
			if tierInfo.Available {
				status = fmt.Sprintf("%d articles", tierInfo.TotalArticles)
			}
			if _, err := fmt.Fprintf(out, "%s:%s\t%s\n", family, tier, status); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
	}
	return nil
}

func runCorpusSampleCmd(cmd *cobra.Command, args []string) error {
	family, tier, err := parseCorpusSpec(args[0])
	if err != nil {
		return err
	}
	provider := corpus.NewProvider(corpusDirs(readCorpusDir)...)
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	article, ok, err := provider.Sample(family, tier, rnd)
	if err != nil {
		return fmt.Errorf("failed to load corpus %s:%s: %w", family, tier, err)
	}
	if !ok {
		return fmt.Errorf("no corpus for %s:%s", family, tier)
	}

	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "%s (%s, FK %.1f, %d words)\n\n", article.Title, article.Domain, article.FKGrade, article.Words); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	text := article.Text
	if !sampleFull && len(text) > 600 {
		text = text[:600] + "…"
	}
	if _, err := fmt.Fprintln(out, text); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newRecallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recall [file]",
		Short: "Run paragraph recall rounds on a text",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRecallCmd,
	}
	cmd.Flags().IntVar(&recallRounds, "rounds", defaultRecallRounds, "maximum paragraphs to drill")
	cmd.Flags().StringVar(&recallCorpus, "corpus", "", "drill a sampled corpus article (family:tier)")
	cmd.Flags().StringVar(&recallCorpusDir, "corpus-dir", "", "corpus directory override")
	return cmd
}

func runRecallCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "rounds", &recallRounds, fileCfg.Recall.Rounds)
	if recallRounds <= 0 {
		return fmt.Errorf("--rounds must be > 0")
	}

	text, source, err := resolveText(args, recallCorpus, recallCorpusDir)
	if err != nil {
		return err
	}
	text = chunk.RepairRunOnSentences(text)
	paragraphs := recall.Paragraphs(text)
	if len(paragraphs) == 0 {
		return fmt.Errorf("nothing to recall in %s", source)
	}
	if len(paragraphs) > recallRounds {
		paragraphs = paragraphs[:recallRounds]
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	startedAt := time.Now()
	results, err := administerRecall(cmd, paragraphs)
	if err != nil {
		return err
	}
	endedAt := time.Now()
	if len(results) == 0 {
		return nil
	}

	var predStats model.PredictionStats
	for _, r := range results {
		predStats.Add(r)
	}

	rec := model.SessionRecord{
		StartedAt:  startedAt,
		EndedAt:    endedAt,
		Source:     source,
		Mode:       "recall",
		ChunksRead: len(paragraphs),
		WordsRead:  len(results),
		DurationMs: endedAt.Sub(startedAt).Milliseconds(),
	}
	if _, err := st.InsertSession(context.Background(), rec, results); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	summary := score.Aggregate(predStats)
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "\nRecall: %d%% exact, %d%% score over %d words\n",
		summary.ExactPercent, summary.AvgScorePercent, predStats.TotalWords); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// administerRecall shows each paragraph, waits for the reader, then
// collects the typed reconstruction and scores it. EOF ends the drill
// early; rounds scored so far are kept.
func administerRecall(cmd *cobra.Command, paragraphs []string) ([]model.PredictionResult, error) {
	out := cmd.OutOrStdout()
	reader := bufio.NewScanner(cmd.InOrStdin())
	var results []model.PredictionResult
	wordIndex := 0
	for i, para := range paragraphs {
		if _, err := fmt.Fprintf(out, "\nRound %d/%d\n\n%s\n\nRead it, then press Enter to hide it.\n",
			i+1, len(paragraphs), para); err != nil {
			return nil, fmt.Errorf("failed to write output: %w", err)
		}
		if !reader.Scan() {
			break
		}
		// Scroll the paragraph out of view before the reconstruction.
		if _, err := fmt.Fprint(out, "\033[2J\033[H"); err != nil {
			return nil, fmt.Errorf("failed to write output: %w", err)
		}
		if _, err := fmt.Fprint(out, "Type it back from memory:\n> "); err != nil {
			return nil, fmt.Errorf("failed to write output: %w", err)
		}
		if !reader.Scan() {
			break
		}
		round := recall.ScoreRound(para, reader.Text(), wordIndex, time.Now())
		wordIndex += len(round)
		results = append(results, round...)
		if _, err := fmt.Fprintf(out, "Round %d: %d/%d words exact\n",
			i+1, recall.ExactMatches(round), len(round)); err != nil {
			return nil, fmt.Errorf("failed to write output: %w", err)
		}
	}
	return results, nil
}

func newExamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exam [file]",
		Short: "Take a comprehension exam on a text",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExamCmd,
	}
	cmd.Flags().IntVar(&examQuestions, "questions", defaultExamQuestions, "number of questions")
	cmd.Flags().StringVar(&examModel, "model", "", "OpenAI model override")
	cmd.Flags().StringVar(&examCorpus, "corpus", "", "examine a sampled corpus article (family:tier)")
	cmd.Flags().StringVar(&examCorpusDir, "corpus-dir", "", "corpus directory override")
	return cmd
}

func runExamCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "questions", &examQuestions, fileCfg.Exam.Questions)
	applyStringConfig(cmd, "model", &examModel, fileCfg.Exam.Model)
	if examQuestions <= 0 {
		return fmt.Errorf("--questions must be > 0")
	}

	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is not set")
	}

	text, source, err := resolveText(args, examCorpus, examCorpusDir)
	if err != nil {
		return err
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))
	generator := exam.NewGenerator(&client, examModel)

	logErrln("Generating exam...")
	ex, err := generator.Generate(context.Background(), source, text, examQuestions)
	if err != nil {
		return fmt.Errorf("failed to generate exam: %w", err)
	}

	answers, err := administerExam(cmd, ex)
	if err != nil {
		return err
	}
	correct := exam.Score(ex, answers)
	pct := correct * 100 / len(ex.Questions)
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "\nScore: %d/%d (%d%%)\n", correct, len(ex.Questions), pct); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func administerExam(cmd *cobra.Command, ex exam.Exam) ([]int, error) {
	out := cmd.OutOrStdout()
	reader := bufio.NewScanner(cmd.InOrStdin())
	answers := make([]int, 0, len(ex.Questions))
	for i, q := range ex.Questions {
		if _, err := fmt.Fprintf(out, "\n%d. %s\n", i+1, q.Prompt); err != nil {
			return nil, fmt.Errorf("failed to write output: %w", err)
		}
		for j, opt := range q.Options {
			if _, err := fmt.Fprintf(out, "   %d) %s\n", j+1, opt); err != nil {
				return nil, fmt.Errorf("failed to write output: %w", err)
			}
		}
		answers = append(answers, readAnswer(out, reader, len(q.Options)))
	}
	return answers, nil
}

// readAnswer prompts until it gets a number in range. EOF counts as a wrong
// answer so a piped exam still finishes.
func readAnswer(out io.Writer, reader *bufio.Scanner, optionCount int) int {
	for {
		fmt.Fprintf(out, "> ")
		if !reader.Scan() {
			return -1
		}
		n, err := strconv.Atoi(strings.TrimSpace(reader.Text()))
		if err == nil && n >= 1 && n <= optionCount {
			return n - 1
		}
		fmt.Fprintf(out, "enter a number between 1 and %d\n", optionCount)
	}
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# ritmo configuration
# Uncomment a value to enable it. CLI flags override config values.

[reading]
# mode = %q               # Chunk mode: word, phrase, clause, custom
# display = %q            # Display style: chunk, line
# focus = %q              # Line display highlight: fixation, word
# custom-width = 20       # Chunk width in characters (custom mode)
# wpm = %d                # Target reading speed
# min-wpm = %d            # Lower speed bound
# max-wpm = %d            # Upper speed bound
# line-width = %d         # Layout line width
# page-size = %d          # Lines per page
# fixation-budget = %d    # Characters covered per fixation
# ramp-curve = %q         # Speed ramp: none, linear, logarithmic
# ramp-rate = %d          # WPM added per ramp interval (linear)
# ramp-interval = %.1f    # Ramp interval or half-life in seconds
# ramp-start-percent = %d # Ramp starting speed as percent of target
# preview-sentences = %d  # Sentences to jump ahead in preview
# corpus-dir = ""         # Corpus directory override

[recall]
# rounds = %d             # Maximum paragraphs per recall drill

[exam]
# model = ""              # OpenAI model override
# questions = %d          # Questions per exam
`,
		defaultMode,
		defaultDisplay,
		defaultFocus,
		defaultWPM,
		defaultMinWPM,
		defaultMaxWPM,
		defaultLineWidth,
		defaultPageSize,
		defaultFixationBudget,
		defaultRampCurve,
		defaultRampRate,
		defaultRampInterval,
		defaultRampStartPercent,
		defaultPreview,
		defaultRecallRounds,
		defaultExamQuestions,
	)
}

func validateConfig(cfg model.ReadingConfig) error {
	if cfg.WPM <= 0 {
		return fmt.Errorf("--wpm must be > 0")
	}
	if cfg.MinWPM <= 0 {
		return fmt.Errorf("--min-wpm must be > 0")
	}
	if cfg.MaxWPM <= 0 {
		return fmt.Errorf("--max-wpm must be > 0")
	}
	if cfg.Mode == model.ModeCustom && cfg.CustomWidth <= 0 {
		return fmt.Errorf("--custom-width must be > 0 in custom mode")
	}
	if cfg.LineWidth <= 0 {
		return fmt.Errorf("--line-width must be > 0")
	}
	if cfg.PageSize <= 0 {
		return fmt.Errorf("--page-size must be > 0")
	}
	if cfg.FixationBudget <= 0 {
		return fmt.Errorf("--fixation-budget must be > 0")
	}
	if cfg.RampRate < 0 {
		return fmt.Errorf("--ramp-rate must be >= 0")
	}
	if cfg.RampIntervalSec < 0 {
		return fmt.Errorf("--ramp-interval must be >= 0")
	}
	if cfg.RampStartPercent < 0 || cfg.RampStartPercent > 100 {
		return fmt.Errorf("--ramp-start-percent must be between 0 and 100")
	}
	if cfg.PreviewSentences < 0 {
		return fmt.Errorf("--preview-sentences must be >= 0")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
