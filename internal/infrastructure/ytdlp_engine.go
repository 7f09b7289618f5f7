package infrastructure

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/yourusername/xdownload/internal/domain"
	"go.uber.org/zap"
)

// progressPrefix marks the progress lines we ask yt-dlp to print
const progressPrefix = "[xdownload] "

const progressTemplate = "download:" + progressPrefix +
	"%(progress.status)s|%(progress._percent_str)s|%(progress._speed_str)s"

// yt-dlp prefixes extractor failures with the extractor name, e.g.
// "ERROR: [twitter] 123: No video could be found in this tweet"
var extractorErrorPattern = regexp.MustCompile(`^ERROR: \[[^\]]+\]`)

// YTDLPEngine implements domain.Engine by running the yt-dlp executable
type YTDLPEngine struct {
	config *domain.EngineConfig
	logger *zap.Logger
}

// NewYTDLPEngine creates an engine that shells out to config.Binary
func NewYTDLPEngine(config *domain.EngineConfig, logger *zap.Logger) *YTDLPEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &YTDLPEngine{config: config, logger: logger}
}

// Download runs yt-dlp for url and returns the metadata of the saved file
func (e *YTDLPEngine) Download(ctx context.Context, url string, opts domain.RequestOptions) (*domain.MediaInfo, error) {
	args := e.downloadArgs(url, opts)

	// The engine log is best effort; downloads run without it
	var engineLog io.Writer = io.Discard
	if logFile, err := e.openLogFile(); err != nil {
		e.logger.Warn("Engine log unavailable", zap.Error(err))
	} else if logFile != nil {
		defer logFile.Close()
		engineLog = logFile
	}

	cmdLine := ShellEscapeCommand(e.config.Binary, args...)
	writeLogHeader(engineLog, url, cmdLine)
	e.logger.Debug("Running yt-dlp", zap.String("command", cmdLine))

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.config.Binary, args...)
	cmd.Stderr = io.MultiWriter(&stderr, engineLog)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		writeLogFooter(engineLog, false, err.Error())
		return nil, domain.NewEngineError(domain.ErrUnexpected, err)
	}

	if err := cmd.Start(); err != nil {
		writeLogFooter(engineLog, false, fmt.Sprintf("failed to start: %v", err))
		return nil, domain.NewEngineError(domain.ErrUnexpected,
			fmt.Errorf("failed to start %s: %w", e.config.Binary, err))
	}

	filePath := consumeOutput(stdout, opts.Progress, engineLog)

	if err := cmd.Wait(); err != nil {
		if opts.Progress != nil {
			opts.Progress(domain.ProgressEvent{Status: domain.ProgressError, Percent: -1})
		}
		engineErr := classifyFailure(ctx, err, stderr.String())
		writeLogFooter(engineLog, false, engineErr.Error())
		return nil, engineErr
	}

	if filePath == "" {
		writeLogFooter(engineLog, false, "no output file reported")
		return nil, domain.NewEngineError(domain.ErrUnexpected,
			fmt.Errorf("yt-dlp finished without reporting an output file"))
	}

	info, err := readInfoJSON(filePath, e.config.KeepInfoJSON)
	if err != nil {
		e.logger.Debug("No usable info JSON, returning minimal metadata",
			zap.String("file", filePath), zap.Error(err))
		info = &domain.MediaInfo{}
	}
	info.FilePath = filePath

	writeLogFooter(engineLog, true, fmt.Sprintf("Downloaded: %s", filePath))
	return info, nil
}

// Inspect asks yt-dlp for the metadata of url without downloading it
func (e *YTDLPEngine) Inspect(ctx context.Context, url string) (*domain.MediaInfo, error) {
	args := []string{"--dump-single-json", "--no-warnings", "--", url}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.config.Binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, domain.NewEngineError(domain.ErrUnexpected,
			fmt.Errorf("failed to start %s: %w", e.config.Binary, err))
	}
	if err := cmd.Wait(); err != nil {
		return nil, classifyFailure(ctx, err, stderr.String())
	}

	info, err := parseInfoJSON(stdout.Bytes())
	if err != nil {
		return nil, domain.NewEngineError(domain.ErrUnexpected, err)
	}
	return info, nil
}

// downloadArgs builds the yt-dlp argument list for a download.
// exec passes args straight to the process, no shell quoting needed.
func (e *YTDLPEngine) downloadArgs(url string, opts domain.RequestOptions) []string {
	args := []string{
		"--newline",
		"--progress",
		"--quiet",
		"--no-warnings",
		"--progress-template", progressTemplate,
		"--print", "after_move:filepath",
		"--write-info-json",
	}
	if opts.Format != "" {
		args = append(args, "-f", opts.Format)
	}
	if opts.MergeOutputFormat != "" {
		args = append(args, "--merge-output-format", opts.MergeOutputFormat)
	}
	if opts.Retries > 0 {
		args = append(args, "--retries", strconv.Itoa(opts.Retries))
	}
	if opts.SocketTimeout > 0 {
		args = append(args, "--socket-timeout", formatSeconds(opts.SocketTimeout))
	}
	if opts.OutputTemplate != "" {
		args = append(args, "-o", opts.OutputTemplate)
	}
	if opts.CookieFile != "" {
		args = append(args, "--cookies", opts.CookieFile)
	}
	if opts.WriteThumbnail {
		args = append(args, "--write-thumbnail")
	}
	return append(args, "--", url)
}

// consumeOutput reads yt-dlp's stdout until EOF, forwarding progress lines
// to progress and returning the first file path printed after the move.
func consumeOutput(r io.Reader, progress domain.ProgressFunc, engineLog io.Writer) string {
	var filePath string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		fmt.Fprintln(engineLog, line)

		if strings.HasPrefix(line, progressPrefix) {
			if progress != nil {
				if event, ok := parseProgressLine(line); ok {
					progress(event)
				}
			}
			continue
		}

		if trimmed := strings.TrimSpace(line); trimmed != "" && filePath == "" {
			filePath = trimmed
		}
	}
	return filePath
}

// parseProgressLine parses "[xdownload] status|percent|speed"
func parseProgressLine(line string) (domain.ProgressEvent, bool) {
	parts := strings.SplitN(strings.TrimPrefix(line, progressPrefix), "|", 3)
	if len(parts) != 3 {
		return domain.ProgressEvent{}, false
	}

	percent := -1.0
	percentStr := strings.TrimSuffix(strings.TrimSpace(parts[1]), "%")
	if p, err := strconv.ParseFloat(strings.TrimSpace(percentStr), 64); err == nil {
		percent = p
	}

	return domain.ProgressEvent{
		Status:  domain.ProgressStatus(strings.TrimSpace(parts[0])),
		Percent: percent,
		Speed:   strings.TrimSpace(parts[2]),
	}, true
}

// classifyFailure turns a non-zero yt-dlp exit into an engine error
func classifyFailure(ctx context.Context, waitErr error, stderr string) *domain.EngineError {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return domain.NewEngineError(domain.ErrUnexpected, ctxErr)
	}

	message := lastErrorLine(stderr)
	if message == "" {
		return domain.NewEngineError(domain.ErrDownloadFailed, fmt.Errorf("yt-dlp failed: %w", waitErr))
	}
	if extractorErrorPattern.MatchString(message) {
		return domain.NewEngineError(domain.ErrExtractionFailed, fmt.Errorf("%s", message))
	}
	return domain.NewEngineError(domain.ErrDownloadFailed, fmt.Errorf("%s", message))
}

// lastErrorLine returns the last "ERROR:" line of yt-dlp's stderr
func lastErrorLine(stderr string) string {
	lines := strings.Split(stderr, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if strings.HasPrefix(line, "ERROR:") {
			return line
		}
	}
	return ""
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}

// openLogFile opens today's engine log. It returns nil when no logs
// directory is configured.
func (e *YTDLPEngine) openLogFile() (*os.File, error) {
	if e.config.LogsDir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(e.config.LogsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	dateStr := time.Now().Format("20060102")
	logPath := filepath.Join(e.config.LogsDir, "engine-"+dateStr+".log")
	return os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}

// writeLogHeader writes the download start marker
func writeLogHeader(w io.Writer, url, cmdLine string) {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(w, "\n=== [%s] Download: %s ===\n", timestamp, url)
	fmt.Fprintf(w, "$ %s\n", cmdLine)
}

// writeLogFooter writes the download end marker
func writeLogFooter(w io.Writer, success bool, message string) {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	status := "SUCCESS"
	if !success {
		status = "FAILED"
	}
	fmt.Fprintf(w, "[%s] %s: %s\n", timestamp, status, message)
	fmt.Fprint(w, "=== END ===\n\n")
}
