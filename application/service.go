package application

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/svnlens/svnlens/config"
	"github.com/svnlens/svnlens/domain"
	"github.com/svnlens/svnlens/infrastructure/parser"
	"github.com/svnlens/svnlens/infrastructure/scan"
)

// WorkingCopyService orchestrates the engine: it invokes svn through the
// runner, hands output to the parsers, and coordinates deep scans through the
// scan registry. Parser diagnostics are logged and the degraded (empty)
// result is kept, so unexpected tool output empties the view instead of
// failing it.
type WorkingCopyService struct {
	runner  domain.Runner
	scans   *scan.Registry
	timeout time.Duration
}

// NewWorkingCopyService creates the service with the given collaborators.
func NewWorkingCopyService(runner domain.Runner, scans *scan.Registry, cfg *config.Config) *WorkingCopyService {
	return &WorkingCopyService{
		runner:  runner,
		scans:   scans,
		timeout: cfg.Timeout(),
	}
}

func (s *WorkingCopyService) opts(dir string) domain.RunOptions {
	return domain.RunOptions{Dir: dir, Timeout: s.timeout}
}

// Status runs a shallow scan: the status of wcPath's immediate children.
// Shallow scans bypass the scan registry; they are cheap, always allowed to
// run concurrently, and not cancellable.
func (s *WorkingCopyService) Status(ctx context.Context, wcPath string) (*domain.StatusResult, error) {
	out, err := s.runner.Run(ctx, []string{"status", "--xml", "-v", "--depth", "immediates"}, s.opts(wcPath))
	if err != nil {
		return nil, err
	}
	return s.parseStatusOutput(out, wcPath), nil
}

// DeepStatus runs a full recursive scan through the scan registry. Starting a
// new deep scan for the same path supersedes the one in flight; the
// superseded scan, and a scan whose process fails or is killed, resolves to
// an empty result rather than an error.
func (s *WorkingCopyService) DeepStatus(ctx context.Context, wcPath string) (*domain.StatusResult, error) {
	scanCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	handle := s.scans.Start(wcPath, cancel)
	out, err := s.runner.Run(scanCtx, []string{"status", "--xml", "-v"}, s.opts(wcPath))
	current := s.scans.Finish(handle)

	if !current || errors.Is(err, context.Canceled) {
		logger.Debugf("Deep scan for %q was superseded, discarding its result", wcPath)
		return &domain.StatusResult{Path: wcPath}, nil
	}
	if err != nil {
		logger.Warnf("Deep scan for %q failed: %v", wcPath, err)
		return &domain.StatusResult{Path: wcPath}, nil
	}
	return s.parseStatusOutput(out, wcPath), nil
}

// CancelDeepStatus kills the in-flight deep scan for wcPath, if any.
func (s *WorkingCopyService) CancelDeepStatus(wcPath string) bool {
	return s.scans.Cancel(wcPath)
}

// RefreshAll runs shallow scans for several working copies concurrently.
// A failing root yields an empty result under its key; timeouts apply per
// invocation.
func (s *WorkingCopyService) RefreshAll(ctx context.Context, wcPaths []string) (map[string]*domain.StatusResult, error) {
	results := make(map[string]*domain.StatusResult, len(wcPaths))
	var mu sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	for _, wcPath := range wcPaths {
		wcPath := wcPath
		group.Go(func() error {
			result, err := s.Status(groupCtx, wcPath)
			if err != nil {
				logger.Warnf("Refresh failed for %q: %v", wcPath, err)
				result = &domain.StatusResult{Path: wcPath}
			}
			mu.Lock()
			results[wcPath] = result
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Log returns repository history for the working copy, newest first as
// reported by the tool. A limit of 0 means unlimited.
func (s *WorkingCopyService) Log(ctx context.Context, wcPath string, limit int) (*domain.LogResult, error) {
	args := []string{"log", "--xml", "-v"}
	if limit > 0 {
		args = append(args, "--limit", strconv.Itoa(limit))
	}
	out, err := s.runner.Run(ctx, args, s.opts(wcPath))
	if err != nil {
		return nil, err
	}

	result, parseErr := parser.ParseLog(out)
	if parseErr != nil {
		logger.Warnf("Degraded log parse for %q: %v", wcPath, parseErr)
	}
	return result, nil
}

// Info returns working-copy metadata (URL, repository root, revisions).
func (s *WorkingCopyService) Info(ctx context.Context, wcPath string) (*domain.InfoResult, error) {
	out, err := s.runner.Run(ctx, []string{"info", "--xml"}, s.opts(wcPath))
	if err != nil {
		return nil, err
	}

	result, parseErr := parser.ParseInfo(out)
	if parseErr != nil {
		logger.Warnf("Degraded info parse for %q: %v", wcPath, parseErr)
	}
	return result, nil
}

// Blame returns per-line attribution for a file in the working copy.
func (s *WorkingCopyService) Blame(ctx context.Context, wcPath, file string) (*domain.BlameResult, error) {
	out, err := s.runner.Run(ctx, []string{"blame", "--xml", file}, s.opts(wcPath))
	if err != nil {
		return nil, err
	}

	result, parseErr := parser.ParseBlame(out)
	if parseErr != nil {
		logger.Warnf("Degraded blame parse for %q: %v", file, parseErr)
	}
	if result.Path == "" {
		result.Path = file
	}
	return result, nil
}

// List browses a repository URL and returns its children.
func (s *WorkingCopyService) List(ctx context.Context, url string) (*domain.ListResult, error) {
	out, err := s.runner.Run(ctx, []string{"list", "--xml", url}, domain.RunOptions{Timeout: s.timeout})
	if err != nil {
		return nil, err
	}

	result, parseErr := parser.ParseList(out, url)
	if parseErr != nil {
		logger.Warnf("Degraded list parse for %q: %v", url, parseErr)
	}
	return result, nil
}

// Diff returns the working-copy changes for target, or for the whole working
// copy when target is empty.
func (s *WorkingCopyService) Diff(ctx context.Context, wcPath, target string) (*domain.DiffResult, error) {
	args := []string{"diff"}
	if target != "" {
		args = append(args, target)
	}
	out, err := s.runner.Run(ctx, args, s.opts(wcPath))
	if err != nil {
		return nil, err
	}
	return parser.ParseDiff(out), nil
}

// Externals returns the svn:externals definitions set anywhere in the
// working copy.
func (s *WorkingCopyService) Externals(ctx context.Context, wcPath string) ([]domain.ExternalDef, error) {
	out, err := s.runner.Run(ctx, []string{"propget", "svn:externals", "-R"}, s.opts(wcPath))
	if err != nil {
		return nil, err
	}
	return parser.ParseExternals(out), nil
}

// Update brings the working copy up to date and returns the tool's output.
// The engine never computes VCS semantics itself; mutations are passthrough
// invocations.
func (s *WorkingCopyService) Update(ctx context.Context, wcPath string) (string, error) {
	return s.runner.Run(ctx, []string{"update"}, s.opts(wcPath))
}

// Commit records the given paths (or everything, when empty) with a message.
func (s *WorkingCopyService) Commit(ctx context.Context, wcPath, message string, paths []string) (string, error) {
	args := append([]string{"commit", "-m", message}, paths...)
	return s.runner.Run(ctx, args, s.opts(wcPath))
}

// Add schedules paths for addition.
func (s *WorkingCopyService) Add(ctx context.Context, wcPath string, paths []string) (string, error) {
	return s.runner.Run(ctx, append([]string{"add"}, paths...), s.opts(wcPath))
}

// Revert discards local modifications on the given paths.
func (s *WorkingCopyService) Revert(ctx context.Context, wcPath string, paths []string) (string, error) {
	return s.runner.Run(ctx, append([]string{"revert"}, paths...), s.opts(wcPath))
}

// Cleanup releases working-copy locks after an interrupted operation.
func (s *WorkingCopyService) Cleanup(ctx context.Context, wcPath string) (string, error) {
	return s.runner.Run(ctx, []string{"cleanup"}, s.opts(wcPath))
}

// parseStatusOutput parses status XML, keeps the degraded empty result on a
// diagnostic, and anchors the entries. svn reports entry paths relative to
// the scanned directory, so the result's path and every entry are resolved
// against the absolute root before rollups or stat calls see them.
func (s *WorkingCopyService) parseStatusOutput(out, wcPath string) *domain.StatusResult {
	result, parseErr := parser.ParseStatus(out, wcPath)
	if parseErr != nil {
		logger.Warnf("Degraded status parse for %q: %v", wcPath, parseErr)
		return result
	}

	root := wcPath
	if abs, absErr := filepath.Abs(wcPath); absErr == nil {
		root = abs
	}
	result.Path = domain.NormalizePath(root)
	anchorEntries(root, result.Entries)
	return result
}

// anchorEntries joins tool-relative entry paths under the scan root and
// stats each one to flag directories. Status XML carries no kind attribute,
// and missing or deleted paths simply stay flagged as files.
func anchorEntries(root string, entries []domain.StatusEntry) {
	for i := range entries {
		p := entries[i].Path
		if !filepath.IsAbs(p) {
			p = filepath.Join(root, p)
		}
		entries[i].Path = domain.NormalizePath(p)
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			entries[i].IsDir = true
		}
	}
}
