package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/svnlens/svnlens/application"
	"github.com/svnlens/svnlens/domain"
	"github.com/svnlens/svnlens/infrastructure/watcher"
)

func newWatchCommand(svc *application.WorkingCopyService) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [path...]",
		Short: "Watch working copies and re-run shallow scans on change",
		RunE: func(command *cobra.Command, args []string) error {
			roots := args
			if len(roots) == 0 {
				roots = []string{"."}
			}

			queue := newChangeQueue()
			w, err := watcher.New(queue.add)
			if err != nil {
				return err
			}
			defer w.Close()

			for _, root := range roots {
				if watchErr := w.Watch(root); watchErr != nil {
					return watchErr
				}
			}

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			logger.Infof("Watching %d working copies", len(roots))

			for {
				select {
				case <-stop:
					return nil
				case <-command.Context().Done():
					return nil
				case <-queue.kick:
					for _, root := range queue.drain() {
						result, statusErr := svc.Status(command.Context(), root)
						if statusErr != nil {
							logger.Warnf("Refresh failed for %q: %v", root, statusErr)
							continue
						}
						printChanged(root, result)
					}
				}
			}
		},
	}
}

// changeQueue coalesces watcher notifications per working-copy root, so an
// event burst costs one refresh and no root's notification is ever dropped
// in favor of another root's.
type changeQueue struct {
	mu      sync.Mutex
	pending map[string]bool
	kick    chan struct{}
}

func newChangeQueue() *changeQueue {
	return &changeQueue{
		pending: make(map[string]bool),
		kick:    make(chan struct{}, 1),
	}
}

func (q *changeQueue) add(root string) {
	q.mu.Lock()
	q.pending[root] = true
	q.mu.Unlock()

	select {
	case q.kick <- struct{}{}:
	default: // a wakeup is already queued
	}
}

// drain returns the pending roots in stable order and resets the queue.
func (q *changeQueue) drain() []string {
	q.mu.Lock()
	defer q.mu.Unlock()

	roots := make([]string, 0, len(q.pending))
	for root := range q.pending {
		roots = append(roots, root)
	}
	sort.Strings(roots)
	q.pending = make(map[string]bool)
	return roots
}

func printChanged(root string, result *domain.StatusResult) {
	fmt.Printf("-- %s (r%d)\n", root, result.Revision)
	for _, entry := range result.Entries {
		if entry.Status == domain.StatusNormal {
			continue
		}
		fmt.Printf("%-12s %s\n", entry.Status, entry.Path)
	}
}
