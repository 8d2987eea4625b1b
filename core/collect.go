package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gerritlens/gerritlens/internal/contract"
	"github.com/gerritlens/gerritlens/internal/gerrit"
	"github.com/gerritlens/gerritlens/internal/outwriter"
	"github.com/gerritlens/gerritlens/internal/pointstore"
	"github.com/gerritlens/gerritlens/schema"
)

// ExecutorFunc defines the function signature for executing different
// command modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// ExecuteCollect fetches changes from Gerrit and records them as points.
// It serves as the main entry point for the 'collect' command.
func ExecuteCollect(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	if err := contract.ValidateGerritConfig(cfg); err != nil {
		return err
	}
	client := gerrit.NewClient(cfg.GerritURL, cfg.GerritUser, cfg.GerritPassword)
	store := pointstore.Manager.GetPointStore()

	summary, err := runCollectCore(ctx, cfg, client, store)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintCollectSummary(summary, cfg, duration)
}

// projectChanges pairs a project with the changes fetched for it.
type projectChanges struct {
	project string
	changes []schema.ChangeInfo
	err     error
}

// runCollectCore fetches changes for all configured projects concurrently
// and records the resulting points. Projects default to every ACTIVE project
// on the server when none are configured.
func runCollectCore(ctx context.Context, cfg *contract.Config, reader contract.GerritReader, store contract.PointStore) (schema.CollectSummary, error) {
	summary := schema.CollectSummary{
		WindowStart: cfg.StartTime,
		WindowStop:  cfg.EndTime,
	}

	// --- 1. Resolve target projects ---
	projects := cfg.Projects
	if len(projects) == 0 {
		var err error
		projects, err = reader.ListActiveProjects(ctx)
		if err != nil {
			return summary, fmt.Errorf("failed to list active projects: %w", err)
		}
	}
	summary.Projects = len(projects)

	// --- 2. Fetch changes per project with a worker pool ---
	projectCh := make(chan string, len(projects))
	resultCh := make(chan projectChanges, len(projects))
	var wg sync.WaitGroup

	for range cfg.Workers {
		wg.Go(func() {
			for p := range projectCh {
				changes, err := reader.ListChangesSince(ctx, p, cfg.StartTime)
				resultCh <- projectChanges{project: p, changes: changes, err: err}
			}
		})
	}

	for _, p := range projects {
		projectCh <- p
	}
	close(projectCh)

	wg.Wait()
	close(resultCh)

	// --- 3. Keep changes inside the collection window ---
	tr := cfg.Range()
	var changes []schema.ChangeInfo
	var unnamed bool
	for r := range resultCh {
		if r.err != nil {
			return summary, fmt.Errorf("failed to fetch changes for %s: %w", r.project, r.err)
		}
		for _, c := range r.changes {
			if !tr.Contains(c.Created.Time) {
				continue
			}
			changes = append(changes, c)
			if c.Owner.DisplayName() == "" && c.Owner.AccountID != 0 {
				unnamed = true
			}
		}
	}

	// --- 4. Resolve missing owner names from account details ---
	// Change payloads may carry bare account IDs; the accounts endpoint has
	// the display names.
	names := map[int]string{}
	if unnamed {
		accounts, err := reader.ListActiveAccounts(ctx)
		if err != nil {
			return summary, fmt.Errorf("failed to resolve account names: %w", err)
		}
		for _, a := range accounts {
			names[a.AccountID] = a.DisplayName()
		}
	}

	var events []schema.CommitEvent
	owners := map[string]struct{}{}
	for _, c := range changes {
		event := schema.EventFromChange(c)
		if event.Owner == "" {
			event.Owner = names[c.Owner.AccountID]
		}
		if event.Owner != "" {
			owners[event.Owner] = struct{}{}
		}
		events = append(events, event)
	}
	summary.Changes = len(events)
	summary.Contributors = len(owners)

	// --- 5. Record points ---
	recorder := NewRecorder(store)
	written, err := recorder.RecordEvents(ctx, cfg.EndTime, events)
	if err != nil {
		return summary, fmt.Errorf("failed to record points: %w", err)
	}
	summary.PointsWritten = written

	return summary, nil
}
