package mks

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Enricher fills in author, comment, time and revision for each modification
// by querying si memberinfo once per member that still exists.
type Enricher struct {
	Invoker  Invoker
	Settings Settings
	// Workers bounds the number of concurrent memberinfo calls. Values below 1 mean sequential.
	Workers int
	Logger  logrus.FieldLogger
}

// Enrich updates mods in place. Deleted members are never queried.
// The first failure cancels outstanding queries and is returned.
func (e *Enricher) Enrich(ctx context.Context, mods []Modification) error {
	var pending []int
	for i := range mods {
		if !mods[i].IsDeleted() {
			pending = append(pending, i)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	workers := e.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(pending) {
		workers = len(pending)
	}
	if workers == 1 {
		for _, i := range pending {
			if err := e.enrichOne(ctx, &mods[i]); err != nil {
				return err
			}
		}
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tasks := make(chan int, workers)
	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range tasks {
				if ctx.Err() != nil {
					continue
				}
				// Each index is handed to exactly one worker, so mods[i] has a single writer.
				if err := e.enrichOne(ctx, &mods[i]); err != nil {
					once.Do(func() {
						firstErr = err
						cancel()
					})
				}
			}
		}()
	}

	for _, i := range pending {
		if ctx.Err() != nil {
			break
		}
		tasks <- i
	}
	close(tasks)
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}

func (e *Enricher) enrichOne(ctx context.Context, mod *Modification) error {
	cmd := e.Settings.MemberInfoCommand(*mod)
	start := time.Now()
	out, err := run(ctx, e.Invoker, cmd, e.Settings.Timeout)
	if err != nil {
		return err
	}
	if err := ParseMemberInfo(strings.NewReader(out), mod); err != nil {
		return err
	}
	if e.Logger != nil {
		e.Logger.WithFields(logrus.Fields{
			"member":   mod.Path(),
			"revision": mod.Version,
			"elapsed":  time.Since(start),
		}).Debug("Fetched member info")
	}
	return nil
}
