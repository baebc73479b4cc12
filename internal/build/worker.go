package build

import (
	"context"
	"fmt"
	"time"
)

// process runs one rebuild job: build every root it names, store the
// results, write manifests, and report the outcome through the webhook.
func (o *Orchestrator) process(ctx context.Context, job *Job) {
	log := o.log.With("job_id", job.ID)
	job.SetStatus(StatusBuilding, "building")

	hadErrors := false
	built := 0
	for _, key := range job.Roots {
		if err := ctx.Err(); err != nil {
			job.AddError(err.Error())
			job.SetStatus(StatusFailed, "building")
			return
		}

		root, ok := o.lookupRoot(key)
		if !ok {
			job.AddError(fmt.Sprintf("%s: unknown root", key))
			hadErrors = true
			continue
		}

		start := time.Now()
		res, err := o.runner.Build(ctx, root)
		o.stats.Record(time.Since(start).Milliseconds())
		if err != nil {
			log.Error("build failed", "root", key, "error", err)
			job.AddError(fmt.Sprintf("%s: %s", key, err))
			hadErrors = true
			continue
		}

		o.setResult(res)
		if o.cfg.OutDir != "" {
			if _, err := WriteManifest(o.cfg.OutDir, ManifestFor(res)); err != nil {
				log.Error("manifest write failed", "root", key, "error", err)
				job.AddError(fmt.Sprintf("%s: manifest: %s", key, err))
				hadErrors = true
			}
		}
		job.IncrRootsBuilt()
		job.AddFindings(len(res.Report.Warnings), len(res.Report.Notices))
		built++
	}

	if hadErrors && built > 0 {
		job.SetStatus(StatusPartial, "done")
	} else if hadErrors {
		job.SetStatus(StatusFailed, "building")
	} else {
		job.SetStatus(StatusCompleted, "done")
	}

	if o.webhook.Enabled() {
		if err := o.webhook.Send(ctx, job.Snapshot()); err != nil {
			log.Warn("webhook delivery failed", "error", err)
		}
	}
}
