// Package pipeline wires the sample list, locator, merger and QC dispatcher
// into one sequential run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"cloud.google.com/go/storage"
	fastqcpipe "github.com/RPINerd/FastQC-Pipeline"
	"github.com/RPINerd/FastQC-Pipeline/locate"
	"github.com/RPINerd/FastQC-Pipeline/merge"
	"github.com/RPINerd/FastQC-Pipeline/qc"
	"github.com/RPINerd/FastQC-Pipeline/samplelist"
	"github.com/RPINerd/FastQC-Pipeline/threads"
	"github.com/carbocation/pfx"
	"github.com/sirupsen/logrus"
)

type Config struct {
	// Dir is searched for lane files unless a sample names its own directory.
	// Either may be a gs:// prefix.
	Dir string

	SampleList string

	// Layout names a samplelist layout; empty picks one per line.
	Layout string

	// Reads limits the whole run to one direction. ReadsBoth means no limit.
	Reads samplelist.Reads

	// Threads for FastQC; 0 picks the lesser of job count and Cores.
	Threads int

	// Cores overrides the detected CPU count when positive.
	Cores int

	// MergeDir receives merged files and is created if needed. Empty means the
	// current directory.
	MergeDir string

	// Clean removes merged files after QC.
	Clean bool

	// ParallelMerge merges up to Threads jobs at once.
	ParallelMerge bool

	// Manifest, when set, is the path of a TSV describing every merged file.
	Manifest string

	QC      *qc.FastQC
	Storage *storage.Client
	Log     *logrus.Logger
}

// Report is what a run did.
type Report struct {
	Samples int
	Jobs    []merge.Job
	Results []merge.Result
	Threads int

	// QCErr holds a non-zero QC exit. It does not fail the run.
	QCErr error

	Removed []string
}

// MergedPaths lists the merged files in job order.
func (r *Report) MergedPaths() []string {
	paths := make([]string, 0, len(r.Results))
	for _, res := range r.Results {
		paths = append(paths, res.Path)
	}

	return paths
}

// Run executes the pipeline. Missing inputs, a missing QC executable, and
// merge failures are returned as errors before QC runs. A QC tool that exits
// non-zero is logged and recorded in Report.QCErr, and cleanup still happens.
// Cancelling ctx stops merging and QC; merged files are still cleaned up.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	log := cfg.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	if cfg.SampleList == "" {
		return nil, fmt.Errorf("no sample list was provided")
	}
	if _, err := os.Stat(cfg.SampleList); err != nil {
		return nil, fmt.Errorf("Input file (%s) does not exist: %w", cfg.SampleList, err)
	}

	fastqc := cfg.QC
	if fastqc == nil {
		fastqc = &qc.FastQC{}
	}
	if fastqc.Log == nil {
		fastqc.Log = log
	}
	if _, err := fastqc.Locate(); err != nil {
		return nil, err
	}

	cores := cfg.Cores
	if cores <= 0 {
		cores = threads.Available()
	}
	log.Debugf("Cores reported: %d", cores)

	parser, err := samplelist.New(cfg.Layout)
	if err != nil {
		return nil, err
	}
	samples, err := samplelist.ReadFile(cfg.SampleList, parser)
	if err != nil {
		return nil, err
	}

	report := &Report{Samples: len(samples)}

	client := cfg.Storage
	if client == nil && needsStorage(cfg.Dir, samples) {
		client, err = storage.NewClient(ctx)
		if err != nil {
			return nil, pfx.Err(err)
		}
		defer client.Close()
	}

	if cfg.MergeDir != "" {
		if err := os.MkdirAll(cfg.MergeDir, 0755); err != nil {
			return nil, pfx.Err(err)
		}
	}

	loc := &locate.Locator{Storage: client, Context: ctx, Log: log}
	report.Jobs, err = Plan(log, loc, cfg.Dir, cfg.Reads, samples)
	if err != nil {
		return nil, err
	}

	n, warning := threads.Resolve(cfg.Threads, len(report.Jobs), cores)
	if warning != nil {
		log.Warnln(warning)
	}
	report.Threads = n
	log.Debugf("Using %d threads", n)

	if len(report.Jobs) == 0 {
		log.Warnln("No merge jobs were created; nothing to run")
		return report, nil
	}

	merger := &merge.Merger{
		Dir:     cfg.MergeDir,
		Storage: client,
		Context: ctx,
		Log:     log,
	}

	for _, job := range report.Jobs {
		merger.Sniff(job)
	}

	workers := 1
	if cfg.ParallelMerge {
		workers = n
	}

	// From here on merged files exist, so with Clean they are removed even
	// when the run fails or is interrupted.
	abort := func(err error) (*Report, error) {
		if cfg.Clean {
			Clean(log, report.Results)
		}
		return nil, err
	}

	report.Results, err = merger.MergeAll(report.Jobs, workers)
	if err != nil {
		return abort(err)
	}

	log.Infoln("Merge Completed!")
	log.WithField("files", report.MergedPaths()).Debugln("Merge files final")
	logSummary(log, report.Results)

	if cfg.Manifest != "" {
		if err := WriteManifest(cfg.Manifest, report.Results); err != nil {
			return abort(err)
		}
		log.Infof("Wrote merge manifest to %s", cfg.Manifest)
	}

	if err := fastqc.Run(ctx, n, report.MergedPaths()); err != nil {
		var exitErr *qc.ExitError
		if !errors.As(err, &exitErr) {
			return abort(err)
		}
		log.Errorln(err)
		report.QCErr = err
	}

	if cfg.Clean {
		report.Removed = Clean(log, report.Results)
	}

	return report, nil
}

// Clean removes merged files. A file that cannot be removed is logged and the
// rest are still attempted. The removed paths are returned.
func Clean(log *logrus.Logger, results []merge.Result) []string {
	removed := make([]string, 0, len(results))
	for _, res := range results {
		if err := os.Remove(res.Path); err != nil {
			log.WithError(err).Errorf("Could not remove %s", res.Path)
			continue
		}
		removed = append(removed, res.Path)
	}

	log.Infof("Removed %d merged files", len(removed))

	return removed
}

func needsStorage(root string, samples []samplelist.Sample) bool {
	if fastqcpipe.IsGSPath(root) {
		return true
	}

	for _, s := range samples {
		if fastqcpipe.IsGSPath(s.Dir) {
			return true
		}
	}

	return false
}
