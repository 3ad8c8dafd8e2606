// fastqcpipe merges per-lane fastq files for each sample in a run list and
// hands the merged files to FastQC.
//
// The run list holds one sample per line:
//
//	Exp001_S1
//	Exp001_S2
//
// or, tab-delimited, a sample, its directory, its lane count and which reads
// to process (1, 2 or Both):
//
//	#SampleID	Directory	Lanes	Reads
//	Exp001_S1	/runs/230908	4	Both
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	fastqcpipe "github.com/RPINerd/FastQC-Pipeline"
	"github.com/RPINerd/FastQC-Pipeline/compileinfo"
	_ "github.com/RPINerd/FastQC-Pipeline/compileinfoprint"
	"github.com/RPINerd/FastQC-Pipeline/logging"
	"github.com/RPINerd/FastQC-Pipeline/pipeline"
	"github.com/RPINerd/FastQC-Pipeline/qc"
	"github.com/RPINerd/FastQC-Pipeline/samplelist"
)

func main() {
	var dir, file, mergeDir, fastqcBin, outDir, layout, manifest, logPath, extra string
	var threadCount, reads int
	var clean, verbose, parallelMerge, showVersion bool

	flag.StringVar(&dir, "dir", "", "Directory where all fastq files are stored. May be a gs://bucket/prefix.")
	flag.StringVar(&file, "file", "", "Your input *.tsv/*.csv with the list of samples. May be compressed.")
	flag.IntVar(&threadCount, "threads", 0, "Number of threads for FastQC. 0 picks the lesser of the job count and the available cores.")
	flag.StringVar(&mergeDir, "merge", "", "If desired, specify a location to save the fastq files after lane merge. Defaults to the current directory.")
	flag.BoolVar(&clean, "clean", false, "After the run, clean up the merged files from the disk.")
	flag.IntVar(&reads, "reads", 0, "Limit QC to only R1 (1) or R2 (2). 0 processes both.")
	flag.BoolVar(&verbose, "verbose", false, "Output debugging information and save it to the log file.")
	flag.StringVar(&logPath, "log", logging.DefaultLogFile, "Log file written when -verbose is set.")
	flag.StringVar(&fastqcBin, "fastqc", qc.DefaultBinary, "Name or path of the FastQC executable.")
	flag.StringVar(&outDir, "outdir", "", "Directory for FastQC reports (FastQC's -o). Defaults to beside the merged files.")
	flag.StringVar(&extra, "fastqc-args", "", "Extra space-separated arguments passed to FastQC before the file list.")
	flag.StringVar(&layout, "layout", samplelist.LayoutAuto, fmt.Sprintf("Sample list layout. One of: %s", samplelist.LayoutNames()))
	flag.BoolVar(&parallelMerge, "parallel-merge", false, "Merge lanes for several samples at once, up to the thread count.")
	flag.StringVar(&manifest, "manifest", "", "If set, write a tab-delimited manifest of merged files to this path.")
	flag.BoolVar(&showVersion, "version", false, "Print the version and exit.")

	flag.Parse()

	if showVersion {
		fmt.Println(compileinfo.Get().Short())
		os.Exit(0)
	}

	log, logCloser, err := logging.New(logging.Options{Verbose: verbose, LogPath: logPath})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logCloser.Close()

	log.Infoln("Logging started!")

	if dir == "" {
		log.Fatalln("Please provide -dir")
	}

	if file == "" {
		log.Fatalln("Please provide -file")
	}

	var scope samplelist.Reads
	switch reads {
	case 0, 3:
		scope = samplelist.ReadsBoth
	case 1:
		scope = samplelist.ReadsR1
	case 2:
		scope = samplelist.ReadsR2
	default:
		log.Fatalln("-reads must be 1 or 2 (or 0 for both)")
	}

	for _, p := range []*string{&dir, &file, &mergeDir, &outDir, &manifest} {
		if *p, err = fastqcpipe.ExpandHome(*p); err != nil {
			log.Fatalln(err)
		}
	}

	if outDir != "" {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			log.Fatalln(err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := pipeline.Run(ctx, pipeline.Config{
		Dir:           dir,
		SampleList:    file,
		Layout:        layout,
		Reads:         scope,
		Threads:       threadCount,
		MergeDir:      mergeDir,
		Clean:         clean,
		ParallelMerge: parallelMerge,
		Manifest:      manifest,
		QC: &qc.FastQC{
			Binary:    fastqcBin,
			OutDir:    outDir,
			ExtraArgs: strings.Fields(extra),
			Log:       log,
		},
		Log: log,
	})
	if err != nil {
		log.Fatalln(err)
	}

	log.Infof("Processed %d samples into %d merged files with %d threads", report.Samples, len(report.Results), report.Threads)
}
