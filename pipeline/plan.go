package pipeline

import (
	"errors"

	"github.com/RPINerd/FastQC-Pipeline/locate"
	"github.com/RPINerd/FastQC-Pipeline/merge"
	"github.com/RPINerd/FastQC-Pipeline/samplelist"
	"github.com/sirupsen/logrus"
)

// Plan turns samples into merge jobs: one per sample and requested read
// direction that has lane files. Entries without lane files are logged and
// skipped; any other locator error is returned.
func Plan(log *logrus.Logger, loc *locate.Locator, root string, scope samplelist.Reads, samples []samplelist.Sample) ([]merge.Job, error) {
	jobs := make([]merge.Job, 0, 2*len(samples))

	log.Infoln("--Creating Merge Jobs--")

	for _, sample := range samples {
		directions := sample.Reads.Within(scope)
		log.Infof("Sample:\t%s\tReads:\t%v", sample.ID, directions)

		if len(directions) == 0 {
			log.Warnf("Sample %s asks for R%s only, which is outside this run. Skipping...", sample.ID, sample.Reads)
			continue
		}

		dir := sample.Dir
		if dir == "" {
			dir = root
		}

		for _, direction := range directions {
			files, err := loc.Find(dir, sample.ID, direction)
			if errors.Is(err, locate.ErrNoReads) {
				log.Warnf("No files were found for SampleID %s R%d! Skipping...", sample.ID, direction)
				continue
			} else if err != nil {
				return nil, err
			}

			if sample.Lanes > 0 && len(files) != sample.Lanes {
				log.Warnf("SampleID %s R%d lists %d lanes but %d lane files were found", sample.ID, direction, sample.Lanes, len(files))
			}

			log.WithField("files", files).Debugf("Lane files for %s R%d", sample.ID, direction)

			jobs = append(jobs, merge.Job{
				SampleID:  sample.ID,
				Direction: direction,
				Sources:   files,
			})
		}
	}

	log.Infof("%d total jobs created.", len(jobs))

	return jobs, nil
}
