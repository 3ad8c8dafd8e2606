package pipeline

import (
	"github.com/RPINerd/FastQC-Pipeline/merge"
	"github.com/montanaflynn/stats"
	"github.com/sirupsen/logrus"
)

// Summary describes the sizes of the merged files, in bytes.
type Summary struct {
	Files  int
	Total  float64
	Min    float64
	Median float64
	Max    float64
}

func Summarize(results []merge.Result) (Summary, error) {
	s := Summary{Files: len(results)}
	if len(results) == 0 {
		return s, nil
	}

	sizes := make(stats.Float64Data, 0, len(results))
	for _, res := range results {
		sizes = append(sizes, float64(res.Bytes))
	}

	var err error
	if s.Total, err = stats.Sum(sizes); err != nil {
		return s, err
	}
	if s.Min, err = stats.Min(sizes); err != nil {
		return s, err
	}
	if s.Median, err = stats.Median(sizes); err != nil {
		return s, err
	}
	if s.Max, err = stats.Max(sizes); err != nil {
		return s, err
	}

	return s, nil
}

func logSummary(log *logrus.Logger, results []merge.Result) {
	s, err := Summarize(results)
	if err != nil {
		log.WithError(err).Debugln("Could not summarize merged file sizes")
		return
	}

	log.WithFields(logrus.Fields{
		"files":  s.Files,
		"total":  int64(s.Total),
		"min":    int64(s.Min),
		"median": int64(s.Median),
		"max":    int64(s.Max),
	}).Infoln("Merged file sizes (bytes)")
}
