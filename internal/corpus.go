package internal

import (
	"encoding/json"
)

// skipSampleSize is how many skip reasons a NoValidConversationsError carries
const skipSampleSize = 3

// BuildReport is the outcome of one corpus build, for diagnostics
type BuildReport struct {
	Shape   RootShape
	Records int
	Built   int
	Skipped []*SkipRecordError
}

// BuildCorpus builds a corpus from a decoded export root. Only malformed roots
// and exports with no usable conversation fail; bad records are skipped.
func BuildCorpus(root json.RawMessage) (*Corpus, error) {
	corpus, _, err := BuildCorpusWithReport(root)
	return corpus, err
}

// BuildCorpusFromBytes is BuildCorpus for raw export bytes
func BuildCorpusFromBytes(data []byte) (*Corpus, error) {
	if !json.Valid(data) {
		return nil, &InvalidFormatError{Reason: "export is not valid JSON"}
	}
	return BuildCorpus(json.RawMessage(data))
}

// BuildCorpusWithReport is BuildCorpus that also returns what was skipped.
// The report is returned even when the build fails.
func BuildCorpusWithReport(root json.RawMessage) (*Corpus, *BuildReport, error) {
	records, shape, err := DetectRoot(root)
	if err != nil {
		return nil, &BuildReport{}, err
	}

	LogInfo("Starting to parse %d conversation entries", len(records))

	report := &BuildReport{Shape: shape, Records: len(records)}
	conversations := make([]*Conversation, 0, len(records))
	for i, raw := range records {
		conv, err := BuildConversation(i, raw)
		if err != nil {
			skip, ok := err.(*SkipRecordError)
			if !ok {
				skip = &SkipRecordError{Index: i, Reason: err.Error()}
			}
			LogWarn("Skipping %v", skip)
			report.Skipped = append(report.Skipped, skip)
			continue
		}
		conversations = append(conversations, conv)
	}
	report.Built = len(conversations)

	if len(conversations) == 0 {
		sample := report.Skipped
		if len(sample) > skipSampleSize {
			sample = sample[:skipSampleSize]
		}
		return nil, report, &NoValidConversationsError{Records: len(records), Sample: sample}
	}

	if len(report.Skipped) > 0 {
		LogWarn("Encountered %d skipped entries", len(report.Skipped))
	}
	LogInfo("Successfully parsed %d conversations with messages", len(conversations))

	return NewCorpus(conversations), report, nil
}
