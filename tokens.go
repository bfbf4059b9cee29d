package domsift

import "context"

// CountReportTokens counts tokens of the raw input and of the canonical
// serialization of the report's preserved elements, and attaches them to the
// report.
func CountReportTokens(ctx context.Context, counter TokenCounter, input string, report *Report) error {
	original, err := counter.CountTokens(ctx, input)
	if err != nil {
		return Errorf(EPROCESSING, "counting input tokens: %v", err)
	}

	canonical, err := CanonicalJSON(report.PreservedElements)
	if err != nil {
		return Errorf(EPROCESSING, "serializing preserved elements: %v", err)
	}
	preserved, err := counter.CountTokens(ctx, string(canonical))
	if err != nil {
		return Errorf(EPROCESSING, "counting preserved tokens: %v", err)
	}

	report.Tokens = &TokenStats{Original: original, Preserved: preserved}
	return nil
}
